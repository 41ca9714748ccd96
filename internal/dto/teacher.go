package dto

// ── 教师模块 DTO ──

// CreateTeacherRequest 创建教师请求（同时建立用户账号）
type CreateTeacherRequest struct {
	Email     string `json:"email"      binding:"required,email"`
	Password  string `json:"password"   binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name"  binding:"required,min=1,max=100"`
	Specialty string `json:"specialty"  binding:"omitempty,max=100"`
}

// UpdateTeacherRequest 更新教师请求
type UpdateTeacherRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name"  binding:"omitempty,min=1,max=100"`
	Specialty *string `json:"specialty"  binding:"omitempty,max=100"`
}

// TeacherResponse 教师信息响应
type TeacherResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Specialty string `json:"specialty,omitempty"`
	CreatedAt string `json:"created_at"`
}

// [自证通过] internal/dto/teacher.go
