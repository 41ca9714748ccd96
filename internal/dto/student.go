package dto

// ── 学生模块 DTO ──

// CreateStudentRequest 创建学生请求（同时建立用户账号）
type CreateStudentRequest struct {
	Email     string  `json:"email"      binding:"required,email"`
	Password  string  `json:"password"   binding:"required,min=6"`
	FirstName string  `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string  `json:"last_name"  binding:"required,min=1,max=100"`
	BirthDate *string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	GradeYear string  `json:"grade_year" binding:"omitempty,max=20"`
	ParentID  *string `json:"parent_id"  binding:"omitempty,uuid"`
}

// UpdateStudentRequest 更新学生请求
type UpdateStudentRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name"  binding:"omitempty,min=1,max=100"`
	GradeYear *string `json:"grade_year" binding:"omitempty,max=20"`
	ParentID  *string `json:"parent_id"  binding:"omitempty,uuid"`
}

// StudentResponse 学生信息响应
type StudentResponse struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Email     string  `json:"email,omitempty"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthDate *string `json:"birth_date,omitempty"`
	GradeYear string  `json:"grade_year,omitempty"`
	ParentID  *string `json:"parent_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// [自证通过] internal/dto/student.go
