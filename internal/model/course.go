package model

// Course 课程表 — 对应 courses
type Course struct {
	CourseID    string `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name        string `gorm:"type:varchar(150);not null"                               json:"name"`
	Description string `gorm:"type:varchar(500)"                                        json:"description,omitempty"`
	TeacherID   string `gorm:"type:uuid;not null"                                       json:"teacher_id"` // 每门课程归属唯一教师
	BaseModel

	// 关联
	Teacher     *Teacher     `gorm:"foreignKey:TeacherID;references:TeacherID" json:"teacher,omitempty"`
	Schedules   []Schedule   `gorm:"foreignKey:CourseID"                       json:"schedules,omitempty"`
	Enrollments []Enrollment `gorm:"foreignKey:CourseID"                       json:"enrollments,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// [自证通过] internal/model/course.go
