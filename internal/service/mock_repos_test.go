package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Angh31/sistema-educativo-backend/internal/model"
	"github.com/Angh31/sistema-educativo-backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[string]*model.Student
	seq      int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.StudentID == "" {
		m.seq++
		student.StudentID = fmt.Sprintf("st-%d", m.seq)
	}
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByUserID(_ context.Context, userID string) (*model.Student, error) {
	for _, s := range m.students {
		if s.UserID == userID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, offset, limit int) ([]model.Student, int64, error) {
	var result []model.Student
	for _, s := range m.students {
		result = append(result, *s)
	}
	return result, int64(len(m.students)), nil
}

func (m *mockStudentRepo) ListByParent(_ context.Context, parentID string) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		if s.ParentID != nil && *s.ParentID == parentID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	delete(m.students, id)
	return nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	teachers map[string]*model.Teacher
	seq      int
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{teachers: make(map[string]*model.Teacher)}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID == "" {
		m.seq++
		teacher.TeacherID = fmt.Sprintf("t-%d", m.seq)
	}
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByUserID(_ context.Context, userID string) (*model.Teacher, error) {
	for _, t := range m.teachers {
		if t.UserID == userID {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context, offset, limit int) ([]model.Teacher, int64, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		result = append(result, *t)
	}
	return result, int64(len(m.teachers)), nil
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id string) error {
	delete(m.teachers, id)
	return nil
}

// ── Mock ParentRepository ──

type mockParentRepo struct {
	parents map[string]*model.Parent
	seq     int
}

func newMockParentRepo() *mockParentRepo {
	return &mockParentRepo{parents: make(map[string]*model.Parent)}
}

func (m *mockParentRepo) Create(_ context.Context, parent *model.Parent) error {
	if parent.ParentID == "" {
		m.seq++
		parent.ParentID = fmt.Sprintf("p-%d", m.seq)
	}
	m.parents[parent.ParentID] = parent
	return nil
}

func (m *mockParentRepo) GetByID(_ context.Context, id string) (*model.Parent, error) {
	if p, ok := m.parents[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParentRepo) GetByUserID(_ context.Context, userID string) (*model.Parent, error) {
	for _, p := range m.parents {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParentRepo) List(_ context.Context, offset, limit int) ([]model.Parent, int64, error) {
	var result []model.Parent
	for _, p := range m.parents {
		result = append(result, *p)
	}
	return result, int64(len(m.parents)), nil
}

func (m *mockParentRepo) Update(_ context.Context, parent *model.Parent) error {
	m.parents[parent.ParentID] = parent
	return nil
}

func (m *mockParentRepo) Delete(_ context.Context, id string) error {
	delete(m.parents, id)
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
	seq     int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if course.CourseID == "" {
		m.seq++
		course.CourseID = fmt.Sprintf("c-%d", m.seq)
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context, offset, limit int) ([]model.Course, int64, error) {
	var result []model.Course
	for _, c := range m.courses {
		result = append(result, *c)
	}
	return result, int64(len(m.courses)), nil
}

func (m *mockCourseRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		if c.TeacherID == teacherID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.courses, id)
	return nil
}

// ── Mock ScheduleRepository ──
// 教师维度查询需要经由课程解析，mock 持有课程表引用

type mockScheduleRepo struct {
	schedules map[string]*model.Schedule
	courses   *mockCourseRepo
	seq       int
}

func newMockScheduleRepo(courses *mockCourseRepo) *mockScheduleRepo {
	return &mockScheduleRepo{
		schedules: make(map[string]*model.Schedule),
		courses:   courses,
	}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	if schedule.ScheduleID == "" {
		m.seq++
		schedule.ScheduleID = fmt.Sprintf("sch-%d", m.seq)
	}
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	if s, ok := m.schedules[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) List(_ context.Context) ([]model.Schedule, error) {
	return m.sorted(func(*model.Schedule) bool { return true }), nil
}

func (m *mockScheduleRepo) ListByCourse(_ context.Context, courseID string) ([]model.Schedule, error) {
	return m.sorted(func(s *model.Schedule) bool { return s.CourseID == courseID }), nil
}

func (m *mockScheduleRepo) ListByDayAndTeacher(_ context.Context, dayWeek, teacherID string) ([]model.Schedule, error) {
	return m.sorted(func(s *model.Schedule) bool {
		if s.DayWeek != dayWeek {
			return false
		}
		c, ok := m.courses.courses[s.CourseID]
		return ok && c.TeacherID == teacherID
	}), nil
}

func (m *mockScheduleRepo) ListByDayAndClassroom(_ context.Context, dayWeek, classroom string) ([]model.Schedule, error) {
	return m.sorted(func(s *model.Schedule) bool {
		return s.DayWeek == dayWeek && s.Classroom != nil && *s.Classroom == classroom
	}), nil
}

func (m *mockScheduleRepo) Update(_ context.Context, schedule *model.Schedule) error {
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.schedules, id)
	return nil
}

// sorted 按 start_time 升序返回，模拟真实仓储的确定性顺序
func (m *mockScheduleRepo) sorted(keep func(*model.Schedule) bool) []model.Schedule {
	var result []model.Schedule
	for _, s := range m.schedules {
		if keep(s) {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments map[string]*model.Enrollment
	seq         int
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{enrollments: make(map[string]*model.Enrollment)}
}

func (m *mockEnrollmentRepo) Create(_ context.Context, enrollment *model.Enrollment) error {
	if enrollment.EnrollmentID == "" {
		m.seq++
		enrollment.EnrollmentID = fmt.Sprintf("e-%d", m.seq)
	}
	m.enrollments[enrollment.EnrollmentID] = enrollment
	return nil
}

func (m *mockEnrollmentRepo) GetByID(_ context.Context, id string) (*model.Enrollment, error) {
	if e, ok := m.enrollments[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) GetByStudentAndCourse(_ context.Context, studentID, courseID string) (*model.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) ListByCourse(_ context.Context, courseID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.CourseID == courseID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) ListByStudent(_ context.Context, studentID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.StudentID == studentID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) ExistsActiveInCourses(_ context.Context, studentID string, courseIDs []string) (bool, error) {
	for _, e := range m.enrollments {
		if e.StudentID != studentID || e.Status != model.EnrollmentActive {
			continue
		}
		for _, cid := range courseIDs {
			if e.CourseID == cid {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *mockEnrollmentRepo) CountActive(_ context.Context) (int64, error) {
	var count int64
	for _, e := range m.enrollments {
		if e.Status == model.EnrollmentActive {
			count++
		}
	}
	return count, nil
}

func (m *mockEnrollmentRepo) Update(_ context.Context, enrollment *model.Enrollment) error {
	m.enrollments[enrollment.EnrollmentID] = enrollment
	return nil
}

func (m *mockEnrollmentRepo) Delete(_ context.Context, id string) error {
	delete(m.enrollments, id)
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records map[string]*model.Attendance
	seq     int
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{records: make(map[string]*model.Attendance)}
}

func (m *mockAttendanceRepo) Upsert(_ context.Context, record *model.Attendance) error {
	for _, r := range m.records {
		if r.StudentID == record.StudentID && r.CourseID == record.CourseID && r.Date.Equal(record.Date) {
			r.Status = record.Status
			return nil
		}
	}
	m.seq++
	record.AttendanceID = fmt.Sprintf("a-%d", m.seq)
	m.records[record.AttendanceID] = record
	return nil
}

func (m *mockAttendanceRepo) ListByCourseAndDate(_ context.Context, courseID string, date time.Time) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, r := range m.records {
		if r.CourseID == courseID && r.Date.Equal(date) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByStudent(_ context.Context, studentID string) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, r := range m.records {
		if r.StudentID == studentID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) StatsByStudent(_ context.Context, studentID string) (*repository.AttendanceStats, error) {
	var stats repository.AttendanceStats
	for _, r := range m.records {
		if r.StudentID != studentID {
			continue
		}
		stats.Total++
		switch r.Status {
		case model.AttendancePresent:
			stats.Present++
		case model.AttendanceLate:
			stats.Late++
		}
	}
	return &stats, nil
}

// ── Mock GradeRepository ──

type mockGradeRepo struct {
	grades map[string]*model.Grade
	seq    int
}

func newMockGradeRepo() *mockGradeRepo {
	return &mockGradeRepo{grades: make(map[string]*model.Grade)}
}

func (m *mockGradeRepo) Upsert(_ context.Context, grade *model.Grade) error {
	for _, g := range m.grades {
		if g.StudentID == grade.StudentID && g.CourseID == grade.CourseID && g.Evaluation == grade.Evaluation {
			g.Score = grade.Score
			return nil
		}
	}
	m.seq++
	grade.GradeID = fmt.Sprintf("g-%d", m.seq)
	m.grades[grade.GradeID] = grade
	return nil
}

func (m *mockGradeRepo) ListByCourse(_ context.Context, courseID string) ([]model.Grade, error) {
	var result []model.Grade
	for _, g := range m.grades {
		if g.CourseID == courseID {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *mockGradeRepo) ListByStudent(_ context.Context, studentID string) ([]model.Grade, error) {
	var result []model.Grade
	for _, g := range m.grades {
		if g.StudentID == studentID {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *mockGradeRepo) ListByStudentAndCourse(_ context.Context, studentID, courseID string) ([]model.Grade, error) {
	var result []model.Grade
	for _, g := range m.grades {
		if g.StudentID == studentID && g.CourseID == courseID {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *mockGradeRepo) AverageByStudent(_ context.Context, studentID string) (float64, error) {
	var sum float64
	var n int
	for _, g := range m.grades {
		if g.StudentID == studentID {
			sum += g.Score
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

func (m *mockGradeRepo) StatsByCourse(_ context.Context, courseID string) (*repository.CourseGradeStats, error) {
	perStudent := map[string][]float64{}
	var sum float64
	var n int
	for _, g := range m.grades {
		if g.CourseID != courseID {
			continue
		}
		perStudent[g.StudentID] = append(perStudent[g.StudentID], g.Score)
		sum += g.Score
		n++
	}

	stats := &repository.CourseGradeStats{}
	if n > 0 {
		stats.Average = sum / float64(n)
	}
	for _, scores := range perStudent {
		var s float64
		for _, v := range scores {
			s += v
		}
		stats.StudentCount++
		if s/float64(len(scores)) >= 60 {
			stats.PassCount++
		}
	}
	return stats, nil
}

func (m *mockGradeRepo) Delete(_ context.Context, id string) error {
	delete(m.grades, id)
	return nil
}

// ── 聚合辅助 ──

// testRepos 聚合所有 mock repo 便于 seed 数据
type testRepos struct {
	user       *mockUserRepo
	student    *mockStudentRepo
	teacher    *mockTeacherRepo
	parent     *mockParentRepo
	course     *mockCourseRepo
	schedule   *mockScheduleRepo
	enrollment *mockEnrollmentRepo
	attendance *mockAttendanceRepo
	grade      *mockGradeRepo
}

func newTestRepos() *testRepos {
	courses := newMockCourseRepo()
	return &testRepos{
		user:       newMockUserRepo(),
		student:    newMockStudentRepo(),
		teacher:    newMockTeacherRepo(),
		parent:     newMockParentRepo(),
		course:     courses,
		schedule:   newMockScheduleRepo(courses),
		enrollment: newMockEnrollmentRepo(),
		attendance: newMockAttendanceRepo(),
		grade:      newMockGradeRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		User:       r.user,
		Student:    r.student,
		Teacher:    r.teacher,
		Parent:     r.parent,
		Course:     r.course,
		Schedule:   r.schedule,
		Enrollment: r.enrollment,
		Attendance: r.attendance,
		Grade:      r.grade,
	}
}
