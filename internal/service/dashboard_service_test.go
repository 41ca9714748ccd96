package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Angh31/sistema-educativo-backend/internal/model"
)

func setupTestDashboardService() (DashboardService, *testRepos) {
	repos := newTestRepos()
	svc := NewDashboardService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestDashboardService_AdminOverview(t *testing.T) {
	svc, repos := setupTestDashboardService()
	repos.student.students["st-1"] = &model.Student{StudentID: "st-1", UserID: "u1"}
	repos.student.students["st-2"] = &model.Student{StudentID: "st-2", UserID: "u2"}
	repos.teacher.teachers["t-1"] = &model.Teacher{TeacherID: "t-1", UserID: "u3"}
	repos.course.courses["c-1"] = &model.Course{CourseID: "c-1", TeacherID: "t-1"}
	repos.enrollment.enrollments["e-1"] = &model.Enrollment{
		EnrollmentID: "e-1", StudentID: "st-1", CourseID: "c-1", Status: model.EnrollmentActive,
	}
	repos.enrollment.enrollments["e-2"] = &model.Enrollment{
		EnrollmentID: "e-2", StudentID: "st-2", CourseID: "c-1", Status: model.EnrollmentDropped,
	}

	overview, err := svc.AdminOverview(context.Background())
	if err != nil {
		t.Fatalf("管理员总览应成功: %v", err)
	}
	if overview.StudentCount != 2 || overview.TeacherCount != 1 || overview.CourseCount != 1 {
		t.Errorf("实体计数不符: %+v", overview)
	}
	// 仅统计有效选课
	if overview.EnrollmentCount != 1 {
		t.Errorf("有效选课数应为 1, 实际: %d", overview.EnrollmentCount)
	}
}

func TestDashboardService_StudentOverview(t *testing.T) {
	svc, repos := setupTestDashboardService()
	repos.student.students["st-1"] = &model.Student{StudentID: "st-1", UserID: "u1"}
	repos.course.courses["c-1"] = &model.Course{CourseID: "c-1", TeacherID: "t-1"}
	repos.course.courses["c-2"] = &model.Course{CourseID: "c-2", TeacherID: "t-1"}
	repos.enrollment.enrollments["e-1"] = &model.Enrollment{
		EnrollmentID: "e-1", StudentID: "st-1", CourseID: "c-1", Status: model.EnrollmentActive,
	}
	repos.enrollment.enrollments["e-2"] = &model.Enrollment{
		EnrollmentID: "e-2", StudentID: "st-1", CourseID: "c-2", Status: model.EnrollmentDropped,
	}
	repos.grade.grades["g-1"] = &model.Grade{
		GradeID: "g-1", StudentID: "st-1", CourseID: "c-1", Evaluation: "Parcial 1", Score: 80,
	}
	repos.attendance.records["a-1"] = &model.Attendance{
		AttendanceID: "a-1", StudentID: "st-1", CourseID: "c-1",
		Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Status: model.AttendancePresent,
	}

	overview, err := svc.StudentOverview(context.Background(), "st-1")
	if err != nil {
		t.Fatalf("学生总览应成功: %v", err)
	}
	// 退课不计入在读课程数
	if overview.CourseCount != 1 {
		t.Errorf("在读课程数应为 1, 实际: %d", overview.CourseCount)
	}
	if overview.Average != 80 {
		t.Errorf("平均分应为 80, 实际: %v", overview.Average)
	}
	if overview.AttendanceRate != 100 {
		t.Errorf("出勤率应为 100, 实际: %v", overview.AttendanceRate)
	}
}

func TestDashboardService_StudentOverview_NotFound(t *testing.T) {
	svc, _ := setupTestDashboardService()

	_, err := svc.StudentOverview(context.Background(), "no-such-id")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("学生不存在应返回 ErrStudentNotFound, 实际: %v", err)
	}
}
