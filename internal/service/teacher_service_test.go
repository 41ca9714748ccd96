package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Angh31/sistema-educativo-backend/internal/dto"
	"github.com/Angh31/sistema-educativo-backend/internal/model"
)

func setupTestTeacherService() (TeacherService, *testRepos) {
	repos := newTestRepos()
	svc := NewTeacherService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestTeacherService_Create_Success(t *testing.T) {
	svc, repos := setupTestTeacherService()

	teacher, err := svc.Create(context.Background(), &dto.CreateTeacherRequest{
		Email:     "ana@escuela.edu",
		Password:  "secret123",
		FirstName: "Ana",
		LastName:  "García",
		Specialty: "Matemáticas",
	})
	if err != nil {
		t.Fatalf("创建教师应成功: %v", err)
	}

	user := repos.user.users[teacher.UserID]
	if user == nil || user.Role != model.RoleTeacher {
		t.Errorf("应同时创建 TEACHER 角色账号: %+v", user)
	}
}

func TestTeacherService_Delete_RefusesWithCourses(t *testing.T) {
	svc, repos := setupTestTeacherService()
	repos.user.users["user-t1"] = &model.User{
		UserID: "user-t1", Email: "ana@escuela.edu", Role: model.RoleTeacher,
	}
	repos.teacher.teachers["t-1"] = &model.Teacher{
		TeacherID: "t-1", UserID: "user-t1", FirstName: "Ana", LastName: "García",
	}
	repos.course.courses["c-1"] = &model.Course{
		CourseID: "c-1", Name: "Matemáticas", TeacherID: "t-1",
	}

	// 名下有课程时拒绝删除
	if err := svc.Delete(context.Background(), "t-1"); !errors.Is(err, ErrTeacherHasCourses) {
		t.Fatalf("名下有课程应返回 ErrTeacherHasCourses, 实际: %v", err)
	}

	// 课程移除后允许删除，账号一并清理
	delete(repos.course.courses, "c-1")
	if err := svc.Delete(context.Background(), "t-1"); err != nil {
		t.Fatalf("无课程的教师删除应成功: %v", err)
	}
	if _, ok := repos.user.users["user-t1"]; ok {
		t.Error("关联账号应随档案删除")
	}
}

func TestTeacherService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestTeacherService()

	if err := svc.Delete(context.Background(), "no-such-id"); !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("教师不存在应返回 ErrTeacherNotFound, 实际: %v", err)
	}
}
