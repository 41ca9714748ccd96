package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Angh31/sistema-educativo-backend/internal/model"
)

func setupTestAccessGuard() (AccessGuard, *testRepos) {
	repos := newTestRepos()
	guard := NewAccessGuard(repos.toRepository(), zap.NewNop())
	return guard, repos
}

// seedStudentWithUser 预置学生档案及其账号，返回 (userID, studentID)
func seedStudentWithUser(repos *testRepos, suffix string) (string, string) {
	userID := "user-st-" + suffix
	studentID := "st-" + suffix
	repos.student.students[studentID] = &model.Student{
		StudentID: studentID,
		UserID:    userID,
		FirstName: "Luis",
		LastName:  "Pérez",
	}
	return userID, studentID
}

func seedTeacherWithUser(repos *testRepos, suffix string) (string, string) {
	userID := "user-t-" + suffix
	teacherID := "t-" + suffix
	repos.teacher.teachers[teacherID] = &model.Teacher{
		TeacherID: teacherID,
		UserID:    userID,
		FirstName: "Ana",
		LastName:  "García",
	}
	return userID, teacherID
}

func seedParentWithUser(repos *testRepos, suffix string) (string, string) {
	userID := "user-p-" + suffix
	parentID := "p-" + suffix
	repos.parent.parents[parentID] = &model.Parent{
		ParentID:  parentID,
		UserID:    userID,
		FirstName: "Carmen",
		LastName:  "López",
	}
	return userID, parentID
}

func TestAccessGuard_MissingPrincipal(t *testing.T) {
	guard, _ := setupTestAccessGuard()

	cases := []struct {
		name      string
		principal Principal
	}{
		{"缺少 UserID", Principal{Role: model.RoleAdmin}},
		{"缺少 Role", Principal{UserID: "user-1"}},
		{"全空", Principal{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := guard.Authorize(context.Background(), tc.principal, ResourceStudent, "st-1")
			if !errors.Is(err, ErrMissingPrincipal) {
				t.Errorf("主体缺失应返回 ErrMissingPrincipal, 实际: %v", err)
			}
			if decision != Deny {
				t.Errorf("主体缺失应裁决 DENY, 实际: %s", decision)
			}
		})
	}
}

func TestAccessGuard_AdminShortCircuit(t *testing.T) {
	guard, _ := setupTestAccessGuard()
	admin := Principal{UserID: "user-admin", Role: model.RoleAdmin}

	// 未预置任何档案，ADMIN 仍对所有资源类型放行
	for _, resourceType := range []string{ResourceStudent, ResourceTeacher, ResourceCourse, ResourceParent} {
		decision, err := guard.Authorize(context.Background(), admin, resourceType, "any-id")
		if err != nil {
			t.Fatalf("ADMIN 鉴权不应出错 (%s): %v", resourceType, err)
		}
		if decision != Allow {
			t.Errorf("ADMIN 对 %s 应放行, 实际: %s", resourceType, decision)
		}
	}
}

func TestAccessGuard_StudentSelf(t *testing.T) {
	guard, repos := setupTestAccessGuard()
	userID, studentID := seedStudentWithUser(repos, "1")
	_, otherID := seedStudentWithUser(repos, "2")
	principal := Principal{UserID: userID, Role: model.RoleStudent}

	decision, err := guard.Authorize(context.Background(), principal, ResourceStudent, studentID)
	if err != nil || decision != Allow {
		t.Errorf("学生访问自己的档案应放行: decision=%s err=%v", decision, err)
	}

	decision, err = guard.Authorize(context.Background(), principal, ResourceStudent, otherID)
	if err != nil || decision != Deny {
		t.Errorf("学生访问他人档案应拒绝: decision=%s err=%v", decision, err)
	}
}

func TestAccessGuard_StudentWithoutProfile(t *testing.T) {
	guard, _ := setupTestAccessGuard()

	// STUDENT 角色但没有学生档案：查无记录按 DENY 处理而非报错
	principal := Principal{UserID: "user-ghost", Role: model.RoleStudent}
	decision, err := guard.Authorize(context.Background(), principal, ResourceStudent, "st-1")
	if err != nil {
		t.Fatalf("缺档案不应视为错误: %v", err)
	}
	if decision != Deny {
		t.Errorf("缺档案应拒绝, 实际: %s", decision)
	}
}

func TestAccessGuard_ParentOwnsStudent(t *testing.T) {
	guard, repos := setupTestAccessGuard()
	parentUserID, parentID := seedParentWithUser(repos, "1")
	_, studentID := seedStudentWithUser(repos, "1")
	_, strangerID := seedStudentWithUser(repos, "2")
	repos.student.students[studentID].ParentID = &parentID
	principal := Principal{UserID: parentUserID, Role: model.RoleParent}

	decision, err := guard.Authorize(context.Background(), principal, ResourceStudent, studentID)
	if err != nil || decision != Allow {
		t.Errorf("家长访问名下学生应放行: decision=%s err=%v", decision, err)
	}

	decision, err = guard.Authorize(context.Background(), principal, ResourceStudent, strangerID)
	if err != nil || decision != Deny {
		t.Errorf("家长访问非名下学生应拒绝: decision=%s err=%v", decision, err)
	}
}

func TestAccessGuard_TeacherTeachesStudent(t *testing.T) {
	guard, repos := setupTestAccessGuard()
	teacherUserID, teacherID := seedTeacherWithUser(repos, "1")
	_, enrolledID := seedStudentWithUser(repos, "1")
	_, droppedID := seedStudentWithUser(repos, "2")
	_, outsiderID := seedStudentWithUser(repos, "3")
	repos.course.courses["c-1"] = &model.Course{CourseID: "c-1", Name: "Historia", TeacherID: teacherID}
	repos.enrollment.enrollments["e-1"] = &model.Enrollment{
		EnrollmentID: "e-1", StudentID: enrolledID, CourseID: "c-1", Status: model.EnrollmentActive,
	}
	repos.enrollment.enrollments["e-2"] = &model.Enrollment{
		EnrollmentID: "e-2", StudentID: droppedID, CourseID: "c-1", Status: model.EnrollmentDropped,
	}
	principal := Principal{UserID: teacherUserID, Role: model.RoleTeacher}

	decision, err := guard.Authorize(context.Background(), principal, ResourceStudent, enrolledID)
	if err != nil || decision != Allow {
		t.Errorf("教师访问有有效选课的学生应放行: decision=%s err=%v", decision, err)
	}

	// 选课状态非 ACTIVE 不构成师生关系
	decision, err = guard.Authorize(context.Background(), principal, ResourceStudent, droppedID)
	if err != nil || decision != Deny {
		t.Errorf("退课学生应拒绝: decision=%s err=%v", decision, err)
	}

	decision, err = guard.Authorize(context.Background(), principal, ResourceStudent, outsiderID)
	if err != nil || decision != Deny {
		t.Errorf("无选课关系的学生应拒绝: decision=%s err=%v", decision, err)
	}
}

func TestAccessGuard_TeacherSelf(t *testing.T) {
	guard, repos := setupTestAccessGuard()
	userID, teacherID := seedTeacherWithUser(repos, "1")
	_, otherID := seedTeacherWithUser(repos, "2")
	principal := Principal{UserID: userID, Role: model.RoleTeacher}

	decision, err := guard.Authorize(context.Background(), principal, ResourceTeacher, teacherID)
	if err != nil || decision != Allow {
		t.Errorf("教师访问自己的档案应放行: decision=%s err=%v", decision, err)
	}

	decision, err = guard.Authorize(context.Background(), principal, ResourceTeacher, otherID)
	if err != nil || decision != Deny {
		t.Errorf("教师访问他人档案应拒绝: decision=%s err=%v", decision, err)
	}
}

func TestAccessGuard_TeacherOwnsCourse(t *testing.T) {
	guard, repos := setupTestAccessGuard()
	userID, teacherID := seedTeacherWithUser(repos, "1")
	_, otherTeacherID := seedTeacherWithUser(repos, "2")
	repos.course.courses["c-mine"] = &model.Course{CourseID: "c-mine", TeacherID: teacherID}
	repos.course.courses["c-other"] = &model.Course{CourseID: "c-other", TeacherID: otherTeacherID}
	principal := Principal{UserID: userID, Role: model.RoleTeacher}

	decision, err := guard.Authorize(context.Background(), principal, ResourceCourse, "c-mine")
	if err != nil || decision != Allow {
		t.Errorf("教师访问自己授课的课程应放行: decision=%s err=%v", decision, err)
	}

	decision, err = guard.Authorize(context.Background(), principal, ResourceCourse, "c-other")
	if err != nil || decision != Deny {
		t.Errorf("教师访问他人课程应拒绝: decision=%s err=%v", decision, err)
	}

	// 课程不存在按 DENY 处理，不泄露存在性
	decision, err = guard.Authorize(context.Background(), principal, ResourceCourse, "c-missing")
	if err != nil || decision != Deny {
		t.Errorf("课程不存在应拒绝: decision=%s err=%v", decision, err)
	}
}

func TestAccessGuard_StudentEnrolledInCourse(t *testing.T) {
	guard, repos := setupTestAccessGuard()
	userID, studentID := seedStudentWithUser(repos, "1")
	repos.course.courses["c-1"] = &model.Course{CourseID: "c-1", TeacherID: "t-1"}
	repos.course.courses["c-2"] = &model.Course{CourseID: "c-2", TeacherID: "t-1"}
	repos.enrollment.enrollments["e-1"] = &model.Enrollment{
		EnrollmentID: "e-1", StudentID: studentID, CourseID: "c-1", Status: model.EnrollmentActive,
	}
	principal := Principal{UserID: userID, Role: model.RoleStudent}

	decision, err := guard.Authorize(context.Background(), principal, ResourceCourse, "c-1")
	if err != nil || decision != Allow {
		t.Errorf("学生访问已选课程应放行: decision=%s err=%v", decision, err)
	}

	decision, err = guard.Authorize(context.Background(), principal, ResourceCourse, "c-2")
	if err != nil || decision != Deny {
		t.Errorf("学生访问未选课程应拒绝: decision=%s err=%v", decision, err)
	}
}

func TestAccessGuard_ParentSelf(t *testing.T) {
	guard, repos := setupTestAccessGuard()
	userID, parentID := seedParentWithUser(repos, "1")
	_, otherID := seedParentWithUser(repos, "2")
	principal := Principal{UserID: userID, Role: model.RoleParent}

	decision, err := guard.Authorize(context.Background(), principal, ResourceParent, parentID)
	if err != nil || decision != Allow {
		t.Errorf("家长访问自己的档案应放行: decision=%s err=%v", decision, err)
	}

	decision, err = guard.Authorize(context.Background(), principal, ResourceParent, otherID)
	if err != nil || decision != Deny {
		t.Errorf("家长访问他人档案应拒绝: decision=%s err=%v", decision, err)
	}
}

func TestAccessGuard_Defaults(t *testing.T) {
	guard, _ := setupTestAccessGuard()

	decision, err := guard.Authorize(context.Background(),
		Principal{UserID: "user-p", Role: model.RoleParent}, ResourceTeacher, "t-1")
	if err != nil || decision != Allow {
		t.Errorf("teacher 类型对表外角色默认放行: decision=%s err=%v", decision, err)
	}

	decision, err = guard.Authorize(context.Background(),
		Principal{UserID: "user-x", Role: "AUDITOR"}, ResourceStudent, "st-1")
	if err != nil || decision != Deny {
		t.Errorf("student 类型对未建模角色应默认拒绝: decision=%s err=%v", decision, err)
	}
}

func TestAccessGuard_UnknownResourceType(t *testing.T) {
	guard, _ := setupTestAccessGuard()

	decision, err := guard.Authorize(context.Background(),
		Principal{UserID: "user-st", Role: model.RoleStudent}, "report", "r-1")
	if err != nil {
		t.Fatalf("未知资源类型不应出错: %v", err)
	}
	if decision != Allow {
		t.Errorf("未知资源类型应放行交由上层校验, 实际: %s", decision)
	}
}

func TestDecision_String(t *testing.T) {
	if Allow.String() != "ALLOW" || Deny.String() != "DENY" {
		t.Errorf("Decision 字符串表示不符: %s / %s", Allow, Deny)
	}
}
