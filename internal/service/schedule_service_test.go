package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Angh31/sistema-educativo-backend/internal/dto"
	"github.com/Angh31/sistema-educativo-backend/internal/model"
)

func strPtr(s string) *string { return &s }

// setupTestScheduleService 构造带 mock 仓储的 ScheduleService
func setupTestScheduleService() (ScheduleService, *testRepos) {
	repos := newTestRepos()
	svc := NewScheduleService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

// seedCourse 预置一位教师及其名下课程
func seedCourse(repos *testRepos, courseID, teacherID string) {
	repos.teacher.teachers[teacherID] = &model.Teacher{
		TeacherID: teacherID,
		UserID:    "user-" + teacherID,
		FirstName: "Ana",
		LastName:  "García",
	}
	repos.course.courses[courseID] = &model.Course{
		CourseID:  courseID,
		Name:      "Matemáticas",
		TeacherID: teacherID,
	}
}

// seedSchedule 预置一条已存在的课程时段
func seedSchedule(repos *testRepos, id, courseID, dayWeek, start, end string, classroom *string) {
	repos.schedule.schedules[id] = &model.Schedule{
		ScheduleID: id,
		CourseID:   courseID,
		DayWeek:    dayWeek,
		StartTime:  start,
		EndTime:    end,
		Classroom:  classroom,
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"完全重合", "08:00", "10:00", "08:00", "10:00", true},
		{"部分重叠", "08:00", "10:00", "09:00", "11:00", true},
		{"包含关系", "08:00", "12:00", "09:00", "10:00", true},
		{"边界相接不算冲突", "08:00", "10:00", "10:00", "12:00", false},
		{"边界相接（反向）", "10:00", "12:00", "08:00", "10:00", false},
		{"完全不相交", "08:00", "09:00", "10:00", "11:00", false},
		{"一分钟重叠", "08:00", "10:01", "10:00", "12:00", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
				t.Errorf("overlaps(%s,%s,%s,%s) = %v, 期望 %v", tc.s1, tc.e1, tc.s2, tc.e2, got, tc.want)
			}
		})
	}
}

func TestScheduleService_Create_Success(t *testing.T) {
	svc, repos := setupTestScheduleService()
	seedCourse(repos, "c-1", "t-1")

	schedule, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		CourseID:  "c-1",
		DayWeek:   "MONDAY",
		StartTime: "08:00",
		EndTime:   "10:00",
		Classroom: strPtr("A101"),
	})
	if err != nil {
		t.Fatalf("创建时段应成功: %v", err)
	}
	if schedule.ScheduleID == "" {
		t.Error("创建后应分配 ID")
	}
	if schedule.DayWeek != "MONDAY" || schedule.StartTime != "08:00" {
		t.Errorf("时段字段不符: %+v", schedule)
	}
}

func TestScheduleService_Create_CourseNotFound(t *testing.T) {
	svc, _ := setupTestScheduleService()

	_, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		CourseID:  "no-such-course",
		DayWeek:   "MONDAY",
		StartTime: "08:00",
		EndTime:   "10:00",
	})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("课程不存在应返回 ErrCourseNotFound, 实际: %v", err)
	}
}

func TestScheduleService_Create_ValidationBeforeLookup(t *testing.T) {
	svc, repos := setupTestScheduleService()
	seedCourse(repos, "c-1", "t-1")

	cases := []struct {
		name    string
		day     string
		start   string
		end     string
		wantErr error
	}{
		{"非法时间格式", "MONDAY", "8:00", "10:00", ErrInvalidTimeFormat},
		{"超出 24 小时制", "MONDAY", "24:00", "25:00", ErrInvalidTimeFormat},
		{"分钟越界", "MONDAY", "08:60", "10:00", ErrInvalidTimeFormat},
		{"开始晚于结束", "MONDAY", "12:00", "10:00", ErrInvalidTimeRange},
		{"开始等于结束", "MONDAY", "10:00", "10:00", ErrInvalidTimeRange},
		{"非法星期", "FUNDAY", "08:00", "10:00", ErrInvalidDayOfWeek},
		{"小写星期", "monday", "08:00", "10:00", ErrInvalidDayOfWeek},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
				CourseID:  "c-1",
				DayWeek:   tc.day,
				StartTime: tc.start,
				EndTime:   tc.end,
			})
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("期望 %v, 实际: %v", tc.wantErr, err)
			}
		})
	}
}

func TestScheduleService_Create_TeacherConflict(t *testing.T) {
	svc, repos := setupTestScheduleService()
	seedCourse(repos, "c-1", "t-1")
	// 同一教师的另一门课
	repos.course.courses["c-2"] = &model.Course{CourseID: "c-2", Name: "Física", TeacherID: "t-1"}
	seedSchedule(repos, "sch-1", "c-1", "MONDAY", "08:00", "10:00", strPtr("A101"))

	// 不同课程、不同教室，但同一教师同日重叠
	_, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		CourseID:  "c-2",
		DayWeek:   "MONDAY",
		StartTime: "09:00",
		EndTime:   "11:00",
		Classroom: strPtr("B202"),
	})
	if !errors.Is(err, ErrScheduleConflict) {
		t.Fatalf("教师时段重叠应返回冲突错误, 实际: %v", err)
	}

	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("冲突错误应为 *ConflictError, 实际: %T", err)
	}
	if conflictErr.Result.Rule != ConflictRuleTeacher {
		t.Errorf("命中规则应为 %s, 实际: %s", ConflictRuleTeacher, conflictErr.Result.Rule)
	}
	if conflictErr.Result.Existing == nil || conflictErr.Result.Existing.ScheduleID != "sch-1" {
		t.Errorf("冲突详情应携带既有时段 sch-1: %+v", conflictErr.Result.Existing)
	}
}

func TestScheduleService_Create_RoomConflict(t *testing.T) {
	svc, repos := setupTestScheduleService()
	seedCourse(repos, "c-1", "t-1")
	seedCourse(repos, "c-2", "t-2")
	seedSchedule(repos, "sch-1", "c-1", "TUESDAY", "08:00", "10:00", strPtr("A101"))

	// 不同教师，但同一教室同日重叠
	_, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		CourseID:  "c-2",
		DayWeek:   "TUESDAY",
		StartTime: "09:30",
		EndTime:   "11:00",
		Classroom: strPtr("A101"),
	})
	if !errors.Is(err, ErrScheduleConflict) {
		t.Fatalf("教室时段重叠应返回冲突错误, 实际: %v", err)
	}

	var conflictErr *ConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("冲突错误应为 *ConflictError, 实际: %T", err)
	}
	if conflictErr.Result.Rule != ConflictRuleRoom {
		t.Errorf("命中规则应为 %s, 实际: %s", ConflictRuleRoom, conflictErr.Result.Rule)
	}
}

func TestScheduleService_Create_NoClassroomSkipsRoomRule(t *testing.T) {
	svc, repos := setupTestScheduleService()
	seedCourse(repos, "c-1", "t-1")
	seedCourse(repos, "c-2", "t-2")
	seedSchedule(repos, "sch-1", "c-1", "WEDNESDAY", "08:00", "10:00", strPtr("A101"))

	// 候选无教室：仅教师规则生效，不同教师因此不冲突
	_, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		CourseID:  "c-2",
		DayWeek:   "WEDNESDAY",
		StartTime: "09:00",
		EndTime:   "11:00",
	})
	if err != nil {
		t.Errorf("无教室的候选不应命中教室规则: %v", err)
	}
}

func TestScheduleService_Create_AdjacentSlots(t *testing.T) {
	svc, repos := setupTestScheduleService()
	seedCourse(repos, "c-1", "t-1")
	seedSchedule(repos, "sch-1", "c-1", "MONDAY", "08:00", "10:00", strPtr("A101"))

	// 边界相接（10:00 结束 / 10:00 开始）不算冲突
	_, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		CourseID:  "c-1",
		DayWeek:   "MONDAY",
		StartTime: "10:00",
		EndTime:   "12:00",
		Classroom: strPtr("A101"),
	})
	if err != nil {
		t.Errorf("边界相接的时段不应冲突: %v", err)
	}
}

func TestScheduleService_Create_DifferentDayNoConflict(t *testing.T) {
	svc, repos := setupTestScheduleService()
	seedCourse(repos, "c-1", "t-1")
	seedSchedule(repos, "sch-1", "c-1", "MONDAY", "08:00", "10:00", strPtr("A101"))

	_, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		CourseID:  "c-1",
		DayWeek:   "FRIDAY",
		StartTime: "08:00",
		EndTime:   "10:00",
		Classroom: strPtr("A101"),
	})
	if err != nil {
		t.Errorf("不同星期的相同时段不应冲突: %v", err)
	}
}

func TestScheduleService_Update_ExcludesSelf(t *testing.T) {
	svc, repos := setupTestScheduleService()
	seedCourse(repos, "c-1", "t-1")
	seedSchedule(repos, "sch-1", "c-1", "MONDAY", "08:00", "10:00", strPtr("A101"))

	// 在自身时间窗内微调，不应与自己冲突
	updated, err := svc.Update(context.Background(), "sch-1", &dto.UpdateScheduleRequest{
		StartTime: strPtr("08:30"),
	})
	if err != nil {
		t.Fatalf("更新应排除自身后通过冲突检测: %v", err)
	}
	if updated.StartTime != "08:30" {
		t.Errorf("开始时间应更新为 08:30, 实际: %s", updated.StartTime)
	}
	if updated.EndTime != "10:00" {
		t.Errorf("未提供的字段应沿用现值, 实际 EndTime: %s", updated.EndTime)
	}
}

func TestScheduleService_Update_ConflictWithOther(t *testing.T) {
	svc, repos := setupTestScheduleService()
	seedCourse(repos, "c-1", "t-1")
	seedSchedule(repos, "sch-1", "c-1", "MONDAY", "08:00", "10:00", strPtr("A101"))
	seedSchedule(repos, "sch-2", "c-1", "MONDAY", "10:00", "12:00", strPtr("A101"))

	// 把 sch-2 前移侵入 sch-1 的窗口
	_, err := svc.Update(context.Background(), "sch-2", &dto.UpdateScheduleRequest{
		StartTime: strPtr("09:00"),
	})
	if !errors.Is(err, ErrScheduleConflict) {
		t.Errorf("与其他时段重叠应返回冲突错误, 实际: %v", err)
	}
}

func TestScheduleService_Update_NotFound(t *testing.T) {
	svc, repos := setupTestScheduleService()
	seedCourse(repos, "c-1", "t-1")

	_, err := svc.Update(context.Background(), "no-such-id", &dto.UpdateScheduleRequest{
		StartTime: strPtr("08:00"),
	})
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("时段不存在应返回 ErrScheduleNotFound, 实际: %v", err)
	}
}

func TestScheduleService_Delete(t *testing.T) {
	svc, repos := setupTestScheduleService()
	seedCourse(repos, "c-1", "t-1")
	seedSchedule(repos, "sch-1", "c-1", "MONDAY", "08:00", "10:00", nil)

	if err := svc.Delete(context.Background(), "sch-1"); err != nil {
		t.Fatalf("删除应成功: %v", err)
	}
	if err := svc.Delete(context.Background(), "sch-1"); !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("重复删除应返回 ErrScheduleNotFound, 实际: %v", err)
	}
}

func TestScheduleService_ListByCourse_CourseNotFound(t *testing.T) {
	svc, _ := setupTestScheduleService()

	_, err := svc.ListByCourse(context.Background(), "no-such-course")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("课程不存在应返回 ErrCourseNotFound, 实际: %v", err)
	}
}

func TestScheduleService_ExportCourseICS(t *testing.T) {
	svc, repos := setupTestScheduleService()
	seedCourse(repos, "c-1", "t-1")
	seedSchedule(repos, "sch-1", "c-1", "MONDAY", "08:00", "10:00", strPtr("A101"))
	seedSchedule(repos, "sch-2", "c-1", "THURSDAY", "14:00", "16:00", nil)

	ical, err := svc.ExportCourseICS(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("导出 ICS 应成功: %v", err)
	}
	if !strings.Contains(ical, "BEGIN:VCALENDAR") {
		t.Error("输出应为 iCalendar 格式")
	}
	if !strings.Contains(ical, "RRULE:FREQ=WEEKLY") {
		t.Error("每个时段应生成按周重复的事件")
	}
	if !strings.Contains(ical, "LOCATION:A101") {
		t.Error("有教室的时段应携带 LOCATION")
	}
	if got := strings.Count(ical, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("应生成 2 个事件, 实际: %d", got)
	}
}
