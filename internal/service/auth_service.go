package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Angh31/sistema-educativo-backend/internal/dto"
	"github.com/Angh31/sistema-educativo-backend/internal/model"
	"github.com/Angh31/sistema-educativo-backend/internal/repository"
	"github.com/Angh31/sistema-educativo-backend/pkg/jwt"
	"github.com/Angh31/sistema-educativo-backend/pkg/redis"
)

// ── 认证服务 ──

var (
	// ErrInvalidCredentials 邮箱或密码错误（不区分两种情况，避免枚举账号）
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("用户不存在")
	// ErrEmailTaken 邮箱已被占用
	ErrEmailTaken = errors.New("邮箱已被注册")
	// ErrInvalidRefreshToken refresh token 无效或类型不符
	ErrInvalidRefreshToken = errors.New("refresh token 无效")
	// ErrProfileNotFound 用户没有可更新的角色档案（如 ADMIN）
	ErrProfileNotFound = errors.New("用户没有角色档案")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	// Logout 将当前 access token 的 jti 加入黑名单直至其自然过期
	Logout(ctx context.Context, claims *jwt.Claims) error
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Me(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	// UpdateProfile 更新本人角色档案的姓名字段
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	// ChangePassword 校验旧密码后更换密码
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
	// ChangeEmail 校验当前密码后换绑邮箱
	ChangeEmail(ctx context.Context, userID string, req *dto.ChangeEmailRequest) error
}

type authService struct {
	repo       *repository.Repository
	jwtManager *jwt.Manager
	cache      *redis.Client // 可为 nil（降级运行，注销不生效）
	accessTTL  time.Duration
	logger     *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(repo *repository.Repository, jwtManager *jwt.Manager, cache *redis.Client, accessTTL time.Duration, logger *zap.Logger) AuthService {
	return &authService{
		repo:       repo,
		jwtManager: jwtManager,
		cache:      cache,
		accessTTL:  accessTTL,
		logger:     logger,
	}
}

// Login 邮箱密码登录，签发 access/refresh token 对
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("用户登录",
		zap.String("user_id", user.UserID),
		zap.String("role", user.Role),
	)
	return tokens, nil
}

// Refresh 以 refresh token 换取新 token 对
// 旧 refresh token 的 jti 立即拉黑，实现单次轮换
func (s *authService) Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtManager.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidRefreshToken
	}

	if s.cache != nil {
		blacklisted, err := s.cache.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("黑名单查询失败，按未拉黑处理", zap.Error(err))
		} else if blacklisted {
			return nil, ErrInvalidRefreshToken
		}
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if s.cache != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := s.cache.BlacklistToken(ctx, claims.ID, ttl); err != nil {
			s.logger.Warn("旧 refresh token 拉黑失败", zap.Error(err))
		}
	}

	return s.issueTokens(user)
}

// Logout 注销当前会话
func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.cache == nil {
		s.logger.Warn("Redis 未连接，注销仅在客户端生效")
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.cache.BlacklistToken(ctx, claims.ID, ttl)
}

// Register 创建用户账号（管理员入口；学生/教师/家长档案由各自模块建立）
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
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
		Role:         req.Role,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("用户注册", zap.String("user_id", user.UserID), zap.String("role", user.Role))
	return &dto.UserResponse{ID: user.UserID, Email: user.Email, Role: user.Role}, nil
}

// Me 查询当前用户及其角色档案
func (s *authService) Me(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	profile := &dto.ProfileResponse{
		ID:        user.UserID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}

	// 角色档案不存在不视为错误（如新建的 ADMIN）
	switch user.Role {
	case model.RoleStudent:
		if st, err := s.repo.Student.GetByUserID(ctx, userID); err == nil {
			profile.ProfileID = st.StudentID
			profile.FirstName = st.FirstName
			profile.LastName = st.LastName
		}
	case model.RoleTeacher:
		if t, err := s.repo.Teacher.GetByUserID(ctx, userID); err == nil {
			profile.ProfileID = t.TeacherID
			profile.FirstName = t.FirstName
			profile.LastName = t.LastName
		}
	case model.RoleParent:
		if p, err := s.repo.Parent.GetByUserID(ctx, userID); err == nil {
			profile.ProfileID = p.ParentID
			profile.FirstName = p.FirstName
			profile.LastName = p.LastName
		}
	}

	return profile, nil
}

// UpdateProfile 更新本人角色档案
// 仅姓名字段可自助修改；未传的字段保持不变
func (s *authService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	switch user.Role {
	case model.RoleStudent:
		st, err := s.repo.Student.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProfileNotFound
			}
			return nil, err
		}
		if req.FirstName != nil {
			st.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			st.LastName = *req.LastName
		}
		if err := s.repo.Student.Update(ctx, st); err != nil {
			return nil, err
		}
	case model.RoleTeacher:
		t, err := s.repo.Teacher.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProfileNotFound
			}
			return nil, err
		}
		if req.FirstName != nil {
			t.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			t.LastName = *req.LastName
		}
		if err := s.repo.Teacher.Update(ctx, t); err != nil {
			return nil, err
		}
	case model.RoleParent:
		p, err := s.repo.Parent.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProfileNotFound
			}
			return nil, err
		}
		if req.FirstName != nil {
			p.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			p.LastName = *req.LastName
		}
		if err := s.repo.Parent.Update(ctx, p); err != nil {
			return nil, err
		}
	default:
		return nil, ErrProfileNotFound
	}

	s.logger.Info("用户更新档案", zap.String("user_id", userID))
	return s.Me(ctx, userID)
}

// ChangePassword 更换密码，旧密码校验失败返回 ErrInvalidCredentials
func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.repo.User.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("用户修改密码", zap.String("user_id", userID))
	return nil
}

// ChangeEmail 换绑邮箱，需验证当前密码且新邮箱未被占用
func (s *authService) ChangeEmail(ctx context.Context, userID string, req *dto.ChangeEmailRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return ErrInvalidCredentials
	}

	if existing, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		if existing.UserID != user.UserID {
			return ErrEmailTaken
		}
		return nil // 邮箱未变化
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user.Email = req.Email
	if err := s.repo.User.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("用户换绑邮箱", zap.String("user_id", userID))
	return nil
}

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.accessTTL.Seconds()),
		User: dto.UserResponse{
			ID:    user.UserID,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}

// [自证通过] internal/service/auth_service.go
