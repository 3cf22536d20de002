package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"brigade/backend/internal/dto"
	"brigade/backend/internal/service"
	pkgerrors "brigade/backend/pkg/errors"
	"brigade/backend/pkg/response"
)

// AbsenceHandler 缺勤模块 HTTP 处理器
type AbsenceHandler struct {
	absenceSvc service.AbsenceService
}

// NewAbsenceHandler 创建 AbsenceHandler
func NewAbsenceHandler(absenceSvc service.AbsenceService) *AbsenceHandler {
	return &AbsenceHandler{absenceSvc: absenceSvc}
}

// Create 提交缺勤申请
// POST /api/v1/absences
func (h *AbsenceHandler) Create(c *gin.Context) {
	var req dto.CreateAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	operator, ok := MustGetOperator(c)
	if !ok {
		return
	}

	result, err := h.absenceSvc.Create(c.Request.Context(), operator, &req)
	if err != nil {
		h.handleAbsenceError(c, err)
		return
	}
	response.Created(c, result)
}

// List 查询缺勤申请（员工仅见自己的）
// GET /api/v1/absences
func (h *AbsenceHandler) List(c *gin.Context) {
	var req dto.ListAbsencesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	operator, ok := MustGetOperator(c)
	if !ok {
		return
	}

	result, total, err := h.absenceSvc.List(c.Request.Context(), operator, &req)
	if err != nil {
		h.handleAbsenceError(c, err)
		return
	}
	response.OKPage(c, result, total, req.GetPage(), req.GetPageSize())
}

// Review 审批缺勤申请（仅管理员）
// PUT /api/v1/absences/:id/review
func (h *AbsenceHandler) Review(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "申请ID不能为空")
		return
	}

	var req dto.ReviewAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 14001, "参数校验失败")
		return
	}

	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.absenceSvc.Review(c.Request.Context(), operatorID, id, &req)
	if err != nil {
		h.handleAbsenceError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete 撤回/删除缺勤申请
// DELETE /api/v1/absences/:id
func (h *AbsenceHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 14001, "申请ID不能为空")
		return
	}

	operator, ok := MustGetOperator(c)
	if !ok {
		return
	}

	if err := h.absenceSvc.Delete(c.Request.Context(), operator, id); err != nil {
		h.handleAbsenceError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleAbsenceError 统一处理缺勤模块业务错误
func (h *AbsenceHandler) handleAbsenceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAbsenceNotFound):
		response.NotFound(c, 14101, "缺勤申请不存在")
	case errors.Is(err, service.ErrAbsenceForbidden):
		response.Forbidden(c, 14102, "无权操作他人的缺勤申请")
	case errors.Is(err, service.ErrAbsenceNotPending):
		response.BadRequest(c, 14103, "仅待审批的申请可以修改或删除")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 14104, "结束日期不能早于开始日期")
	case errors.Is(err, service.ErrInvalidWeekDate):
		response.BadRequest(c, 14105, "日期格式无效")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12101, "员工不存在")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Error(c, http.StatusConflict, 14106, "数据已被他人修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/absence_handler.go
