package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"brigade/backend/internal/dto"
	"brigade/backend/internal/planning"
	"brigade/backend/internal/service"
	pkgerrors "brigade/backend/pkg/errors"
	"brigade/backend/pkg/response"
)

// ShiftHandler 班次模块 HTTP 处理器
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// List 按周查询班次：普通员工仅返回本人班次
// GET /api/v1/shifts?week_start=2025-06-02
func (h *ShiftHandler) List(c *gin.Context) {
	var req dto.ListShiftsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	operator, ok := MustGetOperator(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.ListByWeek(c.Request.Context(), operator, &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, gin.H{"list": result})
}

// Create 创建班次
// POST /api/v1/shifts
func (h *ShiftHandler) Create(c *gin.Context) {
	var req dto.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.Create(c.Request.Context(), operatorID, &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.Created(c, result)
}

// Update 更新班次
// PUT /api/v1/shifts/:id
func (h *ShiftHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "班次ID不能为空")
		return
	}

	var req dto.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.Update(c.Request.Context(), operatorID, id, &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete 删除班次
// DELETE /api/v1/shifts/:id
func (h *ShiftHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "班次ID不能为空")
		return
	}

	if err := h.shiftSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, nil)
}

// Move 拖拽移动班次到新的格子
// POST /api/v1/shifts/:id/move
func (h *ShiftHandler) Move(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 13001, "班次ID不能为空")
		return
	}

	var req dto.MoveShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	operatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.Move(c.Request.Context(), operatorID, id, &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, result)
}

// DeleteWeek 清空整周班次
// DELETE /api/v1/shifts/week
func (h *ShiftHandler) DeleteWeek(c *gin.Context) {
	var req dto.DeleteWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	deleted, err := h.shiftSvc.DeleteWeek(c.Request.Context(), &req)
	if err != nil {
		h.handleShiftError(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": deleted})
}

// handleShiftError 统一处理班次模块业务错误
func (h *ShiftHandler) handleShiftError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 13101, "班次不存在")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 12101, "员工不存在")
	case errors.Is(err, service.ErrInvalidTime):
		response.BadRequest(c, 13102, "时间格式无效")
	case errors.Is(err, service.ErrInvalidDay):
		response.BadRequest(c, 13103, "无效的星期名")
	case errors.Is(err, service.ErrInvalidWeekDate):
		response.BadRequest(c, 13104, "无效的周日期")
	case errors.Is(err, service.ErrOutsideOpeningHours):
		response.BadRequest(c, 13105, "开始时间不在营业时间内")
	case errors.Is(err, planning.ErrInvalidPlacement):
		response.BadRequest(c, 13106, "目标时段不在营业时间内")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Error(c, http.StatusConflict, 13107, "数据已被他人修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/shift_handler.go
