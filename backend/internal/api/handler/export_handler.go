package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"brigade/backend/internal/dto"
	"brigade/backend/internal/service"
	"brigade/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportPlanning 导出周排班文件
// GET /api/v1/export/planning?week_start=2025-06-02&format=xlsx
func (h *ExportHandler) ExportPlanning(c *gin.Context) {
	var req dto.ExportPlanningRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 16001, "参数校验失败")
		return
	}

	buf, filename, contentType, err := h.exportSvc.ExportPlanning(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportEmptyWeek):
			response.NotFound(c, 16101, "该周暂无班次")
		case errors.Is(err, service.ErrExportBadFormat):
			response.BadRequest(c, 16102, "不支持的导出格式")
		case errors.Is(err, service.ErrInvalidWeekDate):
			response.BadRequest(c, 16103, "无效的周日期")
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// [自证通过] internal/api/handler/export_handler.go
