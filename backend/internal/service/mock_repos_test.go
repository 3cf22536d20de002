package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"brigade/backend/internal/model"
	"brigade/backend/internal/repository"
	pkgerrors "brigade/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	if u, ok := m.users[id]; ok {
		u.PasswordHash = passwordHash
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees map[string]*model.Employee
	listErr   error // 注入 List 查询错误，模拟数据库不可用
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{employees: make(map[string]*model.Employee)}
}

func (m *mockEmployeeRepo) Create(_ context.Context, employee *model.Employee) error {
	if employee.EmployeeID == "" {
		employee.EmployeeID = fmt.Sprintf("emp-%d", len(m.employees)+1)
	}
	if employee.Version == 0 {
		employee.Version = 1
	}
	m.employees[employee.EmployeeID] = employee
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	if e, ok := m.employees[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context) ([]model.Employee, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.Employee
	for _, e := range m.employees {
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, employee *model.Employee) error {
	existing, ok := m.employees[employee.EmployeeID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if existing.Version != employee.Version {
		return pkgerrors.ErrOptimisticLock
	}
	employee.Version++
	copied := *employee
	m.employees[employee.EmployeeID] = &copied
	return nil
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(m.employees, id)
	return nil
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts    map[string]*model.Shift
	nextID    int
	createErr error // 注入 Create 错误
	updateErr error // 注入 Update 错误
	deleteErr error // 注入 Delete 错误
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{shifts: make(map[string]*model.Shift)}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	shift.ShiftID = fmt.Sprintf("shift-%d", m.nextID)
	if shift.Version == 0 {
		shift.Version = 1
	}
	copied := *shift
	m.shifts[shift.ShiftID] = &copied
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	if sh, ok := m.shifts[id]; ok {
		copied := *sh
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) ListByWeek(_ context.Context, weekStart, weekEnd time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for _, sh := range m.shifts {
		if sh.WeekStart.Equal(weekStart) && sh.WeekEnd.Equal(weekEnd) {
			result = append(result, *sh)
		}
	}
	return result, nil
}

func (m *mockShiftRepo) ListByEmployee(_ context.Context, employeeID string, weekStart, weekEnd time.Time) ([]model.Shift, error) {
	var result []model.Shift
	for _, sh := range m.shifts {
		if sh.EmployeeID == employeeID && sh.WeekStart.Equal(weekStart) && sh.WeekEnd.Equal(weekEnd) {
			result = append(result, *sh)
		}
	}
	return result, nil
}

func (m *mockShiftRepo) Update(_ context.Context, shift *model.Shift) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	existing, ok := m.shifts[shift.ShiftID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if existing.Version != shift.Version {
		return pkgerrors.ErrOptimisticLock
	}
	shift.Version++
	copied := *shift
	m.shifts[shift.ShiftID] = &copied
	return nil
}

func (m *mockShiftRepo) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.shifts, id)
	return nil
}

func (m *mockShiftRepo) DeleteByWeek(_ context.Context, weekStart, weekEnd time.Time) (int64, error) {
	var deleted int64
	for id, sh := range m.shifts {
		if sh.WeekStart.Equal(weekStart) && sh.WeekEnd.Equal(weekEnd) {
			delete(m.shifts, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *mockShiftRepo) UpdateEmployeeName(_ context.Context, employeeID, name string) error {
	for _, sh := range m.shifts {
		if sh.EmployeeID == employeeID {
			sh.EmployeeName = name
		}
	}
	return nil
}

// ── Mock AbsenceRepository ──

type mockAbsenceRepo struct {
	absences map[string]*model.Absence
	nextID   int
}

func newMockAbsenceRepo() *mockAbsenceRepo {
	return &mockAbsenceRepo{absences: make(map[string]*model.Absence)}
}

func (m *mockAbsenceRepo) Create(_ context.Context, absence *model.Absence) error {
	m.nextID++
	absence.AbsenceID = fmt.Sprintf("abs-%d", m.nextID)
	if absence.Version == 0 {
		absence.Version = 1
	}
	copied := *absence
	m.absences[absence.AbsenceID] = &copied
	return nil
}

func (m *mockAbsenceRepo) GetByID(_ context.Context, id string) (*model.Absence, error) {
	if a, ok := m.absences[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAbsenceRepo) List(_ context.Context, filter repository.AbsenceFilter, offset, limit int) ([]model.Absence, int64, error) {
	var result []model.Absence
	for _, a := range m.absences {
		if filter.EmployeeID != "" && a.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		result = append(result, *a)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockAbsenceRepo) Update(_ context.Context, absence *model.Absence) error {
	existing, ok := m.absences[absence.AbsenceID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if existing.Version != absence.Version {
		return pkgerrors.ErrOptimisticLock
	}
	absence.Version++
	copied := *absence
	m.absences[absence.AbsenceID] = &copied
	return nil
}

func (m *mockAbsenceRepo) Delete(_ context.Context, id string) error {
	delete(m.absences, id)
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
