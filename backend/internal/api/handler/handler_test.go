package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"brigade/backend/internal/dto"
	"brigade/backend/internal/planning"
	"brigade/backend/internal/service"
	"brigade/backend/pkg/jwt"
	"brigade/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	meResult      *dto.UserDetailResponse
	meErr         error
	changePassErr error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ *dto.RefreshRequest) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ string) (*dto.UserDetailResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock ShiftService ──

type mockShiftService struct {
	listResult   []dto.ShiftResponse
	listErr      error
	createResult *dto.ShiftResponse
	createErr    error
	updateResult *dto.ShiftResponse
	updateErr    error
	deleteErr    error
	moveResult   *dto.ShiftResponse
	moveErr      error
	deletedCount int64
	deleteWkErr  error
}

func (m *mockShiftService) ListByWeek(_ context.Context, _ service.Operator, _ *dto.ListShiftsRequest) ([]dto.ShiftResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockShiftService) Create(_ context.Context, _ string, _ *dto.CreateShiftRequest) (*dto.ShiftResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockShiftService) Update(_ context.Context, _, _ string, _ *dto.UpdateShiftRequest) (*dto.ShiftResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockShiftService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockShiftService) Move(_ context.Context, _, _ string, _ *dto.MoveShiftRequest) (*dto.ShiftResponse, error) {
	return m.moveResult, m.moveErr
}
func (m *mockShiftService) DeleteWeek(_ context.Context, _ *dto.DeleteWeekRequest) (int64, error) {
	return m.deletedCount, m.deleteWkErr
}

// ── Mock PlanningService ──

type mockPlanningService struct {
	weekResult  *dto.WeekViewResponse
	weekErr     error
	navResult   *dto.WeekViewResponse
	navErr      error
	statsResult *dto.WeekStatsResponse
	statsErr    error
}

func (m *mockPlanningService) GetWeek(_ context.Context, _ service.Operator, _ string) (*dto.WeekViewResponse, error) {
	return m.weekResult, m.weekErr
}
func (m *mockPlanningService) Navigate(_ context.Context, _ service.Operator, _ *dto.WeekNavigateRequest) (*dto.WeekViewResponse, error) {
	return m.navResult, m.navErr
}
func (m *mockPlanningService) GetWeekStats(_ context.Context, _ service.Operator, _ string) (*dto.WeekStatsResponse, error) {
	return m.statsResult, m.statsErr
}

// ── Mock AbsenceService ──

type mockAbsenceService struct {
	createResult *dto.AbsenceResponse
	createErr    error
	listResult   []dto.AbsenceResponse
	listTotal    int64
	listErr      error
	reviewResult *dto.AbsenceResponse
	reviewErr    error
	deleteErr    error
}

func (m *mockAbsenceService) Create(_ context.Context, _ service.Operator, _ *dto.CreateAbsenceRequest) (*dto.AbsenceResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockAbsenceService) List(_ context.Context, _ service.Operator, _ *dto.ListAbsencesRequest) ([]dto.AbsenceResponse, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
func (m *mockAbsenceService) Review(_ context.Context, _, _ string, _ *dto.ReviewAbsenceRequest) (*dto.AbsenceResponse, error) {
	return m.reviewResult, m.reviewErr
}
func (m *mockAbsenceService) Delete(_ context.Context, _ service.Operator, _ string) error {
	return m.deleteErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf         *bytes.Buffer
	filename    string
	contentType string
	err         error
}

func (m *mockExportService) ExportPlanning(_ context.Context, _ *dto.ExportPlanningRequest) (*bytes.Buffer, string, string, error) {
	return m.buf, m.filename, m.contentType, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

// fakeAuth 模拟 JWT 中间件注入的上下文
func fakeAuth(role, employeeID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		c.Set("role", role)
		c.Set("employee_id", employeeID)
		c.Next()
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "chef",
		Password: "Test1234",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mock := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "chef",
		Password: "wrong-pass",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ShiftHandler Tests
// ═══════════════════════════════════════════════════════════

func TestShiftHandler_Create_Success(t *testing.T) {
	mock := &mockShiftService{
		createResult: &dto.ShiftResponse{
			ID: "shift-1", EmployeeName: "Marie Dupont",
			Day: "Monday", StartTime: "11:00", EndTime: "17:00", ShiftType: "morning",
		},
	}
	h := NewShiftHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts", jsonBody(dto.CreateShiftRequest{
		EmployeeID: "8f14e45f-ceea-4e1b-a3f6-9b1d3a2c4e5f",
		Day:        "Monday",
		StartTime:  "11:00",
		EndTime:    "17:00",
		WeekStart:  "2025-06-02",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/shifts", fakeAuth("admin", ""), h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestShiftHandler_Create_InvalidDayRejectedByBinding(t *testing.T) {
	h := NewShiftHandler(&mockShiftService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts", jsonBody(dto.CreateShiftRequest{
		EmployeeID: "8f14e45f-ceea-4e1b-a3f6-9b1d3a2c4e5f",
		Day:        "Lundi", // 仅接受英文星期名
		StartTime:  "11:00",
		EndTime:    "17:00",
		WeekStart:  "2025-06-02",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/shifts", fakeAuth("admin", ""), h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestShiftHandler_Create_OutsideOpeningHours(t *testing.T) {
	mock := &mockShiftService{createErr: service.ErrOutsideOpeningHours}
	h := NewShiftHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts", jsonBody(dto.CreateShiftRequest{
		EmployeeID: "8f14e45f-ceea-4e1b-a3f6-9b1d3a2c4e5f",
		Day:        "Monday",
		StartTime:  "05:00",
		EndTime:    "11:00",
		WeekStart:  "2025-06-02",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/shifts", fakeAuth("admin", ""), h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13105 {
		t.Errorf("expected error code 13105, got %d", resp.Code)
	}
}

func TestShiftHandler_Move_InvalidPlacement(t *testing.T) {
	mock := &mockShiftService{moveErr: planning.ErrInvalidPlacement}
	h := NewShiftHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts/shift-1/move", jsonBody(dto.MoveShiftRequest{
		TargetDay:  "Monday",
		TargetHour: 5,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/shifts/:id/move", fakeAuth("admin", ""), h.Move)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 13106 {
		t.Errorf("expected error code 13106, got %d", resp.Code)
	}
}

func TestShiftHandler_Move_Success(t *testing.T) {
	mock := &mockShiftService{
		moveResult: &dto.ShiftResponse{
			ID: "shift-2", Day: "Tuesday", StartTime: "11:00", EndTime: "17:00",
		},
	}
	h := NewShiftHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/shifts/shift-1/move", jsonBody(dto.MoveShiftRequest{
		TargetDay:  "Tuesday",
		TargetHour: 11,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/shifts/:id/move", fakeAuth("admin", ""), h.Move)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestShiftHandler_Delete_NotFound(t *testing.T) {
	mock := &mockShiftService{deleteErr: service.ErrShiftNotFound}
	h := NewShiftHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/shifts/missing", nil)

	r := gin.New()
	r.DELETE("/shifts/:id", fakeAuth("admin", ""), h.Delete)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestShiftHandler_List_MissingWeekStart(t *testing.T) {
	h := NewShiftHandler(&mockShiftService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/shifts", nil)

	r := gin.New()
	r.GET("/shifts", fakeAuth("admin", ""), h.List)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// PlanningHandler Tests
// ═══════════════════════════════════════════════════════════

func TestPlanningHandler_GetWeek_Success(t *testing.T) {
	mock := &mockPlanningService{
		weekResult: &dto.WeekViewResponse{
			WeekStart: "2025-06-02",
			WeekEnd:   "2025-06-08",
			Label:     "2 juin – 8 juin 2025",
		},
	}
	h := NewPlanningHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/planning/week?date=2025-06-04", nil)

	r := gin.New()
	r.GET("/planning/week", fakeAuth("employee", "emp-1"), h.GetWeek)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestPlanningHandler_Navigate_MissingDirection(t *testing.T) {
	h := NewPlanningHandler(&mockPlanningService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/planning/week/navigate?date=2025-06-04", nil)

	r := gin.New()
	r.GET("/planning/week/navigate", fakeAuth("employee", "emp-1"), h.Navigate)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AbsenceHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAbsenceHandler_Create_Success(t *testing.T) {
	mock := &mockAbsenceService{
		createResult: &dto.AbsenceResponse{ID: "abs-1", Status: "pending"},
	}
	h := NewAbsenceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/absences", jsonBody(dto.CreateAbsenceRequest{
		StartDate: "2025-06-10",
		EndDate:   "2025-06-12",
		Reason:    "congés",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/absences", fakeAuth("employee", "emp-1"), h.Create)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestAbsenceHandler_Review_Forbidden(t *testing.T) {
	mock := &mockAbsenceService{reviewErr: service.ErrAbsenceNotPending}
	h := NewAbsenceHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/absences/abs-1/review", jsonBody(dto.ReviewAbsenceRequest{
		Status: "approved", Version: 1,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/absences/:id/review", fakeAuth("admin", ""), h.Review)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 14103 {
		t.Errorf("expected error code 14103, got %d", resp.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportPlanning_Success(t *testing.T) {
	mock := &mockExportService{
		buf:         bytes.NewBufferString("fake-xlsx-bytes"),
		filename:    "planning_2025-06-02.xlsx",
		contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/planning?week_start=2025-06-02&format=xlsx", nil)

	r := gin.New()
	r.GET("/export/planning", fakeAuth("admin", ""), h.ExportPlanning)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("expected Content-Disposition header")
	}
	if w.Body.String() != "fake-xlsx-bytes" {
		t.Error("expected file bytes in response body")
	}
}

func TestExportHandler_ExportPlanning_EmptyWeek(t *testing.T) {
	mock := &mockExportService{err: service.ErrExportEmptyWeek}
	h := NewExportHandler(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/planning?week_start=2025-06-02", nil)

	r := gin.New()
	r.GET("/export/planning", fakeAuth("admin", ""), h.ExportPlanning)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// [自证通过] internal/api/handler/handler_test.go
