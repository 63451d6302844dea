package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"staff-registry/internal/dto"
	"staff-registry/internal/service"
	"staff-registry/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock EmployeeService ──

type mockEmployeeService struct {
	createResult *dto.EmployeeResponse
	createErr    error
	getResult    *dto.EmployeeResponse
	getErr       error
	listResult   []dto.EmployeeResponse
	listErr      error
	updateErr    error
	deleteErr    error

	updateCalls int
	deleteCalls int
}

func (m *mockEmployeeService) Create(_ context.Context, _ *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockEmployeeService) GetByID(_ context.Context, _ uint) (*dto.EmployeeResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockEmployeeService) List(_ context.Context, _ *dto.EmployeeListRequest) ([]dto.EmployeeResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockEmployeeService) Update(_ context.Context, _ uint, _ *dto.UpdateEmployeeRequest) error {
	m.updateCalls++
	return m.updateErr
}
func (m *mockEmployeeService) Delete(_ context.Context, _ uint) error {
	m.deleteCalls++
	return m.deleteErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportRoster(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

// setupRouter 注册与生产路由一致的员工端点
func setupRouter(empSvc service.EmployeeService, exportSvc service.ExportService) *gin.Engine {
	r := gin.New()
	eh := NewEmployeeHandler(empSvc)
	xh := NewExportHandler(exportSvc)

	employees := r.Group("/api/v1/employees")
	{
		employees.GET("", eh.ListEmployees)
		employees.GET("/export", xh.ExportRoster)
		employees.GET("/:id", eh.GetEmployee)
		employees.POST("", eh.CreateEmployee)
		employees.PUT("/:id", eh.UpdateEmployee)
		employees.DELETE("/:id", eh.DeleteEmployee)
	}
	return r
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func doRequest(r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应体不是合法 JSON: %v (body=%s)", err, w.Body.String())
	}
	return resp
}

func sampleEmployee() *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:         7,
		FullName:   "Ann Lee",
		Email:      "ann@x.com",
		Department: "Eng",
		HireDate:   time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
}

// ═══════════════════════════════════════════════════════════
// ListEmployees
// ═══════════════════════════════════════════════════════════

func TestListEmployees_OK(t *testing.T) {
	empSvc := &mockEmployeeService{listResult: []dto.EmployeeResponse{*sampleEmployee()}}
	r := setupRouter(empSvc, &mockExportService{})

	w := doRequest(r, http.MethodGet, "/api/v1/employees", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望200，实际=%d", w.Code)
	}

	resp := parseResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("期望 data 为对象，实际: %T", resp.Data)
	}
	list, ok := data["list"].([]interface{})
	if !ok || len(list) != 1 {
		t.Errorf("期望 list 含1项，实际: %v", data["list"])
	}
}

func TestListEmployees_EmptyStore(t *testing.T) {
	empSvc := &mockEmployeeService{listResult: []dto.EmployeeResponse{}}
	r := setupRouter(empSvc, &mockExportService{})

	w := doRequest(r, http.MethodGet, "/api/v1/employees", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("空表也应返回200，实际=%d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// GetEmployee
// ═══════════════════════════════════════════════════════════

func TestGetEmployee_OK(t *testing.T) {
	empSvc := &mockEmployeeService{getResult: sampleEmployee()}
	r := setupRouter(empSvc, &mockExportService{})

	w := doRequest(r, http.MethodGet, "/api/v1/employees/7", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望200，实际=%d", w.Code)
	}

	resp := parseResponse(t, w)
	data, _ := resp.Data.(map[string]interface{})
	if data["full_name"] != "Ann Lee" {
		t.Errorf("期望full_name=Ann Lee，实际: %v", data["full_name"])
	}
}

func TestGetEmployee_NotFound(t *testing.T) {
	empSvc := &mockEmployeeService{getErr: service.ErrEmployeeNotFound}
	r := setupRouter(empSvc, &mockExportService{})

	w := doRequest(r, http.MethodGet, "/api/v1/employees/999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("不存在的员工期望404，实际=%d", w.Code)
	}
}

func TestGetEmployee_InvalidID(t *testing.T) {
	empSvc := &mockEmployeeService{}
	r := setupRouter(empSvc, &mockExportService{})

	w := doRequest(r, http.MethodGet, "/api/v1/employees/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("非数字 ID 期望400，实际=%d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// CreateEmployee
// ═══════════════════════════════════════════════════════════

func TestCreateEmployee_Created_WithLocation(t *testing.T) {
	empSvc := &mockEmployeeService{createResult: sampleEmployee()}
	r := setupRouter(empSvc, &mockExportService{})

	body := jsonBody(map[string]string{
		"full_name":  "Ann Lee",
		"email":      "ann@x.com",
		"department": "Eng",
	})
	w := doRequest(r, http.MethodPost, "/api/v1/employees", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("期望201，实际=%d (body=%s)", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/api/v1/employees/7" {
		t.Errorf("期望 Location=/api/v1/employees/7，实际=%s", loc)
	}

	resp := parseResponse(t, w)
	data, _ := resp.Data.(map[string]interface{})
	id, _ := data["id"].(float64)
	if id <= 0 {
		t.Errorf("期望正整数 ID，实际: %v", data["id"])
	}
	if data["hire_date"] == nil || data["hire_date"] == "" {
		t.Error("期望 hire_date 已填充")
	}
}

func TestCreateEmployee_ValidationFailed_PerField(t *testing.T) {
	empSvc := &mockEmployeeService{}
	r := setupRouter(empSvc, &mockExportService{})

	// 缺少 full_name，邮箱格式非法
	body := jsonBody(map[string]string{
		"email":      "not-an-email",
		"department": "Eng",
	})
	w := doRequest(r, http.MethodPost, "/api/v1/employees", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("校验失败期望400，实际=%d", w.Code)
	}

	resp := parseResponse(t, w)
	if _, ok := resp.Fields["full_name"]; !ok {
		t.Errorf("期望 fields 含 full_name，实际: %v", resp.Fields)
	}
	if _, ok := resp.Fields["email"]; !ok {
		t.Errorf("期望 fields 含 email，实际: %v", resp.Fields)
	}
}

func TestCreateEmployee_FieldTooLong(t *testing.T) {
	empSvc := &mockEmployeeService{}
	r := setupRouter(empSvc, &mockExportService{})

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	body := jsonBody(map[string]string{
		"full_name":  string(long),
		"email":      "ok@test.com",
		"department": "Eng",
	})
	w := doRequest(r, http.MethodPost, "/api/v1/employees", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("超长字段期望400，实际=%d", w.Code)
	}

	resp := parseResponse(t, w)
	if _, ok := resp.Fields["full_name"]; !ok {
		t.Errorf("期望 fields 含 full_name，实际: %v", resp.Fields)
	}
}

func TestCreateEmployee_MalformedJSON(t *testing.T) {
	empSvc := &mockEmployeeService{}
	r := setupRouter(empSvc, &mockExportService{})

	w := doRequest(r, http.MethodPost, "/api/v1/employees", bytes.NewReader([]byte("{not json")))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("非法 JSON 期望400，实际=%d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// UpdateEmployee
// ═══════════════════════════════════════════════════════════

func TestUpdateEmployee_NoContent(t *testing.T) {
	empSvc := &mockEmployeeService{}
	r := setupRouter(empSvc, &mockExportService{})

	body := jsonBody(map[string]interface{}{
		"id":         5,
		"full_name":  "Ann Lee",
		"email":      "ann@x.com",
		"department": "Eng",
	})
	w := doRequest(r, http.MethodPut, "/api/v1/employees/5", body)
	if w.Code != http.StatusNoContent {
		t.Fatalf("期望204，实际=%d (body=%s)", w.Code, w.Body.String())
	}
	if w.Body.Len() != 0 {
		t.Errorf("204 响应不应携带响应体，实际: %s", w.Body.String())
	}
	if empSvc.updateCalls != 1 {
		t.Errorf("期望 Service.Update 被调用1次，实际=%d", empSvc.updateCalls)
	}
}

func TestUpdateEmployee_IDMismatch(t *testing.T) {
	empSvc := &mockEmployeeService{}
	r := setupRouter(empSvc, &mockExportService{})

	// 路径 ID=5，请求体 ID=7
	body := jsonBody(map[string]interface{}{
		"id":         7,
		"full_name":  "Ann Lee",
		"email":      "ann@x.com",
		"department": "Eng",
	})
	w := doRequest(r, http.MethodPut, "/api/v1/employees/5", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("ID 不一致期望400，实际=%d", w.Code)
	}
	// 不应触达 Service，存储不发生变更
	if empSvc.updateCalls != 0 {
		t.Errorf("ID 不一致时不应调用 Service.Update，实际调用=%d", empSvc.updateCalls)
	}
}

func TestUpdateEmployee_NotFound(t *testing.T) {
	empSvc := &mockEmployeeService{updateErr: service.ErrEmployeeNotFound}
	r := setupRouter(empSvc, &mockExportService{})

	body := jsonBody(map[string]interface{}{
		"id":         999,
		"full_name":  "Ann Lee",
		"email":      "ann@x.com",
		"department": "Eng",
	})
	w := doRequest(r, http.MethodPut, "/api/v1/employees/999", body)
	if w.Code != http.StatusNotFound {
		t.Fatalf("更新不存在的员工期望404，实际=%d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// DeleteEmployee
// ═══════════════════════════════════════════════════════════

func TestDeleteEmployee_NoContent(t *testing.T) {
	empSvc := &mockEmployeeService{}
	r := setupRouter(empSvc, &mockExportService{})

	w := doRequest(r, http.MethodDelete, "/api/v1/employees/1", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("期望204，实际=%d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("204 响应不应携带响应体，实际: %s", w.Body.String())
	}
}

func TestDeleteEmployee_Idempotent(t *testing.T) {
	empSvc := &mockEmployeeService{}
	r := setupRouter(empSvc, &mockExportService{})

	// 连续两次删除同一 ID，均应为204
	w1 := doRequest(r, http.MethodDelete, "/api/v1/employees/1", nil)
	w2 := doRequest(r, http.MethodDelete, "/api/v1/employees/1", nil)
	if w1.Code != http.StatusNoContent || w2.Code != http.StatusNoContent {
		t.Fatalf("幂等删除期望两次均204，实际=%d / %d", w1.Code, w2.Code)
	}
	if empSvc.deleteCalls != 2 {
		t.Errorf("期望 Service.Delete 被调用2次，实际=%d", empSvc.deleteCalls)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportRoster
// ═══════════════════════════════════════════════════════════

func TestExportRoster_OK(t *testing.T) {
	exportSvc := &mockExportService{
		buf:      bytes.NewBufferString("xlsx-bytes"),
		filename: "员工名单_20260823.xlsx",
	}
	r := setupRouter(&mockEmployeeService{}, exportSvc)

	w := doRequest(r, http.MethodGet, "/api/v1/employees/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("期望200，实际=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("Content-Type 不符: %s", ct)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("期望设置 Content-Disposition 下载头")
	}
	if w.Body.Len() == 0 {
		t.Error("期望非空文件内容")
	}
}

func TestExportRoster_EmptyRoster(t *testing.T) {
	exportSvc := &mockExportService{err: service.ErrExportEmptyRoster}
	r := setupRouter(&mockEmployeeService{}, exportSvc)

	w := doRequest(r, http.MethodGet, "/api/v1/employees/export", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("空名单导出期望404，实际=%d", w.Code)
	}
}
