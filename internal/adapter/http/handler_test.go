package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oakfield/doortrack/internal/domain"
	"github.com/oakfield/doortrack/internal/interfaces"
)

// --- Mocks ---

type nopLogger struct{}

func (nopLogger) Info(string, string, string, map[string]interface{})         {}
func (nopLogger) Debug(string, string, string, map[string]interface{})        {}
func (nopLogger) Error(string, string, string, map[string]interface{}, error) {}

type mockScanService struct {
	result *interfaces.ScanResult
	err    error
}

func (m *mockScanService) SubmitScan(ctx context.Context, cmd interfaces.ScanCommand) (*interfaces.ScanResult, error) {
	return m.result, m.err
}

type mockIntakeService struct {
	result *interfaces.CreateOrderResult
	err    error
}

func (m *mockIntakeService) CreateOrder(ctx context.Context, cmd interfaces.CreateOrderCommand) (*interfaces.CreateOrderResult, error) {
	return m.result, m.err
}

type mockTrackingService struct {
	rows      []interfaces.SummaryRow
	rowsErr   error
	detail    *interfaces.OrderDetail
	detailErr error
}

func (m *mockTrackingService) OrderSummaryRows(ctx context.Context, search string) ([]interfaces.SummaryRow, error) {
	return m.rows, m.rowsErr
}

func (m *mockTrackingService) OrderDetail(ctx context.Context, sop, rating string) (*interfaces.OrderDetail, error) {
	return m.detail, m.detailErr
}

type mockStore struct {
	snapshot *domain.Dataset
}

func (m *mockStore) Get(key string) (domain.Order, bool)                   { panic("not used") }
func (m *mockStore) All() []domain.Order                                   { panic("not used") }
func (m *mockStore) Create(ctx context.Context, order *domain.Order) error { panic("not used") }
func (m *mockStore) AppendLog(ctx context.Context, key, tsKey string, entry domain.LogEntry, eff domain.Effect) error {
	panic("not used")
}
func (m *mockStore) Snapshot() *domain.Dataset { return m.snapshot }

// --- Scan endpoint ---

func TestSubmitScanOK(t *testing.T) {
	h := NewOrderHandler(&mockScanService{
		result: &interfaces.ScanResult{Key: "100-FD30", Message: "Order 100-FD30 updated successfully", FlagChanged: domain.FlagWrittenUp},
	}, nil, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/scans", strings.NewReader(`{"sop":"100","rating":"FD30","area":"OFFICE","sub_area":"WRITTEN-UP"}`))
	w := httptest.NewRecorder()
	h.SubmitScan(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp ScanResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Flag != "WRITTEN-UP" || resp.Key != "100-FD30" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestSubmitScanUnknownOrderReturnsPrefill(t *testing.T) {
	h := NewOrderHandler(&mockScanService{
		err: &domain.OrderNotFoundError{SOP: "100", Rating: "FD30", User: "jsmith"},
	}, nil, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/scans", strings.NewReader(`{"sop":"100","rating":"FD30","user":"jsmith"}`))
	w := httptest.NewRecorder()
	h.SubmitScan(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Prefill == nil || resp.Prefill.SOP != "100" || resp.Prefill.User != "jsmith" {
		t.Errorf("prefill = %+v, want the scanned fields", resp.Prefill)
	}
}

func TestSubmitScanRejectedTransition(t *testing.T) {
	h := NewOrderHandler(&mockScanService{
		err: domain.ErrTransitionRejected,
	}, nil, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/scans", strings.NewReader(`{"sop":"100"}`))
	w := httptest.NewRecorder()
	h.SubmitScan(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestSubmitScanValidationError(t *testing.T) {
	h := NewOrderHandler(&mockScanService{err: domain.ErrValidation}, nil, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/scans", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.SubmitScan(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSubmitScanBadBody(t *testing.T) {
	h := NewOrderHandler(&mockScanService{}, nil, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/scans", strings.NewReader(`{broken`))
	w := httptest.NewRecorder()
	h.SubmitScan(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSubmitScanMethodNotAllowed(t *testing.T) {
	h := NewOrderHandler(&mockScanService{}, nil, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/scans", nil)
	w := httptest.NewRecorder()
	h.SubmitScan(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}

// --- Create endpoint ---

func TestCreateOrderCreated(t *testing.T) {
	order := domain.NewOrder(100, "FD30", false)
	h := NewOrderHandler(nil, &mockIntakeService{
		result: &interfaces.CreateOrderResult{Key: "100-FD30", Message: "Order 100-FD30 created successfully", Order: order.Clone()},
	}, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"sop":"100","rating":"FD30"}`))
	w := httptest.NewRecorder()
	h.CreateOrder(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	var resp CreateOrderResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.WrittenUp != "No" {
		t.Errorf("written up = %q, want No", resp.WrittenUp)
	}
}

func TestCreateOrderDuplicate(t *testing.T) {
	h := NewOrderHandler(nil, &mockIntakeService{err: domain.ErrDuplicateOrder}, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"sop":"100","rating":"FD30"}`))
	w := httptest.NewRecorder()
	h.CreateOrder(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

// --- Tracking endpoints ---

func TestListOrders(t *testing.T) {
	h := NewTrackingHandler(&mockTrackingService{
		rows: []interfaces.SummaryRow{{SOP: 100, Rating: "FD30", LastArea: "-", LastDate: "-", Dispatch: "-"}},
	}, nil, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	h.ListOrders(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var rows []interfaces.SummaryRow
	if err := json.NewDecoder(w.Body).Decode(&rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].SOP != 100 {
		t.Errorf("rows = %+v", rows)
	}
}

func TestListOrdersEmptyIsArray(t *testing.T) {
	h := NewTrackingHandler(&mockTrackingService{}, nil, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	h.ListOrders(w, req)

	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestOrderDetailMissingParams(t *testing.T) {
	h := NewTrackingHandler(&mockTrackingService{detailErr: domain.ErrValidation}, nil, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/orders/detail?sop=100", nil)
	w := httptest.NewRecorder()
	h.OrderDetail(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestOrderDetailNotFound(t *testing.T) {
	h := NewTrackingHandler(&mockTrackingService{detailErr: domain.ErrOrderNotFound}, nil, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/orders/detail?sop=999&rating=FD30", nil)
	w := httptest.NewRecorder()
	h.OrderDetail(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestStations(t *testing.T) {
	h := NewTrackingHandler(&mockTrackingService{}, nil, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/stations", nil)
	w := httptest.NewRecorder()
	h.Stations(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var groups []domain.StationGroup
	if err := json.NewDecoder(w.Body).Decode(&groups); err != nil {
		t.Fatal(err)
	}
	if len(groups) != 6 || groups[0].Area != "OFFICE" {
		t.Errorf("groups = %+v", groups)
	}
}

func TestExport(t *testing.T) {
	ds := domain.NewDataset()
	ds.Orders["100-FD30"] = domain.NewOrder(100, "FD30", false)

	h := NewTrackingHandler(&mockTrackingService{}, &mockStore{snapshot: ds}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	w := httptest.NewRecorder()
	h.Export(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "test.json") {
		t.Errorf("Content-Disposition = %q, want attachment test.json", cd)
	}
	if !strings.Contains(w.Body.String(), `"100-FD30"`) {
		t.Errorf("export body should contain the order key")
	}
}
