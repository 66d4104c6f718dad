package patient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Ftk-keit/medi-application/internal/domain/billing"
)

func doRequest(t *testing.T, h func(echo.Context) error, method, path, body string, params map[string]string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	return rec, h(c)
}

func TestHandler_Register(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)

	body := `{"first_name":"Awa","last_name":"Gueye","date_of_birth":"1990-06-01","gender":"F","phone":"770000000","department":"cardiology"}`
	rec, err := doRequest(t, h.Register, http.MethodPost, "/patients", body, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var p Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if p.Status != StatusWaitingPayment || !strings.HasPrefix(p.QRCode, "PAT") {
		t.Errorf("unexpected patient: status=%s qr=%s", p.Status, p.QRCode)
	}
}

func TestHandler_Register_ValidationTo400(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)

	body := `{"first_name":"Awa","last_name":"Gueye","date_of_birth":"1990-06-01","gender":"F","phone":"770000000","department":"radiology"}`
	_, err := doRequest(t, h.Register, http.MethodPost, "/patients", body, nil)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_RecordPayment_ConflictTo409(t *testing.T) {
	f := newFixture(t)
	p := f.register(t, "Awa", "", "cardiology")
	if _, err := f.svc.RecordPayment(context.Background(), p.ID, billing.MethodCash, "c"); err != nil {
		t.Fatalf("first payment: %v", err)
	}
	h := NewHandler(f.svc)

	_, err := doRequest(t, h.RecordPayment, http.MethodPost, "/patients/"+p.ID.String()+"/payment",
		`{"method":"cash"}`, map[string]string{"id": p.ID.String()})
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestHandler_Get_UnknownTo404(t *testing.T) {
	f := newFixture(t)
	h := NewHandler(f.svc)

	_, err := doRequest(t, h.Get, http.MethodGet, "/patients/3e8e2c7e-0000-0000-0000-000000000000", "",
		map[string]string{"id": "3e8e2c7e-0000-0000-0000-000000000000"})
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}

	_, err = doRequest(t, h.Get, http.MethodGet, "/patients/not-a-uuid", "",
		map[string]string{"id": "not-a-uuid"})
	httpErr, ok = err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %v", err)
	}
}

func TestHandler_PaymentQueue(t *testing.T) {
	f := newFixture(t)
	f.register(t, "normal", PriorityNormal, "cardiology")
	f.register(t, "emergency", PriorityEmergency, "cardiology")
	h := NewHandler(f.svc)

	rec, err := doRequest(t, h.PaymentQueue, http.MethodGet, "/queue/payment", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var queue []*Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &queue); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(queue) != 2 || queue[0].FirstName != "emergency" {
		t.Errorf("unexpected queue order: %v", names(queue))
	}
}
