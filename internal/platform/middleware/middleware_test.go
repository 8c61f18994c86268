package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gestox/gestox/internal/platform/tenant"
)

func run(t *testing.T, mw echo.MiddlewareFunc, req *http.Request, handler echo.HandlerFunc) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(handler)(c)
	return rec, c, err
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequestID_Generated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec, c, err := run(t, RequestID(), req, okHandler)
	if err != nil {
		t.Fatal(err)
	}
	rid := rec.Header().Get(RequestIDHeader)
	if rid == "" {
		t.Fatal("expected generated request id")
	}
	if got, _ := c.Get("request_id").(string); got != rid {
		t.Errorf("context id %q != header id %q", got, rid)
	}
}

func TestRequestID_Preserved(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "rid-42")
	rec, _, err := run(t, RequestID(), req, okHandler)
	if err != nil {
		t.Fatal(err)
	}
	if got := rec.Header().Get(RequestIDHeader); got != "rid-42" {
		t.Errorf("expected caller id preserved, got %q", got)
	}
}

func TestTenant_CookieWins(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "client_id", Value: "clnt_clinica"})
	req.Header.Set("x-client-id", "clnt_other")

	var seen *tenant.Config
	_, _, err := run(t, Tenant("clnt_default"), req, func(c echo.Context) error {
		seen = tenant.FromContext(c.Request().Context())
		return okHandler(c)
	})
	if err != nil {
		t.Fatal(err)
	}
	if seen == nil || seen.ClientID != "clnt_clinica" {
		t.Errorf("expected cookie tenant, got %+v", seen)
	}
}

func TestTenant_DefaultFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, c, err := run(t, Tenant("clnt_default"), req, okHandler)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := c.Get("client_id").(string); got != "clnt_default" {
		t.Errorf("expected default tenant, got %q", got)
	}
}

func TestTenant_RejectsMalformedID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-client-id", "clnt injection;drop")

	_, _, err := run(t, Tenant("clnt_default"), req, okHandler)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestRateLimit_BurstExhaustion(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2})

	e := echo.New()
	var lastErr error
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		lastErr = mw(okHandler)(c)
	}

	httpErr, ok := lastErr.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on third request, got %v", lastErr)
	}
}

func TestRateLimit_TenantsDoNotShareBuckets(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})
	e := echo.New()

	hit := func(clientID string) error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("client_id", clientID)
		return mw(okHandler)(c)
	}

	if err := hit("clnt_a"); err != nil {
		t.Fatalf("first tenant a request failed: %v", err)
	}
	if err := hit("clnt_b"); err != nil {
		t.Fatalf("tenant b must have its own bucket: %v", err)
	}
	if err := hit("clnt_a"); err == nil {
		t.Fatal("expected tenant a to be limited")
	}
}

func TestRequestTimeout_SlowHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec, _, err := run(t, RequestTimeout(20*time.Millisecond), req, func(c echo.Context) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"success":false`) {
		t.Errorf("expected uniform error shape, got %s", rec.Body.String())
	}
}

func TestRequestTimeout_FastHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec, _, err := run(t, RequestTimeout(time.Second), req, okHandler)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestLogger_PassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	rec, _, err := run(t, Logger(zerolog.Nop()), req, okHandler)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRecovery_PanicBecomes500(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, _, err := run(t, Recovery(zerolog.Nop()), req, func(c echo.Context) error {
		panic("boom")
	})
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 error, got %v", err)
	}
}

func TestRecovery_LogCarriesRequestTenant(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/patients", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set("request_id", "req_1")
	c.Set("client_id", "clnt_clinica")

	err := Recovery(logger)(func(c echo.Context) error {
		panic("boom")
	})(c)
	if httpErr, ok := err.(*echo.HTTPError); !ok || httpErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 error, got %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"client_id":"clnt_clinica"`) {
		t.Errorf("expected client_id in panic log, got %s", out)
	}
	if !strings.Contains(out, `"request_id":"req_1"`) {
		t.Errorf("expected request_id in panic log, got %s", out)
	}
}
