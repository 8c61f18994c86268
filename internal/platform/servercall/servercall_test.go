package servercall

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gestox/gestox/internal/platform/apiclient"
	"github.com/gestox/gestox/internal/platform/tenant"
)

func newContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestTenantFromRequest_ResolutionOrder(t *testing.T) {
	// Cookie beats header beats default.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ClientIDCookie, Value: "clnt_cookie"})
	req.Header.Set(apiclient.ClientIDHeader, "clnt_header")
	c, _ := newContext(req)
	if cfg := TenantFromRequest(c, "clnt_default"); cfg.ClientID != "clnt_cookie" {
		t.Errorf("expected cookie to win, got %q", cfg.ClientID)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(apiclient.ClientIDHeader, "clnt_header")
	c, _ = newContext(req)
	if cfg := TenantFromRequest(c, "clnt_default"); cfg.ClientID != "clnt_header" {
		t.Errorf("expected header fallback, got %q", cfg.ClientID)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	c, _ = newContext(req)
	if cfg := TenantFromRequest(c, "clnt_default"); cfg.ClientID != "clnt_default" {
		t.Errorf("expected default fallback, got %q", cfg.ClientID)
	}
}

func TestTenantFromRequest_ReadsTokenCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AuthTokenCookie, Value: "tok_1"})
	c, _ := newContext(req)
	if cfg := TenantFromRequest(c, "clnt_default"); cfg.Token != "tok_1" {
		t.Errorf("expected token from cookie, got %q", cfg.Token)
	}
}

func TestFetcher_GetBypassesCache(t *testing.T) {
	calls := 0
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": []int{}})
	}))
	t.Cleanup(backend.Close)

	client := apiclient.NewClient(apiclient.Settings{
		BaseURL:         backend.URL,
		DefaultClientID: "clnt_default",
		Timeout:         5 * time.Second,
		Store:           tenant.NewMemoryStore(),
		Logger:          zerolog.Nop(),
	}, apiclient.PresetWithRetry)
	f := New(client, "clnt_default")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, _ := newContext(req)

	for i := 0; i < 2; i++ {
		if _, err := f.Get(c, "/properties"); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 2 {
		t.Errorf("expected cache bypass (2 calls), got %d", calls)
	}
}

func TestFetcher_ScopesTenantFromCookies(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get(apiclient.ClientIDHeader); got != "clnt_imob_01" {
			t.Errorf("expected cookie tenant on the wire, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok_9" {
			t.Errorf("expected bearer token, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": []int{}})
	}))
	t.Cleanup(backend.Close)

	client := apiclient.NewClient(apiclient.Settings{
		BaseURL:         backend.URL,
		DefaultClientID: "clnt_default",
		Timeout:         5 * time.Second,
		Store:           tenant.NewMemoryStore(),
		Logger:          zerolog.Nop(),
	}, apiclient.PresetWithRetry)
	f := New(client, "clnt_default")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ClientIDCookie, Value: "clnt_imob_01"})
	req.AddCookie(&http.Cookie{Name: AuthTokenCookie, Value: "tok_9"})
	c, _ := newContext(req)

	if _, err := f.Get(c, "/properties"); err != nil {
		t.Fatal(err)
	}
}

func TestExpireSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, rec := newContext(req)

	if err := ExpireSession(c, "/login"); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"redirect":"/login"`) {
		t.Errorf("expected redirect in body, got %s", rec.Body.String())
	}

	cleared := map[string]bool{}
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			cleared[ck.Name] = true
		}
	}
	if !cleared[AuthTokenCookie] || !cleared[ClientIDCookie] {
		t.Errorf("expected both cookies cleared, got %v", cleared)
	}
}
