package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestox/gestox/internal/platform/tenant"
)

func newTestClient(t *testing.T, handler http.Handler, preset Preset, store tenant.Store) *Client {
	t.Helper()
	backend := httptest.NewServer(handler)
	t.Cleanup(backend.Close)

	return NewClient(Settings{
		BaseURL:         backend.URL,
		DefaultClientID: "clnt_default",
		Timeout:         5 * time.Second,
		CacheTTL:        30 * time.Second,
		Store:           store,
		Logger:          zerolog.Nop(),
	}, preset)
}

func envelopeOK(data interface{}) []byte {
	b, _ := json.Marshal(map[string]interface{}{"success": true, "data": data})
	return b
}

// -- Header resolution --

func TestHeaders_DefaultClientIDWhenAnonymous(t *testing.T) {
	var gotClientID, gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClientID = r.Header.Get(ClientIDHeader)
		gotAuth = r.Header.Get("Authorization")
		w.Write(envelopeOK("pong"))
	}), PresetWithRetry, tenant.NewMemoryStore())

	if _, err := c.Get(context.Background(), "/ping"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotClientID != "clnt_default" {
		t.Errorf("expected default client id, got %q", gotClientID)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestHeaders_StoreBeatsDefault(t *testing.T) {
	var gotClientID, gotAuth string
	store := tenant.NewMemoryStore()
	store.Set(tenant.Config{ClientID: "clnt_store", Token: "tok_store"})

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClientID = r.Header.Get(ClientIDHeader)
		gotAuth = r.Header.Get("Authorization")
		w.Write(envelopeOK("pong"))
	}), PresetWithRetry, store)

	if _, err := c.Get(context.Background(), "/ping"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotClientID != "clnt_store" {
		t.Errorf("expected clnt_store, got %q", gotClientID)
	}
	if gotAuth != "Bearer tok_store" {
		t.Errorf("expected store token, got %q", gotAuth)
	}
}

func TestHeaders_ContextBeatsStore(t *testing.T) {
	var gotClientID string
	store := tenant.NewMemoryStore()
	store.Set(tenant.Config{ClientID: "clnt_store"})

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClientID = r.Header.Get(ClientIDHeader)
		w.Write(envelopeOK("pong"))
	}), PresetWithRetry, store)

	ctx := tenant.NewContext(context.Background(), &tenant.Config{ClientID: "clnt_ctx"})
	if _, err := c.Get(ctx, "/ping"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotClientID != "clnt_ctx" {
		t.Errorf("expected clnt_ctx, got %q", gotClientID)
	}
}

func TestHeaders_ExplicitOverrideWins(t *testing.T) {
	var gotClientID string
	store := tenant.NewMemoryStore()
	store.Set(tenant.Config{ClientID: "clnt_store"})

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClientID = r.Header.Get(ClientIDHeader)
		w.Write(envelopeOK("pong"))
	}), PresetWithRetry, store)

	ctx := tenant.NewContext(context.Background(), &tenant.Config{ClientID: "clnt_ctx"})
	if _, err := c.Get(ctx, "/ping", WithClientID("clnt_override")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotClientID != "clnt_override" {
		t.Errorf("expected clnt_override, got %q", gotClientID)
	}
}

func TestHeaders_CallerHeaderBeatsComputed(t *testing.T) {
	var gotContentType string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Write(envelopeOK("pong"))
	}), PresetWithRetry, tenant.NewMemoryStore())

	if _, err := c.Get(context.Background(), "/ping", WithHeader("Content-Type", "application/fhir+json")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotContentType != "application/fhir+json" {
		t.Errorf("expected caller header to win, got %q", gotContentType)
	}
}

// -- Envelope handling --

func TestEnvelope_BarePayloadIsWrapped(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"x_1"}`))
	}), PresetWithRetry, tenant.NewMemoryStore())

	env, err := c.Get(context.Background(), "/things/x_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !env.Success {
		t.Error("expected synthesized success")
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := env.Decode(&out); err != nil || out.ID != "x_1" {
		t.Errorf("expected payload passthrough, got %+v err %v", out, err)
	}
}

// -- Error normalization --

func TestErrors_TransportFailure(t *testing.T) {
	c := NewClient(Settings{
		BaseURL:         "http://127.0.0.1:1", // nothing listens here
		DefaultClientID: "clnt_default",
		Timeout:         500 * time.Millisecond,
		Logger:          zerolog.Nop(),
	}, PresetFastFail)

	_, err := c.Get(context.Background(), "/ping")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != CodeUnknown {
		t.Errorf("expected UNKNOWN_ERROR, got %s", apiErr.Code)
	}
}

func TestErrors_NonOKStatusCarriesBackendMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"success":false,"message":"data invalida"}`))
	}), PresetFastFail, tenant.NewMemoryStore())

	_, err := c.Post(context.Background(), "/things", map[string]string{"a": "b"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "422" || apiErr.Message != "data invalida" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestErrors_UnparseableErrorBodyFallsBack(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}), PresetFastFail, tenant.NewMemoryStore())

	_, err := c.Get(context.Background(), "/ping")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "502" {
		t.Errorf("expected 502, got %s", apiErr.Code)
	}
	if apiErr.Message == "" {
		t.Error("expected generic fallback message")
	}
}

// -- 401 refresh-and-retry --

func TestRefresh_RetriesOnceWithNewToken(t *testing.T) {
	store := tenant.NewMemoryStore()
	store.Set(tenant.Config{ClientID: "clnt_x", Token: "tok_stale", RefreshToken: "ref_1"})

	var mu sync.Mutex
	var authHeaders []string
	var refreshCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		refreshCalls++
		mu.Unlock()
		w.Write(envelopeOK(map[string]string{"token": "tok_fresh", "refreshToken": "ref_2"}))
	})
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer tok_fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write(envelopeOK([]string{}))
	})

	c := newTestClient(t, mux, PresetWithRetry, store)

	if _, err := c.Get(context.Background(), "/things"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if refreshCalls != 1 {
		t.Errorf("expected exactly one refresh call, got %d", refreshCalls)
	}
	if len(authHeaders) != 2 || authHeaders[1] != "Bearer tok_fresh" {
		t.Errorf("expected retry with fresh token, got %v", authHeaders)
	}

	cur := store.Current()
	if cur == nil || cur.Token != "tok_fresh" || cur.RefreshToken != "ref_2" {
		t.Errorf("expected store updated with new credentials, got %+v", cur)
	}
}

func TestRefresh_NoRefreshTokenTearsDownSession(t *testing.T) {
	store := tenant.NewMemoryStore()
	store.Set(tenant.Config{ClientID: "clnt_x", Token: "tok_stale"})

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), PresetWithRetry, store)

	_, err := c.Get(context.Background(), "/things")
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if store.Current() != nil {
		t.Error("expected tenant store cleared on teardown")
	}
}

func TestRefresh_FailedRefreshTearsDownSession(t *testing.T) {
	store := tenant.NewMemoryStore()
	store.Set(tenant.Config{ClientID: "clnt_x", Token: "tok_stale", RefreshToken: "ref_dead"})

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	c := newTestClient(t, mux, PresetWithRetry, store)

	_, err := c.Get(context.Background(), "/things")
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if store.Current() != nil {
		t.Error("expected tenant store cleared")
	}
}

func TestRefresh_ContextTenantNeverBorrowsStoredCredentials(t *testing.T) {
	store := tenant.NewMemoryStore()
	store.Set(tenant.Config{ClientID: "clnt_clinic_a", Token: "tok_a", RefreshToken: "ref_a"})

	var mu sync.Mutex
	var authHeaders []string
	var refreshCalls int

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		refreshCalls++
		mu.Unlock()
		w.Write(envelopeOK(map[string]string{"token": "tok_rotated"}))
	})
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		mu.Unlock()
		w.WriteHeader(http.StatusUnauthorized)
	})

	c := newTestClient(t, mux, PresetWithRetry, store)

	ctx := tenant.NewContext(context.Background(), &tenant.Config{ClientID: "clnt_imob_b", Token: "tok_b"})
	_, err := c.Get(ctx, "/things")
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if refreshCalls != 0 {
		t.Errorf("expected no refresh attempt with another tenant's refresh token, got %d", refreshCalls)
	}
	if len(authHeaders) != 1 {
		t.Fatalf("expected no retry for a tenant without stored credentials, got %d calls", len(authHeaders))
	}
	if authHeaders[0] != "Bearer tok_b" {
		t.Errorf("expected the request's own token, got %q", authHeaders[0])
	}

	cur := store.Current()
	if cur == nil || cur.ClientID != "clnt_clinic_a" || cur.Token != "tok_a" {
		t.Errorf("expected the stored tenant's session left intact, got %+v", cur)
	}
}

func TestRefresh_FastFailPresetDoesNotRetry(t *testing.T) {
	store := tenant.NewMemoryStore()
	store.Set(tenant.Config{ClientID: "clnt_x", Token: "tok_stale", RefreshToken: "ref_1"})

	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}), PresetFastFail, store)

	_, err := c.Get(context.Background(), "/things")
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected plain 401, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected one call, got %d", calls)
	}
	if store.Current() == nil {
		t.Error("fast-fail must not tear down the session")
	}
}

func TestRefresh_Concurrent401sShareOneRefresh(t *testing.T) {
	store := tenant.NewMemoryStore()
	store.Set(tenant.Config{ClientID: "clnt_x", Token: "tok_stale", RefreshToken: "ref_1"})

	var refreshCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshCalls, 1)
		time.Sleep(50 * time.Millisecond) // hold concurrent callers in flight
		w.Write(envelopeOK(map[string]string{"token": "tok_fresh"}))
	})
	mux.HandleFunc("/things", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok_fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write(envelopeOK("ok"))
	})

	c := newTestClient(t, mux, PresetWithRetry, store)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = c.Get(context.Background(), "/things", WithoutCache())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("call %d failed: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&refreshCalls); got != 1 {
		t.Errorf("expected one shared refresh, got %d", got)
	}
}

// -- GET cache --

func TestCache_SecondGETWithinWindowSkipsNetwork(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write(envelopeOK([]string{"a"}))
	}), PresetWithRetry, tenant.NewMemoryStore())

	ctx := context.Background()
	if _, err := c.Get(ctx, "/things"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get(ctx, "/things"); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected exactly one network call, got %d", got)
	}
}

func TestCache_DistinctQueriesDoNotCollide(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write(envelopeOK(r.URL.RawQuery))
	}), PresetWithRetry, tenant.NewMemoryStore())

	ctx := context.Background()
	c.Get(ctx, "/things", WithQuery("status", "PENDING"))
	c.Get(ctx, "/things", WithQuery("status", "PAID"))
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected two network calls, got %d", got)
	}
}

func TestCache_EntriesAreTenantScoped(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write(envelopeOK(r.Header.Get(ClientIDHeader)))
	}), PresetWithRetry, tenant.NewMemoryStore())

	ctxA := tenant.NewContext(context.Background(), &tenant.Config{ClientID: "clnt_clinic_a"})
	ctxB := tenant.NewContext(context.Background(), &tenant.Config{ClientID: "clnt_imob_b"})

	fetch := func(ctx context.Context) string {
		env, err := c.Get(ctx, "/things")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got string
		if err := env.Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return got
	}

	if got := fetch(ctxA); got != "clnt_clinic_a" {
		t.Errorf("tenant A saw %q", got)
	}
	if got := fetch(ctxB); got != "clnt_imob_b" {
		t.Errorf("tenant B saw %q, must not be served tenant A's cache entry", got)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected one network call per tenant, got %d", got)
	}
	// A repeat within the window still hits the cache for the same tenant.
	fetch(ctxA)
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected same-tenant repeat to be served from cache, got %d calls", got)
	}
}

func TestCache_MutationsBypassCache(t *testing.T) {
	var gets, posts int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			atomic.AddInt32(&posts, 1)
		} else {
			atomic.AddInt32(&gets, 1)
		}
		w.Write(envelopeOK("ok"))
	}), PresetWithRetry, tenant.NewMemoryStore())

	ctx := context.Background()
	c.Post(ctx, "/things", map[string]string{"n": "1"})
	c.Post(ctx, "/things", map[string]string{"n": "1"})
	if atomic.LoadInt32(&posts) != 2 {
		t.Errorf("expected POSTs to always hit the network, got %d", posts)
	}
}

func TestCache_WithoutCacheOptionForcesFetch(t *testing.T) {
	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write(envelopeOK("ok"))
	}), PresetWithRetry, tenant.NewMemoryStore())

	ctx := context.Background()
	c.Get(ctx, "/things", WithoutCache())
	c.Get(ctx, "/things", WithoutCache())
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected two network calls, got %d", got)
	}
}

func TestClearAuth_ClearsStoreAndCache(t *testing.T) {
	store := tenant.NewMemoryStore()
	store.Set(tenant.Config{ClientID: "clnt_x", Token: "tok"})

	var calls int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write(envelopeOK("ok"))
	}), PresetWithRetry, store)

	ctx := context.Background()
	c.Get(ctx, "/things")
	c.ClearAuth()

	if store.Current() != nil {
		t.Error("expected store cleared")
	}
	c.Get(ctx, "/things")
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected cache cleared with auth, got %d calls", got)
	}
}

// -- Health probe --

func TestCheckConnection(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write(envelopeOK("up"))
	}), PresetWithRetry, tenant.NewMemoryStore())

	if err := c.CheckConnection(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCheckConnection_Down(t *testing.T) {
	c := NewClient(Settings{
		BaseURL:         "http://127.0.0.1:1",
		DefaultClientID: "clnt_default",
		Logger:          zerolog.Nop(),
	}, PresetWithRetry)

	if err := c.CheckConnection(context.Background()); err == nil {
		t.Error("expected error for unreachable backend")
	}
}
