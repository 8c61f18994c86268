// Package apiclient is the gateway's single HTTP client for the backend
// REST API. It injects tenant and auth headers on every request, normalizes
// success and error shapes, recovers from expired tokens with a single
// silent refresh, and memoizes GET responses for a short window.
//
// There is one client implementation with two named presets. The presets
// differ in error-recovery guarantees and must not be merged silently:
// PresetWithRetry performs the refresh-on-401 dance and caches GETs, while
// PresetFastFail uses a shorter timeout and surfaces the 401 as-is.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/gestox/gestox/internal/platform/tenant"
)

// ClientIDHeader scopes every backend request to one tenant.
const ClientIDHeader = "x-client-id"

// Preset names a client configuration profile.
type Preset int

const (
	// PresetWithRetry refreshes the token once on 401 and caches GETs.
	PresetWithRetry Preset = iota
	// PresetFastFail never refreshes and never caches; 401s pass through.
	PresetFastFail
)

// Settings holds the client's wiring. The zero Timeout and CacheTTL get
// sensible defaults.
type Settings struct {
	BaseURL         string
	DefaultClientID string
	Timeout         time.Duration
	CacheTTL        time.Duration
	Store           tenant.Store
	Logger          zerolog.Logger
}

type Client struct {
	baseURL         string
	defaultClientID string
	http            *http.Client
	store           tenant.Store
	cache           *ResponseCache
	log             zerolog.Logger
	refresh         refresher

	retryOn401   bool
	cacheEnabled bool
}

func NewClient(s Settings, preset Preset) *Client {
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}
	if s.CacheTTL <= 0 {
		s.CacheTTL = 30 * time.Second
	}
	if s.Store == nil {
		s.Store = tenant.NewMemoryStore()
	}

	c := &Client{
		baseURL:         s.BaseURL,
		defaultClientID: s.DefaultClientID,
		http:            &http.Client{Timeout: s.Timeout},
		store:           s.Store,
		cache:           NewResponseCache(s.CacheTTL),
		log:             s.Logger,
	}

	switch preset {
	case PresetFastFail:
		c.retryOn401 = false
		c.cacheEnabled = false
	default:
		c.retryOn401 = true
		c.cacheEnabled = true
	}

	return c
}

// Store exposes the injected tenant store.
func (c *Client) Store() tenant.Store { return c.store }

// Cache exposes the response cache, mainly for cleanup wiring.
func (c *Client) Cache() *ResponseCache { return c.cache }

// ClearAuth tears down all auth state: tenant store and response cache.
// Cached data is tenant-scoped and must not survive a tenant switch.
func (c *Client) ClearAuth() {
	c.store.Clear()
	c.cache.Clear()
}

// ---------------------------------------------------------------------------
// Call options
// ---------------------------------------------------------------------------

// callConfig is serialized (minus the token) into the cache key, so two GETs
// that differ in any option occupy distinct cache slots.
type callConfig struct {
	ClientID string            `json:"clientId,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
	Query    map[string]string `json:"query,omitempty"`

	token       string
	useCache    bool
	useCacheSet bool
}

type CallOption func(*callConfig)

// WithClientID overrides the tenant scope for a single call.
func WithClientID(id string) CallOption {
	return func(cc *callConfig) { cc.ClientID = id }
}

// WithToken overrides the bearer credential for a single call.
func WithToken(token string) CallOption {
	return func(cc *callConfig) { cc.token = token }
}

// WithHeader adds an extra request header. Caller-supplied headers win over
// the computed ones of the same name.
func WithHeader(key, value string) CallOption {
	return func(cc *callConfig) {
		if cc.Headers == nil {
			cc.Headers = make(map[string]string)
		}
		cc.Headers[key] = value
	}
}

// WithQuery adds a query string parameter.
func WithQuery(key, value string) CallOption {
	return func(cc *callConfig) {
		if cc.Query == nil {
			cc.Query = make(map[string]string)
		}
		cc.Query[key] = value
	}
}

// WithoutCache disables the response cache for a single GET.
func WithoutCache() CallOption {
	return func(cc *callConfig) {
		cc.useCache = false
		cc.useCacheSet = true
	}
}

// ---------------------------------------------------------------------------
// Verbs
// ---------------------------------------------------------------------------

func (c *Client) Get(ctx context.Context, path string, opts ...CallOption) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil, opts)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}, opts ...CallOption) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, body, opts)
}

func (c *Client) Put(ctx context.Context, path string, body interface{}, opts ...CallOption) (*Envelope, error) {
	return c.do(ctx, http.MethodPut, path, body, opts)
}

func (c *Client) Delete(ctx context.Context, path string, opts ...CallOption) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, nil, opts)
}

// ---------------------------------------------------------------------------
// Core request path
// ---------------------------------------------------------------------------

func (c *Client) do(ctx context.Context, method, path string, body interface{}, opts []CallOption) (*Envelope, error) {
	cc := callConfig{useCache: true}
	for _, opt := range opts {
		opt(&cc)
	}

	fullURL := c.baseURL + path
	if len(cc.Query) > 0 {
		q := url.Values{}
		for k, v := range cc.Query {
			q.Set(k, v)
		}
		fullURL += "?" + q.Encode()
	}

	clientID, token := c.resolveIdentity(ctx, &cc)

	// A token known to be expired will 401 anyway; refresh it up front.
	if c.retryOn401 && token != "" && tokenExpired(token, time.Now()) {
		if fresh, err := c.refreshAndStore(ctx, clientID, token); err == nil {
			token = fresh
		}
	}

	useCache := c.cacheEnabled && method == http.MethodGet && cc.useCache
	key := cacheKey(method, clientID, fullURL, &cc)
	if useCache {
		if env, ok := c.cache.Get(key); ok {
			return env, nil
		}
	}

	env, status, err := c.send(ctx, method, fullURL, body, clientID, token, cc.Headers)
	if err != nil {
		return nil, transportError(err)
	}

	// Exactly one retry per original request.
	if status == http.StatusUnauthorized && c.retryOn401 {
		fresh, rerr := c.refreshAndStore(ctx, clientID, token)
		if rerr != nil {
			// Tear down only the session that actually failed. A request
			// carrying its own tenant must not wipe the stored one.
			if cur := c.store.Current(); cur != nil && cur.ClientID == clientID {
				c.ClearAuth()
			}
			c.log.Warn().Err(rerr).Str("client_id", clientID).Msg("token refresh failed, session expired")
			return nil, fmt.Errorf("%w: %v", ErrSessionExpired, rerr)
		}
		env, status, err = c.send(ctx, method, fullURL, body, clientID, fresh, cc.Headers)
		if err != nil {
			return nil, transportError(err)
		}
	}

	if status < 200 || status >= 300 {
		return nil, statusError(status, env.Message, nil)
	}

	if useCache {
		c.cache.Set(key, env)
	}
	return env, nil
}

// send performs one round trip and shapes the body into an envelope. The
// returned error covers only transport failures; HTTP status handling is the
// caller's job.
func (c *Client) send(ctx context.Context, method, fullURL string, body interface{}, clientID, token string, extra map[string]string) (*Envelope, int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ClientIDHeader, clientID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response body: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	return parseEnvelope(raw, ok), resp.StatusCode, nil
}

// resolveIdentity picks the client id and token for a call. Resolution order
// for each: per-call override, request-scoped context, injected store, then
// the configured default tenant (client id only). The client id is always
// non-empty.
func (c *Client) resolveIdentity(ctx context.Context, cc *callConfig) (clientID, token string) {
	clientID = cc.ClientID
	token = cc.token

	if ctxTenant := tenant.FromContext(ctx); ctxTenant != nil {
		if clientID == "" {
			clientID = ctxTenant.ClientID
		}
		if token == "" {
			token = ctxTenant.Token
		}
	}

	if clientID == "" || token == "" {
		if cur := c.store.Current(); cur != nil {
			if clientID == "" {
				clientID = cur.ClientID
			}
			if token == "" {
				token = cur.Token
			}
		}
	}

	if clientID == "" {
		clientID = c.defaultClientID
	}
	return clientID, token
}

// refreshAndStore rotates the bearer token for clientID. staleToken is the
// credential that just failed; if another caller already rotated past it,
// the stored token is reused without a second refresh round trip. The store
// only backs the tenant it holds: a failing identity that came from the
// request context or a per-call override must not borrow another tenant's
// credentials, so for any other clientID this fails outright.
func (c *Client) refreshAndStore(ctx context.Context, clientID, staleToken string) (string, error) {
	return c.refresh.run(ctx, clientID, func() (string, error) {
		cur := c.store.Current()
		if cur == nil || cur.ClientID != clientID {
			return "", fmt.Errorf("no stored credentials for client %s", clientID)
		}
		if cur.Token != "" && cur.Token != staleToken {
			return cur.Token, nil
		}
		if cur.RefreshToken == "" {
			return "", fmt.Errorf("no refresh token available")
		}
		token, newRefresh, err := c.refreshTokens(ctx, clientID, cur.RefreshToken)
		if err != nil {
			return "", err
		}
		if newRefresh == "" {
			newRefresh = cur.RefreshToken
		}
		c.store.Set(tenant.Config{ClientID: cur.ClientID, Token: token, RefreshToken: newRefresh})
		return token, nil
	})
}

// cacheKey includes the resolved client id so entries stay tenant-scoped:
// the same path fetched for two tenants must never share a slot.
func cacheKey(method, clientID, fullURL string, cc *callConfig) string {
	sig, _ := json.Marshal(cc)
	return method + ":" + clientID + ":" + fullURL + ":" + string(sig)
}
