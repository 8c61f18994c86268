package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// refreshResult carries the outcome of one refresh round trip, shared by
// every caller that was waiting on it.
type refreshResult struct {
	done  chan struct{}
	token string
	err   error
}

// refresher serializes token refreshes per tenant. Concurrent 401s for the
// same client id share a single in-flight refresh call instead of each
// triggering its own; different tenants refresh independently and never see
// each other's result.
type refresher struct {
	mu       sync.Mutex
	inflight map[string]*refreshResult
}

// run executes fn once per client id and hands its result to every
// concurrent caller waiting on the same id.
func (r *refresher) run(ctx context.Context, clientID string, fn func() (string, error)) (string, error) {
	r.mu.Lock()
	if call := r.inflight[clientID]; call != nil {
		r.mu.Unlock()
		select {
		case <-call.done:
			return call.token, call.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	call := &refreshResult{done: make(chan struct{})}
	if r.inflight == nil {
		r.inflight = make(map[string]*refreshResult)
	}
	r.inflight[clientID] = call
	r.mu.Unlock()

	call.token, call.err = fn()
	close(call.done)

	r.mu.Lock()
	delete(r.inflight, clientID)
	r.mu.Unlock()

	return call.token, call.err
}

// refreshTokens calls the backend refresh endpoint with the current tenant
// scope. On success it returns the new credential pair; HTTP failures come
// back as *APIError.
func (c *Client) refreshTokens(ctx context.Context, clientID, refreshToken string) (string, string, error) {
	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return "", "", fmt.Errorf("marshal refresh payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return "", "", fmt.Errorf("build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ClientIDHeader, clientID)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", statusError(resp.StatusCode, "token refresh rejected", nil)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Token        string `json:"token"`
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", "", fmt.Errorf("decode refresh response: %w", err)
	}
	if body.Data.Token == "" {
		return "", "", statusError(resp.StatusCode, "refresh response missing token", body.Message)
	}
	return body.Data.Token, body.Data.RefreshToken, nil
}

// tokenExpired reports whether a bearer token's exp claim is already past.
// The token is inspected without signature verification: the backend remains
// the authority, this only saves a round trip that would 401. Tokens that
// cannot be parsed are treated as live and left for the backend to judge.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
