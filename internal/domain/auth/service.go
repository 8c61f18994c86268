// Package auth proxies the backend's session endpoints. Login exchanges
// credentials for a token pair, stores it for the session client and mirrors
// it into the browser cookies; logout tears both down.
package auth

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gestox/gestox/internal/platform/action"
	"github.com/gestox/gestox/internal/platform/apiclient"
	"github.com/gestox/gestox/internal/platform/tenant"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	ClientID string `json:"client_id,omitempty"`
}

// Session is the established session returned to the dashboard. The refresh
// token stays server-side in the tenant store.
type Session struct {
	ClientID string `json:"client_id"`
	Token    string `json:"token"`
	Nome     string `json:"nome,omitempty"`
	Email    string `json:"email,omitempty"`
}

type Service struct {
	api *apiclient.Client
	log zerolog.Logger
}

// NewService wants the fast-fail client: a login attempt with bad
// credentials must not trigger a refresh cycle.
func NewService(api *apiclient.Client, log zerolog.Logger) *Service {
	return &Service{api: api, log: log}
}

func (s *Service) Login(ctx context.Context, creds Credentials) action.Result[Session] {
	opts := []apiclient.CallOption{}
	if creds.ClientID != "" {
		opts = append(opts, apiclient.WithClientID(creds.ClientID))
	}

	env, err := s.api.Post(ctx, "/auth/login", map[string]string{
		"email":    creds.Email,
		"password": creds.Password,
	}, opts...)
	if err != nil {
		s.log.Warn().Err(err).Str("email", creds.Email).Msg("login failed")
		return action.Fail[Session](err)
	}

	var payload struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
		ClientID     string `json:"clientId"`
		User         struct {
			FullName string `json:"fullName"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	if err := env.Decode(&payload); err != nil {
		return action.Fail[Session](err)
	}

	clientID := payload.ClientID
	if clientID == "" {
		clientID = creds.ClientID
	}
	s.api.Store().Set(tenant.Config{
		ClientID:     clientID,
		Token:        payload.Token,
		RefreshToken: payload.RefreshToken,
	})

	return action.OK(Session{
		ClientID: clientID,
		Token:    payload.Token,
		Nome:     payload.User.FullName,
		Email:    payload.User.Email,
	})
}

// Logout invalidates the backend session best-effort and always clears the
// local credentials.
func (s *Service) Logout(ctx context.Context) {
	if _, err := s.api.Post(ctx, "/auth/logout", nil); err != nil {
		s.log.Debug().Err(err).Msg("backend logout failed, clearing local session anyway")
	}
	s.api.ClearAuth()
}

// Me fetches the authenticated profile.
func (s *Service) Me(ctx context.Context) action.Result[Session] {
	env, err := s.api.Get(ctx, "/auth/me")
	if err != nil {
		return action.Fail[Session](err)
	}
	var payload struct {
		ClientID string `json:"clientId"`
		FullName string `json:"fullName"`
		Email    string `json:"email"`
	}
	if err := env.Decode(&payload); err != nil {
		return action.Fail[Session](err)
	}
	return action.OK(Session{
		ClientID: payload.ClientID,
		Nome:     payload.FullName,
		Email:    payload.Email,
	})
}
