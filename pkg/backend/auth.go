package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type User struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"user_metadata"`
}

// DisplayName picks the friendliest available label for the user.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if name, ok := u.Metadata["full_name"].(string); ok && name != "" {
		return name
	}
	if u.Email != "" {
		return u.Email
	}
	return "Usuário"
}

type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`

	expiresAt time.Time
}

func (s *Session) Expired() bool {
	return s == nil || (!s.expiresAt.IsZero() && time.Now().After(s.expiresAt))
}

type AuthEventType string

const (
	EventSignedIn       AuthEventType = "SIGNED_IN"
	EventSignedOut      AuthEventType = "SIGNED_OUT"
	EventTokenRefreshed AuthEventType = "TOKEN_REFRESHED"
)

type AuthEvent struct {
	Type    AuthEventType
	Session *Session
}

// CurrentSession returns the active session, refreshing it when it has
// expired and a refresh token is known (in memory or persisted). A nil
// session with a nil error means "not signed in".
func (c *Client) CurrentSession(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	session := c.session
	c.mu.Unlock()

	if session != nil && !session.Expired() {
		return session, nil
	}

	refresh := ""
	if session != nil {
		refresh = session.RefreshToken
	} else if c.tokens != nil {
		if _, rt, ok := c.tokens.LoadTokens(); ok {
			refresh = rt
		}
	}
	if refresh == "" {
		return nil, nil
	}

	renewed, err := c.exchangeRefreshToken(ctx, refresh)
	if err != nil {
		return nil, err
	}
	c.setSession(renewed)
	c.emit(AuthEvent{Type: EventTokenRefreshed, Session: renewed})
	return renewed, nil
}

// SignInWithRefreshToken bootstraps a session from a refresh token
// obtained out of band (the OAuth redirect fragment).
func (c *Client) SignInWithRefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	session, err := c.exchangeRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	c.setSession(session)
	c.emit(AuthEvent{Type: EventSignedIn, Session: session})
	return session, nil
}

func (c *Client) SignOut() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
	if c.tokens != nil {
		c.tokens.ClearTokens()
	}
	c.emit(AuthEvent{Type: EventSignedOut})
}

// OAuthURL builds the third-party identity provider authorize URL; the
// user completes the flow in a browser and pastes the refresh token back.
func (c *Client) OAuthURL(provider, redirectTo string) string {
	q := url.Values{}
	q.Set("provider", provider)
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	return c.baseURL + "/auth/v1/authorize?" + q.Encode()
}

func (c *Client) exchangeRefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	var session Session
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "refresh_token").
		SetBody(map[string]string{"refresh_token": refreshToken}).
		SetResult(&session).
		Post("/auth/v1/token")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("auth: %d %s", resp.StatusCode(), http.StatusText(resp.StatusCode()))
	}
	if session.ExpiresIn > 0 {
		session.expiresAt = time.Now().Add(time.Duration(session.ExpiresIn) * time.Second)
	}
	return &session, nil
}

func (c *Client) setSession(s *Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	if c.tokens != nil && s != nil {
		c.tokens.SaveTokens(s.AccessToken, s.RefreshToken)
	}
}
