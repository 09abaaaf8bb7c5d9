package backend

import (
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// TokenStore persists the auth tokens between runs. Implemented by the
// local data store; a nil store keeps the session in memory only.
type TokenStore interface {
	LoadTokens() (access, refresh string, ok bool)
	SaveTokens(access, refresh string) error
	ClearTokens() error
}

// Client talks to the managed backend: auth sessions, row storage with
// declared conflict targets, and bucket file storage.
type Client struct {
	http    *resty.Client
	baseURL string
	anonKey string
	tokens  TokenStore

	mu        sync.Mutex
	session   *Session
	listeners []func(AuthEvent)
}

func New(baseURL, anonKey string, tokens TokenStore) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetHeader("apikey", anonKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
	return &Client{
		http:    http,
		baseURL: baseURL,
		anonKey: anonKey,
		tokens:  tokens,
	}
}

// OnAuthChange registers a push listener for auth state changes.
func (c *Client) OnAuthChange(fn func(AuthEvent)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Client) emit(e AuthEvent) {
	c.mu.Lock()
	listeners := make([]func(AuthEvent), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn(e)
	}
}

// accessToken returns the bearer used for row/storage requests: the
// session token when signed in, the anon key otherwise.
func (c *Client) accessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil && c.session.AccessToken != "" {
		return c.session.AccessToken
	}
	return c.anonKey
}
