package backend

import (
	"context"
	"sync"
)

// SessionSource is what the Provider needs from the auth backend;
// tests substitute a fake.
type SessionSource interface {
	CurrentSession(ctx context.Context) (*Session, error)
}

// Provider owns the process-wide authentication state: current user,
// current session and a loading flag. It is the sole writer; every
// other component reads through it.
type Provider struct {
	src SessionSource

	mu       sync.RWMutex
	user     *User
	session  *Session
	loading  bool
	onChange func()
}

func NewProvider(src SessionSource) *Provider {
	return &Provider{src: src, loading: true}
}

// SetOnChange registers a single notification hook, invoked after every
// state transition (outside the lock).
func (p *Provider) SetOnChange(fn func()) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

// Init resolves the initial session. A fetch failure resolves to logged
// out; loading always transitions to false so dependent views never hang.
func (p *Provider) Init(ctx context.Context) {
	session, err := p.src.CurrentSession(ctx)

	p.mu.Lock()
	if err != nil || session == nil {
		p.user = nil
		p.session = nil
	} else {
		p.session = session
		p.user = &session.User
	}
	p.loading = false
	p.mu.Unlock()
	p.notify()
}

// HandleEvent applies a push event from the auth backend. A SIGNED_OUT
// event clears unconditionally; any event carrying a session adopts it;
// a null-session event that is not SIGNED_OUT is ignored, guarding
// against transient notifications during token refresh.
func (p *Provider) HandleEvent(e AuthEvent) {
	p.mu.Lock()
	switch {
	case e.Type == EventSignedOut:
		p.user = nil
		p.session = nil
	case e.Session != nil:
		p.session = e.Session
		p.user = &e.Session.User
	default:
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	p.notify()
}

// Revalidate re-checks the session when the window regains focus. An
// absent session does not clear existing state, avoiding flicker from
// transient focus-check races.
func (p *Provider) Revalidate(ctx context.Context) {
	session, err := p.src.CurrentSession(ctx)
	if err != nil || session == nil {
		return
	}
	p.mu.Lock()
	p.session = session
	p.user = &session.User
	p.mu.Unlock()
	p.notify()
}

func (p *Provider) User() *User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user
}

func (p *Provider) Session() *Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.session
}

func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

func (p *Provider) notify() {
	p.mu.RLock()
	fn := p.onChange
	p.mu.RUnlock()
	if fn != nil {
		fn()
	}
}
