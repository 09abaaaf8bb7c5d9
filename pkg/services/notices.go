package services

import (
	"sync"
	"time"
)

// DefaultNoticeTTL is how long a notice stays on screen.
const DefaultNoticeTTL = 2 * time.Second

// NoticeCenter holds the single transient notice. A new notice replaces
// the current one and restarts the clock; notices never stack.
type NoticeCenter struct {
	mu       sync.Mutex
	text     string
	ttl      time.Duration
	timer    *time.Timer
	gen      int
	onChange func()
}

func NewNoticeCenter() *NoticeCenter {
	return &NoticeCenter{ttl: DefaultNoticeTTL}
}

func (n *NoticeCenter) SetTTL(d time.Duration) {
	n.mu.Lock()
	n.ttl = d
	n.mu.Unlock()
}

func (n *NoticeCenter) SetOnChange(fn func()) {
	n.mu.Lock()
	n.onChange = fn
	n.mu.Unlock()
}

func (n *NoticeCenter) Show(text string) {
	n.mu.Lock()
	n.text = text
	n.gen++
	gen := n.gen
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(gen) })
	n.mu.Unlock()
	n.notify()
}

// Current returns the visible notice, empty when none.
func (n *NoticeCenter) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.text
}

// expire only clears the notice it was armed for. Stop cannot win a
// race against a callback already waiting on the lock, so a superseded
// timer may still fire; the generation check makes it a no-op.
func (n *NoticeCenter) expire(gen int) {
	n.mu.Lock()
	if gen != n.gen {
		n.mu.Unlock()
		return
	}
	n.text = ""
	n.timer = nil
	n.mu.Unlock()
	n.notify()
}

func (n *NoticeCenter) notify() {
	n.mu.Lock()
	fn := n.onChange
	n.mu.Unlock()
	if fn != nil {
		fn()
	}
}
