// Package notice holds a screen's transient feedback message.
package notice

import (
	"sync"
	"time"
)

type Variant string

const (
	Success Variant = "success"
	Danger  Variant = "danger"
	Warning Variant = "warning"
)

const DefaultTTL = 3 * time.Second

type Message struct {
	Text    string  `json:"message"`
	Variant Variant `json:"variant"`
}

func (m Message) Empty() bool { return m.Text == "" }

// Notice shows one message at a time and clears it after a fixed delay. A
// newer message restarts the delay; Close stops it for good.
type Notice struct {
	ttl time.Duration

	mu     sync.Mutex
	msg    Message
	timer  *time.Timer
	gen    uint64
	closed bool
}

func New(ttl time.Duration) *Notice {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notice{ttl: ttl}
}

func (n *Notice) Show(text string, v Variant) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}

	n.stop()
	n.gen++
	g := n.gen
	n.msg = Message{Text: text, Variant: v}
	n.timer = time.AfterFunc(n.ttl, func() { n.dismiss(g) })
}

func (n *Notice) Current() Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msg
}

func (n *Notice) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.stop()
	n.gen++
	n.msg = Message{}
}

func (n *Notice) dismiss(g uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if g != n.gen {
		return
	}
	n.msg = Message{}
	n.timer = nil
}

func (n *Notice) stop() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
