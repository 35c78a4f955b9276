package dashboard

import (
	"sync"
	"time"
)

// statusMessage owns the transient message slot. Every message schedules
// its own clear and cancels the one pending for the message it replaces,
// so a stale timer never wipes a newer message.
type statusMessage struct {
	mu    sync.Mutex
	view  View
	delay time.Duration
	seq   uint64
	timer *time.Timer
}

func newStatusMessage(view View, delay time.Duration) *statusMessage {
	return &statusMessage{view: view, delay: delay}
}

func (m *statusMessage) show(msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	if m.timer != nil {
		m.timer.Stop()
	}
	m.view.SetMessage(msg)

	seq := m.seq
	m.timer = time.AfterFunc(m.delay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.seq != seq {
			return
		}
		m.timer = nil
		m.view.SetMessage(Message{})
	})
}

// stop cancels any pending clear.
func (m *statusMessage) stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
