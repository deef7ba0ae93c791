package history

import (
	"sync"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
	At      time.Time
}

// Manager keeps the turns of the current conversation in order.
type Manager struct {
	mu      sync.RWMutex
	entries []Message
	now     func() time.Time
}

func NewManager() *Manager {
	return &Manager{now: time.Now}
}

func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
}

func (m *Manager) AppendUser(content string) {
	m.append(RoleUser, content)
}

func (m *Manager) AppendAssistant(content string) {
	m.append(RoleAssistant, content)
}

func (m *Manager) append(role, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Message{Role: role, Content: content, At: m.now()})
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Recent returns a copy of the last n messages; n <= 0 returns all of them.
func (m *Manager) Recent(n int) []Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	es := m.entries
	if n > 0 && len(es) > n {
		es = es[len(es)-n:]
	}
	out := make([]Message, len(es))
	copy(out, es)
	return out
}

// LastUser returns the most recent user message, if any.
func (m *Manager) LastUser() (Message, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].Role == RoleUser {
			return m.entries[i], true
		}
	}
	return Message{}, false
}
