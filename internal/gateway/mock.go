package gateway

import (
	"context"
	"sync"
)

// MockNotifier is a test double for the Notifier interface. It records every
// message and returns the configured outcome.
type MockNotifier struct {
	Outcome Outcome
	Err     error

	mu    sync.Mutex
	Sends []MockSend
}

// MockSend is one recorded delivery attempt.
type MockSend struct {
	UserID int64
	Text   string
}

// Notify records the call and returns the mock outcome.
func (m *MockNotifier) Notify(ctx context.Context, userID int64, text string) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sends = append(m.Sends, MockSend{UserID: userID, Text: text})
	return m.Outcome, m.Err
}

// SentTo returns the messages recorded for the given user.
func (m *MockNotifier) SentTo(userID int64) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, s := range m.Sends {
		if s.UserID == userID {
			out = append(out, s.Text)
		}
	}
	return out
}

// Count returns the total number of recorded deliveries.
func (m *MockNotifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sends)
}
