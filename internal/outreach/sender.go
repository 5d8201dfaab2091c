package outreach

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mountainops/lifthire/internal/logger"
)

// Message is a rendered outbound email.
type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// Sender delivers rendered invites. The pipeline only ever talks to
// this interface; swapping delivery modes never touches pipeline code.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// MockSender records messages instead of delivering them. It is the
// default delivery mode and the one tests assert against.
type MockSender struct {
	logger *zap.Logger

	mu   sync.Mutex
	sent []Message
}

func NewMockSender(l *zap.Logger) *MockSender {
	if l == nil {
		l = zap.NewNop()
	}
	return &MockSender{logger: l}
}

func (m *MockSender) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()

	m.logger.Info("mock email delivered",
		zap.String(logger.FieldAction, "send_email"),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// Sent returns a copy of every message delivered so far.
func (m *MockSender) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.sent))
	copy(out, m.sent)
	return out
}
