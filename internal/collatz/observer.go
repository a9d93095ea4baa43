package collatz

import (
	"sync"

	"github.com/agbru/collatz/internal/logging"
)

// Progress is a snapshot of a running engine.
type Progress struct {
	// Bytes is the size of the working buffer.
	Bytes int
	// Iterations is the number of transforms applied so far.
	Iterations uint64
	Mul3       uint64
	Div2       uint64
	// Done is set on the final notification.
	Done bool
}

// Observer receives progress notifications from an engine. Notifications are
// delivered synchronously from the engine's goroutine, so implementations
// must return quickly.
type Observer interface {
	OnProgress(p Progress)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(p Progress)

// OnProgress calls f(p).
func (f ObserverFunc) OnProgress(p Progress) { f(p) }

// NoOpObserver ignores all notifications.
type NoOpObserver struct{}

// NewNoOpObserver creates a new no-op observer.
func NewNoOpObserver() *NoOpObserver { return &NoOpObserver{} }

// OnProgress does nothing.
func (*NoOpObserver) OnProgress(Progress) {}

// MultiObserver fans notifications out to a set of observers. Observers may
// be registered concurrently with notifications.
type MultiObserver struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewMultiObserver creates a MultiObserver notifying obs.
func NewMultiObserver(obs ...Observer) *MultiObserver {
	m := &MultiObserver{}
	for _, o := range obs {
		m.Register(o)
	}
	return m
}

// Register adds an observer. Nil observers are ignored.
func (m *MultiObserver) Register(o Observer) {
	if o == nil {
		return
	}
	m.mu.Lock()
	m.observers = append(m.observers, o)
	m.mu.Unlock()
}

// Len returns the number of registered observers.
func (m *MultiObserver) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.observers)
}

// OnProgress notifies every registered observer in registration order.
func (m *MultiObserver) OnProgress(p Progress) {
	m.mu.RLock()
	obs := m.observers
	m.mu.RUnlock()
	for _, o := range obs {
		o.OnProgress(p)
	}
}

// ChannelObserver forwards notifications to a channel without blocking. When
// the channel is full the notification is dropped; the final notification
// replaces the oldest pending one instead.
type ChannelObserver struct {
	ch chan Progress
}

// NewChannelObserver creates a new channel observer sending on ch.
func NewChannelObserver(ch chan Progress) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnProgress sends p on the channel if there is room.
func (c *ChannelObserver) OnProgress(p Progress) {
	select {
	case c.ch <- p:
		return
	default:
	}
	if !p.Done {
		return
	}
	select {
	case <-c.ch:
	default:
	}
	select {
	case c.ch <- p:
	default:
	}
}

// LoggingObserver writes every notification to a logger at debug level.
type LoggingObserver struct {
	logger logging.Logger
}

// NewLoggingObserver creates a new logging observer.
func NewLoggingObserver(logger logging.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// OnProgress logs p.
func (l *LoggingObserver) OnProgress(p Progress) {
	l.logger.Debug("progress",
		logging.Int("bytes", p.Bytes),
		logging.Uint64("iterations", p.Iterations),
		logging.Uint64("mul3", p.Mul3),
		logging.Uint64("div2", p.Div2),
		logging.Bool("done", p.Done),
	)
}
