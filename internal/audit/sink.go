package audit

import (
	"context"
	"sync"
)

// Sink receives audit events. Implementations must be safe for concurrent
// use.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// InMemorySink keeps events in memory, indexed by wallet. It backs the demo
// deployment and tests.
type InMemorySink struct {
	mu     sync.RWMutex
	events map[string][]Event
}

func NewInMemorySink() *InMemorySink {
	return &InMemorySink{events: make(map[string][]Event)}
}

func (s *InMemorySink) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.WalletAddress] = append(s.events[event.WalletAddress], event)
	return nil
}

// ListByWallet returns a copy of a wallet's events in append order.
func (s *InMemorySink) ListByWallet(_ context.Context, walletAddress string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[walletAddress]...), nil
}
