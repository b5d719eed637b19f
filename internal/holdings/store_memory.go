package holdings

import (
	"context"
	"sort"
	"sync"

	"bondbuy/pkg/platform/sentinel"
)

// InMemoryStore keeps holdings in a mutex-guarded map keyed by holding id.
type InMemoryStore struct {
	mu       sync.RWMutex
	holdings map[string]Holding
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{holdings: make(map[string]Holding)}
}

func (s *InMemoryStore) Save(_ context.Context, holding Holding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.holdings[holding.ID]; exists {
		return sentinel.ErrConflict
	}
	s.holdings[holding.ID] = holding
	return nil
}

func (s *InMemoryStore) ListByWallet(_ context.Context, walletAddress string) ([]Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Holding
	for _, h := range s.holdings {
		if h.WalletAddress == walletAddress {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PurchaseDate.After(out[j].PurchaseDate)
	})
	return out, nil
}
