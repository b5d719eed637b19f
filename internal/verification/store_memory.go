package verification

import (
	"context"
	"sort"
	"sync"

	"bondbuy/pkg/platform/sentinel"
)

// InMemoryStore keeps receipts in a mutex-guarded map. It backs the demo
// deployment and the unit tests; it intentionally favors clarity over
// performance.
type InMemoryStore struct {
	mu       sync.RWMutex
	receipts map[string]ExecutionReceipt
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{receipts: make(map[string]ExecutionReceipt)}
}

func (s *InMemoryStore) Create(_ context.Context, receipt ExecutionReceipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.receipts[receipt.ReceiptID]; exists {
		return sentinel.ErrConflict
	}
	s.receipts[receipt.ReceiptID] = receipt.clone()
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, receiptID string) (ExecutionReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if receipt, ok := s.receipts[receiptID]; ok {
		return receipt.clone(), nil
	}
	return ExecutionReceipt{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) AttachExternalTx(_ context.Context, receiptID, txHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	receipt, ok := s.receipts[receiptID]
	if !ok {
		return sentinel.ErrNotFound
	}
	receipt.ExternalTxHash = &txHash
	receipt.ExternalTxConfirmed = true
	s.receipts[receiptID] = receipt
	return nil
}

func (s *InMemoryStore) ListByWallet(_ context.Context, walletAddress string) ([]ExecutionReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ExecutionReceipt
	for _, receipt := range s.receipts {
		if receipt.WalletAddress == walletAddress {
			out = append(out, receipt.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
