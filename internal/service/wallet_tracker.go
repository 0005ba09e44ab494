package service

import (
	"sync"
	"sync/atomic"

	"wallet_client/internal/custom_err"
	"wallet_client/internal/models"
)

// WalletTracker orders wallet updates coming back from concurrent fetches.
// Every fetch takes a generation first; its result reaches the session only
// if nothing newer has been applied since.
type WalletTracker struct {
	session Session

	generation atomic.Uint64
	mu         sync.Mutex
	applied    uint64
}

func NewWalletTracker(session Session) *WalletTracker {
	return &WalletTracker{session: session}
}

func (t *WalletTracker) Begin() uint64 {
	return t.generation.Add(1)
}

// Apply stores the wallet unless a newer generation already did.
func (t *WalletTracker) Apply(gen uint64, w models.Wallet) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen <= t.applied {
		return custom_err.ErrStaleResponse
	}
	t.applied = gen
	t.session.SetWallet(w)
	return nil
}

// Reset makes every fetch that is still in flight stale.
func (t *WalletTracker) Reset() {
	t.mu.Lock()
	t.applied = t.generation.Add(1)
	t.mu.Unlock()
}
