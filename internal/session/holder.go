// Package session holds the signed-in user, their wallet and the auth token,
// and persists them through a repository.KVStore.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"wallet_client/internal/custom_err"
	"wallet_client/internal/models"
	"wallet_client/internal/repository"
)

// Storage keys, shared with the mobile client's storage layout.
const (
	UserKey   = "userData"
	WalletKey = "walletData"
	TokenKey  = "authToken"
)

const (
	DefaultFlushInterval = 1 * time.Second
	maxFlushAttempts     = 3
	flushTimeout         = 5 * time.Second
)

// pendingWrite is a value waiting to reach storage; nil value means delete.
type pendingWrite struct {
	value []byte
	seq   uint64
}

type Metrics struct {
	flushesTotal  atomic.Int64
	flushesFailed atomic.Int64
	droppedWrites atomic.Int64
}

func (m *Metrics) FlushesTotal() int64  { return m.flushesTotal.Load() }
func (m *Metrics) FlushesFailed() int64 { return m.flushesFailed.Load() }
func (m *Metrics) DroppedWrites() int64 { return m.droppedWrites.Load() }

// Holder is safe for concurrent use; the last write wins.
type Holder struct {
	store         repository.KVStore
	log           *slog.Logger
	now           func() time.Time
	flushInterval time.Duration
	retryBase     time.Duration

	mu      sync.RWMutex
	user    *models.User
	wallet  *models.Wallet
	token   string
	pending map[string]pendingWrite
	seq     uint64

	flushMu sync.Mutex
	metrics Metrics

	kick      chan struct{}
	stop      chan struct{}
	done      chan struct{}
	started   atomic.Bool
	startOnce sync.Once
	closeOnce sync.Once
}

type Option func(*Holder)

func WithClock(now func() time.Time) Option {
	return func(h *Holder) { h.now = now }
}

func WithFlushInterval(d time.Duration) Option {
	return func(h *Holder) {
		if d > 0 {
			h.flushInterval = d
		}
	}
}

func WithRetryBase(d time.Duration) Option {
	return func(h *Holder) {
		if d > 0 {
			h.retryBase = d
		}
	}
}

func NewHolder(store repository.KVStore, log *slog.Logger, opts ...Option) *Holder {
	h := &Holder{
		store:         store,
		log:           log,
		now:           time.Now,
		flushInterval: DefaultFlushInterval,
		retryBase:     time.Second,
		pending:       make(map[string]pendingWrite),
		kick:          make(chan struct{}, 1),
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Holder) Metrics() *Metrics { return &h.metrics }

// Hydrate loads user, wallet and token from storage. Missing or unreadable
// values leave the field empty; only storage failures are returned.
func (h *Holder) Hydrate(ctx context.Context) error {
	const op = "session.Hydrate"

	var (
		user   models.User
		wallet models.Wallet
		token  string
	)
	userOK, err := h.load(ctx, UserKey, &user)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	walletOK, err := h.load(ctx, WalletKey, &wallet)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tokenOK, err := h.load(ctx, TokenKey, &token)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.user, h.wallet, h.token = nil, nil, ""
	if userOK {
		h.user = &user
	}
	if walletOK {
		h.wallet = &wallet
	}
	if tokenOK {
		h.token = token
	}
	h.log.Info("session hydrated",
		slog.Bool("user", userOK), slog.Bool("wallet", walletOK), slog.Bool("token", tokenOK))
	return nil
}

func (h *Holder) load(ctx context.Context, key string, dest any) (bool, error) {
	data, err := h.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, custom_err.ErrNotFound) {
			return false, nil
		}
		if errors.Is(err, custom_err.ErrCorruptData) {
			h.log.Warn("stored session data is corrupt", slog.String("key", key), slog.String("error", err.Error()))
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		h.log.Warn("stored session value unreadable", slog.String("key", key), slog.String("error", err.Error()))
		return false, nil
	}
	return true, nil
}

func (h *Holder) User() (models.User, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.user == nil {
		return models.User{}, false
	}
	return *h.user, true
}

func (h *Holder) Wallet() (models.Wallet, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.wallet == nil {
		return models.Wallet{}, false
	}
	return *h.wallet, true
}

// WalletID is zero while no wallet is loaded.
func (h *Holder) WalletID() models.WalletID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.wallet == nil {
		return 0
	}
	return h.wallet.ID
}

func (h *Holder) SetUser(u models.User) {
	h.mu.Lock()
	h.user = &u
	h.enqueueLocked(UserKey, u)
	h.mu.Unlock()
	h.signal()
}

func (h *Holder) SetWallet(w models.Wallet) {
	h.mu.Lock()
	h.wallet = &w
	h.enqueueLocked(WalletKey, w)
	h.mu.Unlock()
	h.signal()
}

func (h *Holder) SetToken(token string) {
	h.mu.Lock()
	h.token = token
	h.enqueueLocked(TokenKey, token)
	h.mu.Unlock()
	h.signal()
}

// Token returns the stored token, clearing it when it has expired.
func (h *Holder) Token(ctx context.Context) (string, error) {
	h.mu.RLock()
	token := h.token
	h.mu.RUnlock()

	if token == "" {
		return "", custom_err.ErrUnauthenticated
	}
	if TokenExpired(token, h.now()) {
		if err := h.ClearToken(ctx); err != nil {
			return "", err
		}
		return "", custom_err.ErrTokenExpired
	}
	return token, nil
}

func (h *Holder) HasToken() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token != ""
}

func (h *Holder) ClearToken(_ context.Context) error {
	h.mu.Lock()
	h.token = ""
	h.queueLocked(TokenKey, nil)
	h.mu.Unlock()
	h.signal()
	return nil
}

// Clear forgets the whole session, as on logout.
func (h *Holder) Clear(_ context.Context) {
	h.mu.Lock()
	h.user, h.wallet, h.token = nil, nil, ""
	for _, key := range []string{UserKey, WalletKey, TokenKey} {
		h.queueLocked(key, nil)
	}
	h.mu.Unlock()
	h.signal()
}

func (h *Holder) enqueueLocked(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Error("failed to encode session value", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	h.queueLocked(key, data)
}

func (h *Holder) queueLocked(key string, data []byte) {
	h.seq++
	h.pending[key] = pendingWrite{value: data, seq: h.seq}
}

func (h *Holder) signal() {
	select {
	case h.kick <- struct{}{}:
	default:
	}
}

func (h *Holder) hasPending() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.pending) > 0
}

// Flush writes every pending value to storage now. Values rewritten while
// the flush was in progress stay pending.
func (h *Holder) Flush(ctx context.Context) error {
	_, err := h.flush(ctx)
	return err
}

// flush returns the batch it tried to write so a caller giving up can drop
// exactly those writes.
func (h *Holder) flush(ctx context.Context) (map[string]pendingWrite, error) {
	const op = "session.Flush"
	h.flushMu.Lock()
	defer h.flushMu.Unlock()

	h.mu.Lock()
	batch := h.pending
	h.pending = make(map[string]pendingWrite)
	h.mu.Unlock()

	if len(batch) == 0 {
		return nil, nil
	}
	h.metrics.flushesTotal.Add(1)

	sets := make(map[string][]byte, len(batch))
	var deletes []string
	for key, w := range batch {
		if w.value == nil {
			deletes = append(deletes, key)
			continue
		}
		sets[key] = w.value
	}

	err := h.store.SetMany(ctx, sets)
	if err == nil && len(deletes) > 0 {
		err = h.store.Delete(ctx, deletes...)
	}
	if err != nil {
		h.metrics.flushesFailed.Add(1)
		h.requeue(batch)
		return batch, fmt.Errorf("%s: %w", op, err)
	}
	return nil, nil
}

func (h *Holder) requeue(batch map[string]pendingWrite) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for key, w := range batch {
		if _, newer := h.pending[key]; !newer {
			h.pending[key] = w
		}
	}
}

// dropPending forgets the writes of a failed batch. Keys rewritten since
// that batch was taken keep their newer value.
func (h *Holder) dropPending(failed map[string]pendingWrite) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for key, w := range failed {
		if cur, ok := h.pending[key]; ok && cur.seq == w.seq {
			delete(h.pending, key)
			h.metrics.droppedWrites.Add(1)
		}
	}
}

// Start runs the background flusher until Close.
func (h *Holder) Start() {
	h.startOnce.Do(func() {
		h.started.Store(true)
		go h.flusher()
	})
}

// Close stops the flusher and writes whatever is still pending.
func (h *Holder) Close(ctx context.Context) error {
	h.closeOnce.Do(func() {
		close(h.stop)
		if h.started.Load() {
			<-h.done
		}
	})
	return h.Flush(ctx)
}

func (h *Holder) flusher() {
	defer close(h.done)
	ticker := time.NewTicker(h.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
		case <-h.kick:
		}
		h.flushWithRetry()
	}
}

func (h *Holder) flushWithRetry() {
	for attempt := 1; ; attempt++ {
		if !h.hasPending() {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		failed, err := h.flush(ctx)
		cancel()
		if err == nil {
			return
		}
		if attempt >= maxFlushAttempts {
			h.log.Error("max flush attempts reached, dropping session writes",
				slog.Int("attempts", attempt), slog.String("error", err.Error()))
			h.dropPending(failed)
			if h.hasPending() {
				h.signal()
			}
			return
		}
		backoff := time.Duration(1<<attempt) * h.retryBase
		h.log.Warn("session flush failed, retrying",
			slog.Int("attempt", attempt), slog.Duration("backoff", backoff), slog.String("error", err.Error()))
		select {
		case <-time.After(backoff):
		case <-h.stop:
			return
		}
	}
}
