package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallet_client/internal/custom_err"
	"wallet_client/internal/models"
	"wallet_client/pkg/logger"
)

func TestWalletService_Refresh(t *testing.T) {
	me := models.Wallet{ID: 42, UserID: 7, AccountNumber: "100200", Balance: 100_000}

	t.Run("Success", func(t *testing.T) {
		api := &mockAPI{
			CurrentUserFunc: func(context.Context) (models.User, error) {
				return models.User{ID: 7, Fullname: "Budi Santoso"}, nil
			},
			WalletsByUserFunc: func(context.Context, models.UserID) ([]models.Wallet, error) {
				fresh := me
				fresh.Balance = 150_000
				return []models.Wallet{fresh}, nil
			},
			ListTransactionsFunc: func(_ context.Context, f models.TransactionFilter) (models.TransactionPage, error) {
				assert.Equal(t, models.WalletID(42), f.WalletID)
				assert.Equal(t, recentTransactions, f.Size)
				return models.TransactionPage{Content: []models.Transaction{
					{ID: 7, WalletID: 42, RecipientWalletID: 99, Type: models.TransferTransaction, Amount: 50_000, RecipientName: "Sari"},
					{ID: 8, WalletID: 10, RecipientWalletID: 42, Type: models.TransferTransaction, Amount: 20_000, SenderName: "Andi"},
				}}, nil
			},
		}
		sess := signedIn(t, me)
		svc := NewWalletService(api, sess, NewWalletTracker(sess), NewDirectory(), testFormatter(), logger.Discard())
		svc.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.Local) }

		dash, err := svc.Refresh(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Morning", dash.Greeting)
		assert.Equal(t, "Budi", dash.FirstName)
		assert.Equal(t, "Rp150,000", dash.DisplayBalance)
		require.Len(t, dash.Recent, 2)
		assert.Equal(t, "-50,000", dash.Recent[0].DisplayAmount)
		assert.Equal(t, "+20,000", dash.Recent[1].DisplayAmount)

		wallet, _ := sess.Wallet()
		assert.Equal(t, models.Amount(150_000), wallet.Balance)
	})

	t.Run("Error - no wallet anywhere", func(t *testing.T) {
		api := &mockAPI{
			CurrentUserFunc: func(context.Context) (models.User, error) { return models.User{ID: 7}, nil },
			WalletsByUserFunc: func(context.Context, models.UserID) ([]models.Wallet, error) {
				return nil, nil
			},
		}
		sess := newTestSession(t)
		svc := NewWalletService(api, sess, NewWalletTracker(sess), NewDirectory(), testFormatter(), logger.Discard())

		_, err := svc.Refresh(context.Background())
		assert.ErrorIs(t, err, custom_err.ErrWalletNotLoaded)
	})

	t.Run("Concurrent refreshes share one fetch", func(t *testing.T) {
		var calls atomic.Int32
		release := make(chan struct{})
		api := &mockAPI{
			CurrentUserFunc: func(context.Context) (models.User, error) {
				calls.Add(1)
				<-release
				return models.User{ID: 7}, nil
			},
			WalletsByUserFunc: func(context.Context, models.UserID) ([]models.Wallet, error) {
				return []models.Wallet{me}, nil
			},
			ListTransactionsFunc: func(context.Context, models.TransactionFilter) (models.TransactionPage, error) {
				return models.TransactionPage{}, nil
			},
		}
		sess := signedIn(t, me)
		svc := NewWalletService(api, sess, NewWalletTracker(sess), NewDirectory(), testFormatter(), logger.Discard())

		var wg sync.WaitGroup
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.Refresh(context.Background())
				assert.NoError(t, err)
			}()
		}
		require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("Newer wallet applied mid-refresh is kept", func(t *testing.T) {
		started := make(chan struct{})
		release := make(chan struct{})
		api := &mockAPI{
			CurrentUserFunc: func(context.Context) (models.User, error) {
				close(started)
				<-release
				return models.User{ID: 7, Fullname: "Budi Santoso"}, nil
			},
			WalletsByUserFunc: func(context.Context, models.UserID) ([]models.Wallet, error) {
				return []models.Wallet{me}, nil
			},
			ListWalletsFunc: func(context.Context) ([]models.Wallet, error) {
				fresh := me
				fresh.Balance = 80_000
				return []models.Wallet{fresh, {ID: 1, UserID: 1, AccountNumber: "111"}}, nil
			},
			ListTransactionsFunc: func(_ context.Context, f models.TransactionFilter) (models.TransactionPage, error) {
				assert.Equal(t, me.ID, f.WalletID)
				return models.TransactionPage{}, nil
			},
		}
		sess := signedIn(t, me)
		svc := NewWalletService(api, sess, NewWalletTracker(sess), NewDirectory(), testFormatter(), logger.Discard())

		type result struct {
			dash Dashboard
			err  error
		}
		done := make(chan result, 1)
		go func() {
			dash, err := svc.Refresh(context.Background())
			done <- result{dash, err}
		}()

		<-started
		_, err := svc.Recipients(context.Background())
		require.NoError(t, err)
		close(release)

		res := <-done
		require.NoError(t, res.err)
		assert.Equal(t, models.Amount(80_000), res.dash.Wallet.Balance)
		assert.Equal(t, "Budi", res.dash.FirstName)

		wallet, _ := sess.Wallet()
		assert.Equal(t, models.Amount(80_000), wallet.Balance)
		user, ok := sess.User()
		require.True(t, ok)
		assert.Equal(t, models.UserID(7), user.ID)
	})
}

func TestWalletService_Recipients(t *testing.T) {
	me := models.Wallet{ID: 42, UserID: 7, AccountNumber: "100200", Balance: 100_000}
	api := &mockAPI{ListWalletsFunc: func(context.Context) ([]models.Wallet, error) {
		fresh := me
		fresh.Balance = 80_000
		return []models.Wallet{
			{ID: 1, UserID: 1, AccountNumber: "111"},
			fresh,
			{ID: 2, UserID: 2, AccountNumber: "222"},
		}, nil
	}}
	sess := signedIn(t, me)
	dir := NewDirectory()
	svc := NewWalletService(api, sess, NewWalletTracker(sess), dir, testFormatter(), logger.Discard())

	recipients, err := svc.Recipients(context.Background())
	require.NoError(t, err)
	require.Len(t, recipients, 2)
	for _, w := range recipients {
		assert.NotEqual(t, me.ID, w.ID)
	}
	wallet, _ := sess.Wallet()
	assert.Equal(t, models.Amount(80_000), wallet.Balance)

	assert.Equal(t, 2, dir.Len())
	found, ok := dir.Lookup(" 222 ")
	require.True(t, ok)
	assert.Equal(t, models.WalletID(2), found.ID)
}

func TestWalletService_RecipientsNeedsWallet(t *testing.T) {
	sess := newTestSession(t)
	svc := NewWalletService(&mockAPI{}, sess, NewWalletTracker(sess), NewDirectory(), testFormatter(), logger.Discard())
	_, err := svc.Recipients(context.Background())
	assert.ErrorIs(t, err, custom_err.ErrWalletNotLoaded)
}

func TestWalletTracker(t *testing.T) {
	sess := newTestSession(t)
	tracker := NewWalletTracker(sess)

	older := tracker.Begin()
	newer := tracker.Begin()

	require.NoError(t, tracker.Apply(newer, models.Wallet{ID: 1, Balance: 200}))
	err := tracker.Apply(older, models.Wallet{ID: 1, Balance: 100})
	assert.ErrorIs(t, err, custom_err.ErrStaleResponse)

	wallet, _ := sess.Wallet()
	assert.Equal(t, models.Amount(200), wallet.Balance)

	inflight := tracker.Begin()
	tracker.Reset()
	assert.ErrorIs(t, tracker.Apply(inflight, models.Wallet{ID: 1}), custom_err.ErrStaleResponse)
}

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{5, "Morning"}, {11, "Morning"},
		{12, "Afternoon"}, {16, "Afternoon"},
		{17, "Evening"}, {20, "Evening"},
		{21, "Night"}, {0, "Night"}, {4, "Night"},
	}
	for _, tt := range tests {
		got := Greeting(time.Date(2025, 1, 1, tt.hour, 0, 0, 0, time.UTC))
		assert.Equal(t, tt.want, got, "hour %d", tt.hour)
	}
}

func TestDirectory_Replace(t *testing.T) {
	dir := NewDirectory()
	dir.Replace([]models.Wallet{{ID: 1, AccountNumber: "111"}, {ID: 2, AccountNumber: ""}})
	assert.Equal(t, 1, dir.Len())

	dir.Replace([]models.Wallet{{ID: 3, AccountNumber: "333"}})
	_, ok := dir.Lookup("111")
	assert.False(t, ok)
	got, ok := dir.Lookup("333")
	require.True(t, ok)
	assert.Equal(t, models.WalletID(3), got.ID)
}
