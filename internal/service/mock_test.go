package service

import (
	"context"
	"errors"
	"testing"

	"wallet_client/internal/amount"
	"wallet_client/internal/models"
	"wallet_client/internal/repository/memory"
	"wallet_client/internal/session"
	"wallet_client/pkg/logger"
)

var errNotImplemented = errors.New("not implemented")

var _ WalletAPI = (*mockAPI)(nil)

type mockAPI struct {
	RegisterFunc             func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	LoginFunc                func(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
	LogoutFunc               func(ctx context.Context) error
	CurrentUserFunc          func(ctx context.Context) (models.User, error)
	GetUserFunc              func(ctx context.Context, id models.UserID) (models.User, error)
	ListWalletsFunc          func(ctx context.Context) ([]models.Wallet, error)
	GetWalletFunc            func(ctx context.Context, id models.WalletID) (models.Wallet, error)
	WalletsByUserFunc        func(ctx context.Context, userID models.UserID) ([]models.Wallet, error)
	CreateWalletFunc         func(ctx context.Context, userID models.UserID) (models.Wallet, error)
	CreateTransactionFunc    func(ctx context.Context, req models.TransactionRequest, requestID string) (models.Transaction, error)
	ListTransactionsFunc     func(ctx context.Context, filter models.TransactionFilter) (models.TransactionPage, error)
	GetTransactionFunc       func(ctx context.Context, id models.TransactionID) (models.Transaction, error)
	GetSummaryFunc           func(ctx context.Context, walletID models.WalletID) (models.Summary, error)
	GetGraphFunc             func(ctx context.Context, req models.GraphRequest) (models.Graph, error)
	ExportTransactionPDFFunc func(ctx context.Context, id models.TransactionID) ([]byte, error)
}

func (m *mockAPI) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return models.User{}, errNotImplemented
}

func (m *mockAPI) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return models.LoginResponse{}, errNotImplemented
}

func (m *mockAPI) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *mockAPI) CurrentUser(ctx context.Context) (models.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx)
	}
	return models.User{}, errNotImplemented
}

func (m *mockAPI) GetUser(ctx context.Context, id models.UserID) (models.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return models.User{}, errNotImplemented
}

func (m *mockAPI) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	if m.ListWalletsFunc != nil {
		return m.ListWalletsFunc(ctx)
	}
	return nil, errNotImplemented
}

func (m *mockAPI) GetWallet(ctx context.Context, id models.WalletID) (models.Wallet, error) {
	if m.GetWalletFunc != nil {
		return m.GetWalletFunc(ctx, id)
	}
	return models.Wallet{}, errNotImplemented
}

func (m *mockAPI) WalletsByUser(ctx context.Context, userID models.UserID) ([]models.Wallet, error) {
	if m.WalletsByUserFunc != nil {
		return m.WalletsByUserFunc(ctx, userID)
	}
	return nil, errNotImplemented
}

func (m *mockAPI) CreateWallet(ctx context.Context, userID models.UserID) (models.Wallet, error) {
	if m.CreateWalletFunc != nil {
		return m.CreateWalletFunc(ctx, userID)
	}
	return models.Wallet{}, errNotImplemented
}

func (m *mockAPI) CreateTransaction(ctx context.Context, req models.TransactionRequest, requestID string) (models.Transaction, error) {
	if m.CreateTransactionFunc != nil {
		return m.CreateTransactionFunc(ctx, req, requestID)
	}
	return models.Transaction{}, errNotImplemented
}

func (m *mockAPI) ListTransactions(ctx context.Context, filter models.TransactionFilter) (models.TransactionPage, error) {
	if m.ListTransactionsFunc != nil {
		return m.ListTransactionsFunc(ctx, filter)
	}
	return models.TransactionPage{}, errNotImplemented
}

func (m *mockAPI) GetTransaction(ctx context.Context, id models.TransactionID) (models.Transaction, error) {
	if m.GetTransactionFunc != nil {
		return m.GetTransactionFunc(ctx, id)
	}
	return models.Transaction{}, errNotImplemented
}

func (m *mockAPI) GetSummary(ctx context.Context, walletID models.WalletID) (models.Summary, error) {
	if m.GetSummaryFunc != nil {
		return m.GetSummaryFunc(ctx, walletID)
	}
	return models.Summary{}, errNotImplemented
}

func (m *mockAPI) GetGraph(ctx context.Context, req models.GraphRequest) (models.Graph, error) {
	if m.GetGraphFunc != nil {
		return m.GetGraphFunc(ctx, req)
	}
	return models.Graph{}, errNotImplemented
}

func (m *mockAPI) ExportTransactionPDF(ctx context.Context, id models.TransactionID) ([]byte, error) {
	if m.ExportTransactionPDFFunc != nil {
		return m.ExportTransactionPDFFunc(ctx, id)
	}
	return nil, errNotImplemented
}

func newTestSession(t *testing.T) *session.Holder {
	t.Helper()
	return session.NewHolder(memory.NewKVRepository(), logger.Discard())
}

func signedIn(t *testing.T, wallet models.Wallet) *session.Holder {
	t.Helper()
	s := newTestSession(t)
	s.SetUser(models.User{ID: wallet.UserID, Fullname: "Budi Santoso"})
	s.SetWallet(wallet)
	s.SetToken("token")
	return s
}

func testFormatter() *amount.Formatter {
	return amount.NewFormatter(amount.DefaultLocale, amount.DefaultCurrency)
}

func testNormalizer() *amount.Normalizer {
	return amount.NewNormalizer(amount.Config{})
}
