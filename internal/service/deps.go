// Package service holds the wallet client's use cases: signing in, keeping
// the wallet fresh, submitting transactions, and reading history and summary.
package service

import (
	"context"

	"wallet_client/internal/apiclient"
	"wallet_client/internal/models"
)

// WalletAPI is the remote wallet service as the use cases see it.
type WalletAPI interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.User, error)
	GetUser(ctx context.Context, id models.UserID) (models.User, error)
	ListWallets(ctx context.Context) ([]models.Wallet, error)
	GetWallet(ctx context.Context, id models.WalletID) (models.Wallet, error)
	WalletsByUser(ctx context.Context, userID models.UserID) ([]models.Wallet, error)
	CreateWallet(ctx context.Context, userID models.UserID) (models.Wallet, error)
	CreateTransaction(ctx context.Context, req models.TransactionRequest, requestID string) (models.Transaction, error)
	ListTransactions(ctx context.Context, filter models.TransactionFilter) (models.TransactionPage, error)
	GetTransaction(ctx context.Context, id models.TransactionID) (models.Transaction, error)
	GetSummary(ctx context.Context, walletID models.WalletID) (models.Summary, error)
	GetGraph(ctx context.Context, req models.GraphRequest) (models.Graph, error)
	ExportTransactionPDF(ctx context.Context, id models.TransactionID) ([]byte, error)
}

var _ WalletAPI = (*apiclient.Client)(nil)

// Session is the state the use cases read and replace.
type Session interface {
	User() (models.User, bool)
	SetUser(u models.User)
	Wallet() (models.Wallet, bool)
	SetWallet(w models.Wallet)
	WalletID() models.WalletID
	SetToken(token string)
	HasToken() bool
	Clear(ctx context.Context)
}

// SessionState is the signed-in user with their wallet.
type SessionState struct {
	User   models.User   `json:"user"`
	Wallet models.Wallet `json:"wallet"`
}
