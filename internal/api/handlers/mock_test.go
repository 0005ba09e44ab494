package handlers

import (
	"context"

	"wallet_client/internal/models"
	"wallet_client/internal/service"
)

var (
	_ service.AuthServicer        = (*mockAuthService)(nil)
	_ service.WalletServicer      = (*mockWalletService)(nil)
	_ service.TransactionServicer = (*mockTransactionService)(nil)
	_ service.HistoryServicer     = (*mockHistoryService)(nil)
	_ service.SummaryServicer     = (*mockSummaryService)(nil)
)

type mockAuthService struct {
	RegisterFunc func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	LoginFunc    func(ctx context.Context, req models.LoginRequest) (service.SessionState, error)
	LogoutFunc   func(ctx context.Context) error
	CurrentFunc  func() (service.SessionState, bool)
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return models.User{}, nil
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (service.SessionState, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return service.SessionState{}, nil
}

func (m *mockAuthService) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *mockAuthService) Current() (service.SessionState, bool) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc()
	}
	return service.SessionState{}, false
}

type mockWalletService struct {
	RefreshFunc    func(ctx context.Context) (service.Dashboard, error)
	RecipientsFunc func(ctx context.Context) ([]models.Wallet, error)
}

func (m *mockWalletService) Refresh(ctx context.Context) (service.Dashboard, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return service.Dashboard{}, nil
}

func (m *mockWalletService) Recipients(ctx context.Context) ([]models.Wallet, error) {
	if m.RecipientsFunc != nil {
		return m.RecipientsFunc(ctx)
	}
	return nil, nil
}

type mockTransactionService struct {
	TopUpFunc    func(ctx context.Context, in service.TopUpInput) (service.Receipt, error)
	TransferFunc func(ctx context.Context, in service.TransferInput) (service.Receipt, error)
}

func (m *mockTransactionService) TopUp(ctx context.Context, in service.TopUpInput) (service.Receipt, error) {
	if m.TopUpFunc != nil {
		return m.TopUpFunc(ctx, in)
	}
	return service.Receipt{}, nil
}

func (m *mockTransactionService) Transfer(ctx context.Context, in service.TransferInput) (service.Receipt, error) {
	if m.TransferFunc != nil {
		return m.TransferFunc(ctx, in)
	}
	return service.Receipt{}, nil
}

func (m *mockTransactionService) PaymentOptions() []string {
	return models.PaymentOptions
}

type mockHistoryService struct {
	HistoryFunc     func(ctx context.Context, q service.HistoryQuery) (service.HistoryPage, error)
	DetailFunc      func(ctx context.Context, id models.TransactionID) (models.TransactionView, error)
	LatestFunc      func(ctx context.Context) (models.TransactionView, error)
	ExportProofFunc func(ctx context.Context, id models.TransactionID) ([]byte, error)
}

func (m *mockHistoryService) History(ctx context.Context, q service.HistoryQuery) (service.HistoryPage, error) {
	if m.HistoryFunc != nil {
		return m.HistoryFunc(ctx, q)
	}
	return service.HistoryPage{}, nil
}

func (m *mockHistoryService) Detail(ctx context.Context, id models.TransactionID) (models.TransactionView, error) {
	if m.DetailFunc != nil {
		return m.DetailFunc(ctx, id)
	}
	return models.TransactionView{}, nil
}

func (m *mockHistoryService) Latest(ctx context.Context) (models.TransactionView, error) {
	if m.LatestFunc != nil {
		return m.LatestFunc(ctx)
	}
	return models.TransactionView{}, nil
}

func (m *mockHistoryService) ExportProof(ctx context.Context, id models.TransactionID) ([]byte, error) {
	if m.ExportProofFunc != nil {
		return m.ExportProofFunc(ctx, id)
	}
	return nil, nil
}

type mockSummaryService struct {
	OverviewFunc func(ctx context.Context, view models.GraphView, year int) (service.Overview, error)
}

func (m *mockSummaryService) Overview(ctx context.Context, view models.GraphView, year int) (service.Overview, error) {
	if m.OverviewFunc != nil {
		return m.OverviewFunc(ctx, view, year)
	}
	return service.Overview{}, nil
}
