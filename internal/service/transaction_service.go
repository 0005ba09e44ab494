package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"wallet_client/internal/amount"
	"wallet_client/internal/custom_err"
	"wallet_client/internal/models"
)

type TransactionServicer interface {
	TopUp(ctx context.Context, in TopUpInput) (Receipt, error)
	Transfer(ctx context.Context, in TransferInput) (Receipt, error)
	PaymentOptions() []string
}

var _ TransactionServicer = (*TransactionService)(nil)

// TopUpInput carries the amount exactly as typed; it is normalised here.
type TopUpInput struct {
	Amount      string `json:"amount"`
	Option      string `json:"option"`
	Description string `json:"description"`
}

type TransferInput struct {
	Amount                 string `json:"amount"`
	RecipientAccountNumber string `json:"recipientAccountNumber"`
	Description            string `json:"description"`
}

type Receipt struct {
	RequestID     string             `json:"requestId"`
	Transaction   models.Transaction `json:"transaction"`
	DisplayAmount string             `json:"displayAmount"`
	Wallet        models.Wallet      `json:"wallet"`
}

type TransactionService struct {
	api        WalletAPI
	session    Session
	tracker    *WalletTracker
	directory  *Directory
	normalizer *amount.Normalizer
	log        *slog.Logger

	submitting atomic.Bool
}

func NewTransactionService(
	api WalletAPI,
	session Session,
	tracker *WalletTracker,
	directory *Directory,
	normalizer *amount.Normalizer,
	log *slog.Logger,
) *TransactionService {
	return &TransactionService{
		api:        api,
		session:    session,
		tracker:    tracker,
		directory:  directory,
		normalizer: normalizer,
		log:        log,
	}
}

func (s *TransactionService) PaymentOptions() []string {
	return append([]string(nil), models.PaymentOptions...)
}

// lock admits one submission at a time.
func (s *TransactionService) lock() (func(), error) {
	if !s.submitting.CompareAndSwap(false, true) {
		return nil, custom_err.ErrSubmissionInFlight
	}
	return func() { s.submitting.Store(false) }, nil
}

func (s *TransactionService) amount(text string) (amount.Input, error) {
	in := s.normalizer.Normalize(text)
	if in.Empty() || in.Value <= 0 {
		return in, fmt.Errorf("%w: enter a valid amount", custom_err.ErrInvalidAmount)
	}
	return in, in.Err
}

func (s *TransactionService) TopUp(ctx context.Context, in TopUpInput) (Receipt, error) {
	const op = "service.TopUp"
	unlock, err := s.lock()
	if err != nil {
		return Receipt{}, fmt.Errorf("%s: %w", op, err)
	}
	defer unlock()

	wallet, ok := s.session.Wallet()
	if !ok || !wallet.ID.Valid() {
		return Receipt{}, fmt.Errorf("%s: %w", op, custom_err.ErrWalletNotLoaded)
	}
	value, err := s.amount(in.Amount)
	if err != nil {
		return Receipt{}, fmt.Errorf("%s: %w", op, err)
	}
	option := strings.TrimSpace(in.Option)
	if option == "" {
		option = models.PaymentOptionBYONDPay
	}
	if !models.IsPaymentOption(option) {
		return Receipt{}, fmt.Errorf("%s: %w: unknown payment option %q", op, custom_err.ErrValidation, option)
	}

	return s.submit(ctx, op, wallet, value, models.TransactionRequest{
		WalletID:        wallet.ID,
		TransactionType: models.TopUpTransaction,
		Amount:          value.Raw,
		Description:     strings.TrimSpace(in.Description),
		Option:          option,
	})
}

func (s *TransactionService) Transfer(ctx context.Context, in TransferInput) (Receipt, error) {
	const op = "service.Transfer"
	unlock, err := s.lock()
	if err != nil {
		return Receipt{}, fmt.Errorf("%s: %w", op, err)
	}
	defer unlock()

	wallet, ok := s.session.Wallet()
	if !ok || !wallet.ID.Valid() {
		return Receipt{}, fmt.Errorf("%s: %w", op, custom_err.ErrWalletNotLoaded)
	}

	value := s.normalizer.Normalize(in.Amount)
	if value.Empty() || value.Value <= 0 {
		return Receipt{}, fmt.Errorf("%s: %w: enter a valid amount", op, custom_err.ErrInvalidAmount)
	}
	recipient := strings.TrimSpace(in.RecipientAccountNumber)
	if recipient == "" {
		return Receipt{}, fmt.Errorf("%s: %w: select a recipient", op, custom_err.ErrValidation)
	}
	if recipient == wallet.AccountNumber {
		return Receipt{}, fmt.Errorf("%s: %w", op, custom_err.ErrSelfTransfer)
	}
	// the directory never holds the signed-in wallet, but it may hold another
	// wallet of the same user
	if known, ok := s.directory.Lookup(recipient); ok && known.OwnedBy(wallet.UserID) {
		return Receipt{}, fmt.Errorf("%s: %w", op, custom_err.ErrSelfTransfer)
	}
	if models.Amount(value.Value) > wallet.Balance {
		return Receipt{}, fmt.Errorf("%s: %w", op, custom_err.ErrInsufficientFunds)
	}
	if value.Err != nil {
		return Receipt{}, fmt.Errorf("%s: %w", op, value.Err)
	}

	return s.submit(ctx, op, wallet, value, models.TransactionRequest{
		WalletID:               wallet.ID,
		TransactionType:        models.TransferTransaction,
		Amount:                 value.Raw,
		RecipientAccountNumber: recipient,
		Description:            strings.TrimSpace(in.Description),
	})
}

func (s *TransactionService) submit(
	ctx context.Context,
	op string,
	wallet models.Wallet,
	value amount.Input,
	req models.TransactionRequest,
) (Receipt, error) {
	requestID := uuid.NewString()
	tx, err := s.api.CreateTransaction(ctx, req, requestID)
	if err != nil {
		s.log.Warn("transaction rejected",
			slog.String("op", op),
			slog.String("request_id", requestID),
			slog.String("error", err.Error()))
		return Receipt{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("transaction submitted",
		slog.String("op", op),
		slog.String("request_id", requestID),
		slog.String("type", string(req.TransactionType)),
		slog.Int64("amount", value.Value))

	receipt := Receipt{
		RequestID:     requestID,
		Transaction:   tx,
		DisplayAmount: s.normalizer.Formatter().Money(models.Amount(value.Value)),
		Wallet:        wallet,
	}

	gen := s.tracker.Begin()
	fresh, err := s.api.GetWallet(ctx, wallet.ID)
	if err != nil {
		s.log.Warn("wallet refresh after transaction failed",
			slog.String("op", op), slog.String("error", err.Error()))
		return receipt, nil
	}
	if err := s.tracker.Apply(gen, fresh); err == nil {
		receipt.Wallet = fresh
	}
	return receipt, nil
}
