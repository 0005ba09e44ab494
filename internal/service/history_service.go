package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wallet_client/internal/amount"
	"wallet_client/internal/custom_err"
	"wallet_client/internal/direction"
	"wallet_client/internal/models"
)

const dateLayout = "2006-01-02"

type HistoryServicer interface {
	History(ctx context.Context, q HistoryQuery) (HistoryPage, error)
	Detail(ctx context.Context, id models.TransactionID) (models.TransactionView, error)
	Latest(ctx context.Context) (models.TransactionView, error)
	ExportProof(ctx context.Context, id models.TransactionID) ([]byte, error)
}

var _ HistoryServicer = (*HistoryService)(nil)

// HistoryQuery narrows the history list. Date is a calendar day, YYYY-MM-DD.
type HistoryQuery struct {
	Type models.TransactionType
	Date string
	Page int
	Size int
}

type HistoryPage struct {
	Items         []models.TransactionView `json:"items"`
	Page          int                      `json:"page"`
	Size          int                      `json:"size"`
	TotalPages    int                      `json:"totalPages"`
	TotalElements int64                    `json:"totalElements"`
	Last          bool                     `json:"last"`
}

type HistoryService struct {
	api      WalletAPI
	session  Session
	resolver *direction.Resolver
	log      *slog.Logger
}

func NewHistoryService(api WalletAPI, session Session, formatter *amount.Formatter, log *slog.Logger) *HistoryService {
	return &HistoryService{
		api:      api,
		session:  session,
		resolver: direction.NewResolver(formatter),
		log:      log,
	}
}

func (s *HistoryService) viewer(op string) (models.WalletID, error) {
	id := s.session.WalletID()
	if !id.Valid() {
		return 0, fmt.Errorf("%s: %w", op, custom_err.ErrWalletNotLoaded)
	}
	return id, nil
}

// History returns one page of the wallet's transactions, resolved for the
// signed-in wallet. Type and date are applied again locally because the
// service does not always honour them.
func (s *HistoryService) History(ctx context.Context, q HistoryQuery) (HistoryPage, error) {
	const op = "service.History"
	viewer, err := s.viewer(op)
	if err != nil {
		return HistoryPage{}, err
	}
	if q.Type != "" && !q.Type.IsValid() {
		return HistoryPage{}, fmt.Errorf("%s: %w: unknown type %q", op, custom_err.ErrValidation, q.Type)
	}
	var day time.Time
	if q.Date != "" {
		day, err = time.Parse(dateLayout, q.Date)
		if err != nil {
			return HistoryPage{}, fmt.Errorf("%s: %w: date must be YYYY-MM-DD", op, custom_err.ErrValidation)
		}
	}

	filter := models.TransactionFilter{WalletID: viewer, Type: q.Type, Page: q.Page, Size: q.Size}.WithDefaults()
	page, err := s.api.ListTransactions(ctx, filter)
	if err != nil {
		return HistoryPage{}, fmt.Errorf("%s: %w", op, err)
	}

	kept := make([]models.Transaction, 0, len(page.Content))
	for _, tx := range page.Content {
		if q.Type != "" && tx.Type != q.Type {
			continue
		}
		if !day.IsZero() && tx.Date.Format(dateLayout) != day.Format(dateLayout) {
			continue
		}
		kept = append(kept, tx)
	}
	items, err := s.resolver.ResolveAll(kept, viewer)
	if err != nil {
		return HistoryPage{}, fmt.Errorf("%s: %w", op, err)
	}

	return HistoryPage{
		Items:         items,
		Page:          filter.Page,
		Size:          filter.Size,
		TotalPages:    page.TotalPages,
		TotalElements: page.TotalElements,
		Last:          page.Last,
	}, nil
}

func (s *HistoryService) Detail(ctx context.Context, id models.TransactionID) (models.TransactionView, error) {
	const op = "service.Detail"
	viewer, err := s.viewer(op)
	if err != nil {
		return models.TransactionView{}, err
	}
	if !id.Valid() {
		return models.TransactionView{}, fmt.Errorf("%s: %w: invalid transaction id", op, custom_err.ErrValidation)
	}
	tx, err := s.api.GetTransaction(ctx, id)
	if err != nil {
		return models.TransactionView{}, fmt.Errorf("%s: %w", op, err)
	}
	view, err := s.resolver.Resolve(tx, viewer)
	if err != nil {
		return models.TransactionView{}, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

// Latest is the transaction with the highest id on the first page, which is
// what the proof screen shows right after a submission.
func (s *HistoryService) Latest(ctx context.Context) (models.TransactionView, error) {
	const op = "service.Latest"
	viewer, err := s.viewer(op)
	if err != nil {
		return models.TransactionView{}, err
	}
	page, err := s.api.ListTransactions(ctx, models.TransactionFilter{WalletID: viewer})
	if err != nil {
		return models.TransactionView{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(page.Content) == 0 {
		return models.TransactionView{}, fmt.Errorf("%s: %w", op, custom_err.ErrNotFound)
	}
	latest := page.Content[0]
	for _, tx := range page.Content[1:] {
		if tx.ID > latest.ID {
			latest = tx
		}
	}
	view, err := s.resolver.Resolve(latest, viewer)
	if err != nil {
		return models.TransactionView{}, fmt.Errorf("%s: %w", op, err)
	}
	return view, nil
}

func (s *HistoryService) ExportProof(ctx context.Context, id models.TransactionID) ([]byte, error) {
	const op = "service.ExportProof"
	if !id.Valid() {
		return nil, fmt.Errorf("%s: %w: invalid transaction id", op, custom_err.ErrValidation)
	}
	doc, err := s.api.ExportTransactionPDF(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Debug("proof exported", slog.String("op", op), slog.Int("bytes", len(doc)))
	return doc, nil
}
