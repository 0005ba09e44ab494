package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"wallet_client/internal/amount"
	"wallet_client/internal/custom_err"
	"wallet_client/internal/direction"
	"wallet_client/internal/models"
)

const recentTransactions = 5

// WalletServicer refreshes what the dashboard and the transfer screen show.
type WalletServicer interface {
	Refresh(ctx context.Context) (Dashboard, error)
	Recipients(ctx context.Context) ([]models.Wallet, error)
}

var _ WalletServicer = (*WalletService)(nil)

type Dashboard struct {
	Greeting       string                   `json:"greeting"`
	FirstName      string                   `json:"firstName"`
	User           models.User              `json:"user"`
	Wallet         models.Wallet            `json:"wallet"`
	DisplayBalance string                   `json:"displayBalance"`
	Recent         []models.TransactionView `json:"recent"`
}

type WalletService struct {
	api       WalletAPI
	session   Session
	tracker   *WalletTracker
	directory *Directory
	resolver  *direction.Resolver
	formatter *amount.Formatter
	log       *slog.Logger
	now       func() time.Time

	group singleflight.Group
}

func NewWalletService(
	api WalletAPI,
	session Session,
	tracker *WalletTracker,
	directory *Directory,
	formatter *amount.Formatter,
	log *slog.Logger,
) *WalletService {
	return &WalletService{
		api:       api,
		session:   session,
		tracker:   tracker,
		directory: directory,
		resolver:  direction.NewResolver(formatter),
		formatter: formatter,
		log:       log,
		now:       time.Now,
	}
}

// Refresh reloads user, wallet and recent activity. Overlapping calls share
// one round of requests.
func (s *WalletService) Refresh(ctx context.Context) (Dashboard, error) {
	const op = "service.Refresh"
	v, err, shared := s.group.Do("refresh", func() (any, error) {
		return s.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return Dashboard{}, fmt.Errorf("%s: %w", op, err)
	}
	if shared {
		s.log.Debug("refresh coalesced", slog.String("op", op))
	}
	return v.(Dashboard), nil
}

func (s *WalletService) refresh(ctx context.Context) (Dashboard, error) {
	gen := s.tracker.Begin()

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	wallet, err := s.ownWallet(ctx, user)
	if err != nil {
		return Dashboard{}, err
	}

	if err := s.tracker.Apply(gen, wallet); err != nil {
		if !errors.Is(err, custom_err.ErrStaleResponse) {
			return Dashboard{}, err
		}
		// a newer fetch already stored the wallet; render that one
		if newer, ok := s.session.Wallet(); ok && newer.ID.Valid() {
			s.log.Debug("refresh kept newer wallet", slog.String("wallet_id", newer.ID.String()))
			wallet = newer
		}
	}
	s.session.SetUser(user)

	page, err := s.api.ListTransactions(ctx, models.TransactionFilter{WalletID: wallet.ID, Size: recentTransactions})
	if err != nil {
		return Dashboard{}, err
	}
	recent, err := s.resolver.ResolveAll(page.Content, wallet.ID)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Greeting:       Greeting(s.now()),
		FirstName:      user.FirstName(),
		User:           user,
		Wallet:         wallet,
		DisplayBalance: s.formatter.Money(wallet.Balance),
		Recent:         recent,
	}, nil
}

func (s *WalletService) ownWallet(ctx context.Context, user models.User) (models.Wallet, error) {
	wallets, err := s.api.WalletsByUser(ctx, user.ID)
	if err != nil && !errors.Is(err, custom_err.ErrNotFound) {
		return models.Wallet{}, err
	}
	for _, w := range wallets {
		if w.OwnedBy(user.ID) {
			return w, nil
		}
	}
	if id := s.session.WalletID(); id.Valid() {
		return s.api.GetWallet(ctx, id)
	}
	return models.Wallet{}, custom_err.ErrWalletNotLoaded
}

// Recipients lists every wallet a transfer can go to. The signed-in wallet is
// left out of the list and refreshed from it instead.
func (s *WalletService) Recipients(ctx context.Context) ([]models.Wallet, error) {
	const op = "service.Recipients"
	mine := s.session.WalletID()
	if !mine.Valid() {
		return nil, fmt.Errorf("%s: %w", op, custom_err.ErrWalletNotLoaded)
	}

	gen := s.tracker.Begin()
	wallets, err := s.api.ListWallets(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	recipients := make([]models.Wallet, 0, len(wallets))
	for _, w := range wallets {
		if w.ID == mine {
			if err := s.tracker.Apply(gen, w); err != nil {
				s.log.Debug("discarded stale wallet", slog.String("op", op), slog.String("wallet_id", w.ID.String()))
			}
			continue
		}
		recipients = append(recipients, w)
	}
	s.directory.Replace(recipients)
	return recipients, nil
}
