package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"wallet_client/internal/custom_err"
	"wallet_client/internal/models"
)

type AuthServicer interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (SessionState, error)
	Logout(ctx context.Context) error
	Current() (SessionState, bool)
}

var _ AuthServicer = (*AuthService)(nil)

type AuthService struct {
	api     WalletAPI
	session Session
	tracker *WalletTracker
	log     *slog.Logger
}

func NewAuthService(api WalletAPI, session Session, tracker *WalletTracker, log *slog.Logger) *AuthService {
	return &AuthService{api: api, session: session, tracker: tracker, log: log}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	const op = "service.Register"
	if err := req.Validate(); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.api.Register(ctx, req)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user registered", slog.String("op", op), slog.String("user_id", user.ID.String()))
	return user, nil
}

// Login signs in, loads the user and makes sure they own a wallet, creating
// one when the service has none. A failed login leaves no partial session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (SessionState, error) {
	const op = "service.Login"
	if err := req.Validate(); err != nil {
		return SessionState{}, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return SessionState{}, fmt.Errorf("%s: %w", op, err)
	}
	s.tracker.Reset()
	gen := s.tracker.Begin()
	s.session.SetToken(resp.Token)

	state, err := s.loadAccount(ctx, resp.UserID)
	if err != nil {
		s.session.Clear(ctx)
		return SessionState{}, fmt.Errorf("%s: %w", op, err)
	}

	s.session.SetUser(state.User)
	if err := s.tracker.Apply(gen, state.Wallet); err != nil {
		s.log.Debug("discarded stale wallet", slog.String("op", op), slog.String("wallet_id", state.Wallet.ID.String()))
		if newer, ok := s.session.Wallet(); ok {
			state.Wallet = newer
		}
	}
	s.log.Info("user signed in",
		slog.String("op", op),
		slog.String("user_id", state.User.ID.String()),
		slog.String("wallet_id", state.Wallet.ID.String()))
	return state, nil
}

func (s *AuthService) loadAccount(ctx context.Context, userID models.UserID) (SessionState, error) {
	user, err := s.api.GetUser(ctx, userID)
	if err != nil {
		return SessionState{}, err
	}
	wallet, err := s.ensureWallet(ctx, user)
	if err != nil {
		return SessionState{}, err
	}
	return SessionState{User: user, Wallet: wallet}, nil
}

func (s *AuthService) ensureWallet(ctx context.Context, user models.User) (models.Wallet, error) {
	wallets, err := s.api.WalletsByUser(ctx, user.ID)
	switch {
	case errors.Is(err, custom_err.ErrNotFound):
	case err != nil:
		return models.Wallet{}, err
	default:
		for _, w := range wallets {
			if w.OwnedBy(user.ID) {
				return w, nil
			}
		}
	}

	s.log.Info("no wallet found, creating one", slog.String("user_id", user.ID.String()))
	return s.api.CreateWallet(ctx, user.ID)
}

// Logout tells the service, then forgets the local session whatever the
// service answered.
func (s *AuthService) Logout(ctx context.Context) error {
	const op = "service.Logout"
	if s.session.HasToken() {
		if err := s.api.Logout(ctx); err != nil {
			s.log.Warn("remote logout failed", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
	s.tracker.Reset()
	s.session.Clear(ctx)
	return nil
}

func (s *AuthService) Current() (SessionState, bool) {
	user, ok := s.session.User()
	if !ok {
		return SessionState{}, false
	}
	wallet, _ := s.session.Wallet()
	return SessionState{User: user, Wallet: wallet}, true
}
