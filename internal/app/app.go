package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"wallet_client/internal/amount"
	"wallet_client/internal/api/handlers"
	"wallet_client/internal/api/middlew"
	"wallet_client/internal/apiclient"
	"wallet_client/internal/config"
	"wallet_client/internal/repository"
	"wallet_client/internal/server"
	"wallet_client/internal/service"
	"wallet_client/internal/session"
	"wallet_client/pkg/logger"
)

type App struct {
	cfg     *config.Config
	log     *slog.Logger
	logFile io.Closer
	server  *server.Server

	store repository.KVStore
	pool  *pgxpool.Pool

	session    *session.Holder
	client     *apiclient.Client
	normalizer *amount.Normalizer
}

func NewApp() (*App, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, logFile, err := logger.NewLogger(cfg.LogLevel, cfg.ErrorLogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	log.Info("config loaded",
		slog.String("port", cfg.HTTPPort),
		slog.String("api", cfg.API.BaseURL),
		slog.String("storage", cfg.Storage.Driver))

	a := &App{cfg: cfg, log: log, logFile: logFile}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.openStore(ctx, cfg); err != nil {
		logFile.Close()
		return nil, err
	}

	a.session = session.NewHolder(a.store, log, session.WithFlushInterval(cfg.Storage.FlushInterval))
	if err := a.session.Hydrate(ctx); err != nil {
		a.closeStore()
		logFile.Close()
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	a.session.Start()

	a.client = apiclient.New(cfg.API.BaseURL, a.session, log, apiclient.WithTimeout(cfg.API.Timeout))
	a.normalizer = amount.NewNormalizer(amount.Config{
		Min:      cfg.Amount.Min,
		Max:      cfg.Amount.Max,
		Locale:   cfg.Amount.Locale,
		Currency: cfg.Amount.Currency,
	})

	a.server = server.NewServer(cfg.HTTPPort)
	a.useMiddleware(a.server.Router)
	log.Info("server initialised", slog.String("port", cfg.HTTPPort))

	return a, nil
}

func (a *App) useMiddleware(r chi.Router) {
	r.Use(middleware.RequestID)
	r.Use(middlew.WithLogger(a.log))
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:         300,
	}))
}

// BuildWalletLayer wires services and handlers and registers the routes.
func (a *App) BuildWalletLayer() {
	a.mountRoutes(a.server.Router)
	a.log.Info("wallet layer built and routes registered")
}

func (a *App) mountRoutes(r chi.Router) {
	formatter := a.normalizer.Formatter()
	tracker := service.NewWalletTracker(a.session)
	directory := service.NewDirectory()

	authService := service.NewAuthService(a.client, a.session, tracker, a.log)
	walletService := service.NewWalletService(a.client, a.session, tracker, directory, formatter, a.log)
	transactionService := service.NewTransactionService(a.client, a.session, tracker, directory, a.normalizer, a.log)
	historyService := service.NewHistoryService(a.client, a.session, formatter, a.log)
	summaryService := service.NewSummaryService(a.client, a.session, formatter, a.log)

	authHandler := handlers.NewAuthHandler(authService)
	walletHandler := handlers.NewWalletHandler(walletService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, historyService)
	summaryHandler := handlers.NewSummaryHandler(summaryService)
	amountHandler := handlers.NewAmountHandler(a.normalizer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/session", authHandler.Session)

		r.Get("/dashboard", walletHandler.Dashboard)
		r.Get("/wallets/recipients", walletHandler.Recipients)

		r.Post("/amount/normalize", amountHandler.Normalize)

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", transactionHandler.History)
			r.Post("/top-up", transactionHandler.TopUp)
			r.Post("/transfer", transactionHandler.Transfer)
			r.Get("/payment-options", transactionHandler.PaymentOptions)
			r.Get("/latest", transactionHandler.Latest)
			r.Get("/{transactionID}", transactionHandler.Detail)
			r.Get("/{transactionID}/proof", transactionHandler.Proof)
		})

		r.Get("/summary", summaryHandler.Overview)
	})
}

func (a *App) Run() error {
	a.log.Info("server starting", slog.String("addr", a.server.Addr()))

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case runErr = <-serverErr:
	case sig := <-shutdownChan:
		a.log.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	a.log.Info("application stopping")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("failed to stop http server", slog.String("error", err.Error()))
	}

	a.log.Info("flushing session")
	if err := a.session.Close(ctx); err != nil {
		a.log.Error("failed to flush session", slog.String("error", err.Error()))
	}
	a.closeStore()

	a.log.Info("application stopped")
	if err := a.logFile.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to close error log: %w", err)
	}
	return runErr
}
