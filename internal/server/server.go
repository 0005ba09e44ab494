// Package server hosts walletd, the local HTTP gateway in front of the wallet
// service client. It binds the port and owns the router; routes are mounted
// by the app.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Server is the gateway the UI talks to. Router is exported so the app can
// add middleware and routes before Run.
type Server struct {
	httpServer *http.Server
	Router     *chi.Mux
}

// NewServer listens on all interfaces at port once Run is called.
func NewServer(port string) *Server {
	router := chi.NewRouter()

	serv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// proof downloads wait on the wallet service
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return &Server{
		httpServer: serv,
		Router:     router,
	}
}

func (s *Server) Addr() string { return s.httpServer.Addr }

// Run blocks until the server stops; after Shutdown it returns
// http.ErrServerClosed.
func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
