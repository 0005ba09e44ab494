package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"wallet_client/internal/api/middlew"
	"wallet_client/internal/models"
	"wallet_client/internal/service"
	"wallet_client/pkg/response"
)

type AuthHandler struct {
	service service.AuthServicer
}

func NewAuthHandler(service service.AuthServicer) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Register"
	log := middlew.GetLogger(r.Context())
	defer r.Body.Close()

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON body", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, log, op, err)
		return
	}
	response.WriteJSONSuccess(w, log, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Login"
	log := middlew.GetLogger(r.Context())
	defer r.Body.Close()

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON body", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	state, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, log, op, err)
		return
	}
	response.WriteJSONSuccess(w, log, http.StatusOK, state)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Logout"
	log := middlew.GetLogger(r.Context())

	if err := h.service.Logout(r.Context()); err != nil {
		writeServiceError(w, log, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session reports the locally held session without calling the wallet service.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	log := middlew.GetLogger(r.Context())

	state, ok := h.service.Current()
	if !ok {
		response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthenticated", "Not signed in")
		return
	}
	response.WriteJSONSuccess(w, log, http.StatusOK, state)
}
