package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"wallet_client/internal/custom_err"
	"wallet_client/pkg/response"
)

// userMessage prefers the wallet service's own message, then the last part
// of a wrapped error.
func userMessage(err error, fallback string) string {
	var apiErr *custom_err.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 && i+2 < len(msg) {
		return msg[i+2:]
	}
	return fallback
}

func writeServiceError(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, custom_err.ErrSubmissionInFlight):
		log.Info("submission already in flight", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusConflict, "submission_in_flight", "A submission is already in progress")
	case errors.Is(err, custom_err.ErrStaleResponse):
		response.WriteJSONError(w, log, http.StatusConflict, "stale_response", "A newer update was already applied")
	case errors.Is(err, custom_err.ErrTokenExpired):
		log.Info("session expired", slog.String("op", op))
		response.WriteJSONError(w, log, http.StatusUnauthorized, "token_expired", "Session expired, please sign in again")
	case errors.Is(err, custom_err.ErrUnauthenticated):
		log.Info("not authenticated", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusUnauthorized, "unauthenticated", "Please sign in")
	case errors.Is(err, custom_err.ErrWalletNotLoaded):
		response.WriteJSONError(w, log, http.StatusNotFound, "wallet_not_loaded", "No wallet is loaded")
	case errors.Is(err, custom_err.ErrAmountTooSmall),
		errors.Is(err, custom_err.ErrAmountTooLarge),
		errors.Is(err, custom_err.ErrInvalidAmount):
		response.WriteJSONError(w, log, http.StatusUnprocessableEntity, "invalid_amount", userMessage(err, "Invalid amount"))
	case errors.Is(err, custom_err.ErrInsufficientFunds):
		response.WriteJSONError(w, log, http.StatusUnprocessableEntity, "insufficient_funds", "Insufficient balance")
	case errors.Is(err, custom_err.ErrSelfTransfer):
		response.WriteJSONError(w, log, http.StatusUnprocessableEntity, "self_transfer", "Cannot transfer to your own wallet")
	case errors.Is(err, custom_err.ErrValidation):
		log.Warn("request rejected", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", userMessage(err, "Invalid request"))
	case errors.Is(err, custom_err.ErrNotFound):
		response.WriteJSONError(w, log, http.StatusNotFound, "not_found", userMessage(err, "Not found"))
	case errors.Is(err, custom_err.ErrConflict):
		response.WriteJSONError(w, log, http.StatusConflict, "conflict", userMessage(err, "Conflict"))
	case errors.Is(err, custom_err.ErrNetwork):
		log.Error("wallet service unreachable", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadGateway, "upstream_unavailable", "Wallet service is unreachable")
	case errors.Is(err, custom_err.ErrServer), errors.Is(err, custom_err.ErrUnknownTransactionType):
		log.Error("wallet service failed", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadGateway, "upstream_error", "Wallet service failed")
	default:
		log.Error("request failed", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "An internal error occurred")
	}
}
