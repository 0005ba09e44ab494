package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"wallet_client/internal/amount"
	"wallet_client/internal/api/middlew"
	"wallet_client/pkg/response"
)

type AmountHandler struct {
	normalizer *amount.Normalizer
}

func NewAmountHandler(normalizer *amount.Normalizer) *AmountHandler {
	return &AmountHandler{normalizer: normalizer}
}

type normalizeRequest struct {
	Text string `json:"text"`
}

type normalizeResponse struct {
	amount.Input
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Normalize formats what the user typed into an amount field.
func (h *AmountHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Normalize"
	log := middlew.GetLogger(r.Context())
	defer r.Body.Close()

	var req normalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid JSON body", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	in := h.normalizer.Normalize(req.Text)
	response.WriteJSONSuccess(w, log, http.StatusOK, normalizeResponse{
		Input: in,
		Valid: in.Valid(),
		Error: in.ErrorMessage(),
	})
}
