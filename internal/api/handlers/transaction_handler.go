package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"wallet_client/internal/api/middlew"
	"wallet_client/internal/models"
	"wallet_client/internal/service"
	"wallet_client/pkg/response"
)

type TransactionHandler struct {
	transactions service.TransactionServicer
	history      service.HistoryServicer
}

func NewTransactionHandler(transactions service.TransactionServicer, history service.HistoryServicer) *TransactionHandler {
	return &TransactionHandler{transactions: transactions, history: history}
}

func (h *TransactionHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	const op = "handler.TopUp"
	log := middlew.GetLogger(r.Context())
	defer r.Body.Close()

	var in service.TopUpInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Warn("invalid JSON body", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	receipt, err := h.transactions.TopUp(r.Context(), in)
	if err != nil {
		writeServiceError(w, log, op, err)
		return
	}
	response.WriteJSONSuccess(w, log, http.StatusCreated, receipt)
}

func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Transfer"
	log := middlew.GetLogger(r.Context())
	defer r.Body.Close()

	var in service.TransferInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Warn("invalid JSON body", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	receipt, err := h.transactions.Transfer(r.Context(), in)
	if err != nil {
		writeServiceError(w, log, op, err)
		return
	}
	response.WriteJSONSuccess(w, log, http.StatusCreated, receipt)
}

func (h *TransactionHandler) PaymentOptions(w http.ResponseWriter, r *http.Request) {
	log := middlew.GetLogger(r.Context())
	response.WriteJSONSuccess(w, log, http.StatusOK, h.transactions.PaymentOptions())
}

func (h *TransactionHandler) History(w http.ResponseWriter, r *http.Request) {
	const op = "handler.History"
	log := middlew.GetLogger(r.Context())

	q := r.URL.Query()
	page, err := queryInt(q.Get("page"))
	if err != nil {
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "page must be a number")
		return
	}
	size, err := queryInt(q.Get("size"))
	if err != nil {
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "size must be a number")
		return
	}

	result, err := h.history.History(r.Context(), service.HistoryQuery{
		Type: models.TransactionType(q.Get("type")),
		Date: q.Get("date"),
		Page: page,
		Size: size,
	})
	if err != nil {
		writeServiceError(w, log, op, err)
		return
	}
	response.WriteJSONSuccess(w, log, http.StatusOK, result)
}

func (h *TransactionHandler) Latest(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Latest"
	log := middlew.GetLogger(r.Context())

	view, err := h.history.Latest(r.Context())
	if err != nil {
		writeServiceError(w, log, op, err)
		return
	}
	response.WriteJSONSuccess(w, log, http.StatusOK, view)
}

func (h *TransactionHandler) Detail(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Detail"
	log := middlew.GetLogger(r.Context())

	id, ok := transactionID(w, r, log, op)
	if !ok {
		return
	}
	view, err := h.history.Detail(r.Context(), id)
	if err != nil {
		writeServiceError(w, log, op, err)
		return
	}
	response.WriteJSONSuccess(w, log, http.StatusOK, view)
}

// Proof streams the PDF receipt of a transaction.
func (h *TransactionHandler) Proof(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Proof"
	log := middlew.GetLogger(r.Context())

	id, ok := transactionID(w, r, log, op)
	if !ok {
		return
	}
	doc, err := h.history.ExportProof(r.Context(), id)
	if err != nil {
		writeServiceError(w, log, op, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="transaction-%s.pdf"`, id))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		log.Warn("failed to write proof", slog.String("op", op), slog.String("error", err.Error()))
	}
}

func transactionID(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string) (models.TransactionID, bool) {
	idStr := chi.URLParam(r, "transactionID")
	id, err := models.ParseTransactionID(idStr)
	if err != nil || !id.Valid() {
		log.Warn("invalid transaction id", slog.String("op", op), slog.String("id", idStr))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "Invalid transaction ID format")
		return 0, false
	}
	return id, true
}

func queryInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}
