package handlers

import (
	"net/http"

	"wallet_client/internal/api/middlew"
	"wallet_client/internal/service"
	"wallet_client/pkg/response"
)

type WalletHandler struct {
	service service.WalletServicer
}

func NewWalletHandler(service service.WalletServicer) *WalletHandler {
	return &WalletHandler{service: service}
}

func (h *WalletHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Dashboard"
	log := middlew.GetLogger(r.Context())

	dash, err := h.service.Refresh(r.Context())
	if err != nil {
		writeServiceError(w, log, op, err)
		return
	}
	response.WriteJSONSuccess(w, log, http.StatusOK, dash)
}

func (h *WalletHandler) Recipients(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Recipients"
	log := middlew.GetLogger(r.Context())

	wallets, err := h.service.Recipients(r.Context())
	if err != nil {
		writeServiceError(w, log, op, err)
		return
	}
	response.WriteJSONSuccess(w, log, http.StatusOK, wallets)
}
