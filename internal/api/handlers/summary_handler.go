package handlers

import (
	"net/http"

	"wallet_client/internal/api/middlew"
	"wallet_client/internal/models"
	"wallet_client/internal/service"
	"wallet_client/pkg/response"
)

type SummaryHandler struct {
	service service.SummaryServicer
}

func NewSummaryHandler(service service.SummaryServicer) *SummaryHandler {
	return &SummaryHandler{service: service}
}

func (h *SummaryHandler) Overview(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Overview"
	log := middlew.GetLogger(r.Context())

	q := r.URL.Query()
	year, err := queryInt(q.Get("year"))
	if err != nil {
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_request", "year must be a number")
		return
	}

	overview, err := h.service.Overview(r.Context(), models.GraphView(q.Get("view")), year)
	if err != nil {
		writeServiceError(w, log, op, err)
		return
	}
	response.WriteJSONSuccess(w, log, http.StatusOK, overview)
}
