package handler

import (
	"net/http"

	"github.com/segyhp/reminder-engine/pkg/response"
)

type BacklogHandler struct {
	service BacklogService
}

func NewBacklogHandler(service BacklogService) *BacklogHandler {
	return &BacklogHandler{service: service}
}

// List handles GET /backlog?payment_id=
func (h *BacklogHandler) List(w http.ResponseWriter, r *http.Request) {
	paymentID, err := queryID(r, "payment_id")
	if err != nil {
		response.FromError(w, err)
		return
	}

	entries, err := h.service.List(r.Context(), paymentID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, entries)
}
