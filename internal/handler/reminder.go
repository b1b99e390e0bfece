package handler

import (
	"net/http"

	"github.com/segyhp/reminder-engine/internal/domain"
	"github.com/segyhp/reminder-engine/pkg/response"

	"github.com/go-playground/validator/v10"
)

type ReminderHandler struct {
	service   ReminderService
	validator *validator.Validate
}

func NewReminderHandler(service ReminderService) *ReminderHandler {
	return &ReminderHandler{
		service:   service,
		validator: NewValidator(),
	}
}

// Preview handles GET /payments/{paymentId}/reminder
func (h *ReminderHandler) Preview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "paymentId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	result, err := h.service.Preview(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, result)
}

// Send handles POST /reminders. Per-payment failures are part of the report, not an error status.
func (h *ReminderHandler) Send(w http.ResponseWriter, r *http.Request) {
	var request domain.SendRemindersRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		response.FromError(w, err)
		return
	}

	report, err := h.service.Send(r.Context(), request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, report)
}
