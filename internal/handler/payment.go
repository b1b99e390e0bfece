package handler

import (
	"net/http"

	"github.com/segyhp/reminder-engine/internal/domain"
	"github.com/segyhp/reminder-engine/pkg/response"

	"github.com/go-playground/validator/v10"
)

type PaymentHandler struct {
	service   PaymentService
	validator *validator.Validate
}

func NewPaymentHandler(service PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:   service,
		validator: NewValidator(),
	}
}

// Create handles POST /payments
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreatePaymentRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		response.FromError(w, err)
		return
	}

	payment, err := h.service.Create(r.Context(), request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, payment)
}

// List handles GET /payments?client_id=&hide_paid=&visible_only=&sort=&order=
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	query := domain.PaymentQuery{
		Sort:  r.URL.Query().Get("sort"),
		Order: r.URL.Query().Get("order"),
	}

	clientID, err := queryID(r, "client_id")
	if err != nil {
		response.FromError(w, err)
		return
	}
	if clientID != nil {
		query.ClientID = *clientID
	}
	if query.HidePaid, err = queryBool(r, "hide_paid"); err != nil {
		response.FromError(w, err)
		return
	}
	if query.VisibleOnly, err = queryBool(r, "visible_only"); err != nil {
		response.FromError(w, err)
		return
	}

	payments, err := h.service.List(r.Context(), query)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payments)
}

// Get handles GET /payments/{paymentId}
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "paymentId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	payment, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payment)
}

// Update handles PUT /payments/{paymentId}
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "paymentId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var request domain.UpdatePaymentRequest
	if err = decodeAndValidate(r, h.validator, &request); err != nil {
		response.FromError(w, err)
		return
	}

	payment, err := h.service.Update(r.Context(), id, request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payment)
}

// Delete handles DELETE /payments/{paymentId}
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "paymentId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	if err = h.service.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, map[string]int64{"deleted": id})
}

// SetStatus handles PATCH /payments/{paymentId}/status. Without is_paid the status is toggled.
func (h *PaymentHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "paymentId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var request domain.SetStatusRequest
	if err = decodeAndValidate(r, h.validator, &request); err != nil {
		response.FromError(w, err)
		return
	}

	var payment *domain.Payment
	if request.IsPaid == nil {
		payment, err = h.service.ToggleStatus(r.Context(), id)
	} else {
		payment, err = h.service.SetPaid(r.Context(), id, *request.IsPaid)
	}
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payment)
}

// SetVisibility handles PATCH /payments/{paymentId}/visibility
func (h *PaymentHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "paymentId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var request domain.SetVisibilityRequest
	if err = decodeAndValidate(r, h.validator, &request); err != nil {
		response.FromError(w, err)
		return
	}

	payment, err := h.service.SetVisible(r.Context(), id, *request.Visible)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, payment)
}
