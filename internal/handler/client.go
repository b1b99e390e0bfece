package handler

import (
	"net/http"

	"github.com/segyhp/reminder-engine/internal/domain"
	"github.com/segyhp/reminder-engine/pkg/response"

	"github.com/go-playground/validator/v10"
)

type ClientHandler struct {
	service   ClientService
	validator *validator.Validate
}

func NewClientHandler(service ClientService) *ClientHandler {
	return &ClientHandler{
		service:   service,
		validator: NewValidator(),
	}
}

// Create handles POST /clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateClientRequest
	if err := decodeAndValidate(r, h.validator, &request); err != nil {
		response.FromError(w, err)
		return
	}

	client, err := h.service.Create(r.Context(), request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, client)
}

// List handles GET /clients?name=&sort=&order=
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	clients, err := h.service.List(r.Context(), domain.ClientQuery{
		Name:  q.Get("name"),
		Sort:  q.Get("sort"),
		Order: q.Get("order"),
	})
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, clients)
}

// Get handles GET /clients/{clientId}
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "clientId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	client, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, client)
}

// Update handles PUT /clients/{clientId}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "clientId")
	if err != nil {
		response.FromError(w, err)
		return
	}

	var request domain.UpdateClientRequest
	if err = decodeAndValidate(r, h.validator, &request); err != nil {
		response.FromError(w, err)
		return
	}

	client, err := h.service.Update(r.Context(), id, request)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, client)
}

// Delete handles DELETE /clients/{clientId}; the client's payments go with it
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "clientId")
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
