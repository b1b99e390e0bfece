package handler

import (
	"github.com/segyhp/reminder-engine/pkg/response"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handlers groups everything NewRouter mounts
type Handlers struct {
	Health   *HealthHandler
	Client   *ClientHandler
	Payment  *PaymentHandler
	Reminder *ReminderHandler
	Backlog  *BacklogHandler
}

// NewRouter wires the health endpoints and the /api/v1 routes
func NewRouter(h Handlers, logger *zap.Logger) *mux.Router {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := mux.NewRouter()
	router.Use(response.RecoveryMiddleware(logger), response.LoggingMiddleware(logger), response.CORSMiddleware)

	// Health check
	if h.Health != nil {
		router.HandleFunc("/health", h.Health.Health).Methods("GET")
		router.HandleFunc("/health/ready", h.Health.Ready).Methods("GET")
	}

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/clients", h.Client.List).Methods("GET")
	api.HandleFunc("/clients", h.Client.Create).Methods("POST")
	api.HandleFunc("/clients/{clientId}", h.Client.Get).Methods("GET")
	api.HandleFunc("/clients/{clientId}", h.Client.Update).Methods("PUT")
	api.HandleFunc("/clients/{clientId}", h.Client.Delete).Methods("DELETE")

	api.HandleFunc("/payments", h.Payment.List).Methods("GET")
	api.HandleFunc("/payments", h.Payment.Create).Methods("POST")
	api.HandleFunc("/payments/{paymentId}", h.Payment.Get).Methods("GET")
	api.HandleFunc("/payments/{paymentId}", h.Payment.Update).Methods("PUT")
	api.HandleFunc("/payments/{paymentId}", h.Payment.Delete).Methods("DELETE")
	api.HandleFunc("/payments/{paymentId}/status", h.Payment.SetStatus).Methods("PATCH")
	api.HandleFunc("/payments/{paymentId}/visibility", h.Payment.SetVisibility).Methods("PATCH")
	api.HandleFunc("/payments/{paymentId}/reminder", h.Reminder.Preview).Methods("GET")

	api.HandleFunc("/reminders", h.Reminder.Send).Methods("POST")
	api.HandleFunc("/backlog", h.Backlog.List).Methods("GET")

	return router
}
