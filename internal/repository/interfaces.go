package repository

import (
	"context"

	"github.com/segyhp/reminder-engine/internal/domain"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	// Create inserts a client and fills its ID and CreatedAt
	Create(ctx context.Context, client *domain.Client) error

	// GetByID retrieves a client by ID; sql.ErrNoRows when missing
	GetByID(ctx context.Context, id int64) (*domain.Client, error)

	// GetByName retrieves all clients with exactly this name
	GetByName(ctx context.Context, name string) ([]*domain.Client, error)

	// List retrieves every client ordered by ID
	List(ctx context.Context) ([]*domain.Client, error)

	// Update updates name and phone of a client
	Update(ctx context.Context, client *domain.Client) error

	// Delete removes a client and, through the foreign key, its payments
	Delete(ctx context.Context, id int64) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create inserts a payment and fills its ID and CreatedAt
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment joined with its client; sql.ErrNoRows when missing
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)

	// List retrieves payments joined with their clients, narrowed by filter
	List(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error)

	// ListUnpaid retrieves unpaid, visible payments ordered by due date
	ListUnpaid(ctx context.Context) ([]*domain.Payment, error)

	// Update updates amount, due date and client of a payment
	Update(ctx context.Context, payment *domain.Payment) error

	// SetPaid updates the paid flag
	SetPaid(ctx context.Context, id int64, paid bool) error

	// SetVisible updates the visibility flag
	SetVisible(ctx context.Context, id int64, visible bool) error

	// Delete removes a payment
	Delete(ctx context.Context, id int64) error
}

// BacklogRepository defines the interface for the change log
type BacklogRepository interface {
	// Create appends an entry
	Create(ctx context.Context, entry *domain.BacklogEntry) error

	// List retrieves entries newest first; nil paymentID returns all
	List(ctx context.Context, paymentID *int64) ([]*domain.BacklogEntry, error)
}
