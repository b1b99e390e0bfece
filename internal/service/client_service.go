package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/segyhp/reminder-engine/internal/domain"
	"github.com/segyhp/reminder-engine/internal/repository"
	customError "github.com/segyhp/reminder-engine/pkg/errors"
	"github.com/segyhp/reminder-engine/pkg/listing"
	"github.com/segyhp/reminder-engine/pkg/phone"

	"go.uber.org/zap"
)

var clientColumns = listing.Columns[*domain.Client]{
	"id": func(a, b *domain.Client) int { return listing.Compare(a.ID, b.ID) },
	"name": func(a, b *domain.Client) int {
		return listing.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	},
	"phone": func(a, b *domain.Client) int { return listing.Compare(a.Phone, b.Phone) },
}

type ClientService struct {
	ClientRepo repository.ClientRepository
	backlog    *BacklogService
	logger     *zap.Logger
}

func NewClientService(clientRepo repository.ClientRepository, backlog *BacklogService, logger *zap.Logger) *ClientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{
		ClientRepo: clientRepo,
		backlog:    backlog,
		logger:     logger,
	}
}

// Create registers a client. Names need not be unique; a clash is reported through Duplicate.
func (s *ClientService) Create(ctx context.Context, request domain.CreateClientRequest) (*domain.ClientResponse, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, customError.WrapInvalidClientName()
	}

	digits, err := phone.Validate(request.Phone)
	if err != nil {
		return nil, err
	}

	existing, err := s.ClientRepo.GetByName(ctx, name)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	client := &domain.Client{Name: name, Phone: digits}
	if err = s.ClientRepo.Create(ctx, client); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.backlog.record(ctx, nil, fmt.Sprintf("Added client: %s with ID %d", client.Name, client.ID))
	s.logger.Info("client created", zap.Int64("client_id", client.ID), zap.Bool("duplicate", len(existing) > 0))

	return &domain.ClientResponse{Client: client, Duplicate: len(existing) > 0}, nil
}

func (s *ClientService) Get(ctx context.Context, id int64) (*domain.Client, error) {
	client, err := s.ClientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapClientNotFound(id)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return client, nil
}

// List returns clients whose name contains query.Name (case-insensitive), sorted by query.Sort
func (s *ClientService) List(ctx context.Context, query domain.ClientQuery) ([]*domain.Client, error) {
	order, err := listing.ParseOrder(query.Order)
	if err != nil {
		return nil, customError.WrapValidation(err)
	}

	clients, err := s.ClientRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if query.Name != "" {
		clients = listing.Filter(clients, func(c *domain.Client) bool {
			return listing.ContainsFold(c.Name, query.Name)
		})
	}

	sorted, err := listing.Sort(clients, clientColumns, query.Sort, order)
	if err != nil {
		return nil, customError.WrapValidation(err)
	}
	return sorted, nil
}

// Update changes the fields present in request and logs each change
func (s *ClientService) Update(ctx context.Context, id int64, request domain.UpdateClientRequest) (*domain.Client, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var changes []string

	if request.Name != nil {
		name := strings.TrimSpace(*request.Name)
		if name == "" {
			return nil, customError.WrapInvalidClientName()
		}
		if name != client.Name {
			changes = append(changes, fmt.Sprintf("Edited client name: ID %d, from %s to %s", id, client.Name, name))
			client.Name = name
		}
	}

	if request.Phone != nil {
		digits, err := phone.Validate(*request.Phone)
		if err != nil {
			return nil, err
		}
		if digits != client.Phone {
			changes = append(changes, fmt.Sprintf("Edited client phone: ID %d, from %s to %s", id, client.Phone, digits))
			client.Phone = digits
		}
	}

	if len(changes) == 0 {
		return client, nil
	}

	if err = s.ClientRepo.Update(ctx, client); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapClientNotFound(id)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	for _, change := range changes {
		s.backlog.record(ctx, nil, change)
	}

	return client, nil
}

// Delete removes the client together with all of its payments
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	client, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err = s.ClientRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return customError.WrapClientNotFound(id)
		}
		return customError.WrapDatabaseError(err)
	}

	s.backlog.record(ctx, nil, fmt.Sprintf("Deleted client: ID %d, Name %s", id, client.Name))
	return nil
}
