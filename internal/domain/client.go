package domain

import "time"

// Client is a debtor that installments are owed by
type Client struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Phone     string    `json:"phone" db:"phone"` // digits only
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateClientRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Phone string `json:"phone" validate:"required,phone"`
}

type UpdateClientRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,phone"`
}

type ClientQuery struct {
	Name  string
	Sort  string
	Order string
}

type ClientResponse struct {
	Client *Client `json:"client"`
	// Duplicate is set when another client already carries the same name
	Duplicate bool `json:"duplicate"`
}
