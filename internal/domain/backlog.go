package domain

import "time"

// BacklogEntry is one line of the change log kept for every mutation and reminder run
type BacklogEntry struct {
	ID              int64     `json:"id" db:"id"`
	PaymentID       *int64    `json:"payment_id,omitempty" db:"payment_id"`
	ChangeDate      time.Time `json:"change_date" db:"change_date"`
	ResponsibleUser string    `json:"responsible_user" db:"responsible_user"`
	Description     string    `json:"description" db:"description"`
}
