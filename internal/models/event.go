package models

import "time"

// ActivityEvent is published for every reconciled action.
type ActivityEvent struct {
	EventID       string      `json:"event_id"`
	AccountNumber string      `json:"account_number"`
	Transaction   Transaction `json:"transaction"`
	Balance       *Money      `json:"balance,omitempty"`
	OccurredAt    time.Time   `json:"occurred_at"`
}
