package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventOrderPlaced    EventType = "order_placed"
	EventOrderFulfilled EventType = "order_fulfilled"
	EventOrderFailed    EventType = "order_failed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, userID int64, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	OrderID     int64   `json:"order_id"`
	FranchiseID int64   `json:"franchise_id"`
	StoreID     int64   `json:"store_id"`
	ItemCount   int     `json:"item_count"`
	Total       float64 `json:"total"`
}

// OrderFulfilledPayload payload.
type OrderFulfilledPayload struct {
	OrderID   int64  `json:"order_id"`
	ReportURL string `json:"report_url,omitempty"`
}

// OrderFailedPayload payload.
type OrderFailedPayload struct {
	OrderID   int64  `json:"order_id"`
	ReportURL string `json:"report_url,omitempty"`
	Reason    string `json:"reason"`
}
