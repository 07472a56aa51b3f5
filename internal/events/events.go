package events

import (
	"context"
	"time"
)

// Event types published after a request transaction commits.
const (
	TypeRequestCreated   = "approval_request_created"
	TypeRequestUpdated   = "approval_request_updated"
	TypeRequestSubmitted = "approval_request_submitted"
	TypeRequestApproved  = "approval_request_approved"
	TypeRequestRefused   = "approval_request_refused"
	TypeStockChecked     = "approval_request_stock_checked"
)

// Event is the JSON schema shared by the websocket stream and NATS.
type Event struct {
	Type            string                 `json:"event_type"`
	RequestID       string                 `json:"request_id"`
	RequestName     string                 `json:"request_name"`
	Status          string                 `json:"status"`
	ActorID         string                 `json:"actor_id"`
	PurchaseOrderID string                 `json:"purchase_order_id,omitempty"`
	StockTransferID string                 `json:"stock_transfer_id,omitempty"`
	OccurredAt      time.Time              `json:"occurred_at"`
	Payload         map[string]interface{} `json:"payload,omitempty"`
}

// Publisher delivers events. Implementations never fail the caller:
// delivery problems are logged and dropped.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type multiPublisher []Publisher

// Multi fans an event out to every non-nil publisher in order.
func Multi(publishers ...Publisher) Publisher {
	out := make(multiPublisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (m multiPublisher) Publish(ctx context.Context, event Event) {
	for _, p := range m {
		p.Publish(ctx, event)
	}
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}
