package events

import (
	"context"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/prperemyshlev/donor-service/internal/domain"
)

// Routing keys of published domain events
const (
	DonationRequestCreated       = "donation_request.created"
	DonationRequestStatusUpdated = "donation_request.status_updated"
)

// Event is the envelope written to the broker. IDs are KSUIDs and sort by time.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// DonationRequestPayload describes a donation request change
type DonationRequestPayload struct {
	RequestID     string `json:"requestId"`
	DonorID       string `json:"donorId"`
	RequesterID   string `json:"requesterId"`
	RequestStatus string `json:"requestStatus"`
	ActorID       string `json:"actorId,omitempty"`
}

// Publisher delivers domain events
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NewDonationRequestEvent builds an event from a donation request
func NewDonationRequestEvent(eventType string, req *domain.DonationRequest, actorID string) Event {
	return Event{
		ID:         ksuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload: DonationRequestPayload{
			RequestID:     req.ID,
			DonorID:       req.DonorID,
			RequesterID:   req.RequesterID,
			RequestStatus: req.RequestStatus,
			ActorID:       actorID,
		},
	}
}

// NopPublisher discards every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
