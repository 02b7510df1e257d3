package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing.
type EventCategory string

const (
	// CategoryCompliance covers events that explain a credit decision after the
	// fact. These are kept for the full finance retention period.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers events useful for debugging and operational visibility.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	// Subject is the customer account the action concerns (e.g. "ABC-123456").
	Subject  string
	Action   string
	Decision string
	Reason   string
	// RequestID is the correlation ID from the HTTP request context.
	RequestID string
	// AdjudicationID identifies one adjudication run across logs, metrics and sinks.
	AdjudicationID string
	// Attributes carries summary counts and other flat key/value context.
	Attributes map[string]string
}

type AuditEvent string

const (
	EventSotAdjudicated       AuditEvent = "sot_adjudicated"
	EventSotAdjudicationError AuditEvent = "sot_adjudication_failed"
	EventSotClaimUnresolved   AuditEvent = "sot_claim_unresolved"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventSotAdjudicated:       CategoryCompliance,
	EventSotAdjudicationError: CategoryOperations,
	EventSotClaimUnresolved:   CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
