package audit

import (
	"encoding/json"
	"fmt"
	"time"
)

// wireEvent is the JSON form shared by the outbox table and the Kafka topic.
type wireEvent struct {
	ID             string            `json:"id"`
	Category       string            `json:"category"`
	Timestamp      string            `json:"timestamp"`
	Subject        string            `json:"subject"`
	Action         string            `json:"action"`
	Decision       string            `json:"decision,omitempty"`
	Reason         string            `json:"reason,omitempty"`
	RequestID      string            `json:"request_id,omitempty"`
	AdjudicationID string            `json:"adjudication_id,omitempty"`
	Attributes     map[string]string `json:"attributes,omitempty"`
}

// Marshal encodes event under the given id. Category is derived from Action
// when unset.
func Marshal(id string, event Event) ([]byte, error) {
	category := event.Category
	if category == "" {
		category = AuditEvent(event.Action).Category()
	}
	payload, err := json.Marshal(wireEvent{
		ID:             id,
		Category:       string(category),
		Timestamp:      event.Timestamp.UTC().Format(time.RFC3339Nano),
		Subject:        event.Subject,
		Action:         event.Action,
		Decision:       event.Decision,
		Reason:         event.Reason,
		RequestID:      event.RequestID,
		AdjudicationID: event.AdjudicationID,
		Attributes:     event.Attributes,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal audit event: %w", err)
	}
	return payload, nil
}

// Unmarshal decodes a payload produced by Marshal.
func Unmarshal(data []byte) (id string, event Event, err error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return "", Event{}, fmt.Errorf("unmarshal audit event: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, w.Timestamp)
	if err != nil {
		return "", Event{}, fmt.Errorf("parse audit timestamp: %w", err)
	}
	return w.ID, Event{
		Category:       EventCategory(w.Category),
		Timestamp:      ts,
		Subject:        w.Subject,
		Action:         w.Action,
		Decision:       w.Decision,
		Reason:         w.Reason,
		RequestID:      w.RequestID,
		AdjudicationID: w.AdjudicationID,
		Attributes:     w.Attributes,
	}, nil
}
