package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Message is one event bound for Kafka.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// Header keys carried on every published event.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
)

// NewEvent builds a message for one analytics event. The key partitions by
// subject (e.g. the meetup id) so events about one resource stay ordered.
func NewEvent(eventType, key string, payload any) (Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	return Message{
		Key:   key,
		Value: value,
		Headers: map[string]string{
			HeaderEventID:   uuid.NewString(),
			HeaderEventType: eventType,
			HeaderSource:    "meetup-scheduler",
		},
		Timestamp: time.Now().UTC(),
	}, nil
}
