package models

import (
	"fmt"
	"strings"
	"time"
)

// StatusCheck is an append-only heartbeat record reported by a client.
type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// StatusCheckDocument is the shape persisted in the document store.
// Timestamp is kept as an ISO-8601 string.
type StatusCheckDocument struct {
	ID         string `json:"id" bson:"id" dynamodbav:"id"`
	ClientName string `json:"client_name" bson:"client_name" dynamodbav:"client_name"`
	Timestamp  string `json:"timestamp" bson:"timestamp" dynamodbav:"timestamp"`
}

// TimestampLayout is used when writing timestamps to the store.
const TimestampLayout = time.RFC3339Nano

// accepted on read; older writers omitted the zone or used a space separator
var timestampReadLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ToDocument converts a record into its stored form (UTC, RFC3339Nano).
func (s StatusCheck) ToDocument() StatusCheckDocument {
	return StatusCheckDocument{
		ID:         s.ID,
		ClientName: s.ClientName,
		Timestamp:  s.Timestamp.UTC().Format(TimestampLayout),
	}
}

// ToStatusCheck parses the stored timestamp back into a StatusCheck.
func (d StatusCheckDocument) ToStatusCheck() (StatusCheck, error) {
	ts, err := ParseTimestamp(d.Timestamp)
	if err != nil {
		return StatusCheck{}, fmt.Errorf("status check %q: %w", d.ID, err)
	}
	return StatusCheck{
		ID:         d.ID,
		ClientName: d.ClientName,
		Timestamp:  ts,
	}, nil
}

// ParseTimestamp parses an ISO-8601 timestamp. Values without a zone are
// taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampReadLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp %q", s)
}

// StatusCheckCreate is the create request body. ClientName is a pointer so a
// missing field can be told apart from an empty string.
type StatusCheckCreate struct {
	ClientName *string `json:"client_name" binding:"required"`
}
