// Package activity holds the synced-activity record, the decoding and
// validation of sync payloads, and the in-memory store the records live in.
package activity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout renders UTC times with millisecond precision and a Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// RequiredFields lists the payload fields a sync needs, in the order they are
// checked.
var RequiredFields = []string{"id", "title", "category", "organizer", "start_time", "end_time"}

const (
	DefaultMaxParticipants = 0
	DefaultStatus          = 1
)

// SyncedActivity is an activity accepted by the sync endpoint. Apart from
// SyncedAt, every field holds the decoded JSON value the client sent, so a
// numeric title or a string status is stored and echoed unchanged.
type SyncedActivity struct {
	ID              any    `json:"id"`
	Title           any    `json:"title"`
	Description     any    `json:"description"`
	Category        any    `json:"category"`
	Organizer       any    `json:"organizer"`
	StartTime       any    `json:"start_time"`
	EndTime         any    `json:"end_time"`
	MaxParticipants any    `json:"max_participants"`
	Location        any    `json:"location"`
	Status          any    `json:"status"`
	SyncedAt        string `json:"synced_at"`
}

// Payload is a decoded sync request body. Numbers are kept as json.Number so
// an echoed id keeps its original literal.
type Payload map[string]any

// DecodePayload parses a sync request body. An empty body or a JSON null is
// reported as ErrEmptyBody; a JSON value that is not an object decodes to an
// empty Payload.
func DecodePayload(body []byte) (Payload, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyBody
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, malformedBody(err)
	}
	if dec.More() {
		return nil, malformedBody(fmt.Errorf("trailing data after JSON value"))
	}

	if v == nil {
		return nil, ErrEmptyBody
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return Payload{}, nil
	}
	return Payload(obj), nil
}

// Validate reports the first required field that is absent or falsy.
func (p Payload) Validate() error {
	for _, field := range RequiredFields {
		if !truthy(p[field]) {
			return missingField(field)
		}
	}
	return nil
}

// Build turns a validated payload into a record stamped with syncedAt.
// Optional fields that are absent or falsy get their defaults.
func Build(p Payload, syncedAt time.Time) SyncedActivity {
	return SyncedActivity{
		ID:              p["id"],
		Title:           p["title"],
		Description:     p.or("description", ""),
		Category:        p["category"],
		Organizer:       p["organizer"],
		StartTime:       p["start_time"],
		EndTime:         p["end_time"],
		MaxParticipants: p.or("max_participants", DefaultMaxParticipants),
		Location:        p.or("location", ""),
		Status:          p.or("status", DefaultStatus),
		SyncedAt:        syncedAt.UTC().Format(TimestampLayout),
	}
}

func (p Payload) or(name string, def any) any {
	if v := p[name]; truthy(v) {
		return v
	}
	return def
}

// truthy mirrors the desktop client's notion of a present value: null,
// false, zero and the empty string count as missing.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return true
		}
		return f != 0
	case float64:
		return x != 0
	default:
		return true
	}
}
