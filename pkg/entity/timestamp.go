package entity

import (
	"encoding/json"
	"time"
)

// Timestamp is a time.Time stored as an RFC3339Nano UTC string. The zero value
// encodes as "".
type Timestamp struct {
	time.Time
}

// At wraps t.
func At(t time.Time) Timestamp { return Timestamp{Time: t} }

// Ptr wraps t for optional fields; a zero t gives nil.
func Ptr(t time.Time) *Timestamp {
	if t.IsZero() {
		return nil
	}
	ts := At(t)
	return &ts
}

// IsSet reports whether an optional timestamp holds a value.
func IsSet(t *Timestamp) bool { return t != nil && !t.IsZero() }

// SameDay compares calendar days in local time.
func (t Timestamp) SameDay(other time.Time) bool {
	y1, m1, d1 := t.Local().Date()
	y2, m2, d2 := other.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts RFC3339 with or without fractional seconds.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
