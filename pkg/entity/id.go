package entity

import (
	"github.com/google/uuid"
)

// NewID returns a time-ordered identifier. UUIDv7 embeds the creation instant,
// so ids sort by creation and are never handed out twice.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
