package utils

import "github.com/google/uuid"

// NewID returns a new random UUID string, used for primary keys
func NewID() string {
	return uuid.New().String()
}
