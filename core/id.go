package core

import "github.com/google/uuid"

// NewID generates a new unique identifier for simulation runs.
func NewID() string { return uuid.NewString() }
