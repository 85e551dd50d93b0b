package services

import (
	"time"

	portssvc "github.com/pontocerto/ponto_backend/internal/core/ports/services"
)

type systemClock struct{}

// NewSystemClock returns the production Clock backed by time.Now.
func NewSystemClock() portssvc.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
