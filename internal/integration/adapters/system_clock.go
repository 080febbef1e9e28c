package adapters

import (
	"time"

	"github.com/household-ledger/backend/internal/application/adapter"
)

// systemClock implements adapter.Clock using the system time.
type systemClock struct{}

// NewSystemClock creates a clock backed by time.Now.
func NewSystemClock() adapter.Clock {
	return &systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
