package appointment

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
)

func StatusOf(ap *models.Appointment) Status {
	if ap.Canceled {
		return StatusCanceled
	}
	return StatusActive
}

// ===============================
// Cancel policy
// ===============================

// CancelPolicy decides what canceling an already canceled appointment does.
type CancelPolicy string

const (
	CancelIdempotent CancelPolicy = "idempotent"
	CancelStrict     CancelPolicy = "strict"
)

func ParseCancelPolicy(s string) (CancelPolicy, error) {
	switch CancelPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", CancelIdempotent:
		return CancelIdempotent, nil
	case CancelStrict:
		return CancelStrict, nil
	}
	return "", fmt.Errorf("unknown cancel policy %q", s)
}

// CanCancel validates the Active -> Canceled transition.
func CanCancel(current Status, policy CancelPolicy) error {
	if current == StatusCanceled && policy == CancelStrict {
		return ErrAlreadyCanceled
	}
	return nil
}
