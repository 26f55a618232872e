package services

import (
	"context"

	"github.com/gymtrack/gymtrack-api/internal/dto"
)

// CheckInSvcFacade evaluates admission attempts at the entrance terminal.
type CheckInSvcFacade interface {
	// CheckIn classifies the member's eligibility, persists an attendance
	// event when granted, and pulses the door relay best-effort. A DENIED
	// verdict is a successful evaluation (nil error with Granted=false);
	// errors are reserved for unknown members (ErrNotFound) and evaluation
	// failures (storage errors), which callers must distinguish from denial.
	CheckIn(ctx context.Context, externalID string) (*dto.CheckInResponse, error)
}

// DoorSignaler is the fire-and-forget door relay collaborator. SignalOpen is
// expected to complete or time out within a short bound; failures are logged
// by the caller and never propagated to the check-in outcome.
type DoorSignaler interface {
	SignalOpen(ctx context.Context) error
}
