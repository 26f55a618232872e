package services

import (
	"log/slog"
	"time"

	portsrepo "github.com/gymtrack/gymtrack-api/internal/core/ports/repositories"
	portssvc "github.com/gymtrack/gymtrack-api/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, door portssvc.DoorSignaler, doorTimeout time.Duration, facilityLoc *time.Location, logger *slog.Logger) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Member = NewMemberService(repos.MemberRepo)
	container.Plan = NewPlanService(repos.PlanRepo)

	// Subscription service doubles as the lookup dependency of check-in.
	container.Subscription = NewSubscriptionService(repos.SubscriptionRepo, repos.PlanRepo, repos.MemberRepo, facilityLoc)

	container.CheckIn = NewCheckInService(
		repos.MemberRepo,
		container.Subscription,
		repos.AttendanceRepo,
		door,
		doorTimeout,
		facilityLoc,
		logger,
	)

	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.MemberRepo)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.SubscriptionRepo)

	return container
}
