package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gymtrack/gymtrack-api/internal/apperrors"
	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	portsrepo "github.com/gymtrack/gymtrack-api/internal/core/ports/repositories"
	portssvc "github.com/gymtrack/gymtrack-api/internal/core/ports/services"
	"github.com/gymtrack/gymtrack-api/internal/dto"
	"github.com/gymtrack/gymtrack-api/internal/middleware"
)

// defaultDoorTimeout bounds the fire-and-forget relay pulse when no timeout
// is configured.
const defaultDoorTimeout = 3 * time.Second

// checkInService orchestrates an admission attempt: member lookup, entitlement
// classification, attendance recording and the door relay pulse.
type checkInService struct {
	memberRepo     portsrepo.MemberReader
	subscriptions  portssvc.SubscriptionLookupSvc
	attendanceRepo portsrepo.AttendanceRepositoryFacade
	door           portssvc.DoorSignaler
	doorTimeout    time.Duration
	facilityLoc    *time.Location
	baseLogger     *slog.Logger
}

// NewCheckInService creates a new CheckInService. baseLogger is used for the
// detached door-signal goroutine, which outlives the request context;
// doorTimeout bounds that goroutine's detached context.
func NewCheckInService(
	memberRepo portsrepo.MemberReader,
	subscriptions portssvc.SubscriptionLookupSvc,
	attendanceRepo portsrepo.AttendanceRepositoryFacade,
	door portssvc.DoorSignaler,
	doorTimeout time.Duration,
	facilityLoc *time.Location,
	baseLogger *slog.Logger,
) portssvc.CheckInSvcFacade {
	if doorTimeout <= 0 {
		doorTimeout = defaultDoorTimeout
	}
	return &checkInService{
		memberRepo:     memberRepo,
		subscriptions:  subscriptions,
		attendanceRepo: attendanceRepo,
		door:           door,
		doorTimeout:    doorTimeout,
		facilityLoc:    facilityLoc,
		baseLogger:     baseLogger,
	}
}

var _ portssvc.CheckInSvcFacade = (*checkInService)(nil)

// CheckIn evaluates an admission attempt keyed by national identity number.
// A denial is a successful evaluation (nil error, Granted=false); errors mean
// the attempt could not be evaluated at all.
func (s *checkInService) CheckIn(ctx context.Context, externalID string) (*dto.CheckInResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	member, err := s.memberRepo.FindMemberByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Check-in attempt by unknown external ID")
			return nil, err
		}
		logger.Error("Failed to look up member for check-in", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}

	if !member.IsActive {
		// Deactivation blocks admission outright, same as it blocks purchases.
		// Whatever windows remain on record are irrelevant.
		logger.Info("Check-in denied for deactivated member", slog.String("member_id", member.MemberID))
		resp := dto.ToCheckInResponse(domain.AccessDecision{
			Granted: false,
			Tier:    domain.TierNone,
			Message: "membership is deactivated - see staff",
		}, member)
		return &resp, nil
	}

	now := time.Now().UTC()
	today := domain.NormalizeDate(now, s.facilityLoc)

	var window *domain.SubscriptionWindow
	if !member.FreeAccess {
		window, err = s.subscriptions.GetLatestActiveSubscription(ctx, member.MemberID, today)
		if err != nil {
			return nil, err
		}
	}

	decision := domain.DecideAccess(today, member.FreeAccess, window)

	logger.Info("Check-in evaluated",
		slog.String("member_id", member.MemberID),
		slog.String("tier", string(decision.Tier)),
		slog.Bool("granted", decision.Granted))

	if decision.Granted {
		event := domain.AttendanceEvent{
			AttendanceID: uuid.NewString(),
			MemberID:     member.MemberID,
			Timestamp:    now,
			Tier:         decision.Tier,
		}
		if err := s.attendanceRepo.SaveAttendanceEvent(ctx, event); err != nil {
			// Granting access with no audit trail is worse than turning the
			// member away once; the attempt fails as a whole.
			logger.Error("Failed to record attendance event", slog.String("error", err.Error()), slog.String("member_id", member.MemberID))
			return nil, fmt.Errorf("failed to record attendance: %w", err)
		}

		s.signalDoorAsync(member.MemberID)
	}

	resp := dto.ToCheckInResponse(decision, member)
	return &resp, nil
}

// signalDoorAsync pulses the relay on a detached context so a slow or dead
// relay controller never delays the terminal response. Failures are logged
// and swallowed: the verdict already stands.
func (s *checkInService) signalDoorAsync(memberID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.doorTimeout)
		defer cancel()
		if err := s.door.SignalOpen(ctx); err != nil {
			s.baseLogger.Warn("Door signal failed", slog.String("error", err.Error()), slog.String("member_id", memberID))
		}
	}()
}
