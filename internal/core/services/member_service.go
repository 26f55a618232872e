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

// memberService provides member registration and lookup operations.
type memberService struct {
	memberRepo portsrepo.MemberRepositoryFacade
}

// NewMemberService creates a new MemberService.
func NewMemberService(memberRepo portsrepo.MemberRepositoryFacade) portssvc.MemberSvcFacade {
	return &memberService{memberRepo: memberRepo}
}

var _ portssvc.MemberSvcFacade = (*memberService)(nil)

// CreateMember registers a new member.
func (s *memberService) CreateMember(ctx context.Context, req dto.CreateMemberRequest, userID string) (*domain.Member, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	member := domain.Member{
		MemberID:   uuid.NewString(),
		ExternalID: req.ExternalID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		FreeAccess: req.FreeAccess,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.memberRepo.SaveMember(ctx, member); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate member registration attempt", slog.String("external_id", req.ExternalID))
			return nil, err
		}
		logger.Error("Failed to save member", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save member: %w", err)
	}

	logger.Info("Member created", slog.String("member_id", member.MemberID))
	return &member, nil
}

// GetMemberByID retrieves a specific member by internal ID.
func (s *memberService) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find member by ID", slog.String("error", err.Error()), slog.String("member_id", memberID))
		}
		return nil, err
	}
	return member, nil
}

// GetMemberByExternalID retrieves a member by national identity number.
func (s *memberService) GetMemberByExternalID(ctx context.Context, externalID string) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByExternalID(ctx, externalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find member by external ID", slog.String("error", err.Error()))
		}
		return nil, err
	}
	return member, nil
}

// ListMembers retrieves a paginated list of members.
func (s *memberService) ListMembers(ctx context.Context, params dto.ListMembersParams) ([]domain.Member, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	members, err := s.memberRepo.ListMembers(ctx, limit, params.Offset)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list members", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// UpdateMember updates an existing member's details.
func (s *memberService) UpdateMember(ctx context.Context, memberID string, req dto.UpdateMemberRequest, userID string) (*domain.Member, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.FirstName != nil {
		member.FirstName = *req.FirstName
		updated = true
	}
	if req.LastName != nil {
		member.LastName = *req.LastName
		updated = true
	}
	if req.FreeAccess != nil {
		member.FreeAccess = *req.FreeAccess
		updated = true
	}

	if !updated {
		logger.Debug("No fields provided for member update", slog.String("member_id", memberID))
		return member, nil
	}

	now := time.Now().UTC()
	member.LastUpdatedAt = now
	member.LastUpdatedBy = userID

	if err := s.memberRepo.UpdateMember(ctx, *member); err != nil {
		logger.Error("Failed to update member", slog.String("error", err.Error()), slog.String("member_id", memberID))
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	logger.Info("Member updated", slog.String("member_id", memberID))
	return member, nil
}

// DeactivateMember marks a member as inactive.
func (s *memberService) DeactivateMember(ctx context.Context, memberID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.memberRepo.DeactivateMember(ctx, memberID, userID, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate member", slog.String("error", err.Error()), slog.String("member_id", memberID))
		}
		return err
	}

	logger.Info("Member deactivated", slog.String("member_id", memberID))
	return nil
}
