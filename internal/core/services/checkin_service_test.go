package services_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/gymtrack/gymtrack-api/internal/apperrors"
	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	portssvc "github.com/gymtrack/gymtrack-api/internal/core/ports/services"
	"github.com/gymtrack/gymtrack-api/internal/core/services"
)

// --- Mock MemberReader ---
type MockMemberReader struct {
	mock.Mock
}

func (m *MockMemberReader) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberReader) FindMemberByExternalID(ctx context.Context, externalID string) (*domain.Member, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberReader) ListMembers(ctx context.Context, limit int, offset int) ([]domain.Member, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

// --- Mock SubscriptionLookup ---
type MockSubscriptionLookup struct {
	mock.Mock
}

func (m *MockSubscriptionLookup) GetLatestActiveSubscription(ctx context.Context, memberID string, asOf time.Time) (*domain.SubscriptionWindow, error) {
	args := m.Called(ctx, memberID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubscriptionWindow), args.Error(1)
}

// --- Mock AttendanceRepository ---
type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) SaveAttendanceEvent(ctx context.Context, event domain.AttendanceEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAttendanceRepository) ListAttendanceByMemberID(ctx context.Context, memberID string, limit int, nextToken *string) ([]domain.AttendanceEvent, *string, error) {
	args := m.Called(ctx, memberID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.AttendanceEvent), args.Get(1).(*string), args.Error(2)
}

// fakeDoor records signal calls on a channel so tests can wait for the
// detached goroutine deterministically.
type fakeDoor struct {
	signals chan struct{}
	err     error
}

func newFakeDoor() *fakeDoor {
	return &fakeDoor{signals: make(chan struct{}, 8)}
}

func (d *fakeDoor) SignalOpen(ctx context.Context) error {
	d.signals <- struct{}{}
	return d.err
}

// --- Test Suite ---
type CheckInServiceTestSuite struct {
	suite.Suite
	mockMembers    *MockMemberReader
	mockSubs       *MockSubscriptionLookup
	mockAttendance *MockAttendanceRepository
	door           *fakeDoor
	service        portssvc.CheckInSvcFacade
}

func (suite *CheckInServiceTestSuite) SetupTest() {
	suite.mockMembers = new(MockMemberReader)
	suite.mockSubs = new(MockSubscriptionLookup)
	suite.mockAttendance = new(MockAttendanceRepository)
	suite.door = newFakeDoor()
	suite.service = services.NewCheckInService(
		suite.mockMembers,
		suite.mockSubs,
		suite.mockAttendance,
		suite.door,
		time.Second,
		time.UTC,
		slog.Default(),
	)
}

func (suite *CheckInServiceTestSuite) waitForDoorSignal() bool {
	select {
	case <-suite.door.signals:
		return true
	case <-time.After(2 * time.Second):
		return false
	}
}

func activeWindow(memberID string, endDate time.Time) *domain.SubscriptionWindow {
	return &domain.SubscriptionWindow{
		SubscriptionID: uuid.NewString(),
		MemberID:       memberID,
		PlanID:         uuid.NewString(),
		StartDate:      endDate.AddDate(0, 0, -29),
		EndDate:        endDate,
		Active:         true,
	}
}

func (suite *CheckInServiceTestSuite) TestCheckIn_CurrentSubscription_Granted() {
	ctx := context.Background()
	member := &domain.Member{
		MemberID:   uuid.NewString(),
		ExternalID: "30123456",
		FirstName:  "Ana",
		LastName:   "García",
		IsActive:   true,
	}
	endDate := domain.NormalizeDate(time.Now().UTC(), time.UTC).AddDate(0, 0, 30)

	suite.mockMembers.On("FindMemberByExternalID", ctx, member.ExternalID).Return(member, nil).Once()
	suite.mockSubs.On("GetLatestActiveSubscription", ctx, member.MemberID, mock.AnythingOfType("time.Time")).
		Return(activeWindow(member.MemberID, endDate), nil).Once()
	suite.mockAttendance.On("SaveAttendanceEvent", ctx, mock.MatchedBy(func(e domain.AttendanceEvent) bool {
		return e.MemberID == member.MemberID && e.Tier == domain.TierCurrent
	})).Return(nil).Once()

	resp, err := suite.service.CheckIn(ctx, member.ExternalID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.True(resp.Granted)
	suite.Equal(domain.TierCurrent, resp.Tier)
	suite.Require().NotNil(resp.DaysRemaining)
	suite.Equal(30, *resp.DaysRemaining)
	suite.Nil(resp.DaysOverdue)
	suite.Require().NotNil(resp.Member)
	suite.Equal("Ana García", resp.Member.Name)

	suite.True(suite.waitForDoorSignal(), "door should be pulsed for a granted check-in")
	suite.mockMembers.AssertExpectations(suite.T())
	suite.mockAttendance.AssertExpectations(suite.T())
}

func (suite *CheckInServiceTestSuite) TestCheckIn_FreeAccess_SkipsSubscriptionLookup() {
	ctx := context.Background()
	member := &domain.Member{
		MemberID:   uuid.NewString(),
		ExternalID: "20999888",
		FirstName:  "Coach",
		LastName:   "López",
		FreeAccess: true,
		IsActive:   true,
	}

	suite.mockMembers.On("FindMemberByExternalID", ctx, member.ExternalID).Return(member, nil).Once()
	suite.mockAttendance.On("SaveAttendanceEvent", ctx, mock.MatchedBy(func(e domain.AttendanceEvent) bool {
		return e.Tier == domain.TierUnrestricted
	})).Return(nil).Once()

	resp, err := suite.service.CheckIn(ctx, member.ExternalID)

	suite.Require().NoError(err)
	suite.True(resp.Granted)
	suite.Equal(domain.TierUnrestricted, resp.Tier)
	suite.Nil(resp.DaysRemaining)
	suite.Nil(resp.DaysOverdue)

	suite.True(suite.waitForDoorSignal())
	suite.mockSubs.AssertNotCalled(suite.T(), "GetLatestActiveSubscription")
	suite.mockAttendance.AssertExpectations(suite.T())
}

func (suite *CheckInServiceTestSuite) TestCheckIn_GraceOverdue_GrantedWithWarning() {
	ctx := context.Background()
	member := &domain.Member{MemberID: uuid.NewString(), ExternalID: "27555111", IsActive: true}
	endDate := domain.NormalizeDate(time.Now().UTC(), time.UTC).AddDate(0, 0, -4)

	suite.mockMembers.On("FindMemberByExternalID", ctx, member.ExternalID).Return(member, nil).Once()
	suite.mockSubs.On("GetLatestActiveSubscription", ctx, member.MemberID, mock.AnythingOfType("time.Time")).
		Return(activeWindow(member.MemberID, endDate), nil).Once()
	suite.mockAttendance.On("SaveAttendanceEvent", ctx, mock.MatchedBy(func(e domain.AttendanceEvent) bool {
		return e.Tier == domain.TierGrace
	})).Return(nil).Once()

	resp, err := suite.service.CheckIn(ctx, member.ExternalID)

	suite.Require().NoError(err)
	suite.True(resp.Granted)
	suite.Equal(domain.TierGrace, resp.Tier)
	suite.Require().NotNil(resp.DaysOverdue)
	suite.Equal(4, *resp.DaysOverdue)

	suite.True(suite.waitForDoorSignal())
}

func (suite *CheckInServiceTestSuite) TestCheckIn_ExpiredBeyondGrace_Denied() {
	ctx := context.Background()
	member := &domain.Member{MemberID: uuid.NewString(), ExternalID: "31444222", IsActive: true}
	endDate := domain.NormalizeDate(time.Now().UTC(), time.UTC).AddDate(0, 0, -10)

	suite.mockMembers.On("FindMemberByExternalID", ctx, member.ExternalID).Return(member, nil).Once()
	suite.mockSubs.On("GetLatestActiveSubscription", ctx, member.MemberID, mock.AnythingOfType("time.Time")).
		Return(activeWindow(member.MemberID, endDate), nil).Once()

	resp, err := suite.service.CheckIn(ctx, member.ExternalID)

	suite.Require().NoError(err)
	suite.False(resp.Granted)
	suite.Equal(domain.TierExpired, resp.Tier)

	// A denial is a verdict, not an event: no attendance row, no door pulse.
	suite.mockAttendance.AssertNotCalled(suite.T(), "SaveAttendanceEvent")
	select {
	case <-suite.door.signals:
		suite.Fail("door must not be pulsed for a denied check-in")
	case <-time.After(50 * time.Millisecond):
	}
}

func (suite *CheckInServiceTestSuite) TestCheckIn_NoSubscription_Denied() {
	ctx := context.Background()
	member := &domain.Member{MemberID: uuid.NewString(), ExternalID: "40111222", IsActive: true}

	suite.mockMembers.On("FindMemberByExternalID", ctx, member.ExternalID).Return(member, nil).Once()
	suite.mockSubs.On("GetLatestActiveSubscription", ctx, member.MemberID, mock.AnythingOfType("time.Time")).
		Return(nil, nil).Once()

	resp, err := suite.service.CheckIn(ctx, member.ExternalID)

	suite.Require().NoError(err)
	suite.False(resp.Granted)
	suite.Equal(domain.TierNone, resp.Tier)
}

func (suite *CheckInServiceTestSuite) TestCheckIn_DeactivatedMember_Denied() {
	ctx := context.Background()
	member := &domain.Member{
		MemberID:   uuid.NewString(),
		ExternalID: "25666333",
		FirstName:  "Luis",
		LastName:   "Pereyra",
		FreeAccess: true, // even free access does not survive deactivation
		IsActive:   false,
	}

	suite.mockMembers.On("FindMemberByExternalID", ctx, member.ExternalID).Return(member, nil).Once()

	resp, err := suite.service.CheckIn(ctx, member.ExternalID)

	suite.Require().NoError(err)
	suite.False(resp.Granted)
	suite.Equal(domain.TierNone, resp.Tier)
	suite.Require().NotNil(resp.Member)
	suite.Equal("Luis Pereyra", resp.Member.Name)

	suite.mockSubs.AssertNotCalled(suite.T(), "GetLatestActiveSubscription")
	suite.mockAttendance.AssertNotCalled(suite.T(), "SaveAttendanceEvent")
	select {
	case <-suite.door.signals:
		suite.Fail("door must not be pulsed for a deactivated member")
	case <-time.After(50 * time.Millisecond):
	}
}

func (suite *CheckInServiceTestSuite) TestCheckIn_UnknownMember_NotFound() {
	ctx := context.Background()

	suite.mockMembers.On("FindMemberByExternalID", ctx, "99999999").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.CheckIn(ctx, "99999999")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CheckInServiceTestSuite) TestCheckIn_LookupFailure_IsNotADenial() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockMembers.On("FindMemberByExternalID", ctx, "30123456").Return(nil, expectedErr).Once()

	resp, err := suite.service.CheckIn(ctx, "30123456")

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, expectedErr)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CheckInServiceTestSuite) TestCheckIn_AttendanceWriteFailure_FailsAttempt() {
	ctx := context.Background()
	member := &domain.Member{MemberID: uuid.NewString(), ExternalID: "30123456", FreeAccess: true, IsActive: true}

	suite.mockMembers.On("FindMemberByExternalID", ctx, member.ExternalID).Return(member, nil).Once()
	suite.mockAttendance.On("SaveAttendanceEvent", ctx, mock.AnythingOfType("domain.AttendanceEvent")).
		Return(assert.AnError).Once()

	resp, err := suite.service.CheckIn(ctx, member.ExternalID)

	suite.Require().Error(err)
	suite.Nil(resp)

	select {
	case <-suite.door.signals:
		suite.Fail("door must not be pulsed when the attendance write fails")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCheckInServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CheckInServiceTestSuite))
}
