package pgsql

import (
	portsrepo "github.com/gymtrack/gymtrack-api/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	memberRepo := newPgxMemberRepository(dbPool)
	subscriptionRepo := newPgxSubscriptionRepository(dbPool)
	planRepo := newPgxPlanRepository(dbPool)
	attendanceRepo := newPgxAttendanceRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		MemberRepo:       memberRepo,
		SubscriptionRepo: subscriptionRepo,
		PlanRepo:         planRepo,
		AttendanceRepo:   attendanceRepo,
		LedgerRepo:       ledgerRepo,
		PaymentRepo:      paymentRepo,
	}
}
