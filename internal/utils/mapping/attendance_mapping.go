package mapping

import (
	"github.com/gymtrack/gymtrack-api/internal/core/domain"
	"github.com/gymtrack/gymtrack-api/internal/models"
)

// ToModelAttendanceEvent converts a domain AttendanceEvent to a model AttendanceEvent
func ToModelAttendanceEvent(d domain.AttendanceEvent) models.AttendanceEvent {
	return models.AttendanceEvent{
		AttendanceID: d.AttendanceID,
		MemberID:     d.MemberID,
		Timestamp:    d.Timestamp,
		Tier:         string(d.Tier),
	}
}

// ToDomainAttendanceEvent converts a model AttendanceEvent to a domain AttendanceEvent
func ToDomainAttendanceEvent(m models.AttendanceEvent) domain.AttendanceEvent {
	return domain.AttendanceEvent{
		AttendanceID: m.AttendanceID,
		MemberID:     m.MemberID,
		Timestamp:    m.Timestamp,
		Tier:         domain.AccessTier(m.Tier),
	}
}

// ToDomainAttendanceEventSlice converts a slice of model events to domain events
func ToDomainAttendanceEventSlice(ms []models.AttendanceEvent) []domain.AttendanceEvent {
	ds := make([]domain.AttendanceEvent, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAttendanceEvent(m)
	}
	return ds
}
