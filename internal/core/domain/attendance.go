package domain

import "time"

// AttendanceEvent records a single granted admission. Append-only: events are
// never updated or deleted once written.
type AttendanceEvent struct {
	AttendanceID string     `json:"attendanceID"` // Primary Key (UUID)
	MemberID     string     `json:"memberID"`     // FK -> members.member_id
	Timestamp    time.Time  `json:"timestamp"`
	Tier         AccessTier `json:"tier"` // Tier under which access was granted
}
