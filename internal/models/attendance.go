package models

import "time"

// AttendanceEvent represents one granted admission row. Append-only.
type AttendanceEvent struct {
	AttendanceID string    `db:"attendance_id"`
	MemberID     string    `db:"member_id"`
	Timestamp    time.Time `db:"occurred_at"`
	Tier         string    `db:"tier"`
}
