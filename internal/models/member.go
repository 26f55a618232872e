package models

// Member represents a registered gym member row.
// ExternalID is the national identity number typed at the entrance terminal;
// it is unique across members.
type Member struct {
	MemberID   string `db:"member_id"`
	ExternalID string `db:"external_id"`
	FirstName  string `db:"first_name"`
	LastName   string `db:"last_name"`
	FreeAccess bool   `db:"free_access"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}
