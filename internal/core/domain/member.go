package domain

// Member represents a person enrolled in the facility.
// Identified externally by a unique national identity number (ExternalID).
type Member struct {
	MemberID   string `json:"memberID"`   // Primary Key (UUID)
	ExternalID string `json:"externalID"` // National identity number, unique
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	FreeAccess bool   `json:"freeAccess"` // Unconditional admission, bypasses subscription checks
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// DisplayName returns the member's name as shown on the check-in screen.
func (m Member) DisplayName() string {
	if m.FirstName == "" {
		return m.LastName
	}
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}
