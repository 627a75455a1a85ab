package domain

import "time"

type CoupleStatus string

const (
	CoupleStatusPending CoupleStatus = "pending"
	CoupleStatusActive  CoupleStatus = "active"
)

type Couple struct {
	ID           string
	Partner1ID   string
	Partner2ID   string // empty while an email invite is pending
	InvitedEmail string // set for couples created by an email invite
	Status       CoupleStatus
	CreatedAt    time.Time
	ActivatedAt  *time.Time
}

// PartnerOf returns the other member of the couple, or "" if userID is not
// a member.
func (c Couple) PartnerOf(userID string) string {
	switch userID {
	case c.Partner1ID:
		return c.Partner2ID
	case c.Partner2ID:
		return c.Partner1ID
	default:
		return ""
	}
}

// DaysTogether counts whole days since the couple was created.
func (c Couple) DaysTogether(now time.Time) int {
	if now.Before(c.CreatedAt) {
		return 0
	}
	return int(now.Sub(c.CreatedAt) / (24 * time.Hour))
}
