package domain

import "time"

// InviteCodeTTL is how long a generated invite code stays redeemable.
const InviteCodeTTL = time.Hour

type InviteCode struct {
	ID         string
	Code       string // 6 characters, A-Z0-9
	OwnerID    string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	Consumed   bool
	ConsumedBy string     // empty until redeemed
	RevokedAt  *time.Time // set when a newer code supersedes this one
}

// Expired reports whether now is past the code's expiry. A code is still
// valid at exactly ExpiresAt.
func (c InviteCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Active reports whether the code can still be redeemed at now.
func (c InviteCode) Active(now time.Time) bool {
	return !c.Consumed && c.RevokedAt == nil && !c.Expired(now)
}

// Remaining is the time left before expiry, floored at zero.
func (c InviteCode) Remaining(now time.Time) time.Duration {
	return max(c.ExpiresAt.Sub(now), 0)
}
