package domain

import "time"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme applies when onboarding skips the theme step.
const DefaultTheme = ThemeLight

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Profile is keyed by the owning user's id. CoupleID is set iff the user
// has completed pairing, and then PartnerID names the other member.
type Profile struct {
	ID             string
	DisplayName    string
	AvatarURL      string
	AvatarBlurhash string
	Theme          Theme
	Email          string
	CoupleID       string
	PartnerID      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p Profile) Paired() bool { return p.CoupleID != "" }
