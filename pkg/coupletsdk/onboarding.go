package coupletsdk

import (
	"context"
	"errors"
	"fmt"
)

// Step is where an Onboarding currently is in the sign-up wizard.
type Step int

const (
	StepStart Step = iota
	StepName
	StepAvatar
	StepTheme
	StepCredentials
)

func (s Step) String() string {
	switch s {
	case StepStart:
		return "start"
	case StepName:
		return "name"
	case StepAvatar:
		return "avatar"
	case StepTheme:
		return "theme"
	case StepCredentials:
		return "credentials"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// DefaultTheme is used when the theme step is skipped.
const DefaultTheme = "light"

// Onboarding accumulates sign-up wizard input until Submit. Setters store
// values as given; Validate is the check. An Onboarding is meant for one UI
// flow and is not safe for concurrent use.
type Onboarding struct {
	displayName  string
	avatarURL    string
	theme        string
	email        string
	password     string
	confirmation string

	nameSet, avatarDone, themeDone, credentialsSet bool
}

// NewOnboarding returns an empty Onboarding at StepStart.
func NewOnboarding() *Onboarding { return &Onboarding{} }

func (o *Onboarding) SetDisplayName(name string) {
	o.displayName = name
	o.nameSet = true
}

func (o *Onboarding) SetAvatarURL(url string) {
	o.avatarURL = url
	o.avatarDone = true
}

// SkipAvatar moves past the avatar step without one.
func (o *Onboarding) SkipAvatar() {
	o.avatarURL = ""
	o.avatarDone = true
}

func (o *Onboarding) SetTheme(theme string) {
	o.theme = theme
	o.themeDone = true
}

// SkipTheme moves past the theme step with DefaultTheme.
func (o *Onboarding) SkipTheme() {
	o.theme = DefaultTheme
	o.themeDone = true
}

func (o *Onboarding) SetCredentials(email, password, confirmation string) {
	o.email = email
	o.password = password
	o.confirmation = confirmation
	o.credentialsSet = true
}

func (o *Onboarding) DisplayName() string { return o.displayName }
func (o *Onboarding) AvatarURL() string   { return o.avatarURL }
func (o *Onboarding) Theme() string       { return o.theme }
func (o *Onboarding) Email() string       { return o.email }

// Step reports the furthest step reached.
func (o *Onboarding) Step() Step {
	switch {
	case o.credentialsSet:
		return StepCredentials
	case o.themeDone:
		return StepTheme
	case o.avatarDone:
		return StepAvatar
	case o.nameSet:
		return StepName
	default:
		return StepStart
	}
}

// Reset clears every field and returns to StepStart. Call it when the user
// abandons the flow; Submit calls it after success.
func (o *Onboarding) Reset() {
	*o = Onboarding{}
}

type onboardingForm struct {
	DisplayName  string `json:"display_name" validate:"required,min=2,max=50"`
	AvatarURL    string `json:"avatar_url" validate:"omitempty,url"`
	Theme        string `json:"theme" validate:"omitempty,oneof=light dark"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Confirmation string `json:"password_confirmation" validate:"eqfield=Password"`
}

func (o *Onboarding) form() onboardingForm {
	return onboardingForm{
		DisplayName:  o.displayName,
		AvatarURL:    o.avatarURL,
		Theme:        o.theme,
		Email:        o.email,
		Password:     o.password,
		Confirmation: o.confirmation,
	}
}

// Validate checks the collected input. Failures are *ValidationError keyed
// by JSON field name.
func (o *Onboarding) Validate() error {
	if err := validate.Struct(o.form()); err != nil {
		return asValidationError(err)
	}
	return nil
}

// Submit validates, creates the account and waits for its profile to be
// readable. On success the Onboarding is Reset; on failure it keeps its
// state so the user can correct and retry.
//
// ErrConsistencyTimeout is the exception: the account already exists, so
// the Onboarding is Reset and the session is returned with the error for
// the caller to retry AwaitProfile on.
func (o *Onboarding) Submit(ctx context.Context, client *SDKClient) (*Session, *ProfileResponse, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}

	theme := o.theme
	if theme == "" {
		theme = DefaultTheme
	}

	session, _, err := client.SignUp(ctx, SignUpRequest{
		Email:       o.email,
		Password:    o.password,
		DisplayName: o.displayName,
		AvatarURL:   o.avatarURL,
		Theme:       theme,
	})
	if err != nil {
		return nil, nil, err
	}

	profile, err := session.AwaitProfile(ctx)
	if errors.Is(err, ErrConsistencyTimeout) {
		o.Reset()
		return session, nil, err
	}
	if err != nil {
		return nil, nil, err
	}

	o.Reset()
	return session, profile, nil
}
