// Package validatex wraps go-playground/validator so the server and the
// client SDK report field problems the same way: a map from JSON field name
// to a human readable message.
package validatex

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// InviteCodeAlphabet is the set of characters an invite code is drawn from.
const InviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// InviteCodeLength is the exact length of an invite code.
const InviteCodeLength = 6

// FieldErrors maps a JSON field name to what is wrong with it.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+f[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type Validator struct {
	v *validator.Validate
}

// New returns a Validator that names fields by their json tag and knows the
// "invitecode" tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("invitecode", func(fl validator.FieldLevel) bool {
		return ValidInviteCode(fl.Field().String())
	})

	return &Validator{v: v}
}

// Struct validates s. It returns FieldErrors when a rule fails and any other
// error only for misuse (e.g. s is not a struct).
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(FieldErrors, len(verrs))
	for _, e := range verrs {
		if _, seen := out[e.Field()]; !seen {
			out[e.Field()] = friendlyMessage(e)
		}
	}
	return out
}

// Var validates a single value against tag, reporting failures under field.
func (v *Validator) Var(field string, value any, tag string) error {
	err := v.v.Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return FieldErrors{field: friendlyMessage(verrs[0])}
}

// NormalizeInviteCode trims and upper-cases user input so codes match
// case-insensitively.
func NormalizeInviteCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidInviteCode reports whether s is exactly six characters from
// InviteCodeAlphabet. It does not normalize.
func ValidInviteCode(s string) bool {
	if len(s) != InviteCodeLength {
		return false
	}
	for i := range len(s) {
		if !strings.ContainsRune(InviteCodeAlphabet, rune(s[i])) {
			return false
		}
	}
	return true
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", e.Param())
	case "url", "http_url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	case "eqfield":
		return "must match " + e.Param()
	case "invitecode":
		return fmt.Sprintf("must be %d letters or digits", InviteCodeLength)
	default:
		return "is invalid"
	}
}
