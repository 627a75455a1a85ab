package validatex_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/couplet/pkg/validatex"
)

type signUp struct {
	DisplayName string `json:"display_name" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Confirm     string `json:"password_confirmation" validate:"eqfield=Password"`
	Theme       string `json:"theme,omitempty" validate:"omitempty,oneof=light dark"`
}

func TestStruct(t *testing.T) {
	v := validatex.New()

	require.NoError(t, v.Struct(signUp{
		DisplayName: "Jo", Email: "jo@example.com", Password: "secret", Confirm: "secret",
	}))

	err := v.Struct(signUp{DisplayName: "J", Email: "nope", Password: "abc", Confirm: "abd", Theme: "sepia"})
	var fe validatex.FieldErrors
	require.True(t, errors.As(err, &fe))
	require.Equal(t, "must be at least 2 characters", fe["display_name"])
	require.Equal(t, "must be a valid email address", fe["email"])
	require.Equal(t, "must be at least 6 characters", fe["password"])
	require.Equal(t, "must match Password", fe["password_confirmation"])
	require.Equal(t, "must be one of: light dark", fe["theme"])
	require.Contains(t, err.Error(), "display_name must be at least 2 characters")
}

func TestInviteCodeTag(t *testing.T) {
	v := validatex.New()
	type req struct {
		Code string `json:"code" validate:"required,invitecode"`
	}
	require.NoError(t, v.Struct(req{Code: "AB12CD"}))

	for _, bad := range []string{"ab12cd", "AB12C", "AB12CDE", "AB-2CD"} {
		err := v.Struct(req{Code: bad})
		var fe validatex.FieldErrors
		require.ErrorAs(t, err, &fe, bad)
		require.Contains(t, fe, "code")
	}
}

func TestVar(t *testing.T) {
	v := validatex.New()
	require.NoError(t, v.Var("email", "a@b.co", "required,email"))

	err := v.Var("email", "x", "required,email")
	require.Equal(t, validatex.FieldErrors{"email": "must be a valid email address"}, err)
}

func TestNormalizeInviteCode(t *testing.T) {
	require.Equal(t, "AB12CD", validatex.NormalizeInviteCode("  ab12cd\n"))
	require.True(t, validatex.ValidInviteCode(validatex.NormalizeInviteCode("ab12cd")))
	require.False(t, validatex.ValidInviteCode("ab12cd"))
}
