/*
Package coupletsdk is the Go client for the couplet service.

# SDKClient vs Session

SDKClient covers the public endpoints and creates sessions:

	client := coupletsdk.NewSDKClient("https://couplet.example.com")

	session, err := client.SignIn(ctx, "alex@example.com", "secret1")

A Session carries the access token and covers everything that needs a
signed-in user:

	code, err := session.GenerateInviteCode(ctx)
	couple, err := partnerSession.AcceptInviteCode(ctx, code.Code)

Sessions are safe for concurrent use. They do not refresh; once ExpiresAt
passes, sign in again.

# Onboarding

Onboarding accumulates the sign-up wizard state (display name, avatar,
theme, credentials) and submits it in one go:

	ob := coupletsdk.NewOnboarding()
	ob.SetDisplayName("Alex")
	ob.SkipAvatar()
	ob.SetTheme("dark")
	ob.SetCredentials("alex@example.com", "secret1", "secret1")

	session, err := ob.Submit(ctx, client)

Setters never validate. Call Validate to show inline errors before Submit;
Submit validates again anyway. On success the onboarding state is Reset.

# Invite code countdown

Countdown reports the time left on a generated code once a second. It is
display only; the server decides expiry at redemption time.

	ticks := coupletsdk.Countdown(ctx, code.ExpiresAt)
	for left := range ticks {
		render(left)
	}

# Errors

Non-2xx responses are *APIError values. Compare them with errors.Is against
the predefined values:

	_, err := session.AcceptInviteCode(ctx, input)
	switch {
	case errors.Is(err, coupletsdk.ErrValidation):
		// malformed code, caught locally or by the server
	case errors.Is(err, coupletsdk.ErrNotFound):
		// no such code, or already used
	case errors.Is(err, coupletsdk.ErrExpired):
		// ask the partner for a new code
	case errors.Is(err, coupletsdk.ErrRemote):
		// network failure or server error
	}

Input checked on the client before any request returns *ValidationError,
which also matches ErrValidation.
*/
package coupletsdk
