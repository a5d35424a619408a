package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrSessionInvalid     = errors.New("invalid session")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrInvalidCatalog     = errors.New("invalid catalog")
	ErrInvalidContent     = errors.New("invalid site content")
	ErrRateLimited        = errors.New("too many sign-in attempts")
	ErrForbidden          = errors.New("access forbidden")
	ErrCSRFMismatch       = errors.New("invalid form token")
)

// Auth error codes accepted by the authentication error page.
const (
	AuthErrorConfiguration = "Configuration"
	AuthErrorAccessDenied  = "AccessDenied"
	AuthErrorVerification  = "Verification"
	AuthErrorDefault       = "Default"
)

var authErrorMessages = map[string]string{
	AuthErrorConfiguration: "There is a problem with the server configuration.",
	AuthErrorAccessDenied:  "You do not have permission to sign in.",
	AuthErrorVerification:  "The verification token has expired or has already been used.",
	AuthErrorDefault:       "An error occurred during authentication.",
}

// AuthErrorMessage maps an authentication error code to the text shown to
// the user. Unknown or empty codes get the default message.
func AuthErrorMessage(code string) string {
	if msg, ok := authErrorMessages[code]; ok {
		return msg
	}
	return authErrorMessages[AuthErrorDefault]
}
