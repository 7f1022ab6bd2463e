package application

import "errors"

// Service-level error taxonomy. Handlers map these onto HTTP statuses.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account not confirmed")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWeakPassword       = errors.New("password does not meet the strength policy")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrUserNotFound       = errors.New("user not found")
	ErrEntryNotFound      = errors.New("game not found for this user")
	ErrMailDispatch       = errors.New("failed to dispatch email")
)
