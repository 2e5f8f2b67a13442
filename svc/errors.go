package svc

import "errors"

var (
	// ErrNoUpdatableFields rejects a project update touching none of the
	// recognized document fields. Such a request is a no-op and never
	// reaches the store.
	ErrNoUpdatableFields = errors.New("sceneforge: update contains no recognized project fields")

	// ErrDuplicateUser rejects a registration for a username that already
	// exists.
	ErrDuplicateUser = errors.New("sceneforge: username already taken")

	// ErrInvalidCredentials rejects a login. The message is deliberately
	// the same whether the username is unknown or the password is wrong,
	// so callers cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("sceneforge: invalid username or password")

	// ErrMissingCredentials rejects a registration or login without both a
	// username and a password.
	ErrMissingCredentials = errors.New("sceneforge: username and password are required")

	// ErrInvalidToken rejects a credential that fails signature or expiry
	// checks.
	ErrInvalidToken = errors.New("sceneforge: invalid or expired token")

	// Internal login-failure causes. Externally both surface as
	// ErrInvalidCredentials; errors.Is can still tell them apart.
	errUnknownUser      = errors.New("unknown username")
	errPasswordMismatch = errors.New("password mismatch")
)
