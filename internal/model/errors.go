package model

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a unique constraint was violated, e.g. a
	// duplicate username at registration.
	ErrConflict = errors.New("record already exists")
	// ErrInvalidInput indicates missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCredentials indicates a password mismatch at login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingToken indicates the request carried no access token.
	ErrMissingToken = errors.New("access token is missing")
	// ErrInvalidToken covers bad signature, expiry, malformed structure
	// and subjects that no longer resolve to a user.
	ErrInvalidToken = errors.New("access token is invalid")
	// ErrTokenRevoked indicates the token is on the blacklist.
	ErrTokenRevoked = errors.New("access token has been revoked")
	// ErrPermissionDenied indicates the caller lacks the admin role.
	ErrPermissionDenied = errors.New("permission denied")
)
