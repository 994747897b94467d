package session

import "errors"

var (
	// ErrInvalidInput is returned for missing or malformed fields, before
	// any storage call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyExists is returned when registering an identifier that
	// already has a credential record.
	ErrAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned for login failure. Unknown
	// identifier and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoCredential is returned by the credential store when no record
	// exists. It must never leak past the Service.
	ErrNoCredential = errors.New("no credential record")

	// ErrTokenNotFound is returned when a refresh token matches no record.
	ErrTokenNotFound = errors.New("refresh token not found")
)
