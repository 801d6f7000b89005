package service

import "errors"

var (
	// ErrTokenExpired means the token's signature verified but its expiry
	// has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid means the token failed signature, structure or
	// subject verification.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a caller cannot probe which one it was.
	ErrInvalidCredentials = errors.New("email or password is invalid")
	// ErrEmailTaken means an account with that email already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrAdminRestricted means the email is not allowed to take the admin
	// role at registration.
	ErrAdminRestricted = errors.New("email not allowed to register as admin")
	// ErrRefreshReused means the presented refresh token is missing from
	// the ledger: logged out, already revoked, or never issued here.
	ErrRefreshReused = errors.New("refresh token invalid or already used")
)
