package service

import "errors"

var (
	ErrUnauthenticated        = errors.New("not authenticated")
	ErrForbidden              = errors.New("insufficient permissions")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountDisabled        = errors.New("account is disabled")
	ErrWeakPassword           = errors.New("password does not meet minimum length")
	ErrInvalidOrExpiredToken  = errors.New("invalid or expired token")
	ErrInvalidTokenType       = errors.New("invalid token type")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrFeatureDisabled        = errors.New("feature is disabled")

	ErrInvalidToken = errors.New("token is invalid")
	ErrTokenExpired = errors.New("token has expired")
)
