package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to
// HTTP status codes with errors.Is.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidProfile     = errors.New("invalid user profile")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidSymbol      = errors.New("invalid stock symbol")
	ErrDuplicateSymbol    = errors.New("stock already in watchlist")
)
