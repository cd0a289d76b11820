package domain

import (
	"errors"
)

const (
	RoleUser = "user"

	// KeyAuthToken is the cookie the view layer reads the bearer token from.
	KeyAuthToken = "AUTH_TOKEN"
	// KeyUserID is the fiber Locals key holding the authenticated user id.
	KeyUserID = "user_id"
	KeyRole   = "role"
)

var (
	MessageUserNotAuthenticated = "user not authenticated"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"

	ErrParseUUID     = errors.New("failed to parse UUID")
	ErrTokenInvalid  = errors.New("token invalid")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenNotFound = errors.New("token not found")
)
