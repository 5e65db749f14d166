package user

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid token")
	ErrRequesterIDRequired     = errors.New("user_id claim is missing or invalid")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
