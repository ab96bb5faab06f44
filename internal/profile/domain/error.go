package domain

import "errors"

var (
	ErrProfileNotFound = errors.New("profile_not_found")
	ErrInvalidDivision = errors.New("invalid_division")
	ErrInvalidName     = errors.New("invalid_name")
	ErrRoleNotFound    = errors.New("role_not_found")
	ErrInvalidRole     = errors.New("invalid_role")
)
