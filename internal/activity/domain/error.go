package domain

import "errors"

var (
	ErrActivityNotFound = errors.New("activity_not_found")
	ErrInvalidCustomer  = errors.New("invalid_customer")
	ErrInvalidType      = errors.New("invalid_activity_type")
	ErrNotOwner         = errors.New("not_activity_owner")
)
