package domain

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrManagerRequired     = errors.New("manager_required")
	ErrTargetRequired      = errors.New("target_required")
	ErrInvalidTarget       = errors.New("invalid_target")
	ErrCannotDeleteSelf    = errors.New("cannot_delete_self")
	ErrSuperadminProtected = errors.New("superadmin_protected")
	ErrInvalidEmail        = errors.New("invalid_email")
	ErrEmailTaken          = errors.New("email_taken")
)
