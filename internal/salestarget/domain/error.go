package domain

import "errors"

var (
	ErrTargetNotFound = errors.New("sales_target_not_found")
	ErrInvalidTarget  = errors.New("invalid_target_amount")
	ErrInvalidPeriod  = errors.New("invalid_period")
)
