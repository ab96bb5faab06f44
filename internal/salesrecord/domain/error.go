package domain

import "errors"

var (
	ErrRecordNotFound  = errors.New("sales_record_not_found")
	ErrInvalidCustomer = errors.New("invalid_customer")
	ErrInvalidAmount   = errors.New("invalid_amount")
	ErrInvalidMargin   = errors.New("invalid_margin")
	ErrNotOwner        = errors.New("not_record_owner")
)
