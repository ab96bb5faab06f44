package domain

import "errors"

var (
	ErrMessageNotFound = errors.New("message_not_found")
	ErrEmptyBody       = errors.New("empty_message_body")
)
