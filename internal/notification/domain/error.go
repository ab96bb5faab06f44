package domain

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification_not_found")
	ErrEmptyTitle           = errors.New("empty_notification_title")
)
