package domain

import "errors"

var (
	ErrScheduleNotFound = errors.New("schedule_not_found")
	ErrInvalidWindow    = errors.New("invalid_time_window")
	ErrCollaboratorBusy = errors.New("collaborator_busy")
	ErrInvalidTitle     = errors.New("invalid_title")
	ErrNotOwner         = errors.New("not_schedule_owner")
)
