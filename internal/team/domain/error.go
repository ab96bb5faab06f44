package domain

import "errors"

var (
	ErrTeamNotFound = errors.New("team_not_found")
	ErrInvalidName  = errors.New("invalid_team_name")
	ErrTeamExists   = errors.New("team_already_exists")
)
