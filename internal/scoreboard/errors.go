package scoreboard

import "errors"

var (
	ErrInvalidTeams   = errors.New("home and away teams must be different")
	ErrDuplicateMatch = errors.New("a team cannot participate in multiple ongoing matches")
	ErrInvalidScore   = errors.New("scores must be non-negative integers")
	ErrMatchNotFound  = errors.New("match not found")
)
