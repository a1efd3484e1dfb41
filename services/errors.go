package services

import "errors"

// Service-level errors shared across handlers for HTTP mapping. Engine
// errors (validation, state conflicts, unknown references) surface
// unchanged from the brackets package.
var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrFormatRequired         = errors.New("tournament format is required")

	ErrNotASwissBracket        = errors.New("tournament is not a swiss bracket")
	ErrNotABattleRoyaleBracket = errors.New("tournament is not a battle royale bracket")
)
