package brackets

import "errors"

// Engine errors fall into three families: validation (the request was
// malformed), state conflict (the request is legal but arrives at the
// wrong moment), and reference not found. Every operation is
// all-or-nothing: an error return means the bracket is untouched.
var (
	// Validation.
	ErrNotEnoughParticipants = errors.New("at least 2 participants are required to generate a bracket")
	ErrUnknownBracketType    = errors.New("unknown bracket type")
	ErrWrongBracketType      = errors.New("bracket type does not match this engine")
	ErrInvalidPlacements     = errors.New("placements must list every team in the lobby exactly once")
	ErrInvalidLobbySize      = errors.New("lobby size must be at least 2")
	ErrWinnerNotInMatch      = errors.New("winner is not a participant of this match")

	// State conflicts.
	ErrMatchAlreadyDecided  = errors.New("match already has a winner")
	ErrMatchNotReady        = errors.New("match does not have both participants yet")
	ErrByeMatch             = errors.New("cannot report a result for a bye match")
	ErrRoundNotComplete     = errors.New("current round is not complete")
	ErrNoRoundsRemaining    = errors.New("all rounds have already been generated")
	ErrGameAlreadyComplete  = errors.New("game already has recorded results")
	ErrStageComplete        = errors.New("stage is already complete")
	ErrBracketIncomplete    = errors.New("bracket is not complete")
	ErrPerGameReporting     = errors.New("battle royale results are reported per game, not per match")

	// References.
	ErrMatchNotFound = errors.New("match not found")
	ErrGroupNotFound = errors.New("group not found")
	ErrGameNotFound  = errors.New("game not found")
)
