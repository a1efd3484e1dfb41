package brackets

import (
	"fmt"

	"bracket-engine/models"
)

// Engine is the contract every tournament format implements. A bracket
// is generated once from a participant snapshot, mutated in place by
// result reports, and read at any time for playable matches, live
// standings and final results. Engines are stateless; all state lives
// in the bracket value the caller owns.
type Engine interface {
	Type() models.BracketType

	GenerateBracket(participants []*models.Participant, settings models.Settings) (*models.Bracket, error)
	AdvanceWinner(b *models.Bracket, matchID, winnerID, score string) error

	GetActiveMatches(b *models.Bracket) []*models.Match
	IsComplete(b *models.Bracket) bool
	GetResults(b *models.Bracket) (*models.Results, error)
	GetStandings(b *models.Bracket) []*models.Standing
	FindMatch(b *models.Bracket, matchID string) *models.Match
}

// ForType returns the engine for a bracket type discriminator.
func ForType(t models.BracketType) (Engine, error) {
	switch t {
	case models.BracketSingleElimination:
		return NewSingleEliminationEngine(), nil
	case models.BracketDoubleElimination:
		return NewDoubleEliminationEngine(), nil
	case models.BracketSwiss:
		return NewSwissEngine(), nil
	case models.BracketRoundRobin:
		return NewRoundRobinEngine(), nil
	case models.BracketBattleRoyale:
		return NewBattleRoyaleEngine(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBracketType, t)
	}
}

// findInRounds resolves a match id with a linear scan over rounds.
func findInRounds(rounds []*models.Round, matchID string) *models.Match {
	for _, r := range rounds {
		for _, m := range r.Matches {
			if m.ID == matchID {
				return m
			}
		}
	}
	return nil
}

// playableInRounds collects matches that can accept a result right now.
func playableInRounds(rounds []*models.Round) []*models.Match {
	var active []*models.Match
	for _, r := range rounds {
		for _, m := range r.Matches {
			if m.Playable() {
				active = append(active, m)
			}
		}
	}
	return active
}
