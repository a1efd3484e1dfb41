package brackets

import (
	"sort"
	"strconv"

	"github.com/google/uuid"

	"bracket-engine/models"
)

// RoundRobinEngine schedules every pairing exactly once with the circle
// method: position 0 stays fixed while the remaining positions rotate
// one step after each round. An odd field gets a ghost slot whose
// pairings are simply skipped, so no playable bye matches exist.
type RoundRobinEngine struct{}

func NewRoundRobinEngine() *RoundRobinEngine {
	return &RoundRobinEngine{}
}

func (e *RoundRobinEngine) Type() models.BracketType {
	return models.BracketRoundRobin
}

func (e *RoundRobinEngine) data(b *models.Bracket) *models.RoundRobinBracket {
	if b == nil || b.Type != models.BracketRoundRobin {
		return nil
	}
	return b.RoundRobin
}

func (e *RoundRobinEngine) GenerateBracket(participants []*models.Participant, settings models.Settings) (*models.Bracket, error) {
	if len(participants) < 2 {
		return nil, ErrNotEnoughParticipants
	}

	slots := make([]*models.Participant, len(participants))
	copy(slots, participants)
	if len(slots)%2 != 0 {
		slots = append(slots, nil) // ghost slot for the odd player out
	}
	size := len(slots)
	totalRounds := size - 1

	rr := &models.RoundRobinBracket{
		TotalRounds:  totalRounds,
		TotalMatches: len(participants) * (len(participants) - 1) / 2,
		CurrentRound: 1,
	}
	for _, p := range participants {
		rr.Standings = append(rr.Standings, &models.Standing{
			Participant: p,
			HeadToHead:  map[string]string{},
		})
	}

	matchNumber := 0
	arrangement := make([]*models.Participant, size)
	copy(arrangement, slots)

	for r := 1; r <= totalRounds; r++ {
		round := &models.Round{
			Number: r,
			Name:   "Round " + strconv.Itoa(r),
			Status: models.RoundPending,
		}
		if r == 1 {
			round.Status = models.RoundActive
		}

		for i := 0; i < size/2; i++ {
			p1, p2 := arrangement[i], arrangement[size-1-i]
			if p1 == nil || p2 == nil {
				continue // ghost pairing, never materialized
			}
			matchNumber++
			round.Matches = append(round.Matches, &models.Match{
				ID:           uuid.New().String(),
				MatchNumber:  matchNumber,
				Round:        r,
				RoundName:    round.Name,
				Participant1: p1,
				Participant2: p2,
			})
		}
		rr.Rounds = append(rr.Rounds, round)

		// Rotate everything except the fixed first position.
		rotated := make([]*models.Participant, 0, size)
		rotated = append(rotated, arrangement[0], arrangement[size-1])
		rotated = append(rotated, arrangement[1:size-1]...)
		arrangement = rotated
	}

	return &models.Bracket{Type: models.BracketRoundRobin, RoundRobin: rr}, nil
}

func (e *RoundRobinEngine) AdvanceWinner(b *models.Bracket, matchID, winnerID, score string) error {
	rr := e.data(b)
	if rr == nil {
		return ErrWrongBracketType
	}

	m := findInRounds(rr.Rounds, matchID)
	if m == nil {
		return ErrMatchNotFound
	}
	if m.Winner != nil {
		return ErrMatchAlreadyDecided
	}
	if !m.HasParticipant(winnerID) {
		return ErrWinnerNotInMatch
	}

	winner := m.Participant1
	if m.Participant2.ID == winnerID {
		winner = m.Participant2
	}
	loser := m.Opponent(winnerID)
	m.Winner, m.Loser, m.Score = winner, loser, score

	winnerStanding := findStanding(rr.Standings, winner.ID)
	loserStanding := findStanding(rr.Standings, loser.ID)
	winnerStanding.Wins++
	winnerStanding.MatchesPlayed++
	winnerStanding.HeadToHead[loser.ID] = "win"
	loserStanding.Losses++
	loserStanding.MatchesPlayed++
	loserStanding.HeadToHead[winner.ID] = "loss"

	e.updateRoundStatus(rr)
	return nil
}

// updateRoundStatus closes finished rounds and activates the next one.
// Out-of-order reporting can finish several rounds at once.
func (e *RoundRobinEngine) updateRoundStatus(rr *models.RoundRobinBracket) {
	for rr.CurrentRound <= rr.TotalRounds {
		current := rr.Rounds[rr.CurrentRound-1]
		if !current.Complete() {
			return
		}
		current.Status = models.RoundComplete
		if rr.CurrentRound == rr.TotalRounds {
			return
		}
		rr.CurrentRound++
		rr.Rounds[rr.CurrentRound-1].Status = models.RoundActive
	}
}

func (e *RoundRobinEngine) GetActiveMatches(b *models.Bracket) []*models.Match {
	rr := e.data(b)
	if rr == nil {
		return nil
	}
	return playableInRounds(rr.Rounds)
}

func (e *RoundRobinEngine) IsComplete(b *models.Bracket) bool {
	rr := e.data(b)
	if rr == nil {
		return false
	}
	for _, r := range rr.Rounds {
		if !r.Complete() {
			return false
		}
	}
	return true
}

func (e *RoundRobinEngine) GetResults(b *models.Bracket) (*models.Results, error) {
	rr := e.data(b)
	if rr == nil {
		return nil, ErrWrongBracketType
	}
	if !e.IsComplete(b) {
		return nil, ErrBracketIncomplete
	}

	ranked := e.GetStandings(b)
	results := &models.Results{Standings: ranked}
	if len(ranked) > 0 {
		results.Winner = ranked[0].Participant
	}
	if len(ranked) > 1 {
		results.RunnerUp = ranked[1].Participant
	}
	if len(ranked) > 2 {
		results.ThirdPlace = ranked[2].Participant
	}
	return results, nil
}

// GetStandings ranks by wins, then the head-to-head result between the
// tied pair, then fewest losses.
func (e *RoundRobinEngine) GetStandings(b *models.Bracket) []*models.Standing {
	rr := e.data(b)
	if rr == nil {
		return nil
	}
	ranked := make([]*models.Standing, len(rr.Standings))
	copy(ranked, rr.Standings)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		switch a.HeadToHead[b.Participant.ID] {
		case "win":
			return true
		case "loss":
			return false
		}
		return a.Losses < b.Losses
	})
	return ranked
}

func (e *RoundRobinEngine) FindMatch(b *models.Bracket, matchID string) *models.Match {
	rr := e.data(b)
	if rr == nil {
		return nil
	}
	return findInRounds(rr.Rounds, matchID)
}
