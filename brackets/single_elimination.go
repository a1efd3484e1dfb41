package brackets

import (
	"github.com/google/uuid"

	"bracket-engine/models"
)

// SingleEliminationEngine generates a binary elimination bracket with
// auto-resolved byes and advances winners match by match.
type SingleEliminationEngine struct{}

func NewSingleEliminationEngine() *SingleEliminationEngine {
	return &SingleEliminationEngine{}
}

func (e *SingleEliminationEngine) Type() models.BracketType {
	return models.BracketSingleElimination
}

func (e *SingleEliminationEngine) data(b *models.Bracket) *models.SingleElimBracket {
	if b == nil || b.Type != models.BracketSingleElimination {
		return nil
	}
	return b.SingleElim
}

func (e *SingleEliminationEngine) GenerateBracket(participants []*models.Participant, settings models.Settings) (*models.Bracket, error) {
	if len(participants) < 2 {
		return nil, ErrNotEnoughParticipants
	}

	bracketSize := NextPowerOfTwo(len(participants))
	totalRounds := 0
	for size := bracketSize; size > 1; size >>= 1 {
		totalRounds++
	}

	slots := placeInSlots(participants, bracketSize)
	matchNumber := 0

	rounds := make([]*models.Round, 0, totalRounds)

	first := &models.Round{Number: 1, Name: eliminationRoundName(1, totalRounds), Status: models.RoundActive}
	for i := 0; i < bracketSize; i += 2 {
		matchNumber++
		m := &models.Match{
			ID:           uuid.New().String(),
			MatchNumber:  matchNumber,
			Round:        1,
			RoundName:    first.Name,
			Participant1: slots[i],
			Participant2: slots[i+1],
		}
		// A lone occupant wins the bye at generation time.
		if slots[i] == nil || slots[i+1] == nil {
			m.IsBye = true
			if slots[i] != nil {
				m.Winner = slots[i]
			} else {
				m.Winner = slots[i+1]
			}
		}
		first.Matches = append(first.Matches, m)
	}
	rounds = append(rounds, first)

	prev := first
	for r := 2; r <= totalRounds; r++ {
		round := &models.Round{Number: r, Name: eliminationRoundName(r, totalRounds), Status: models.RoundPending}
		for i := 0; i < len(prev.Matches); i += 2 {
			matchNumber++
			src1, src2 := prev.Matches[i], prev.Matches[i+1]
			m := &models.Match{
				ID:             uuid.New().String(),
				MatchNumber:    matchNumber,
				Round:          r,
				RoundName:      round.Name,
				SourceMatch1ID: src1.ID,
				SourceMatch2ID: src2.ID,
			}
			src1.NextMatchID, src1.NextSlot = m.ID, 1
			src2.NextMatchID, src2.NextSlot = m.ID, 2

			// Byes cascade instantly: the winner is already known, so
			// the next round's slot is filled at generation time.
			if src1.IsBye {
				m.Participant1 = src1.Winner
			}
			if src2.IsBye {
				m.Participant2 = src2.Winner
			}
			round.Matches = append(round.Matches, m)
		}
		rounds = append(rounds, round)
		prev = round
	}

	se := &models.SingleElimBracket{
		BracketSize:  bracketSize,
		TotalRounds:  totalRounds,
		CurrentRound: 1,
		Rounds:       rounds,
	}
	se.CurrentRound = currentEliminationRound(se.Rounds, se.TotalRounds)

	return &models.Bracket{Type: models.BracketSingleElimination, SingleElim: se}, nil
}

func (e *SingleEliminationEngine) AdvanceWinner(b *models.Bracket, matchID, winnerID, score string) error {
	se := e.data(b)
	if se == nil {
		return ErrWrongBracketType
	}

	m := findInRounds(se.Rounds, matchID)
	if m == nil {
		return ErrMatchNotFound
	}
	if m.IsBye {
		return ErrByeMatch
	}
	if m.Winner != nil {
		return ErrMatchAlreadyDecided
	}
	if m.Participant1 == nil || m.Participant2 == nil {
		return ErrMatchNotReady
	}
	if !m.HasParticipant(winnerID) {
		return ErrWinnerNotInMatch
	}

	winner := m.Participant1
	if m.Participant2.ID == winnerID {
		winner = m.Participant2
	}
	m.Winner = winner
	m.Loser = m.Opponent(winnerID)
	m.Score = score

	if m.NextMatchID != "" {
		next := findInRounds(se.Rounds, m.NextMatchID)
		if next != nil {
			placeInMatchSlot(next, m.NextSlot, winner)
		}
	}

	se.CurrentRound = currentEliminationRound(se.Rounds, se.TotalRounds)
	return nil
}

func (e *SingleEliminationEngine) GetActiveMatches(b *models.Bracket) []*models.Match {
	se := e.data(b)
	if se == nil {
		return nil
	}
	return playableInRounds(se.Rounds)
}

func (e *SingleEliminationEngine) IsComplete(b *models.Bracket) bool {
	se := e.data(b)
	if se == nil || len(se.Rounds) == 0 {
		return false
	}
	final := se.Rounds[len(se.Rounds)-1]
	return len(final.Matches) == 1 && final.Matches[0].Winner != nil
}

func (e *SingleEliminationEngine) GetResults(b *models.Bracket) (*models.Results, error) {
	se := e.data(b)
	if se == nil {
		return nil, ErrWrongBracketType
	}
	if !e.IsComplete(b) {
		return nil, ErrBracketIncomplete
	}

	final := se.Rounds[len(se.Rounds)-1].Matches[0]
	results := &models.Results{Winner: final.Winner, RunnerUp: final.Loser}
	results.ThirdPlace = semifinalThirdPlace(se.Rounds, results.RunnerUp)
	return results, nil
}

func (e *SingleEliminationEngine) GetStandings(b *models.Bracket) []*models.Standing {
	// Elimination formats carry no running standings; rankings only
	// exist once the bracket completes.
	return nil
}

func (e *SingleEliminationEngine) FindMatch(b *models.Bracket, matchID string) *models.Match {
	se := e.data(b)
	if se == nil {
		return nil
	}
	return findInRounds(se.Rounds, matchID)
}

// placeInMatchSlot fills a participant slot. Slots are write-once: a
// populated slot is never reassigned.
func placeInMatchSlot(m *models.Match, slot int, p *models.Participant) {
	switch slot {
	case 1:
		if m.Participant1 == nil {
			m.Participant1 = p
		}
	case 2:
		if m.Participant2 == nil {
			m.Participant2 = p
		}
	}
}

// currentEliminationRound is the lowest round that still has an
// undecided non-bye match, or totalRounds+1 when everything is decided.
func currentEliminationRound(rounds []*models.Round, totalRounds int) int {
	for _, r := range rounds {
		for _, m := range r.Matches {
			if !m.IsBye && m.Winner == nil && !(m.Slot1Closed && m.Slot2Closed) {
				return r.Number
			}
		}
	}
	return totalRounds + 1
}

// semifinalThirdPlace derives third place as the loser of the first
// semifinal that did not produce the runner-up. This mirrors historic
// behavior: it is an approximation, not a played bronze match.
func semifinalThirdPlace(rounds []*models.Round, runnerUp *models.Participant) *models.Participant {
	if len(rounds) < 2 || runnerUp == nil {
		return nil
	}
	semis := rounds[len(rounds)-2]
	for _, m := range semis.Matches {
		if m.Winner == nil || m.Loser == nil {
			continue
		}
		if m.Winner.ID != runnerUp.ID {
			return m.Loser
		}
	}
	return nil
}
