package brackets

import (
	"math"
	"math/rand"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"bracket-engine/models"
)

// SwissEngine pairs one round at a time from live standings: players
// meet opponents on similar scores, rematches are avoided while any
// fresh opponent remains, and Buchholz (sum of opponents' points)
// breaks ties.
type SwissEngine struct{}

func NewSwissEngine() *SwissEngine {
	return &SwissEngine{}
}

func (e *SwissEngine) Type() models.BracketType {
	return models.BracketSwiss
}

func (e *SwissEngine) data(b *models.Bracket) *models.SwissBracket {
	if b == nil || b.Type != models.BracketSwiss {
		return nil
	}
	return b.Swiss
}

func (e *SwissEngine) GenerateBracket(participants []*models.Participant, settings models.Settings) (*models.Bracket, error) {
	if len(participants) < 2 {
		return nil, ErrNotEnoughParticipants
	}

	totalRounds := settings.SwissRounds
	if totalRounds <= 0 {
		totalRounds = int(math.Ceil(math.Log2(float64(len(participants)))))
	}

	// Seeded fields order the initial standings; a fully unseeded
	// field is shuffled instead so round one is not just roster order.
	ordered := make([]*models.Participant, len(participants))
	if anySeeded(participants) {
		copy(ordered, sortBySeed(participants))
	} else {
		copy(ordered, participants)
		rand.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}

	standings := make([]*models.Standing, len(ordered))
	for i, p := range ordered {
		standings[i] = &models.Standing{Participant: p, Opponents: []string{}}
	}

	sw := &models.SwissBracket{
		TotalRounds:  totalRounds,
		CurrentRound: 1,
		Standings:    standings,
	}
	sw.Rounds = append(sw.Rounds, e.generateRound(sw, 1))

	return &models.Bracket{Type: models.BracketSwiss, Swiss: sw}, nil
}

// generateRound pairs the field for one round. Standings are walked in
// (points desc, buchholz desc) order; each unpaired player takes the
// highest-ranked remaining opponent not yet faced. When every remaining
// candidate is a rematch the pairing happens anyway rather than leaving
// a playable match on the floor. An unpairable trailing player gets an
// automatic-win bye credited immediately.
func (e *SwissEngine) generateRound(sw *models.SwissBracket, roundNumber int) *models.Round {
	ranked := make([]*models.Standing, len(sw.Standings))
	copy(ranked, sw.Standings)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].Buchholz > ranked[j].Buchholz
	})

	round := &models.Round{
		Number: roundNumber,
		Name:   "Round " + strconv.Itoa(roundNumber),
		Status: models.RoundActive,
	}
	matchNumber := countMatches(sw.Rounds)
	paired := make(map[string]bool, len(ranked))

	for i, s := range ranked {
		if paired[s.Participant.ID] {
			continue
		}

		var opponent *models.Standing
		for j := i + 1; j < len(ranked); j++ {
			candidate := ranked[j]
			if paired[candidate.Participant.ID] || s.HasFaced(candidate.Participant.ID) {
				continue
			}
			opponent = candidate
			break
		}
		if opponent == nil {
			// Repeat-pairing fallback: everyone left has been faced.
			for j := i + 1; j < len(ranked); j++ {
				if !paired[ranked[j].Participant.ID] {
					opponent = ranked[j]
					break
				}
			}
		}

		matchNumber++
		m := &models.Match{
			ID:           uuid.New().String(),
			MatchNumber:  matchNumber,
			Round:        roundNumber,
			RoundName:    round.Name,
			Participant1: s.Participant,
		}
		if opponent == nil {
			// Odd player out: automatic win, credited now.
			m.IsBye = true
			m.Winner = s.Participant
			s.Wins++
			s.Points++
		} else {
			m.Participant2 = opponent.Participant
			paired[opponent.Participant.ID] = true
		}
		paired[s.Participant.ID] = true
		round.Matches = append(round.Matches, m)
	}

	return round
}

func (e *SwissEngine) AdvanceWinner(b *models.Bracket, matchID, winnerID, score string) error {
	sw := e.data(b)
	if sw == nil {
		return ErrWrongBracketType
	}

	m := findInRounds(sw.Rounds, matchID)
	if m == nil {
		return ErrMatchNotFound
	}
	if m.IsBye {
		return ErrByeMatch
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

	winnerStanding := findStanding(sw.Standings, winner.ID)
	loserStanding := findStanding(sw.Standings, loser.ID)
	winnerStanding.Wins++
	winnerStanding.Points++
	loserStanding.Losses++
	winnerStanding.Opponents = append(winnerStanding.Opponents, loser.ID)
	loserStanding.Opponents = append(loserStanding.Opponents, winner.ID)

	recomputeBuchholz(sw.Standings)

	if sw.Rounds[sw.CurrentRound-1].Complete() {
		sw.Rounds[sw.CurrentRound-1].Status = models.RoundComplete
	}
	return nil
}

// GenerateNextRound appends a freshly paired round. It is only legal
// once the current round is fully decided and rounds remain.
func (e *SwissEngine) GenerateNextRound(b *models.Bracket) error {
	sw := e.data(b)
	if sw == nil {
		return ErrWrongBracketType
	}
	current := sw.Rounds[sw.CurrentRound-1]
	if !current.Complete() {
		return ErrRoundNotComplete
	}
	if sw.CurrentRound >= sw.TotalRounds {
		return ErrNoRoundsRemaining
	}

	current.Status = models.RoundComplete
	sw.CurrentRound++
	sw.Rounds = append(sw.Rounds, e.generateRound(sw, sw.CurrentRound))
	return nil
}

func (e *SwissEngine) GetActiveMatches(b *models.Bracket) []*models.Match {
	sw := e.data(b)
	if sw == nil {
		return nil
	}
	return playableInRounds(sw.Rounds)
}

func (e *SwissEngine) IsComplete(b *models.Bracket) bool {
	sw := e.data(b)
	if sw == nil {
		return false
	}
	return sw.CurrentRound == sw.TotalRounds && sw.Rounds[sw.CurrentRound-1].Complete()
}

func (e *SwissEngine) GetResults(b *models.Bracket) (*models.Results, error) {
	sw := e.data(b)
	if sw == nil {
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

func (e *SwissEngine) GetStandings(b *models.Bracket) []*models.Standing {
	sw := e.data(b)
	if sw == nil {
		return nil
	}
	ranked := make([]*models.Standing, len(sw.Standings))
	copy(ranked, sw.Standings)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].Buchholz > ranked[j].Buchholz
	})
	return ranked
}

func (e *SwissEngine) FindMatch(b *models.Bracket, matchID string) *models.Match {
	sw := e.data(b)
	if sw == nil {
		return nil
	}
	return findInRounds(sw.Rounds, matchID)
}

func anySeeded(participants []*models.Participant) bool {
	for _, p := range participants {
		if p.Seed > 0 {
			return true
		}
	}
	return false
}

func findStanding(standings []*models.Standing, participantID string) *models.Standing {
	for _, s := range standings {
		if s.Participant.ID == participantID {
			return s
		}
	}
	return nil
}

// recomputeBuchholz refreshes every player's tiebreak as the sum of
// their opponents' current point totals.
func recomputeBuchholz(standings []*models.Standing) {
	for _, s := range standings {
		total := 0
		for _, oppID := range s.Opponents {
			if opp := findStanding(standings, oppID); opp != nil {
				total += opp.Points
			}
		}
		s.Buchholz = total
	}
}

func countMatches(rounds []*models.Round) int {
	total := 0
	for _, r := range rounds {
		total += len(r.Matches)
	}
	return total
}
