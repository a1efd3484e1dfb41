package brackets

import (
	"strconv"

	"github.com/google/uuid"

	"bracket-engine/models"
)

// DoubleEliminationEngine builds on the single-elimination placement
// algorithm and produces two cross-linked brackets plus a grand final
// with a conditional reset. Winners-bracket losers drop into the losers
// bracket exactly once; losers-bracket losers are eliminated.
type DoubleEliminationEngine struct{}

func NewDoubleEliminationEngine() *DoubleEliminationEngine {
	return &DoubleEliminationEngine{}
}

func (e *DoubleEliminationEngine) Type() models.BracketType {
	return models.BracketDoubleElimination
}

func (e *DoubleEliminationEngine) data(b *models.Bracket) *models.DoubleElimBracket {
	if b == nil || b.Type != models.BracketDoubleElimination {
		return nil
	}
	return b.DoubleElim
}

func (e *DoubleEliminationEngine) GenerateBracket(participants []*models.Participant, settings models.Settings) (*models.Bracket, error) {
	if len(participants) < 2 {
		return nil, ErrNotEnoughParticipants
	}

	bracketSize := NextPowerOfTwo(len(participants))
	wbRounds := 0
	for size := bracketSize; size > 1; size >>= 1 {
		wbRounds++
	}

	slots := placeInSlots(participants, bracketSize)
	matchNumber := 0

	newMatch := func(round int, roundName string, side models.BracketSide) *models.Match {
		matchNumber++
		return &models.Match{
			ID:          uuid.New().String(),
			MatchNumber: matchNumber,
			Round:       round,
			RoundName:   roundName,
			Bracket:     side,
		}
	}

	// Winners bracket: identical construction to single elimination.
	winners := make([]*models.Round, 0, wbRounds)
	first := &models.Round{Number: 1, Name: winnersRoundName(1, wbRounds), Status: models.RoundActive}
	for i := 0; i < bracketSize; i += 2 {
		m := newMatch(1, first.Name, models.SideWinners)
		m.Participant1 = slots[i]
		m.Participant2 = slots[i+1]
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
	winners = append(winners, first)

	prev := first
	for r := 2; r <= wbRounds; r++ {
		round := &models.Round{Number: r, Name: winnersRoundName(r, wbRounds), Status: models.RoundPending}
		for i := 0; i < len(prev.Matches); i += 2 {
			src1, src2 := prev.Matches[i], prev.Matches[i+1]
			m := newMatch(r, round.Name, models.SideWinners)
			m.SourceMatch1ID = src1.ID
			m.SourceMatch2ID = src2.ID
			src1.NextMatchID, src1.NextSlot = m.ID, 1
			src2.NextMatchID, src2.NextSlot = m.ID, 2
			if src1.IsBye {
				m.Participant1 = src1.Winner
			}
			if src2.IsBye {
				m.Participant2 = src2.Winner
			}
			round.Matches = append(round.Matches, m)
		}
		winners = append(winners, round)
		prev = round
	}

	// Losers bracket: 2*(wbRounds-1) rounds alternating between
	// losers-only rounds and drop-in rounds that receive the loser
	// freshly dropped from the corresponding winners round.
	lbRounds := 2 * (wbRounds - 1)
	losers := make([]*models.Round, 0, lbRounds)
	for r := 1; r <= lbRounds; r++ {
		count := bracketSize >> uint((r+1)/2+1)
		round := &models.Round{Number: r, Name: losersRoundName(r, lbRounds), Status: models.RoundPending}
		for i := 0; i < count; i++ {
			round.Matches = append(round.Matches, newMatch(r, round.Name, models.SideLosers))
		}
		losers = append(losers, round)
	}
	if len(losers) > 0 {
		losers[0].Status = models.RoundActive
	}

	// Internal losers links: an even round r keeps the match count of
	// round r-1 and seats its winners in slot 1; an odd round r >= 3
	// halves the previous round.
	for r := 2; r <= lbRounds; r++ {
		curr := losers[r-1].Matches
		prevMatches := losers[r-2].Matches
		if r%2 == 0 {
			for i, src := range prevMatches {
				src.NextMatchID, src.NextSlot = curr[i].ID, 1
				curr[i].SourceMatch1ID = src.ID
			}
		} else {
			for i, src := range prevMatches {
				target := curr[i/2]
				slot := i%2 + 1
				src.NextMatchID, src.NextSlot = target.ID, slot
				if slot == 1 {
					target.SourceMatch1ID = src.ID
				} else {
					target.SourceMatch2ID = src.ID
				}
			}
		}
	}

	// Grand finals: the winners champion lands in slot 1, the losers
	// champion in slot 2; the reset match only comes alive if the
	// losers champion takes the first grand final.
	gfRound := &models.Round{Number: 1, Name: "Grand Final", Status: models.RoundPending}
	gf := newMatch(1, gfRound.Name, models.SideGrandFinals)
	gfRound.Matches = []*models.Match{gf}

	resetRound := &models.Round{Number: 2, Name: "Bracket Reset", Status: models.RoundPending}
	reset := newMatch(2, resetRound.Name, models.SideGrandFinals)
	resetRound.Matches = []*models.Match{reset}

	wbFinal := winners[wbRounds-1].Matches[0]
	wbFinal.NextMatchID, wbFinal.NextSlot = gf.ID, 1

	if lbRounds > 0 {
		lbFinal := losers[lbRounds-1].Matches[0]
		lbFinal.NextMatchID, lbFinal.NextSlot = gf.ID, 2
	}

	// Cross-link winners losses into the losers bracket. Round 1 fills
	// both slots of losers round 1; every later winners round drops its
	// losers into slot 2 of losers round 2*(r-1).
	if lbRounds > 0 {
		for i, m := range winners[0].Matches {
			target := losers[0].Matches[i/2]
			slot := i%2 + 1
			m.NextLoseMatchID, m.NextLoseSlot = target.ID, slot
			if slot == 1 {
				target.SourceMatch1ID = m.ID
			} else {
				target.SourceMatch2ID = m.ID
			}
			// A bye produces no loser, so the fed slot stays empty
			// forever.
			if m.IsBye {
				if slot == 1 {
					target.Slot1Closed = true
				} else {
					target.Slot2Closed = true
				}
			}
		}
		for r := 2; r <= wbRounds; r++ {
			dropRound := losers[2*(r-1)-1].Matches
			for i, m := range winners[r-1].Matches {
				m.NextLoseMatchID, m.NextLoseSlot = dropRound[i].ID, 2
				dropRound[i].SourceMatch2ID = m.ID
			}
		}
	} else {
		// Two participants: no losers bracket exists; the winners
		// final loser goes straight to the grand final.
		wbFinal.NextLoseMatchID, wbFinal.NextLoseSlot = gf.ID, 2
	}

	propagateClosedSlots(losers)

	de := &models.DoubleElimBracket{
		BracketSize:       bracketSize,
		WinnersRounds:     winners,
		LosersRounds:      losers,
		GrandFinalsRounds: []*models.Round{gfRound, resetRound},
	}
	return &models.Bracket{Type: models.BracketDoubleElimination, DoubleElim: de}, nil
}

// propagateClosedSlots walks the losers bracket in round order. A match
// with one closed slot becomes a bye that resolves once its live slot
// fills; a match with both slots closed is dead and closes the slot it
// feeds.
func propagateClosedSlots(losers []*models.Round) {
	for _, round := range losers {
		for _, m := range round.Matches {
			if m.Slot1Closed && m.Slot2Closed {
				m.IsBye = true
				if next := findInRounds(losers, m.NextMatchID); next != nil {
					if m.NextSlot == 1 {
						next.Slot1Closed = true
					} else {
						next.Slot2Closed = true
					}
				}
			} else if m.Slot1Closed || m.Slot2Closed {
				m.IsBye = true
			}
		}
	}
}

func (e *DoubleEliminationEngine) AdvanceWinner(b *models.Bracket, matchID, winnerID, score string) error {
	de := e.data(b)
	if de == nil {
		return ErrWrongBracketType
	}

	m := e.findMatch(de, matchID)
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
	loser := m.Opponent(winnerID)

	switch m.Bracket {
	case models.SideWinners:
		m.Winner, m.Loser, m.Score = winner, loser, score
		e.advanceWinnersWinner(de, m, winner)
		e.dropWinnersLoser(de, m, loser)
	case models.SideLosers:
		m.Winner, m.Loser, m.Score = winner, loser, score
		// The loser is eliminated; only the winner moves on.
		e.advanceLosersWinner(de, m, winner)
	case models.SideGrandFinals:
		e.decideGrandFinal(de, m, winner, loser, score)
	default:
		return ErrMatchNotFound
	}
	return nil
}

func (e *DoubleEliminationEngine) advanceWinnersWinner(de *models.DoubleElimBracket, m *models.Match, winner *models.Participant) {
	target := e.findMatch(de, m.NextMatchID)
	if target == nil {
		return
	}
	if target.Bracket == models.SideGrandFinals {
		de.WBComplete = true
		de.WinnersChampion = winner
	}
	placeInMatchSlot(target, m.NextSlot, winner)
}

func (e *DoubleEliminationEngine) dropWinnersLoser(de *models.DoubleElimBracket, m *models.Match, loser *models.Participant) {
	target := e.findMatch(de, m.NextLoseMatchID)
	if target == nil || loser == nil {
		return
	}
	if target.Bracket == models.SideGrandFinals {
		// No losers bracket (two participants): the winners final
		// loser is the losers champion by default.
		de.LBComplete = true
		placeInMatchSlot(target, m.NextLoseSlot, loser)
		return
	}
	placeInMatchSlot(target, m.NextLoseSlot, loser)
	if target.IsBye && target.Winner == nil {
		e.resolveLosersBye(de, target)
	}
}

func (e *DoubleEliminationEngine) advanceLosersWinner(de *models.DoubleElimBracket, m *models.Match, winner *models.Participant) {
	target := e.findMatch(de, m.NextMatchID)
	if target == nil {
		return
	}
	if target.Bracket == models.SideGrandFinals {
		de.LBComplete = true
		placeInMatchSlot(target, m.NextSlot, winner)
		return
	}
	placeInMatchSlot(target, m.NextSlot, winner)
	if target.IsBye && target.Winner == nil {
		e.resolveLosersBye(de, target)
	}
}

// resolveLosersBye auto-wins a losers match whose other slot is closed,
// cascading through consecutive byes.
func (e *DoubleEliminationEngine) resolveLosersBye(de *models.DoubleElimBracket, m *models.Match) {
	occupant := m.Participant1
	if occupant == nil {
		occupant = m.Participant2
	}
	if occupant == nil {
		return
	}
	m.Winner = occupant
	e.advanceLosersWinner(de, m, occupant)
}

func (e *DoubleEliminationEngine) decideGrandFinal(de *models.DoubleElimBracket, m *models.Match, winner, loser *models.Participant, score string) {
	m.Winner, m.Loser, m.Score = winner, loser, score

	grandFinal := de.GrandFinalsRounds[0].Matches[0]
	if m.ID != grandFinal.ID {
		// Bracket reset: the true decider, nothing left to set up.
		return
	}

	if de.WinnersChampion != nil && winner.ID == de.WinnersChampion.ID {
		de.NeedsReset = false
		return
	}
	// The losers champion evened the score; both players carry over
	// into the reset match, which becomes the decider.
	de.NeedsReset = true
	reset := de.GrandFinalsRounds[1].Matches[0]
	placeInMatchSlot(reset, 1, grandFinal.Participant1)
	placeInMatchSlot(reset, 2, grandFinal.Participant2)
}

func (e *DoubleEliminationEngine) findMatch(de *models.DoubleElimBracket, matchID string) *models.Match {
	if matchID == "" {
		return nil
	}
	if m := findInRounds(de.WinnersRounds, matchID); m != nil {
		return m
	}
	if m := findInRounds(de.LosersRounds, matchID); m != nil {
		return m
	}
	return findInRounds(de.GrandFinalsRounds, matchID)
}

func (e *DoubleEliminationEngine) GetActiveMatches(b *models.Bracket) []*models.Match {
	de := e.data(b)
	if de == nil {
		return nil
	}
	active := playableInRounds(de.WinnersRounds)
	active = append(active, playableInRounds(de.LosersRounds)...)
	for _, m := range playableInRounds(de.GrandFinalsRounds) {
		// The reset match is only live once a reset is required.
		if m.ID == de.GrandFinalsRounds[1].Matches[0].ID && !de.NeedsReset {
			continue
		}
		active = append(active, m)
	}
	return active
}

func (e *DoubleEliminationEngine) IsComplete(b *models.Bracket) bool {
	de := e.data(b)
	if de == nil {
		return false
	}
	grandFinal := de.GrandFinalsRounds[0].Matches[0]
	if grandFinal.Winner == nil {
		return false
	}
	if de.NeedsReset {
		return de.GrandFinalsRounds[1].Matches[0].Winner != nil
	}
	return true
}

func (e *DoubleEliminationEngine) GetResults(b *models.Bracket) (*models.Results, error) {
	de := e.data(b)
	if de == nil {
		return nil, ErrWrongBracketType
	}
	if !e.IsComplete(b) {
		return nil, ErrBracketIncomplete
	}

	decider := de.GrandFinalsRounds[0].Matches[0]
	if de.NeedsReset {
		decider = de.GrandFinalsRounds[1].Matches[0]
	}
	results := &models.Results{Winner: decider.Winner, RunnerUp: decider.Loser}

	// Third place approximation: loser of the losers-bracket
	// semifinal, i.e. the second-to-last losers round.
	if len(de.LosersRounds) >= 2 {
		semis := de.LosersRounds[len(de.LosersRounds)-2]
		for _, m := range semis.Matches {
			if m.Loser != nil {
				results.ThirdPlace = m.Loser
				break
			}
		}
	}
	return results, nil
}

func (e *DoubleEliminationEngine) GetStandings(b *models.Bracket) []*models.Standing {
	return nil
}

func (e *DoubleEliminationEngine) FindMatch(b *models.Bracket, matchID string) *models.Match {
	de := e.data(b)
	if de == nil {
		return nil
	}
	return e.findMatch(de, matchID)
}

func winnersRoundName(round, totalRounds int) string {
	switch totalRounds - round {
	case 0:
		return "Winners Final"
	case 1:
		return "Winners Semifinals"
	default:
		return "Winners Round " + strconv.Itoa(round)
	}
}

func losersRoundName(round, totalRounds int) string {
	switch totalRounds - round {
	case 0:
		return "Losers Final"
	case 1:
		return "Losers Semifinals"
	default:
		return "Losers Round " + strconv.Itoa(round)
	}
}
