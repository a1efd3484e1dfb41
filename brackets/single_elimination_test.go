package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bracket-engine/models"
)

// playOut reports every playable match until the bracket completes,
// choosing the winner with pick (defaults to slot 1).
func playOut(t *testing.T, e Engine, b *models.Bracket, pick func(m *models.Match) string) {
	t.Helper()
	if pick == nil {
		pick = func(m *models.Match) string { return m.Participant1.ID }
	}
	for guard := 0; !e.IsComplete(b); guard++ {
		require.Less(t, guard, 256, "bracket never completed")
		active := e.GetActiveMatches(b)
		require.NotEmpty(t, active, "incomplete bracket with no playable matches")
		for _, m := range active {
			require.NoError(t, e.AdvanceWinner(b, m.ID, pick(m), ""))
		}
	}
}

func TestSingleEliminationGenerateBracket(t *testing.T) {
	e := NewSingleEliminationEngine()

	t.Run("rejects fewer than two participants", func(t *testing.T) {
		_, err := e.GenerateBracket(seededParticipants(1), models.Settings{})
		assert.ErrorIs(t, err, ErrNotEnoughParticipants)
	})

	t.Run("five participants pad to a bracket of eight", func(t *testing.T) {
		b, err := e.GenerateBracket(seededParticipants(5), models.Settings{})
		require.NoError(t, err)
		se := b.SingleElim
		require.NotNil(t, se)

		assert.Equal(t, 8, se.BracketSize)
		assert.Equal(t, 3, se.TotalRounds)
		require.Len(t, se.Rounds, 3)
		assert.Len(t, se.Rounds[0].Matches, 4)
		assert.Len(t, se.Rounds[1].Matches, 2)
		assert.Len(t, se.Rounds[2].Matches, 1)

		byes := 0
		for _, m := range se.Rounds[0].Matches {
			if m.IsBye {
				byes++
				assert.NotNil(t, m.Winner, "bye resolved at generation")
			}
		}
		assert.Equal(t, 3, byes)

		// Bye winners are already cascaded into round 2.
		semis := se.Rounds[1].Matches
		require.NotNil(t, semis[0].Participant1)
		assert.Equal(t, "p1", semis[0].Participant1.ID)
		require.NotNil(t, semis[1].Participant1)
		assert.Equal(t, "p2", semis[1].Participant1.ID)
		require.NotNil(t, semis[1].Participant2)
		assert.Equal(t, "p3", semis[1].Participant2.ID)
	})

	t.Run("match numbers are unique and increasing", func(t *testing.T) {
		b, err := e.GenerateBracket(seededParticipants(8), models.Settings{})
		require.NoError(t, err)

		next := 1
		for _, r := range b.SingleElim.Rounds {
			for _, m := range r.Matches {
				assert.Equal(t, next, m.MatchNumber)
				next++
			}
		}
	})

	t.Run("links form an acyclic forward graph", func(t *testing.T) {
		b, err := e.GenerateBracket(seededParticipants(8), models.Settings{})
		require.NoError(t, err)

		roundOf := map[string]int{}
		for _, r := range b.SingleElim.Rounds {
			for _, m := range r.Matches {
				roundOf[m.ID] = m.Round
			}
		}
		for _, r := range b.SingleElim.Rounds {
			for _, m := range r.Matches {
				if m.NextMatchID == "" {
					continue
				}
				nextRound, ok := roundOf[m.NextMatchID]
				require.True(t, ok)
				assert.Greater(t, nextRound, m.Round, "next match must be in a later round")
			}
		}
	})
}

func TestSingleEliminationAdvanceWinner(t *testing.T) {
	e := NewSingleEliminationEngine()
	b, err := e.GenerateBracket(seededParticipants(5), models.Settings{})
	require.NoError(t, err)
	se := b.SingleElim

	// The only playable round-1 match is p4 vs p5.
	active := e.GetActiveMatches(b)
	require.Len(t, active, 1)
	opener := active[0]
	assert.Equal(t, "p4", opener.Participant1.ID)
	assert.Equal(t, "p5", opener.Participant2.ID)

	t.Run("rejects unknown match", func(t *testing.T) {
		assert.ErrorIs(t, e.AdvanceWinner(b, "nope", "p4", ""), ErrMatchNotFound)
	})

	t.Run("rejects bye matches", func(t *testing.T) {
		bye := se.Rounds[0].Matches[0]
		require.True(t, bye.IsBye)
		assert.ErrorIs(t, e.AdvanceWinner(b, bye.ID, "p1", ""), ErrByeMatch)
	})

	t.Run("rejects matches missing a participant", func(t *testing.T) {
		semi := se.Rounds[1].Matches[0]
		require.Nil(t, semi.Participant2)
		assert.ErrorIs(t, e.AdvanceWinner(b, semi.ID, "p1", ""), ErrMatchNotReady)
	})

	t.Run("rejects a winner that is not playing", func(t *testing.T) {
		assert.ErrorIs(t, e.AdvanceWinner(b, opener.ID, "p1", ""), ErrWinnerNotInMatch)
	})

	t.Run("records result and feeds the next round", func(t *testing.T) {
		require.NoError(t, e.AdvanceWinner(b, opener.ID, "p4", "2-1"))
		assert.Equal(t, "p4", opener.Winner.ID)
		assert.Equal(t, "p5", opener.Loser.ID)
		assert.Equal(t, "2-1", opener.Score)

		semi := se.Rounds[1].Matches[0]
		require.NotNil(t, semi.Participant2)
		assert.Equal(t, "p4", semi.Participant2.ID)
		assert.Equal(t, 2, se.CurrentRound)
	})

	t.Run("decided matches are write-once", func(t *testing.T) {
		assert.ErrorIs(t, e.AdvanceWinner(b, opener.ID, "p5", ""), ErrMatchAlreadyDecided)
		assert.Equal(t, "p4", opener.Winner.ID, "winner unchanged after rejected report")
	})
}

func TestSingleEliminationPlaythrough(t *testing.T) {
	e := NewSingleEliminationEngine()
	b, err := e.GenerateBracket(seededParticipants(5), models.Settings{})
	require.NoError(t, err)

	_, err = e.GetResults(b)
	assert.ErrorIs(t, err, ErrBracketIncomplete)

	// Favorites win every match: p4 beats p5, then seeds hold.
	playOut(t, e, b, nil)
	require.True(t, e.IsComplete(b))
	assert.Empty(t, e.GetActiveMatches(b))

	results, err := e.GetResults(b)
	require.NoError(t, err)
	assert.Equal(t, "p1", results.Winner.ID)
	assert.Equal(t, "p2", results.RunnerUp.ID)
	// Third place is the loser of the semifinal the champion won.
	require.NotNil(t, results.ThirdPlace)
	assert.Equal(t, "p4", results.ThirdPlace.ID)

	assert.Nil(t, e.GetStandings(b), "elimination brackets carry no standings")
}

func TestSingleEliminationTwoParticipants(t *testing.T) {
	e := NewSingleEliminationEngine()
	b, err := e.GenerateBracket(seededParticipants(2), models.Settings{})
	require.NoError(t, err)
	se := b.SingleElim

	require.Len(t, se.Rounds, 1)
	final := se.Rounds[0].Matches[0]
	assert.Equal(t, "Final", final.RoundName)
	assert.Empty(t, final.NextMatchID)

	require.NoError(t, e.AdvanceWinner(b, final.ID, "p2", ""))
	assert.True(t, e.IsComplete(b))

	results, err := e.GetResults(b)
	require.NoError(t, err)
	assert.Equal(t, "p2", results.Winner.ID)
	assert.Equal(t, "p1", results.RunnerUp.ID)
	assert.Nil(t, results.ThirdPlace)
}

func TestSingleEliminationUnseededStillFillsBracket(t *testing.T) {
	e := NewSingleEliminationEngine()
	b, err := e.GenerateBracket(unseededParticipants(6), models.Settings{})
	require.NoError(t, err)

	se := b.SingleElim
	assert.Equal(t, 8, se.BracketSize)

	placed := map[string]int{}
	for _, m := range se.Rounds[0].Matches {
		for _, p := range []*models.Participant{m.Participant1, m.Participant2} {
			if p != nil {
				placed[p.ID]++
			}
		}
	}
	assert.Len(t, placed, 6, "every participant placed exactly once")
	for id, count := range placed {
		assert.Equal(t, 1, count, "participant %s placed once", id)
	}

	playOut(t, e, b, nil)
	assert.True(t, e.IsComplete(b))
}
