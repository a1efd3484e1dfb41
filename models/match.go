package models

type RoundStatus string

const (
	RoundPending  RoundStatus = "pending"
	RoundActive   RoundStatus = "active"
	RoundComplete RoundStatus = "complete"
)

// BracketSide identifies which sub-bracket a double-elimination match
// belongs to. Empty for every other format.
type BracketSide string

const (
	SideWinners     BracketSide = "winners"
	SideLosers      BracketSide = "losers"
	SideGrandFinals BracketSide = "grand_finals"
)

// Match is the atomic unit of every format except battle royale.
// All cross-match links are stored as ids, never as object references,
// so a bracket survives JSON round-trips intact. The link graph is
// fixed at generation time; only participant slots, winner, loser and
// score are written afterwards.
type Match struct {
	ID          string `json:"id"`
	MatchNumber int    `json:"match_number"`
	Round       int    `json:"round"`
	RoundName   string `json:"round_name"`

	Participant1 *Participant `json:"participant1"`
	Participant2 *Participant `json:"participant2"`

	Winner *Participant `json:"winner"`
	Loser  *Participant `json:"loser"`
	Score  string       `json:"score,omitempty"`

	IsBye bool `json:"is_bye"`

	// Elimination links. NextMatchID receives the winner; in double
	// elimination NextLoseMatchID receives the loser of a winners
	// match. NextSlot / NextLoseSlot name the slot (1 or 2).
	NextMatchID     string `json:"next_match_id,omitempty"`
	NextSlot        int    `json:"next_slot,omitempty"`
	NextLoseMatchID string `json:"next_lose_match_id,omitempty"`
	NextLoseSlot    int    `json:"next_lose_slot,omitempty"`

	SourceMatch1ID string `json:"source_match_1_id,omitempty"`
	SourceMatch2ID string `json:"source_match_2_id,omitempty"`

	Bracket BracketSide `json:"bracket,omitempty"`

	// A closed slot will never receive a participant because the match
	// that feeds it was a bye and produced no loser. A losers-bracket
	// match with one closed slot resolves as a bye once the live slot
	// fills; with both slots closed the match is dead and closes its
	// own downstream slot.
	Slot1Closed bool `json:"slot1_closed,omitempty"`
	Slot2Closed bool `json:"slot2_closed,omitempty"`
}

// Decided reports whether the match has a recorded winner. Byes are
// decided at generation time.
func (m *Match) Decided() bool {
	return m.Winner != nil
}

// Playable reports whether the match can currently accept a result:
// both slots occupied, no winner yet, and not a bye.
func (m *Match) Playable() bool {
	return !m.IsBye && m.Winner == nil && m.Participant1 != nil && m.Participant2 != nil
}

// HasParticipant reports whether the given id occupies one of the two
// slots. Comparison is by ID only, so deserialized copies behave the
// same as the originals.
func (m *Match) HasParticipant(id string) bool {
	if m.Participant1 != nil && m.Participant1.ID == id {
		return true
	}
	return m.Participant2 != nil && m.Participant2.ID == id
}

// Opponent returns the other slot's occupant, or nil.
func (m *Match) Opponent(id string) *Participant {
	if m.Participant1 != nil && m.Participant1.ID == id {
		return m.Participant2
	}
	if m.Participant2 != nil && m.Participant2.ID == id {
		return m.Participant1
	}
	return nil
}

// Round is an ordered group of matches sharing a round number. Status
// gates progress for the formats that advance round-by-round.
type Round struct {
	Number  int         `json:"number"`
	Name    string      `json:"name"`
	Status  RoundStatus `json:"status"`
	Matches []*Match    `json:"matches"`
}

// Complete reports whether every match in the round is decided or a
// dead bye (a losers-bracket match with both slots closed never gets a
// winner and must not block completion).
func (r *Round) Complete() bool {
	for _, m := range r.Matches {
		if m.Winner == nil && !(m.Slot1Closed && m.Slot2Closed) {
			return false
		}
	}
	return true
}
