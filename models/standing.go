package models

// Standing is one participant's running record. Each format fills its
// own subset of fields: Swiss uses wins/losses/points/buchholz/
// opponents, round robin uses wins/losses/matches played/head-to-head,
// battle royale uses points/games played/placements plus the
// qualification tags set when a team advances to finals.
type Standing struct {
	Participant *Participant `json:"participant"`

	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Points int `json:"points"`

	Buchholz  int      `json:"buchholz,omitempty"`
	Opponents []string `json:"opponents,omitempty"`

	MatchesPlayed int               `json:"matches_played,omitempty"`
	HeadToHead    map[string]string `json:"head_to_head,omitempty"`

	GamesPlayed   int    `json:"games_played,omitempty"`
	Placements    []int  `json:"placements,omitempty"`
	QualifiedFrom string `json:"qualified_from,omitempty"`
	GroupPoints   int    `json:"group_points,omitempty"`
}

// BestPlacement returns the best (lowest) single placement recorded,
// or 0 when no game has been played yet.
func (s *Standing) BestPlacement() int {
	best := 0
	for _, p := range s.Placements {
		if best == 0 || p < best {
			best = p
		}
	}
	return best
}

// HasFaced reports whether the participant already played the given
// opponent.
func (s *Standing) HasFaced(opponentID string) bool {
	for _, id := range s.Opponents {
		if id == opponentID {
			return true
		}
	}
	return false
}

// Results is the final outcome of a completed bracket.
type Results struct {
	Winner     *Participant `json:"winner"`
	RunnerUp   *Participant `json:"runner_up"`
	ThirdPlace *Participant `json:"third_place"`
	Standings  []*Standing  `json:"standings,omitempty"`
}
