package models

type BracketType string

const (
	BracketSingleElimination BracketType = "single_elimination"
	BracketDoubleElimination BracketType = "double_elimination"
	BracketSwiss             BracketType = "swiss"
	BracketRoundRobin        BracketType = "round_robin"
	BracketBattleRoyale      BracketType = "battle_royale"
)

// Bracket is the root structure returned by bracket generation,
// discriminated by Type. Exactly one of the variant payloads is
// non-nil.
type Bracket struct {
	Type BracketType `json:"type"`

	SingleElim   *SingleElimBracket   `json:"single_elimination,omitempty"`
	DoubleElim   *DoubleElimBracket   `json:"double_elimination,omitempty"`
	Swiss        *SwissBracket        `json:"swiss,omitempty"`
	RoundRobin   *RoundRobinBracket   `json:"round_robin,omitempty"`
	BattleRoyale *BattleRoyaleBracket `json:"battle_royale,omitempty"`
}

type SingleElimBracket struct {
	BracketSize  int      `json:"bracket_size"`
	TotalRounds  int      `json:"total_rounds"`
	CurrentRound int      `json:"current_round"`
	Rounds       []*Round `json:"rounds"`
}

type DoubleElimBracket struct {
	BracketSize int `json:"bracket_size"`

	WinnersRounds []*Round `json:"winners_rounds"`
	LosersRounds  []*Round `json:"losers_rounds"`

	// Two rounds: the grand final and the bracket reset. The reset
	// only becomes live when the losers-bracket champion takes the
	// first grand final.
	GrandFinalsRounds []*Round `json:"grand_finals_rounds"`

	NeedsReset bool `json:"needs_reset"`
	WBComplete bool `json:"wb_complete"`
	LBComplete bool `json:"lb_complete"`

	// WinnersChampion is recorded when the winners final is decided;
	// the first grand final compares its winner against this.
	WinnersChampion *Participant `json:"winners_champion,omitempty"`
}

type SwissBracket struct {
	TotalRounds  int         `json:"total_rounds"`
	CurrentRound int         `json:"current_round"`
	Rounds       []*Round    `json:"rounds"`
	Standings    []*Standing `json:"standings"`
}

type RoundRobinBracket struct {
	TotalRounds  int         `json:"total_rounds"`
	TotalMatches int         `json:"total_matches"`
	CurrentRound int         `json:"current_round"`
	Rounds       []*Round    `json:"rounds"`
	Standings    []*Standing `json:"standings"`
}

type BattleRoyaleStage string

const (
	StageGroups   BattleRoyaleStage = "groups"
	StageFinals   BattleRoyaleStage = "finals"
	StageComplete BattleRoyaleStage = "complete"
)

type BattleRoyaleBracket struct {
	LobbySize         int `json:"lobby_size"`
	GamesPerStage     int `json:"games_per_stage"`
	AdvancingPerGroup int `json:"advancing_per_group"`
	TotalAdvancing    int `json:"total_advancing"`

	CurrentStage BattleRoyaleStage `json:"current_stage"`

	Groups []*Group `json:"groups"`
	Finals *Group   `json:"finals"`
}
