package models

// Settings carries the format-specific options recognized at bracket
// generation time. Zero values mean "use the format default".
type Settings struct {
	Format   BracketType `json:"format"`
	TeamSize int         `json:"team_size,omitempty"`
	BestOf   int         `json:"best_of,omitempty"`

	// Battle royale.
	LobbySize         int `json:"lobby_size,omitempty"`
	GamesPerStage     int `json:"games_per_stage,omitempty"`
	AdvancingPerGroup int `json:"advancing_per_group,omitempty"`

	// Swiss. Zero means ceil(log2(participants)).
	SwissRounds int `json:"swiss_rounds,omitempty"`

	SeedingEnabled bool `json:"seeding_enabled,omitempty"`
}
