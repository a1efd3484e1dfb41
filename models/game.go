package models

type GameStatus string

const (
	GamePending  GameStatus = "pending"
	GameComplete GameStatus = "complete"
)

// GameResult is one team's finish in a single battle-royale game.
type GameResult struct {
	Team      *Participant `json:"team"`
	Placement int          `json:"placement"`
	Points    int          `json:"points"`
}

// Game is one placement-scored battle-royale game inside a group or
// the finals lobby.
type Game struct {
	GameNumber int          `json:"game_number"`
	Status     GameStatus   `json:"status"`
	Results    []GameResult `json:"results"`
}

// Group is a fixed-size lobby of teams playing GamesPerStage games
// together. The finals lobby reuses the same structure.
type Group struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Teams     []*Participant `json:"teams"`
	Games     []*Game        `json:"games"`
	Standings []*Standing    `json:"standings"`
}

// Complete reports whether every game in the group has been scored.
func (g *Group) Complete() bool {
	for _, game := range g.Games {
		if game.Status != GameComplete {
			return false
		}
	}
	return true
}

// FindGame returns the game with the given number, or nil.
func (g *Group) FindGame(number int) *Game {
	for _, game := range g.Games {
		if game.GameNumber == number {
			return game
		}
	}
	return nil
}

// ActiveGame describes a currently playable battle-royale game.
type ActiveGame struct {
	GroupID    string `json:"group_id"`
	GroupName  string `json:"group_name"`
	GameNumber int    `json:"game_number"`
}
