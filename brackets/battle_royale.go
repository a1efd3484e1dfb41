package brackets

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"bracket-engine/models"
)

const (
	defaultLobbySize         = 20
	defaultGamesPerStage     = 3
	defaultAdvancingPerGroup = 2
)

// BattleRoyaleEngine partitions the field into fixed-size lobbies, runs
// a fixed number of placement-scored games per lobby, advances the top
// finishers of every group into a single finals lobby and crowns the
// champion there. Results arrive per game as a full placement order, so
// the match-centric AdvanceWinner path does not apply.
type BattleRoyaleEngine struct{}

func NewBattleRoyaleEngine() *BattleRoyaleEngine {
	return &BattleRoyaleEngine{}
}

func (e *BattleRoyaleEngine) Type() models.BracketType {
	return models.BracketBattleRoyale
}

func (e *BattleRoyaleEngine) data(b *models.Bracket) *models.BattleRoyaleBracket {
	if b == nil || b.Type != models.BracketBattleRoyale {
		return nil
	}
	return b.BattleRoyale
}

func (e *BattleRoyaleEngine) GenerateBracket(participants []*models.Participant, settings models.Settings) (*models.Bracket, error) {
	if len(participants) < 2 {
		return nil, ErrNotEnoughParticipants
	}

	lobbySize := settings.LobbySize
	if lobbySize == 0 {
		lobbySize = defaultLobbySize
	}
	if lobbySize < 2 {
		return nil, ErrInvalidLobbySize
	}
	gamesPerStage := settings.GamesPerStage
	if gamesPerStage <= 0 {
		gamesPerStage = defaultGamesPerStage
	}
	advancing := settings.AdvancingPerGroup
	if advancing <= 0 {
		advancing = defaultAdvancingPerGroup
	}

	shuffled := make([]*models.Participant, len(participants))
	copy(shuffled, participants)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	br := &models.BattleRoyaleBracket{
		LobbySize:         lobbySize,
		GamesPerStage:     gamesPerStage,
		AdvancingPerGroup: advancing,
		CurrentStage:      models.StageGroups,
	}
	for start := 0; start < len(shuffled); start += lobbySize {
		end := start + lobbySize
		if end > len(shuffled) {
			end = len(shuffled) // last group may run short
		}
		teams := shuffled[start:end]
		group := &models.Group{
			ID:    uuid.New().String(),
			Name:  groupName(len(br.Groups)),
			Teams: teams,
			Games: emptyGames(gamesPerStage),
		}
		for _, t := range teams {
			group.Standings = append(group.Standings, &models.Standing{
				Participant: t,
				Placements:  []int{},
			})
		}
		br.Groups = append(br.Groups, group)
	}
	br.TotalAdvancing = advancing * len(br.Groups)

	return &models.Bracket{Type: models.BracketBattleRoyale, BattleRoyale: br}, nil
}

// ReportGameResults records a full placement order for one game.
// Placement p earns max(0, lobbySize-p+1) points. The operation is
// all-or-nothing: every validation runs before the first write.
func (e *BattleRoyaleEngine) ReportGameResults(b *models.Bracket, groupID string, gameNumber int, placements []string) error {
	br := e.data(b)
	if br == nil {
		return ErrWrongBracketType
	}
	if br.CurrentStage == models.StageComplete {
		return ErrStageComplete
	}

	group := e.findGroup(br, groupID)
	if group == nil {
		return ErrGroupNotFound
	}
	game := group.FindGame(gameNumber)
	if game == nil {
		return ErrGameNotFound
	}
	if game.Status == models.GameComplete {
		return ErrGameAlreadyComplete
	}
	if len(placements) != len(group.Teams) {
		return ErrInvalidPlacements
	}
	seen := make(map[string]bool, len(placements))
	for _, id := range placements {
		if seen[id] || findStanding(group.Standings, id) == nil {
			return ErrInvalidPlacements
		}
		seen[id] = true
	}

	for i, teamID := range placements {
		placement := i + 1
		points := br.LobbySize - placement + 1
		if points < 0 {
			points = 0
		}
		standing := findStanding(group.Standings, teamID)
		standing.Points += points
		standing.GamesPlayed++
		standing.Placements = append(standing.Placements, placement)
		game.Results = append(game.Results, models.GameResult{
			Team:      standing.Participant,
			Placement: placement,
			Points:    points,
		})
	}
	game.Status = models.GameComplete

	sortGroupStandings(group)

	switch br.CurrentStage {
	case models.StageGroups:
		if e.groupsComplete(br) {
			e.advanceToFinals(br)
		}
	case models.StageFinals:
		if br.Finals.Complete() {
			br.CurrentStage = models.StageComplete
		}
	}
	return nil
}

func (e *BattleRoyaleEngine) groupsComplete(br *models.BattleRoyaleBracket) bool {
	for _, g := range br.Groups {
		if !g.Complete() {
			return false
		}
	}
	return true
}

// advanceToFinals seats the top AdvancingPerGroup of every group in a
// fresh finals lobby with zeroed standings.
func (e *BattleRoyaleEngine) advanceToFinals(br *models.BattleRoyaleBracket) {
	finals := &models.Group{
		ID:    uuid.New().String(),
		Name:  "Finals",
		Games: emptyGames(br.GamesPerStage),
	}
	for _, g := range br.Groups {
		cutoff := br.AdvancingPerGroup
		if cutoff > len(g.Standings) {
			cutoff = len(g.Standings)
		}
		for _, s := range g.Standings[:cutoff] {
			finals.Teams = append(finals.Teams, s.Participant)
			finals.Standings = append(finals.Standings, &models.Standing{
				Participant:   s.Participant,
				Placements:    []int{},
				QualifiedFrom: g.Name,
				GroupPoints:   s.Points,
			})
		}
	}
	br.Finals = finals
	br.CurrentStage = models.StageFinals
}

func (e *BattleRoyaleEngine) findGroup(br *models.BattleRoyaleBracket, groupID string) *models.Group {
	if br.Finals != nil && br.Finals.ID == groupID {
		return br.Finals
	}
	for _, g := range br.Groups {
		if g.ID == groupID {
			return g
		}
	}
	return nil
}

// AdvanceWinner does not apply to battle royale; results arrive as
// per-game placement orders.
func (e *BattleRoyaleEngine) AdvanceWinner(b *models.Bracket, matchID, winnerID, score string) error {
	if e.data(b) == nil {
		return ErrWrongBracketType
	}
	return ErrPerGameReporting
}

func (e *BattleRoyaleEngine) GetActiveMatches(b *models.Bracket) []*models.Match {
	return nil
}

// ActiveGames lists the games of the current stage still waiting for a
// placement report.
func (e *BattleRoyaleEngine) ActiveGames(b *models.Bracket) []models.ActiveGame {
	br := e.data(b)
	if br == nil {
		return nil
	}
	var groups []*models.Group
	switch br.CurrentStage {
	case models.StageGroups:
		groups = br.Groups
	case models.StageFinals:
		groups = []*models.Group{br.Finals}
	default:
		return nil
	}
	var active []models.ActiveGame
	for _, g := range groups {
		for _, game := range g.Games {
			if game.Status != models.GameComplete {
				active = append(active, models.ActiveGame{
					GroupID:    g.ID,
					GroupName:  g.Name,
					GameNumber: game.GameNumber,
				})
			}
		}
	}
	return active
}

func (e *BattleRoyaleEngine) IsComplete(b *models.Bracket) bool {
	br := e.data(b)
	return br != nil && br.CurrentStage == models.StageComplete
}

func (e *BattleRoyaleEngine) GetResults(b *models.Bracket) (*models.Results, error) {
	br := e.data(b)
	if br == nil {
		return nil, ErrWrongBracketType
	}
	if !e.IsComplete(b) {
		return nil, ErrBracketIncomplete
	}

	ranked := br.Finals.Standings
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

// GetStandings returns the finals standings once the finals exist,
// otherwise the group standings flattened in group order.
func (e *BattleRoyaleEngine) GetStandings(b *models.Bracket) []*models.Standing {
	br := e.data(b)
	if br == nil {
		return nil
	}
	if br.Finals != nil {
		return br.Finals.Standings
	}
	var all []*models.Standing
	for _, g := range br.Groups {
		all = append(all, g.Standings...)
	}
	return all
}

func (e *BattleRoyaleEngine) FindMatch(b *models.Bracket, matchID string) *models.Match {
	return nil
}

// sortGroupStandings orders by points, best single placement breaking
// ties.
func sortGroupStandings(g *models.Group) {
	sort.SliceStable(g.Standings, func(i, j int) bool {
		a, b := g.Standings[i], g.Standings[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		ba, bb := a.BestPlacement(), b.BestPlacement()
		if ba == 0 {
			return false
		}
		if bb == 0 {
			return true
		}
		return ba < bb
	})
}

func emptyGames(count int) []*models.Game {
	games := make([]*models.Game, count)
	for i := range games {
		games[i] = &models.Game{GameNumber: i + 1, Status: models.GamePending}
	}
	return games
}

func groupName(index int) string {
	if index < 26 {
		return "Group " + string(rune('A'+index))
	}
	return "Group " + strconv.Itoa(index+1)
}
