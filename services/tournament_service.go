package services

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"bracket-engine/brackets"
	"bracket-engine/models"
)

// Tournament pairs a generated bracket with the roster and settings it
// was generated from. The mutex serializes result reports: the engines
// are pure and assume at most one mutation is in flight per bracket.
type Tournament struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Format       models.BracketType    `json:"format"`
	Settings     models.Settings       `json:"settings"`
	Participants []*models.Participant `json:"participants"`
	Bracket      *models.Bracket       `json:"bracket"`
	CreatedAt    time.Time             `json:"created_at"`

	mu sync.Mutex
}

// TournamentService owns the in-process tournament registry and
// dispatches every operation to the engine matching the bracket's type
// discriminator. Persistence is deliberately absent: callers own
// storage, this registry only covers the process lifetime.
type TournamentService struct {
	mu          sync.RWMutex
	tournaments map[string]*Tournament
	logger      *slog.Logger
}

func NewTournamentService(logger *slog.Logger) *TournamentService {
	return &TournamentService{
		tournaments: make(map[string]*Tournament),
		logger:      logger,
	}
}

func (s *TournamentService) Create(name string, participants []*models.Participant, settings models.Settings) (*Tournament, error) {
	if name == "" {
		return nil, ErrTournamentNameRequired
	}
	if settings.Format == "" {
		return nil, ErrFormatRequired
	}

	engine, err := brackets.ForType(settings.Format)
	if err != nil {
		return nil, err
	}
	bracket, err := engine.GenerateBracket(participants, settings)
	if err != nil {
		return nil, err
	}

	t := &Tournament{
		ID:           uuid.New().String(),
		Name:         name,
		Format:       settings.Format,
		Settings:     settings,
		Participants: participants,
		Bracket:      bracket,
		CreatedAt:    time.Now().UTC(),
	}

	s.mu.Lock()
	s.tournaments[t.ID] = t
	s.mu.Unlock()

	s.logger.Info("bracket generated",
		slog.String("tournament_id", t.ID),
		slog.String("format", string(t.Format)),
		slog.Int("participants", len(participants)))
	return t, nil
}

func (s *TournamentService) Get(id string) (*Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tournaments[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	return t, nil
}

func (s *TournamentService) List() []*Tournament {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*Tournament, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all
}

func (s *TournamentService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tournaments[id]; !ok {
		return ErrTournamentNotFound
	}
	delete(s.tournaments, id)
	return nil
}

// AdvanceWinner reports a match winner. The per-tournament lock makes
// duplicate or racing reports fail fast with a state-conflict error
// instead of corrupting standings.
func (s *TournamentService) AdvanceWinner(id, matchID, winnerID, score string) error {
	t, err := s.Get(id)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	engine, err := brackets.ForType(t.Bracket.Type)
	if err != nil {
		return err
	}
	if err := engine.AdvanceWinner(t.Bracket, matchID, winnerID, score); err != nil {
		return err
	}
	if engine.IsComplete(t.Bracket) {
		s.logger.Info("tournament complete",
			slog.String("tournament_id", t.ID),
			slog.String("format", string(t.Format)))
	}
	return nil
}

// ReportGameResults records a battle-royale placement order for one
// game of one lobby.
func (s *TournamentService) ReportGameResults(id, groupID string, gameNumber int, placements []string) error {
	t, err := s.Get(id)
	if err != nil {
		return err
	}
	if t.Bracket.Type != models.BracketBattleRoyale {
		return ErrNotABattleRoyaleBracket
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	engine := brackets.NewBattleRoyaleEngine()
	if err := engine.ReportGameResults(t.Bracket, groupID, gameNumber, placements); err != nil {
		return err
	}
	if engine.IsComplete(t.Bracket) {
		s.logger.Info("tournament complete",
			slog.String("tournament_id", t.ID),
			slog.String("format", string(t.Format)))
	}
	return nil
}

// NextSwissRound pairs the next swiss round once the current one is
// fully decided.
func (s *TournamentService) NextSwissRound(id string) error {
	t, err := s.Get(id)
	if err != nil {
		return err
	}
	if t.Bracket.Type != models.BracketSwiss {
		return ErrNotASwissBracket
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return brackets.NewSwissEngine().GenerateNextRound(t.Bracket)
}

// ActiveMatches lists what is currently playable: matches for the
// match-based formats, games for battle royale.
func (s *TournamentService) ActiveMatches(id string) ([]*models.Match, []models.ActiveGame, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Bracket.Type == models.BracketBattleRoyale {
		return nil, brackets.NewBattleRoyaleEngine().ActiveGames(t.Bracket), nil
	}
	engine, err := brackets.ForType(t.Bracket.Type)
	if err != nil {
		return nil, nil, err
	}
	return engine.GetActiveMatches(t.Bracket), nil, nil
}

func (s *TournamentService) Standings(id string) ([]*models.Standing, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	engine, err := brackets.ForType(t.Bracket.Type)
	if err != nil {
		return nil, err
	}
	return engine.GetStandings(t.Bracket), nil
}

func (s *TournamentService) Results(id string) (*models.Results, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	engine, err := brackets.ForType(t.Bracket.Type)
	if err != nil {
		return nil, err
	}
	return engine.GetResults(t.Bracket)
}

func (s *TournamentService) IsComplete(id string) (bool, error) {
	t, err := s.Get(id)
	if err != nil {
		return false, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	engine, err := brackets.ForType(t.Bracket.Type)
	if err != nil {
		return false, err
	}
	return engine.IsComplete(t.Bracket), nil
}
