package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bracket-engine/handlers"
	"bracket-engine/models"
	"bracket-engine/routes"
	"bracket-engine/services"
)

func newTestRouter() *chi.Mux {
	svc := services.NewTournamentService(slog.New(slog.NewTextHandler(io.Discard, nil)))
	router := chi.NewRouter()
	routes.SetupRoutes(router, handlers.NewTournamentHandler(svc))
	return router
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func createBody(format models.BracketType, teams int) map[string]interface{} {
	roster := make([]*models.Participant, teams)
	for i := range roster {
		roster[i] = &models.Participant{
			ID:   fmt.Sprintf("t%d", i+1),
			Name: fmt.Sprintf("Team %d", i+1),
			Seed: i + 1,
		}
	}
	return map[string]interface{}{
		"name":         "Spring Cup",
		"participants": roster,
		"settings":     models.Settings{Format: format},
	}
}

type tournamentEnvelope struct {
	Tournament *services.Tournament `json:"tournament"`
	Complete   bool                 `json:"complete"`
}

func TestCreateTournamentEndpoint(t *testing.T) {
	router := newTestRouter()

	t.Run("creates and returns the bracket", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/tournaments", createBody(models.BracketSingleElimination, 4))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var env tournamentEnvelope
		decodeBody(t, rec, &env)
		require.NotNil(t, env.Tournament)
		assert.NotEmpty(t, env.Tournament.ID)
		require.NotNil(t, env.Tournament.Bracket)
		assert.Equal(t, models.BracketSingleElimination, env.Tournament.Bracket.Type)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/tournaments", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		body := []byte(`{"name":"x","sponsor":"acme"}`)
		req := httptest.NewRequest(http.MethodPost, "/tournaments", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a missing name", func(t *testing.T) {
		body := createBody(models.BracketSingleElimination, 4)
		body["name"] = ""
		rec := doJSON(t, router, http.MethodPost, "/tournaments", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects too few participants", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/tournaments", createBody(models.BracketRoundRobin, 1))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTournamentLifecycleEndpoints(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/tournaments", createBody(models.BracketSingleElimination, 4))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created tournamentEnvelope
	decodeBody(t, rec, &created)
	id := created.Tournament.ID

	t.Run("get returns the tournament with a completion flag", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/tournaments/"+id, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var env tournamentEnvelope
		decodeBody(t, rec, &env)
		assert.Equal(t, id, env.Tournament.ID)
		assert.False(t, env.Complete)
	})

	t.Run("get unknown id is 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/tournaments/ghost", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("list includes the tournament", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/tournaments", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var env struct {
			Tournaments []*services.Tournament `json:"tournaments"`
		}
		decodeBody(t, rec, &env)
		require.Len(t, env.Tournaments, 1)
		assert.Equal(t, id, env.Tournaments[0].ID)
	})

	t.Run("winner reporting walks the bracket to completion", func(t *testing.T) {
		for {
			rec := doJSON(t, router, http.MethodGet, "/tournaments/"+id+"/matches/active", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			var env struct {
				Matches []*models.Match `json:"matches"`
			}
			decodeBody(t, rec, &env)
			if len(env.Matches) == 0 {
				break
			}
			for _, m := range env.Matches {
				body := map[string]interface{}{"winner_id": m.Participant1.ID, "score": "2-0"}
				rec := doJSON(t, router, http.MethodPost, "/tournaments/"+id+"/matches/"+m.ID+"/winner", body)
				require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			}
		}

		rec := doJSON(t, router, http.MethodGet, "/tournaments/"+id, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var env tournamentEnvelope
		decodeBody(t, rec, &env)
		assert.True(t, env.Complete)
	})

	t.Run("duplicate report is a conflict", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/tournaments/"+id, nil)
		var env tournamentEnvelope
		decodeBody(t, rec, &env)
		final := env.Tournament.Bracket.SingleElim.Rounds[0].Matches[0]

		body := map[string]interface{}{"winner_id": final.Winner.ID}
		rec = doJSON(t, router, http.MethodPost, "/tournaments/"+id+"/matches/"+final.ID+"/winner", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("results are available once complete", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/tournaments/"+id+"/results", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var env struct {
			Results *models.Results `json:"results"`
		}
		decodeBody(t, rec, &env)
		require.NotNil(t, env.Results)
		assert.Equal(t, "t1", env.Results.Winner.ID)
	})

	t.Run("delete removes the tournament", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/tournaments/"+id, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		rec = doJSON(t, router, http.MethodGet, "/tournaments/"+id, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSwissRoundEndpoint(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/tournaments", createBody(models.BracketSwiss, 4))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created tournamentEnvelope
	decodeBody(t, rec, &created)
	id := created.Tournament.ID

	t.Run("next round before the current one is decided is a conflict", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/tournaments/"+id+"/rounds/next", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("next round after a full round succeeds", func(t *testing.T) {
		for _, m := range created.Tournament.Bracket.Swiss.Rounds[0].Matches {
			body := map[string]interface{}{"winner_id": m.Participant1.ID}
			rec := doJSON(t, router, http.MethodPost, "/tournaments/"+id+"/matches/"+m.ID+"/winner", body)
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := doJSON(t, router, http.MethodPost, "/tournaments/"+id+"/rounds/next", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var env tournamentEnvelope
		decodeBody(t, rec, &env)
		assert.Equal(t, 2, env.Tournament.Bracket.Swiss.CurrentRound)
	})

	t.Run("standings are exposed", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/tournaments/"+id+"/standings", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var env struct {
			Standings []*models.Standing `json:"standings"`
		}
		decodeBody(t, rec, &env)
		require.Len(t, env.Standings, 4)
		assert.Equal(t, 1, env.Standings[0].Points)
	})
}

func TestBattleRoyaleEndpoints(t *testing.T) {
	router := newTestRouter()

	body := createBody(models.BracketBattleRoyale, 4)
	body["settings"] = models.Settings{
		Format:            models.BracketBattleRoyale,
		LobbySize:         4,
		GamesPerStage:     1,
		AdvancingPerGroup: 2,
	}
	rec := doJSON(t, router, http.MethodPost, "/tournaments", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created tournamentEnvelope
	decodeBody(t, rec, &created)
	id := created.Tournament.ID

	t.Run("active endpoint lists games", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/tournaments/"+id+"/matches/active", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var env struct {
			Games []models.ActiveGame `json:"games"`
		}
		decodeBody(t, rec, &env)
		require.Len(t, env.Games, 1)
	})

	t.Run("placement reporting", func(t *testing.T) {
		group := created.Tournament.Bracket.BattleRoyale.Groups[0]
		placements := make([]string, len(group.Teams))
		for i, p := range group.Teams {
			placements[i] = p.ID
		}

		path := fmt.Sprintf("/tournaments/%s/groups/%s/games/1/results", id, group.ID)
		rec := doJSON(t, router, http.MethodPost, path, map[string]interface{}{"placements": placements})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = doJSON(t, router, http.MethodPost, path, map[string]interface{}{"placements": placements})
		assert.Equal(t, http.StatusConflict, rec.Code)

		badPath := fmt.Sprintf("/tournaments/%s/groups/%s/games/nope/results", id, group.ID)
		rec = doJSON(t, router, http.MethodPost, badPath, map[string]interface{}{"placements": placements})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("match winner reporting is rejected for battle royale", func(t *testing.T) {
		body := map[string]interface{}{"winner_id": "t1"}
		rec := doJSON(t, router, http.MethodPost, "/tournaments/"+id+"/matches/any/winner", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
