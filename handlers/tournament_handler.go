package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bracket-engine/models"
	"bracket-engine/services"
)

type TournamentHandler struct {
	service *services.TournamentService
}

func NewTournamentHandler(service *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{service: service}
}

type createTournamentRequest struct {
	Name         string                `json:"name"`
	Participants []*models.Participant `json:"participants"`
	Settings     models.Settings       `json:"settings"`
}

func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	t, err := h.service.Create(req.Name, req.Participants, req.Settings)
	if err != nil {
		mapEngineErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, jsonResponse{"tournament": t})
}

func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, jsonResponse{"tournaments": h.service.List()})
}

func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		mapEngineErrorToHTTP(w, err)
		return
	}
	complete, err := h.service.IsComplete(t.ID)
	if err != nil {
		mapEngineErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"tournament": t, "complete": complete})
}

func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(chi.URLParam(r, "id")); err != nil {
		mapEngineErrorToHTTP(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type advanceWinnerRequest struct {
	WinnerID string `json:"winner_id"`
	Score    string `json:"score,omitempty"`
}

func (h *TournamentHandler) AdvanceWinner(w http.ResponseWriter, r *http.Request) {
	var req advanceWinnerRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	matchID := chi.URLParam(r, "matchID")
	if err := h.service.AdvanceWinner(id, matchID, req.WinnerID, req.Score); err != nil {
		mapEngineErrorToHTTP(w, err)
		return
	}
	t, err := h.service.Get(id)
	if err != nil {
		mapEngineErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"tournament": t})
}

type reportGameRequest struct {
	Placements []string `json:"placements"`
}

func (h *TournamentHandler) ReportGameResults(w http.ResponseWriter, r *http.Request) {
	var req reportGameRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err)
		return
	}

	gameNumber, err := strconv.Atoi(chi.URLParam(r, "gameNumber"))
	if err != nil {
		badRequestResponse(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	groupID := chi.URLParam(r, "groupID")
	if err := h.service.ReportGameResults(id, groupID, gameNumber, req.Placements); err != nil {
		mapEngineErrorToHTTP(w, err)
		return
	}
	t, err := h.service.Get(id)
	if err != nil {
		mapEngineErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"tournament": t})
}

func (h *TournamentHandler) NextRound(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.NextSwissRound(id); err != nil {
		mapEngineErrorToHTTP(w, err)
		return
	}
	t, err := h.service.Get(id)
	if err != nil {
		mapEngineErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"tournament": t})
}

func (h *TournamentHandler) ActiveMatches(w http.ResponseWriter, r *http.Request) {
	matches, games, err := h.service.ActiveMatches(chi.URLParam(r, "id"))
	if err != nil {
		mapEngineErrorToHTTP(w, err)
		return
	}
	if games != nil {
		writeJSON(w, http.StatusOK, jsonResponse{"games": games})
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"matches": matches})
}

func (h *TournamentHandler) Standings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.service.Standings(chi.URLParam(r, "id"))
	if err != nil {
		mapEngineErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"standings": standings})
}

func (h *TournamentHandler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Results(chi.URLParam(r, "id"))
	if err != nil {
		mapEngineErrorToHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jsonResponse{"results": results})
}
