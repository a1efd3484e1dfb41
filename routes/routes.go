package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"bracket-engine/handlers"
)

func SetupRoutes(router *chi.Mux, tournamentHandler *handlers.TournamentHandler) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/tournaments", func(r chi.Router) {
		r.Post("/", tournamentHandler.Create)
		r.Get("/", tournamentHandler.List)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", tournamentHandler.Get)
			r.Delete("/", tournamentHandler.Delete)

			r.Post("/matches/{matchID}/winner", tournamentHandler.AdvanceWinner)
			r.Post("/groups/{groupID}/games/{gameNumber}/results", tournamentHandler.ReportGameResults)
			r.Post("/rounds/next", tournamentHandler.NextRound)

			r.Get("/matches/active", tournamentHandler.ActiveMatches)
			r.Get("/standings", tournamentHandler.Standings)
			r.Get("/results", tournamentHandler.Results)
		})
	})
}
