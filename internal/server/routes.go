package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/quizline/hotseat/internal/hotseat"
)

func addRoutes(r chi.Router, logger *slog.Logger, store Store, engine *hotseat.Engine, db *sql.DB) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Hotseat API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	r.Post("/api/register", handleRegister(store))
	r.Post("/api/login", handleLogin(store))

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(store))

		r.Post("/api/logout", handleLogout(store))
		r.Get("/api/me", handleMe(store))
		r.Get("/api/players", handlePlayers(store))

		r.Post("/api/games", handleGameStart(logger, engine))
		r.Get("/api/games/current", handleCurrentGame(engine))
		r.Get("/api/games/{gameID}", handleGameShow(engine))
		r.Post("/api/games/{gameID}/answer", handleAnswer(engine))
		r.Post("/api/games/{gameID}/cashout", handleCashOut(engine))
		r.Post("/api/games/{gameID}/help", handleHelp(engine))

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/api/admin/questions/import", handleImportQuestions(store))
		})
	})
}
