package server

import (
	"context"
	"time"

	"github.com/quizline/hotseat/internal/hotseat"
)

// Player is an account row. PasswordHash never leaves the store layer.
type Player struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Balance      int
	IsAdmin      bool
	CreatedAt    time.Time
}

// PlayerSummary is one leaderboard entry.
type PlayerSummary struct {
	Name         string `json:"name"`
	Balance      int    `json:"balance"`
	GamesPlayed  int    `json:"gamesPlayed"`
	AveragePrize int    `json:"averagePrize"`
}

// ImportReport summarizes one bulk question import.
type ImportReport struct {
	Processed int `json:"processed"`
	Created   int `json:"created"`
	Failed    int `json:"failed"`
}

// Store is everything the HTTP layer needs from persistence: the engine's
// collaborator contract plus accounts, sessions, the leaderboard, and the
// question import pipeline.
type Store interface {
	hotseat.Store

	CreatePlayer(ctx context.Context, name, email, passwordHash string) (Player, error)
	PlayerByEmail(ctx context.Context, email string) (Player, error)
	PlayerByID(ctx context.Context, id string) (Player, error)
	PlayerFromToken(ctx context.Context, token string) (Player, error)
	CreateSession(ctx context.Context, playerID string) (token string, err error)
	DeleteSession(ctx context.Context, token string) error

	ListPlayers(ctx context.Context) ([]PlayerSummary, error)
	ImportQuestions(ctx context.Context, level int, lines []string) (ImportReport, error)
}
