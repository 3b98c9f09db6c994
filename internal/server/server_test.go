package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quizline/hotseat/internal/database"
	"github.com/quizline/hotseat/internal/hotseat"
	"github.com/quizline/hotseat/internal/migrations"
)

// setupServer builds a full router over a fresh in-memory database seeded
// with the demo admin and question bank.
func setupServer(t *testing.T) (*chi.Mux, *SQLiteStore) {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	store := NewSQLiteStore(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := SeedDemo(ctx, logger, store); err != nil {
		t.Fatalf("seeding demo data: %v", err)
	}

	engine := hotseat.NewEngine(store, rand.New(rand.NewPCG(7, 13)), 35*time.Minute)

	r := chi.NewRouter()
	addRoutes(r, logger, store, engine, db)
	return r, store
}

// doRequest fires one JSON request at the router. A nil body sends no body;
// an empty token sends no Authorization header.
func doRequest(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return v
}

func registerPlayer(t *testing.T, r http.Handler, name, email string) AuthResponse {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/register", "", RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "secret123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	return decodeJSON[AuthResponse](t, w)
}

func loginAdmin(t *testing.T, r http.Handler) AuthResponse {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/login", "", LoginRequest{
		Email:    demoAdminEmail,
		Password: demoAdminPassword,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("admin login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	return decodeJSON[AuthResponse](t, w)
}

// correctLetter peeks at the player's active game to find the letter that
// answers the current question.
func correctLetter(t *testing.T, store *SQLiteStore, playerID string) hotseat.Letter {
	t.Helper()
	g, err := store.ActiveGameFor(context.Background(), playerID)
	if err != nil {
		t.Fatalf("loading active game: %v", err)
	}
	return g.CurrentQuestion().CorrectLetterKey()
}

func wrongLetterFor(t *testing.T, store *SQLiteStore, playerID string) hotseat.Letter {
	t.Helper()
	correct := correctLetter(t, store, playerID)
	for _, l := range hotseat.Letters {
		if l != correct {
			return l
		}
	}
	t.Fatal("no wrong letter found")
	return ""
}
