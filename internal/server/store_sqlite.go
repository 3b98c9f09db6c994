package server

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quizline/hotseat/internal/hotseat"
)

// ErrEmailTaken is returned by CreatePlayer for an already-registered email.
var ErrEmailTaken = errors.New("email already registered")

// SQLiteStore implements Store on a single SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func newToken() string {
	buf := make([]byte, 32)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

// --- Question bank ---

func (s *SQLiteStore) RandomQuestion(ctx context.Context, level int) (hotseat.Question, error) {
	var q hotseat.Question
	err := s.db.QueryRowContext(ctx, `
		SELECT id, level, text, answer1, answer2, answer3, answer4
		FROM questions
		WHERE level = ?
		ORDER BY RANDOM()
		LIMIT 1
	`, level).Scan(&q.ID, &q.Level, &q.Text, &q.Answers[0], &q.Answers[1], &q.Answers[2], &q.Answers[3])
	if errors.Is(err, sql.ErrNoRows) {
		return q, hotseat.ErrNotFound
	}
	return q, err
}

func (s *SQLiteStore) ImportQuestions(ctx context.Context, level int, lines []string) (ImportReport, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportReport{}, err
	}
	defer tx.Rollback()

	var report ImportReport
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		report.Processed++

		fields := strings.Split(line, "|")
		if len(fields) < 5 {
			report.Failed++
			continue
		}
		for i := range fields[:5] {
			// Collapse runs of whitespace left over from the source file.
			fields[i] = strings.Join(strings.Fields(fields[i]), " ")
		}
		if fields[0] == "" || fields[1] == "" || fields[2] == "" || fields[3] == "" || fields[4] == "" {
			report.Failed++
			continue
		}

		result, err := tx.ExecContext(ctx, `
			INSERT INTO questions (id, level, text, answer1, answer2, answer3, answer4)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(text) DO NOTHING
		`, newID(), level, fields[0], fields[1], fields[2], fields[3], fields[4])
		if err != nil {
			return ImportReport{}, fmt.Errorf("inserting question: %w", err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			report.Failed++
		} else {
			report.Created++
		}
	}

	if err := tx.Commit(); err != nil {
		return ImportReport{}, err
	}
	return report, nil
}

// --- Games ---

func (s *SQLiteStore) ActiveGameFor(ctx context.Context, playerID string) (*hotseat.Game, error) {
	return s.loadGame(ctx, `player_id = ? AND finished_at IS NULL`, playerID)
}

func (s *SQLiteStore) GameForPlayer(ctx context.Context, gameID, playerID string) (*hotseat.Game, error) {
	return s.loadGame(ctx, `id = ? AND player_id = ?`, gameID, playerID)
}

func (s *SQLiteStore) loadGame(ctx context.Context, where string, args ...any) (*hotseat.Game, error) {
	g := &hotseat.Game{}
	var isFailed, ff, ah, fc int
	var createdAt string
	var finishedAt sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, player_id, current_level, prize, is_failed,
			fifty_fifty_used, audience_help_used, friend_call_used,
			created_at, finished_at
		FROM games
		WHERE `+where,
		args...,
	).Scan(&g.ID, &g.PlayerID, &g.CurrentLevel, &g.Prize, &isFailed,
		&ff, &ah, &fc, &createdAt, &finishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, hotseat.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	g.IsFailed = isFailed == 1
	g.FiftyFiftyUsed = ff == 1
	g.AudienceHelpUsed = ah == 1
	g.FriendCallUsed = fc == 1
	g.CreatedAt = parseTime(createdAt)
	if finishedAt.Valid {
		t := parseTime(finishedAt.String)
		g.FinishedAt = &t
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT gq.id, gq.question_id, gq.level, gq.a, gq.b, gq.c, gq.d, json(gq.help),
			q.text, q.answer1, q.answer2, q.answer3, q.answer4
		FROM game_questions gq
		JOIN questions q ON q.id = gq.question_id
		WHERE gq.game_id = ?
		ORDER BY gq.level
	`, g.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		gq := &hotseat.GameQuestion{}
		var helpJSON string
		if err := rows.Scan(&gq.ID, &gq.QuestionID, &gq.Level,
			&gq.Slots[0], &gq.Slots[1], &gq.Slots[2], &gq.Slots[3], &helpJSON,
			&gq.Question.Text, &gq.Question.Answers[0], &gq.Question.Answers[1],
			&gq.Question.Answers[2], &gq.Question.Answers[3]); err != nil {
			return nil, err
		}
		gq.Question.ID = gq.QuestionID
		gq.Question.Level = gq.Level
		if err := json.Unmarshal([]byte(helpJSON), &gq.Help); err != nil {
			return nil, fmt.Errorf("decoding help payloads: %w", err)
		}
		if gq.Level >= 0 && gq.Level < hotseat.Levels {
			g.Questions[gq.Level] = gq
		}
	}
	return g, rows.Err()
}

func (s *SQLiteStore) CreateGame(ctx context.Context, g *hotseat.Game) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	g.ID = newID()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO games (id, player_id, created_at)
		VALUES (?, ?, ?)
	`, g.ID, g.PlayerID, formatTime(g.CreatedAt))
	if err != nil {
		// The partial unique index catches the race between two
		// concurrent StartGame calls for the same player.
		if strings.Contains(err.Error(), "UNIQUE constraint failed: games.player_id") {
			return hotseat.ErrDuplicateActiveGame
		}
		return fmt.Errorf("inserting game: %w", err)
	}

	for _, gq := range g.Questions {
		gq.ID = newID()
		help, err := json.Marshal(gq.Help)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO game_questions (id, game_id, question_id, level, a, b, c, d, help)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, jsonb(?))
		`, gq.ID, g.ID, gq.QuestionID, gq.Level,
			gq.Slots[0], gq.Slots[1], gq.Slots[2], gq.Slots[3], string(help))
		if err != nil {
			return fmt.Errorf("inserting game question: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) SaveGame(ctx context.Context, g *hotseat.Game) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveGameRow(ctx, tx, g); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) FinalizeGame(ctx context.Context, g *hotseat.Game) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveGameRow(ctx, tx, g); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE players SET balance = balance + ? WHERE id = ?
	`, g.Prize, g.PlayerID)
	if err != nil {
		return fmt.Errorf("crediting balance: %w", err)
	}
	return tx.Commit()
}

func saveGameRow(ctx context.Context, tx *sql.Tx, g *hotseat.Game) error {
	var finishedAt any
	if g.FinishedAt != nil {
		finishedAt = formatTime(*g.FinishedAt)
	}
	_, err := tx.ExecContext(ctx, `
		UPDATE games
		SET current_level = ?, prize = ?, is_failed = ?,
			fifty_fifty_used = ?, audience_help_used = ?, friend_call_used = ?,
			finished_at = ?
		WHERE id = ?
	`, g.CurrentLevel, g.Prize, boolInt(g.IsFailed),
		boolInt(g.FiftyFiftyUsed), boolInt(g.AudienceHelpUsed), boolInt(g.FriendCallUsed),
		finishedAt, g.ID)
	if err != nil {
		return fmt.Errorf("updating game: %w", err)
	}

	for _, gq := range g.Questions {
		if gq == nil {
			continue
		}
		help, err := json.Marshal(gq.Help)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE game_questions SET help = jsonb(?) WHERE id = ?
		`, string(help), gq.ID)
		if err != nil {
			return fmt.Errorf("updating game question: %w", err)
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// --- Players and sessions ---

func (s *SQLiteStore) CreatePlayer(ctx context.Context, name, email, passwordHash string) (Player, error) {
	p := Player{
		ID:           newID(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players (id, name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Email, p.PasswordHash, formatTime(p.CreatedAt))
	if err != nil {
		if strings.Contains(err.Error(), "players.email") {
			return Player{}, ErrEmailTaken
		}
		return Player{}, fmt.Errorf("inserting player: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) PlayerByEmail(ctx context.Context, email string) (Player, error) {
	return s.playerWhere(ctx, `email = ?`, email)
}

func (s *SQLiteStore) PlayerByID(ctx context.Context, id string) (Player, error) {
	return s.playerWhere(ctx, `id = ?`, id)
}

func (s *SQLiteStore) playerWhere(ctx context.Context, where string, args ...any) (Player, error) {
	var p Player
	var isAdmin int
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, balance, is_admin, created_at
		FROM players
		WHERE `+where,
		args...,
	).Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.Balance, &isAdmin, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, hotseat.ErrNotFound
	}
	if err != nil {
		return p, err
	}
	p.IsAdmin = isAdmin == 1
	p.CreatedAt = parseTime(createdAt)
	return p, nil
}

func (s *SQLiteStore) PlayerFromToken(ctx context.Context, token string) (Player, error) {
	var p Player
	var isAdmin int
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.email, p.password_hash, p.balance, p.is_admin, p.created_at
		FROM sessions s
		JOIN players p ON p.id = s.player_id
		WHERE s.id = ?
	`, token).Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.Balance, &isAdmin, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, hotseat.ErrNotFound
	}
	if err != nil {
		return p, err
	}
	p.IsAdmin = isAdmin == 1
	p.CreatedAt = parseTime(createdAt)
	return p, nil
}

func (s *SQLiteStore) CreateSession(ctx context.Context, playerID string) (string, error) {
	token := newToken()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, player_id) VALUES (?, ?)
	`, token, playerID)
	if err != nil {
		return "", fmt.Errorf("inserting session: %w", err)
	}
	return token, nil
}

func (s *SQLiteStore) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, token)
	return err
}

func (s *SQLiteStore) ListPlayers(ctx context.Context) ([]PlayerSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.name, p.balance, COUNT(g.id)
		FROM players p
		LEFT JOIN games g ON g.player_id = p.id
		GROUP BY p.id
		ORDER BY p.balance DESC, p.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []PlayerSummary{}
	for rows.Next() {
		var ps PlayerSummary
		if err := rows.Scan(&ps.Name, &ps.Balance, &ps.GamesPlayed); err != nil {
			return nil, err
		}
		if ps.GamesPlayed > 0 {
			ps.AveragePrize = ps.Balance / ps.GamesPlayed
		}
		players = append(players, ps)
	}
	return players, rows.Err()
}
