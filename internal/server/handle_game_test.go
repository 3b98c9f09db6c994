package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/quizline/hotseat/internal/hotseat"
)

func startGame(t *testing.T, r http.Handler, token string) GameView {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/games", token, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("start game: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	return decodeJSON[GameView](t, w)
}

func TestGameStart(t *testing.T) {
	r, _ := setupServer(t)
	auth := registerPlayer(t, r, "Maria", "maria@example.com")

	game := startGame(t, r, auth.Token)
	if game.ID == "" {
		t.Fatal("expected a game id")
	}
	if game.Status != hotseat.StatusInProgress {
		t.Errorf("status = %q, want %q", game.Status, hotseat.StatusInProgress)
	}
	if game.Level != 0 || game.Prize != 0 || game.CashOutPrize != 0 {
		t.Errorf("fresh game: level=%d prize=%d cashOut=%d", game.Level, game.Prize, game.CashOutPrize)
	}
	if len(game.Ladder) != hotseat.Levels || game.Ladder[14] != 1000000 {
		t.Errorf("unexpected ladder: %v", game.Ladder)
	}
	if len(game.FireproofLevels) != 3 || game.FireproofLevels[0] != 4 {
		t.Errorf("unexpected fireproof levels: %v", game.FireproofLevels)
	}
	if game.SecondsLeft <= 0 || game.SecondsLeft > int((35 * time.Minute).Seconds()) {
		t.Errorf("secondsLeft = %d", game.SecondsLeft)
	}
	if game.Question == nil {
		t.Fatal("expected a question")
	}
	if game.Question.Level != 0 || game.Question.Text == "" {
		t.Errorf("unexpected question: %+v", game.Question)
	}
	if len(game.Question.Variants) != 4 {
		t.Errorf("expected 4 variants, got %v", game.Question.Variants)
	}
	if game.FiftyFiftyUsed || game.AudienceUsed || game.FriendCallUsed {
		t.Error("fresh game reports aids used")
	}
}

func TestGameStartDuplicate(t *testing.T) {
	r, _ := setupServer(t)
	auth := registerPlayer(t, r, "Maria", "maria@example.com")
	startGame(t, r, auth.Token)

	w := doRequest(t, r, http.MethodPost, "/api/games", auth.Token, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCurrentGame(t *testing.T) {
	r, _ := setupServer(t)
	auth := registerPlayer(t, r, "Maria", "maria@example.com")

	w := doRequest(t, r, http.MethodGet, "/api/games/current", auth.Token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("no game yet: expected 404, got %d", w.Code)
	}

	started := startGame(t, r, auth.Token)

	w = doRequest(t, r, http.MethodGet, "/api/games/current", auth.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	game := decodeJSON[GameView](t, w)
	if game.ID != started.ID {
		t.Errorf("current game id = %q, want %q", game.ID, started.ID)
	}
}

func TestGameShowScopedToOwner(t *testing.T) {
	r, _ := setupServer(t)
	maria := registerPlayer(t, r, "Maria", "maria@example.com")
	carlos := registerPlayer(t, r, "Carlos", "carlos@example.com")
	game := startGame(t, r, maria.Token)

	w := doRequest(t, r, http.MethodGet, "/api/games/"+game.ID, maria.Token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("owner: expected 200, got %d", w.Code)
	}

	w = doRequest(t, r, http.MethodGet, "/api/games/"+game.ID, carlos.Token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("other player: expected 404, got %d", w.Code)
	}
}

func TestAnswerCorrectAdvances(t *testing.T) {
	r, store := setupServer(t)
	auth := registerPlayer(t, r, "Maria", "maria@example.com")
	game := startGame(t, r, auth.Token)

	letter := correctLetter(t, store, auth.Player.ID)
	w := doRequest(t, r, http.MethodPost, "/api/games/"+game.ID+"/answer", auth.Token,
		AnswerRequest{Letter: string(letter)})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeJSON[AnswerResponse](t, w)
	if !resp.Accepted {
		t.Fatal("correct answer not accepted")
	}
	if resp.Game.Level != 1 {
		t.Errorf("level = %d, want 1", resp.Game.Level)
	}
	if resp.Game.Status != hotseat.StatusInProgress {
		t.Errorf("status = %q, want %q", resp.Game.Status, hotseat.StatusInProgress)
	}
	if resp.Game.CashOutPrize != 100 {
		t.Errorf("cashOutPrize = %d, want 100", resp.Game.CashOutPrize)
	}
	if resp.Game.Question == nil || resp.Game.Question.Level != 1 {
		t.Errorf("expected the level 1 question, got %+v", resp.Game.Question)
	}
	if resp.CorrectAnswer != "" {
		t.Errorf("correct answer leaked: %q", resp.CorrectAnswer)
	}
}

func TestAnswerWrongEndsGame(t *testing.T) {
	r, store := setupServer(t)
	auth := registerPlayer(t, r, "Maria", "maria@example.com")
	game := startGame(t, r, auth.Token)

	letter := wrongLetterFor(t, store, auth.Player.ID)
	w := doRequest(t, r, http.MethodPost, "/api/games/"+game.ID+"/answer", auth.Token,
		AnswerRequest{Letter: string(letter)})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeJSON[AnswerResponse](t, w)
	if resp.Accepted {
		t.Fatal("wrong answer accepted")
	}
	if resp.Game.Status != hotseat.StatusFail {
		t.Errorf("status = %q, want %q", resp.Game.Status, hotseat.StatusFail)
	}
	if resp.Game.Prize != 0 {
		t.Errorf("prize = %d, want 0", resp.Game.Prize)
	}
	if resp.Game.FinishedAt == nil {
		t.Error("expected finishedAt")
	}
	if resp.CorrectAnswer == "" {
		t.Error("expected the correct answer to be revealed")
	}

	// The loss frees the player to start over.
	w = doRequest(t, r, http.MethodPost, "/api/games", auth.Token, nil)
	if w.Code != http.StatusCreated {
		t.Errorf("restart after loss: expected 201, got %d", w.Code)
	}
}

func TestAnswerRejectsBadLetter(t *testing.T) {
	r, _ := setupServer(t)
	auth := registerPlayer(t, r, "Maria", "maria@example.com")
	game := startGame(t, r, auth.Token)

	for _, letter := range []string{"", "e", "abc"} {
		w := doRequest(t, r, http.MethodPost, "/api/games/"+game.ID+"/answer", auth.Token,
			AnswerRequest{Letter: letter})
		if w.Code != http.StatusBadRequest {
			t.Errorf("letter %q: expected 400, got %d", letter, w.Code)
		}
	}
}

func TestClimbAndCashOut(t *testing.T) {
	r, store := setupServer(t)
	auth := registerPlayer(t, r, "Maria", "maria@example.com")
	game := startGame(t, r, auth.Token)

	for i := 0; i < 3; i++ {
		letter := correctLetter(t, store, auth.Player.ID)
		w := doRequest(t, r, http.MethodPost, "/api/games/"+game.ID+"/answer", auth.Token,
			AnswerRequest{Letter: string(letter)})
		resp := decodeJSON[AnswerResponse](t, w)
		if !resp.Accepted {
			t.Fatalf("tier %d: answer rejected", i)
		}
	}

	w := doRequest(t, r, http.MethodPost, "/api/games/"+game.ID+"/cashout", auth.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cashout: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	result := decodeJSON[GameView](t, w)
	if result.Status != hotseat.StatusCashedOut {
		t.Errorf("status = %q, want %q", result.Status, hotseat.StatusCashedOut)
	}
	if result.Prize != 300 {
		t.Errorf("prize = %d, want 300", result.Prize)
	}

	w = doRequest(t, r, http.MethodGet, "/api/me", auth.Token, nil)
	me := decodeJSON[PlayerProfile](t, w)
	if me.Balance != 300 {
		t.Errorf("balance = %d, want 300", me.Balance)
	}

	w = doRequest(t, r, http.MethodGet, "/api/players", auth.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("players: expected 200, got %d", w.Code)
	}
	players := decodeJSON[[]PlayerSummary](t, w)
	found := false
	for _, p := range players {
		if p.Name == "Maria" {
			found = true
			if p.Balance != 300 || p.GamesPlayed != 1 || p.AveragePrize != 300 {
				t.Errorf("leaderboard entry: %+v", p)
			}
		}
	}
	if !found {
		t.Errorf("Maria missing from leaderboard: %v", players)
	}
}

func TestWinWholeLadder(t *testing.T) {
	r, store := setupServer(t)
	auth := registerPlayer(t, r, "Maria", "maria@example.com")
	game := startGame(t, r, auth.Token)

	var last AnswerResponse
	for tier := 0; tier < hotseat.Levels; tier++ {
		letter := correctLetter(t, store, auth.Player.ID)
		w := doRequest(t, r, http.MethodPost, "/api/games/"+game.ID+"/answer", auth.Token,
			AnswerRequest{Letter: string(letter)})
		if w.Code != http.StatusOK {
			t.Fatalf("tier %d: expected 200, got %d: %s", tier, w.Code, w.Body.String())
		}
		last = decodeJSON[AnswerResponse](t, w)
		if !last.Accepted {
			t.Fatalf("tier %d: answer rejected", tier)
		}
	}

	if last.Game.Status != hotseat.StatusWon {
		t.Errorf("status = %q, want %q", last.Game.Status, hotseat.StatusWon)
	}
	if last.Game.Prize != 1000000 {
		t.Errorf("prize = %d, want 1000000", last.Game.Prize)
	}
	if last.Game.Question != nil {
		t.Error("won game still shows a question")
	}

	w := doRequest(t, r, http.MethodGet, "/api/me", auth.Token, nil)
	me := decodeJSON[PlayerProfile](t, w)
	if me.Balance != 1000000 {
		t.Errorf("balance = %d, want 1000000", me.Balance)
	}
}

func TestHelpSingleUse(t *testing.T) {
	r, _ := setupServer(t)
	auth := registerPlayer(t, r, "Maria", "maria@example.com")
	game := startGame(t, r, auth.Token)

	w := doRequest(t, r, http.MethodPost, "/api/games/"+game.ID+"/help", auth.Token,
		HelpRequest{Type: "fifty_fifty"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeJSON[HelpResponse](t, w)
	if !resp.Applied {
		t.Fatal("first use not applied")
	}
	if len(resp.Game.Help.FiftyFifty) != 2 {
		t.Errorf("expected 2 surviving letters, got %v", resp.Game.Help.FiftyFifty)
	}
	if !resp.Game.FiftyFiftyUsed {
		t.Error("fiftyFiftyUsed flag not set")
	}

	w = doRequest(t, r, http.MethodPost, "/api/games/"+game.ID+"/help", auth.Token,
		HelpRequest{Type: "fifty_fifty"})
	resp = decodeJSON[HelpResponse](t, w)
	if resp.Applied {
		t.Error("second use applied")
	}
}

func TestHelpRejectsUnknownType(t *testing.T) {
	r, _ := setupServer(t)
	auth := registerPlayer(t, r, "Maria", "maria@example.com")
	game := startGame(t, r, auth.Token)

	w := doRequest(t, r, http.MethodPost, "/api/games/"+game.ID+"/help", auth.Token,
		HelpRequest{Type: "hint"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestTimeoutFinalizedOnRead(t *testing.T) {
	r, store := setupServer(t)
	auth := registerPlayer(t, r, "Maria", "maria@example.com")
	game := startGame(t, r, auth.Token)

	// Backdate the game past the time limit.
	_, err := store.db.Exec(`UPDATE games SET created_at = ? WHERE id = ?`,
		formatTime(time.Now().Add(-40*time.Minute)), game.ID)
	if err != nil {
		t.Fatalf("backdating game: %v", err)
	}

	w := doRequest(t, r, http.MethodGet, "/api/games/current", auth.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	result := decodeJSON[GameView](t, w)
	if result.Status != hotseat.StatusTimeout {
		t.Errorf("status = %q, want %q", result.Status, hotseat.StatusTimeout)
	}
	if result.FinishedAt == nil {
		t.Error("expected finishedAt")
	}
	if result.Question != nil {
		t.Error("timed-out game still shows a question")
	}
	if result.Prize != 0 {
		t.Errorf("prize = %d, want 0 (no fireproof tier passed)", result.Prize)
	}

	// The slot is free again.
	w = doRequest(t, r, http.MethodPost, "/api/games", auth.Token, nil)
	if w.Code != http.StatusCreated {
		t.Errorf("restart after timeout: expected 201, got %d", w.Code)
	}
}
