package hotseat

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// Store is the persistence boundary the engine drives. Implementations must
// make CreateGame and FinalizeGame atomic: a game is never observable with
// only part of its questions, and a finished game is never observable
// without the matching balance credit.
type Store interface {
	// RandomQuestion draws one bank question uniformly from the given
	// tier. Returns ErrNotFound when the tier's pool is empty.
	RandomQuestion(ctx context.Context, level int) (Question, error)

	// ActiveGameFor returns the player's unfinished game, or ErrNotFound.
	ActiveGameFor(ctx context.Context, playerID string) (*Game, error)

	// GameForPlayer loads a game by id, scoped to its owner. Returns
	// ErrNotFound for unknown ids and for games owned by someone else.
	GameForPlayer(ctx context.Context, gameID, playerID string) (*Game, error)

	// CreateGame persists the game and all fifteen questions in one
	// transaction, assigning ids.
	CreateGame(ctx context.Context, g *Game) error

	// SaveGame persists the game row and its questions' help payloads.
	SaveGame(ctx context.Context, g *Game) error

	// FinalizeGame persists the game and credits the prize to the owner's
	// balance in one transaction.
	FinalizeGame(ctx context.Context, g *Game) error
}

// Engine owns the game rules and orchestrates state transitions against the
// Store. It holds no per-game state; every operation loads, mutates, and
// persists in a single call, and concurrent calls for the same game are
// assumed to be serialized by the caller.
type Engine struct {
	store     Store
	timeLimit time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine wires an engine to its store. rng drives question selection,
// answer shuffling, and aid content; pass a seeded source in tests. A
// timeLimit of zero means DefaultTimeLimit.
func NewEngine(store Store, rng *rand.Rand, timeLimit time.Duration) *Engine {
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	return &Engine{store: store, rng: rng, timeLimit: timeLimit}
}

// TimeLimit returns how long a player has to finish a game.
func (e *Engine) TimeLimit() time.Duration {
	return e.timeLimit
}

// Status derives the game's state under the engine's time limit.
func (e *Engine) Status(g *Game) Status {
	return g.Status(e.timeLimit)
}

// ActiveGameFor returns the player's unfinished game, or ErrNotFound.
func (e *Engine) ActiveGameFor(ctx context.Context, playerID string) (*Game, error) {
	return e.store.ActiveGameFor(ctx, playerID)
}

// GameForPlayer loads a game by id, scoped to its owner.
func (e *Engine) GameForPlayer(ctx context.Context, gameID, playerID string) (*Game, error) {
	return e.store.GameForPlayer(ctx, gameID, playerID)
}

// StartGame creates a fresh game for the player: fifteen questions, one
// drawn at random per tier, each with its own uniform answer shuffle, all
// persisted atomically. Fails with ErrDuplicateActiveGame if the player
// still has a game in progress, and with ErrInsufficientQuestions if any
// tier of the bank is empty.
func (e *Engine) StartGame(ctx context.Context, playerID string) (*Game, error) {
	_, err := e.store.ActiveGameFor(ctx, playerID)
	if err == nil {
		return nil, ErrDuplicateActiveGame
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("checking for active game: %w", err)
	}

	g := &Game{
		PlayerID:  playerID,
		CreatedAt: time.Now().UTC(),
	}
	for level := 0; level < Levels; level++ {
		q, err := e.store.RandomQuestion(ctx, level)
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("level %d: %w", level, ErrInsufficientQuestions)
		}
		if err != nil {
			return nil, fmt.Errorf("drawing question for level %d: %w", level, err)
		}
		e.mu.Lock()
		g.Questions[level] = newGameQuestion(e.rng, q)
		e.mu.Unlock()
	}

	if err := e.store.CreateGame(ctx, g); err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	return g, nil
}

// CheckTimeout finalizes the game as a timed-out loss if it has outlived
// the time limit, using the fireproof floor for the last answered level.
// Reports whether a timeout fired; finished games are left alone.
func (e *Engine) CheckTimeout(ctx context.Context, g *Game) (bool, error) {
	now := time.Now().UTC()
	if !g.expired(now, e.timeLimit) {
		return false, nil
	}
	g.finish(now, FireproofPrize(g.CurrentLevel-1), true)
	if err := e.store.FinalizeGame(ctx, g); err != nil {
		return true, fmt.Errorf("finalizing timed-out game: %w", err)
	}
	return true, nil
}

// Answer submits the player's letter for the current question. It returns
// false without touching the game when the game is finished or times out on
// entry, and false on a wrong answer (which finalizes the game at the
// fireproof floor). A correct answer advances the level; passing the last
// tier finalizes the game as won at the top of the ladder.
func (e *Engine) Answer(ctx context.Context, g *Game, letter Letter) (bool, error) {
	if timedOut, err := e.CheckTimeout(ctx, g); timedOut || err != nil {
		return false, err
	}
	if g.Finished() {
		return false, nil
	}

	now := time.Now().UTC()
	if !g.CurrentQuestion().IsCorrect(letter) {
		g.finish(now, FireproofPrize(g.CurrentLevel-1), true)
		if err := e.store.FinalizeGame(ctx, g); err != nil {
			return false, fmt.Errorf("finalizing failed game: %w", err)
		}
		return false, nil
	}

	g.CurrentLevel++
	if g.CurrentLevel > Levels-1 {
		g.finish(now, Prizes[Levels-1], false)
		if err := e.store.FinalizeGame(ctx, g); err != nil {
			return true, fmt.Errorf("finalizing won game: %w", err)
		}
		return true, nil
	}

	if err := e.store.SaveGame(ctx, g); err != nil {
		return true, fmt.Errorf("saving game: %w", err)
	}
	return true, nil
}

// CashOut finalizes the game with the prize of the last answered tier, or
// zero before the first answer. A no-op on finished games; a timeout on
// entry takes precedence and finalizes as a timed-out loss instead.
func (e *Engine) CashOut(ctx context.Context, g *Game) error {
	if timedOut, err := e.CheckTimeout(ctx, g); timedOut || err != nil {
		return err
	}
	if g.Finished() {
		return nil
	}

	prize := 0
	if g.CurrentLevel > 0 {
		prize = Prizes[g.CurrentLevel-1]
	}
	g.finish(time.Now().UTC(), prize, false)
	if err := e.store.FinalizeGame(ctx, g); err != nil {
		return fmt.Errorf("finalizing cashed-out game: %w", err)
	}
	return nil
}

// UseHelp spends one of the three aids on the current question and returns
// whether it was applied. Fails with ErrInvalidHelpKind for unknown kinds;
// returns false without mutation when the aid was already spent or the game
// is finished or times out on entry.
func (e *Engine) UseHelp(ctx context.Context, g *Game, kind HelpKind) (bool, error) {
	if _, err := ParseHelpKind(string(kind)); err != nil {
		return false, err
	}
	if timedOut, err := e.CheckTimeout(ctx, g); timedOut || err != nil {
		return false, err
	}
	if g.Finished() || g.HelpUsed(kind) {
		return false, nil
	}

	g.markHelpUsed(kind)
	e.mu.Lock()
	err := g.CurrentQuestion().ApplyHelp(e.rng, kind)
	e.mu.Unlock()
	if err != nil {
		return false, err
	}

	if err := e.store.SaveGame(ctx, g); err != nil {
		return false, fmt.Errorf("saving game: %w", err)
	}
	return true, nil
}
