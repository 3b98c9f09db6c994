// Package hotseat implements the rules of a fifteen-question prize-ladder
// trivia game: a player climbs the ladder one question at a time, may bank
// winnings at any point, may spend three one-time aids, and falls back to a
// fireproof floor on a wrong answer or on running out of time.
//
// The package owns all game logic: ladder arithmetic, the game state
// machine, per-game answer shuffling, and the aid content generators.
// Persistence, identity, and transport are collaborators behind the Store
// interface.
package hotseat

import (
	"errors"
	"strings"
	"time"
)

// Levels is the number of questions in a full game, one per difficulty tier.
const Levels = 15

// Prizes is the ladder: the amount won for passing each tier.
var Prizes = [Levels]int{
	100, 200, 300, 500, 1000,
	2000, 4000, 8000, 16000, 32000,
	64000, 125000, 250000, 500000, 1000000,
}

// FireproofLevels are the tiers whose prize is guaranteed as a floor once
// passed, surviving a later loss.
var FireproofLevels = [...]int{4, 9, 14}

// DefaultTimeLimit is how long a player has to finish a game.
const DefaultTimeLimit = 35 * time.Minute

var (
	// ErrDuplicateActiveGame is returned by StartGame when the player
	// already has a game in progress.
	ErrDuplicateActiveGame = errors.New("player already has a game in progress")

	// ErrInsufficientQuestions is returned by StartGame when some tier of
	// the question bank is empty.
	ErrInsufficientQuestions = errors.New("not enough questions in the bank")

	// ErrInvalidHelpKind is returned by UseHelp for an unknown aid.
	ErrInvalidHelpKind = errors.New("unknown help kind")

	// ErrNotFound is returned by Store implementations when a record does
	// not exist.
	ErrNotFound = errors.New("not found")
)

// FireproofPrize returns the guaranteed amount after losing having answered
// answeredLevel: the prize of the greatest fireproof tier at or below it, or
// zero when no fireproof tier has been passed. answeredLevel may be -1.
func FireproofPrize(answeredLevel int) int {
	prize := 0
	for _, lvl := range FireproofLevels {
		if lvl <= answeredLevel {
			prize = Prizes[lvl]
		}
	}
	return prize
}

// Letter identifies one of the four answer options shown to the player.
type Letter string

const (
	LetterA Letter = "a"
	LetterB Letter = "b"
	LetterC Letter = "c"
	LetterD Letter = "d"
)

// Letters lists the four answer letters in display order.
var Letters = []Letter{LetterA, LetterB, LetterC, LetterD}

// ParseLetter normalizes a player-submitted answer letter. The second return
// value reports whether the input was one of a-d (case-insensitive).
func ParseLetter(s string) (Letter, bool) {
	switch l := Letter(strings.ToLower(strings.TrimSpace(s))); l {
	case LetterA, LetterB, LetterC, LetterD:
		return l, true
	default:
		return "", false
	}
}

// HelpKind identifies one of the three one-time aids.
type HelpKind string

const (
	HelpFiftyFifty HelpKind = "fifty_fifty"
	HelpAudience   HelpKind = "audience_help"
	HelpFriendCall HelpKind = "friend_call"
)

// ParseHelpKind validates a client-submitted aid name.
func ParseHelpKind(s string) (HelpKind, error) {
	switch k := HelpKind(s); k {
	case HelpFiftyFifty, HelpAudience, HelpFriendCall:
		return k, nil
	default:
		return "", ErrInvalidHelpKind
	}
}

// Question is a bank entry: one of the fifteen difficulty tiers, the question
// text, and four answers. Answers[0] is the correct one; the player-facing
// order is decided per game by GameQuestion's shuffle.
type Question struct {
	ID      string
	Level   int
	Text    string
	Answers [4]string
}
