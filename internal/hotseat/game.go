package hotseat

import "time"

// Status is a game's derived state. It is never stored: it is recomputed
// from the finished timestamp, the failed flag, the level reached, and the
// time limit, so a freshly loaded game always reports the same status.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusFail       Status = "fail"
	StatusTimeout    Status = "timeout"
	StatusCashedOut  Status = "cashed_out"
)

// Game is one player's run up the ladder. CurrentLevel 0..14 indexes the
// question in play; 15 means the last question was passed. Prize only moves
// on finalization and never decreases.
type Game struct {
	ID           string
	PlayerID     string
	CurrentLevel int
	Prize        int
	IsFailed     bool

	FiftyFiftyUsed   bool
	AudienceHelpUsed bool
	FriendCallUsed   bool

	CreatedAt  time.Time
	FinishedAt *time.Time

	// Questions holds the fifteen questions drawn at game start, indexed
	// by level.
	Questions [Levels]*GameQuestion
}

// Finished reports whether the game has reached a terminal state.
func (g *Game) Finished() bool {
	return g.FinishedAt != nil
}

// CurrentQuestion returns the question in play, or nil once past the ladder.
func (g *Game) CurrentQuestion() *GameQuestion {
	if g.CurrentLevel < 0 || g.CurrentLevel >= Levels {
		return nil
	}
	return g.Questions[g.CurrentLevel]
}

// Status derives the game's state under the given time limit:
//
//	in progress: not finished
//	fail:        finished failed within the limit (wrong answer)
//	timeout:     finished failed past the limit
//	won:         finished clean past the last tier
//	cashed out:  finished clean anywhere below
func (g *Game) Status(limit time.Duration) Status {
	if !g.Finished() {
		return StatusInProgress
	}
	if g.IsFailed {
		if g.FinishedAt.Sub(g.CreatedAt) <= limit {
			return StatusFail
		}
		return StatusTimeout
	}
	if g.CurrentLevel > Levels-1 {
		return StatusWon
	}
	return StatusCashedOut
}

// HelpUsed reports whether the given aid has already been spent.
func (g *Game) HelpUsed(kind HelpKind) bool {
	switch kind {
	case HelpFiftyFifty:
		return g.FiftyFiftyUsed
	case HelpAudience:
		return g.AudienceHelpUsed
	case HelpFriendCall:
		return g.FriendCallUsed
	}
	return false
}

func (g *Game) markHelpUsed(kind HelpKind) {
	switch kind {
	case HelpFiftyFifty:
		g.FiftyFiftyUsed = true
	case HelpAudience:
		g.AudienceHelpUsed = true
	case HelpFriendCall:
		g.FriendCallUsed = true
	}
}

// finish moves the game to a terminal state in memory. Persisting the game
// and crediting the player is the engine's job.
func (g *Game) finish(now time.Time, prize int, failed bool) {
	g.Prize = prize
	g.IsFailed = failed
	g.FinishedAt = &now
}

// expired reports whether the game has outlived the time limit without
// finishing.
func (g *Game) expired(now time.Time, limit time.Duration) bool {
	return !g.Finished() && now.Sub(g.CreatedAt) > limit
}
