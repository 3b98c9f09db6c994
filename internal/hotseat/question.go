package hotseat

import "math/rand/v2"

// HelpPayloads holds the content generated for each aid used on a question.
// Each field is set at most once; the Game's used flags enforce that.
type HelpPayloads struct {
	// FiftyFifty is the pair of letters left after the 50/50 aid: the
	// correct one plus one wrong one.
	FiftyFifty []Letter `json:"fiftyFifty,omitempty"`
	// AudienceHelp maps each letter still in play to its share of the
	// simulated audience vote, in percent.
	AudienceHelp map[Letter]int `json:"audienceHelp,omitempty"`
	// FriendCall is the simulated friend's answer as a ready sentence.
	FriendCall string `json:"friendCall,omitempty"`
}

// GameQuestion binds one bank question to one game. Slots holds the per-game
// shuffle: Slots[i] is the answer slot (1..4) shown under letter Letters[i],
// and the four values are always a permutation of 1..4. Slot 1 is the
// bank's correct answer.
type GameQuestion struct {
	ID         string
	QuestionID string
	Level      int
	Question   Question
	Slots      [4]int
	Help       HelpPayloads
}

func newGameQuestion(rng *rand.Rand, q Question) *GameQuestion {
	gq := &GameQuestion{
		QuestionID: q.ID,
		Level:      q.Level,
		Question:   q,
	}
	for i, slot := range rng.Perm(4) {
		gq.Slots[i] = slot + 1
	}
	return gq
}

// Variants returns the answer text shown under each letter.
func (gq *GameQuestion) Variants() map[Letter]string {
	v := make(map[Letter]string, 4)
	for i, l := range Letters {
		v[l] = gq.Question.Answers[gq.Slots[i]-1]
	}
	return v
}

// IsCorrect reports whether the letter maps to the bank's correct slot.
// Unknown letters are simply wrong.
func (gq *GameQuestion) IsCorrect(letter Letter) bool {
	return letter == gq.CorrectLetterKey()
}

// CorrectLetterKey returns the letter the correct answer is shown under.
// Exactly one letter maps to slot 1 because Slots is a permutation.
func (gq *GameQuestion) CorrectLetterKey() Letter {
	for i, l := range Letters {
		if gq.Slots[i] == 1 {
			return l
		}
	}
	panic("hotseat: slots is not a permutation")
}

// CorrectAnswer returns the text of the correct answer.
func (gq *GameQuestion) CorrectAnswer() string {
	return gq.Question.Answers[0]
}

// ApplyHelp generates and stores the payload for one aid. Calling it twice
// for the same kind overwrites the earlier payload; the Game's used flags
// keep that from happening.
func (gq *GameQuestion) ApplyHelp(rng *rand.Rand, kind HelpKind) error {
	switch kind {
	case HelpFiftyFifty:
		gq.Help.FiftyFifty = FiftyFifty(rng, gq.CorrectLetterKey(), Letters)
	case HelpAudience:
		gq.Help.AudienceHelp = AudienceDistribution(rng, gq.eligibleLetters(), gq.CorrectLetterKey())
	case HelpFriendCall:
		gq.Help.FriendCall = FriendCall(rng, gq.eligibleLetters(), gq.CorrectLetterKey())
	default:
		return ErrInvalidHelpKind
	}
	return nil
}

// eligibleLetters is the option set later aids draw from: all four letters,
// or the surviving pair once 50/50 has been used on this question.
func (gq *GameQuestion) eligibleLetters() []Letter {
	if len(gq.Help.FiftyFifty) > 0 {
		return gq.Help.FiftyFifty
	}
	return Letters
}
