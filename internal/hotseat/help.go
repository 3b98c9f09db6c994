package hotseat

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// friendNames is presentation content for the friend-call aid, not game
// logic; swap it out for localization.
var friendNames = []string{
	"Walter", "Miriam", "Sergio", "Olga", "Dmitri",
	"Lucia", "Pavel", "Ines", "Arthur", "Vera",
}

const friendCallFormat = "%s thinks the answer is %s"

// FiftyFifty returns the two letters left after the 50/50 aid: the correct
// one and one wrong one drawn uniformly from the rest.
func FiftyFifty(rng *rand.Rand, correct Letter, letters []Letter) []Letter {
	wrong := make([]Letter, 0, len(letters)-1)
	for _, l := range letters {
		if l != correct {
			wrong = append(wrong, l)
		}
	}
	return []Letter{correct, wrong[rng.IntN(len(wrong))]}
}

// AudienceDistribution simulates an audience vote over the given letters.
// The correct letter draws a raw weight of 45-90, every other letter 1-60;
// weights are then normalized to percentages with integer division, so the
// total can fall slightly short of 100. That shortfall is part of the
// published behavior and must not be rounded away.
func AudienceDistribution(rng *rand.Rand, letters []Letter, correct Letter) map[Letter]int {
	weights := make([]int, len(letters))
	sum := 0
	for i, l := range letters {
		if l == correct {
			weights[i] = 45 + rng.IntN(46)
		} else {
			weights[i] = 1 + rng.IntN(60)
		}
		sum += weights[i]
	}

	votes := make(map[Letter]int, len(letters))
	for i, l := range letters {
		votes[l] = 100 * weights[i] / sum
	}
	return votes
}

// FriendCall simulates phoning a friend: 7 times out of 10 the friend names
// the correct letter, otherwise a uniform draw from the letters still in
// play (which may still hit the correct one). Returns a ready sentence.
func FriendCall(rng *rand.Rand, letters []Letter, correct Letter) string {
	key := correct
	if rng.IntN(10) <= 2 {
		key = letters[rng.IntN(len(letters))]
	}
	name := friendNames[rng.IntN(len(friendNames))]
	return fmt.Sprintf(friendCallFormat, name, strings.ToUpper(string(key)))
}
