package vocab

import (
	"math/rand/v2"

	"codeberg.org/snonux/wordcycle/internal/domain"
)

// Append returns a new list with e added at the end. The input is not modified.
func Append(list []domain.Entry, e domain.Entry) []domain.Entry {
	next := make([]domain.Entry, 0, len(list)+1)
	next = append(next, list...)
	return append(next, e)
}

// DeleteByID returns the list without the entries whose ID is in ids,
// keeping the relative order of the survivors, and the number removed.
func DeleteByID(list []domain.Entry, ids map[string]struct{}) ([]domain.Entry, int) {
	next := make([]domain.Entry, 0, len(list))
	for _, e := range list {
		if _, drop := ids[e.ID]; drop {
			continue
		}
		next = append(next, e)
	}
	return next, len(list) - len(next)
}

// Shuffled returns a shuffled copy of list.
func Shuffled(list []domain.Entry, rnd *rand.Rand) []domain.Entry {
	next := append([]domain.Entry(nil), list...)
	rnd.Shuffle(len(next), func(i, j int) {
		next[i], next[j] = next[j], next[i]
	})
	return next
}
