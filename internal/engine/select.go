package engine

import (
	"math/rand/v2"

	"github.com/linuxgeek/simulado/internal/model"
)

// SelectQuestions draws a session's question sequence from the pool:
// filter by mode, shuffle a copy with an unbiased Fisher–Yates pass, take
// the first n. Sampling is without replacement and the resulting order is
// fixed for the whole session. The shuffle is fresh every call so question
// order cannot be memorized across sessions.
//
// An empty filtered pool yields nil; callers must refuse to start a
// session on it.
func SelectQuestions(pool []model.Question, cfg SessionConfig, rng *rand.Rand) []model.Question {
	filtered := pool
	if cfg.Mode != ModeMixed && cfg.Mode != "" {
		filtered = make([]model.Question, 0, len(pool))
		for _, q := range pool {
			if Mode(q.Type) == cfg.Mode {
				filtered = append(filtered, q)
			}
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	n := len(filtered)
	if !cfg.Quantity.all {
		n = cfg.Quantity.n
		if n < 1 {
			n = 1
		}
		if n > len(filtered) {
			n = len(filtered)
		}
	}

	selected := make([]model.Question, len(filtered))
	copy(selected, filtered)
	for i := len(selected) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		selected[i], selected[j] = selected[j], selected[i]
	}
	return selected[:n]
}
