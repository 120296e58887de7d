package giveaway

import (
	crand "crypto/rand"
	"math/rand/v2"
	"sync"

	"giveaway-picker/internal/model"
)

// Selector draws winners with a uniform partial Fisher-Yates shuffle.
// It is safe for concurrent use.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector returns a selector backed by ChaCha8 seeded from crypto/rand.
func NewSelector() *Selector {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return &Selector{rng: rand.New(rand.NewChaCha8(seed))}
}

// NewSeededSelector returns a reproducible selector, for tests and replays.
func NewSeededSelector(seed uint64) *Selector {
	return &Selector{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Select draws min(n, len(unique comments)) winners. Positions run 1..k in
// draw order. The input slice is not modified.
func (s *Selector) Select(comments []model.Comment, n int) []model.Winner {
	pool := Unique(comments)
	k := min(n, len(pool))
	if k <= 0 {
		return []model.Winner{}
	}

	s.mu.Lock()
	for i := 0; i < k; i++ {
		j := i + s.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	s.mu.Unlock()

	winners := make([]model.Winner, k)
	for i := 0; i < k; i++ {
		winners[i] = model.Winner{Comment: pool[i], Position: i + 1}
	}
	return winners
}
