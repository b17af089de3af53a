package shortlist

import (
	"math/rand/v2"
	"sync"
)

const DefaultSize = 5

// Sampler draws bounded random shortlists from an applicant list. Results
// differ between calls unless the caller pins the random source.
type Sampler struct {
	mu   sync.Mutex
	rng  *rand.Rand
	size int
}

// NewSampler returns a sampler seeded from the runtime's random source.
func NewSampler(size int) *Sampler {
	return NewSamplerWithRand(size, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewSamplerWithRand uses the given source. Tests pass a seeded one.
func NewSamplerWithRand(size int, rng *rand.Rand) *Sampler {
	if size <= 0 {
		size = DefaultSize
	}
	return &Sampler{rng: rng, size: size}
}

func (s *Sampler) Size() int {
	return s.size
}

// Sample shortlists with the configured size.
func (s *Sampler) Sample(applied []string) []string {
	return s.SampleN(applied, s.size)
}

// SampleN shuffles a copy of applied and returns its first min(k, len) ids.
// The input slice is never modified.
func (s *Sampler) SampleN(applied []string, k int) []string {
	if k <= 0 || len(applied) == 0 {
		return []string{}
	}

	shuffled := make([]string, len(applied))
	copy(shuffled, applied)

	s.mu.Lock()
	s.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	s.mu.Unlock()

	if k > len(shuffled) {
		k = len(shuffled)
	}
	return shuffled[:k]
}
