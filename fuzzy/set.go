package fuzzy

import (
	"log"
	"sync"
	"time"
)

// Variant is one element of a fuzzy set: a near-spelling of a query term and
// its edit-distance offset from that term.
type Variant struct {
	Word     string
	Distance int
}

// Config controls fuzzy-set enumeration: the maximum edit distance to
// consider, a result cap, and a wall-clock budget. A zero MaxResults
// disables the result cap; a zero TimeLimit uses DefaultTimeLimit.
// MaxDistance must be positive for any variant beyond the term itself to be
// produced.
type Config struct {
	MaxDistance int
	MaxResults  int
	TimeLimit   time.Duration
}

// DefaultTimeLimit is the typo-search budget: generous enough to scan a
// context's term vocabulary without stalling a query.
const DefaultTimeLimit = 50 * time.Millisecond

// Finder enumerates fuzzy sets against a cached vocabulary of known terms:
// a cache keyed by (term, maxDistance) and a dual stopping criterion
// (result count or elapsed time, whichever comes first).
type Finder struct {
	mu    sync.RWMutex
	terms []string

	cacheMu      sync.Mutex
	cache        map[string][]Variant
	maxCacheSize int
}

// NewFinder returns a Finder with no known terms; call UpdateTerms once the
// vocabulary is available (or after it changes).
func NewFinder() *Finder {
	return &Finder{
		cache:        make(map[string][]Variant),
		maxCacheSize: 1000,
	}
}

// UpdateTerms replaces the known vocabulary and invalidates the cache —
// call whenever the underlying context index's key set changes.
func (f *Finder) UpdateTerms(terms []string) {
	cp := make([]string, len(terms))
	copy(cp, terms)

	f.mu.Lock()
	f.terms = cp
	f.mu.Unlock()

	f.cacheMu.Lock()
	f.cache = make(map[string][]Variant)
	f.cacheMu.Unlock()
}

// Set returns {(w, 0)} ∪ fuzz(cfg, w): the term itself at distance 0, plus
// every known term within cfg.MaxDistance. A zero-radius fuzzy set reduces
// to just {(w, 0)}.
func (f *Finder) Set(cfg Config, w string) []Variant {
	out := make([]Variant, 0, 1+cfg.MaxResults)
	out = append(out, Variant{Word: w, Distance: 0})
	out = append(out, f.fuzz(cfg, w)...)
	return out
}

// fuzz enumerates near-spellings of w from the known vocabulary, excluding
// w itself.
func (f *Finder) fuzz(cfg Config, w string) []Variant {
	if cfg.MaxDistance <= 0 || w == "" {
		return nil
	}

	cacheKey := w + "\x00" + string(rune(cfg.MaxDistance))
	f.cacheMu.Lock()
	if cached, ok := f.cache[cacheKey]; ok {
		f.cacheMu.Unlock()
		return limitResults(cached, cfg.MaxResults)
	}
	f.cacheMu.Unlock()

	timeLimit := cfg.TimeLimit
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}

	f.mu.RLock()
	terms := f.terms
	f.mu.RUnlock()

	variants := f.findWithDualCriteria(w, cfg.MaxDistance, cfg.MaxResults, timeLimit, terms)

	f.cacheMu.Lock()
	if len(f.cache) < f.maxCacheSize {
		f.cache[cacheKey] = variants
	}
	f.cacheMu.Unlock()

	return variants
}

func (f *Finder) findWithDualCriteria(w string, maxDistance, maxResults int, timeLimit time.Duration, terms []string) []Variant {
	termLen := len([]rune(w))
	out := make([]Variant, 0, maxIntOrDefault(maxResults, 8))
	start := time.Now()

	for i, candidate := range terms {
		if time.Since(start) >= timeLimit {
			remaining := len(terms) - i
			if (maxResults <= 0 || len(out) < maxResults) && remaining > 0 {
				log.Printf("fuzzy: time limit reached after %.1fms, %d/%d variants, %d terms unchecked for %q (maxDistance=%d)",
					float64(timeLimit.Nanoseconds())/1e6, len(out), maxResults, remaining, w, maxDistance)
			}
			break
		}

		if candidate == w {
			continue
		}

		candidateLen := len([]rune(candidate))
		if abs(candidateLen-termLen) > maxDistance {
			continue
		}

		dist := EditDistance(w, candidate, maxDistance)
		if dist > 0 && dist <= maxDistance {
			out = append(out, Variant{Word: candidate, Distance: dist})
			if maxResults > 0 && len(out) >= maxResults {
				break
			}
		}
	}

	return out
}

func limitResults(vs []Variant, maxResults int) []Variant {
	if maxResults > 0 && len(vs) > maxResults {
		return vs[:maxResults]
	}
	return vs
}

func maxIntOrDefault(n, def int) int {
	if n > 0 {
		return n
	}
	return def
}
