package query

import "fmt"

// Stats observes the evaluator. It never influences results.
type Stats interface {
	// RequestEvaluated is called once per evaluation function that
	// returned an answer; failed evaluations are not counted.
	RequestEvaluated(kind Kind)
	// CacheHit is called when a cached answer is returned.
	CacheHit(kind Kind)
}

// Counters is the default Stats: per-kind evaluation and hit counts.
type Counters struct {
	evaluated [kindCount]int
	hits      [kindCount]int
}

func NewCounters() *Counters { return &Counters{} }

func (c *Counters) RequestEvaluated(kind Kind) { c.evaluated[kind]++ }
func (c *Counters) CacheHit(kind Kind) { c.hits[kind]++ }

// Evaluated returns how many times requests of kind were computed.
func (c *Counters) Evaluated(kind Kind) int { return c.evaluated[kind] }

// Hits returns how many requests of kind were answered from the cache.
func (c *Counters) Hits(kind Kind) int { return c.hits[kind] }

// Total sums both counters over all kinds.
func (c *Counters) Total() (evaluated, hits int) {
	for k := range kindCount {
		evaluated += c.evaluated[k]
		hits += c.hits[k]
	}
	return evaluated, hits
}

// Merge adds other into c. Used to aggregate per-session counters.
func (c *Counters) Merge(other *Counters) {
	if other == nil {
		return
	}
	for k := range kindCount {
		c.evaluated[k] += other.evaluated[k]
		c.hits[k] += other.hits[k]
	}
}

func (c *Counters) String() string {
	ev, hits := c.Total()
	return fmt.Sprintf("%d evaluated, %d cache hits", ev, hits)
}

type nopStats struct{}

func (nopStats) RequestEvaluated(Kind) {}
func (nopStats) CacheHit(Kind) {}
