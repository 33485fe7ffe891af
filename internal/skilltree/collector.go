package skilltree

import (
	"sort"
	"sync"

	"github.com/skilltreedocs/skilltreedocs/internal/model"
)

// SkillSet is the set of known skill identifiers for one load pass.
type SkillSet map[string]struct{}

// NewSkillSet builds a set from already normalized identifiers.
func NewSkillSet(identifiers ...string) SkillSet {
	s := make(SkillSet, len(identifiers))
	for _, id := range identifiers {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is a known skill.
func (s SkillSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the identifiers in lexical order.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Collector accumulates missing references across concurrently processed
// tabs. Order within one tab is preserved; order across tabs follows
// completion order.
type Collector struct {
	mu      sync.Mutex
	entries []model.MissingReference
}

func NewCollector() *Collector {
	return &Collector{}
}

// Add appends one reference.
func (c *Collector) Add(ref model.MissingReference) {
	c.mu.Lock()
	c.entries = append(c.entries, ref)
	c.mu.Unlock()
}

// AddAll appends a tab's references as one contiguous batch.
func (c *Collector) AddAll(refs []model.MissingReference) {
	if len(refs) == 0 {
		return
	}
	c.mu.Lock()
	c.entries = append(c.entries, refs...)
	c.mu.Unlock()
}

func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Snapshot returns a copy of everything collected so far.
func (c *Collector) Snapshot() []model.MissingReference {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.MissingReference, len(c.entries))
	copy(out, c.entries)
	return out
}
