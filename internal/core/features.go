package core

import (
	"sort"
)

// FeatureSet is the universe of feature names a grammar can produce.
type FeatureSet map[string]struct{}

func (s FeatureSet) Add(name string) {
	s[name] = struct{}{}
}

func (s FeatureSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the set in sorted order.
func (s FeatureSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FeatureVector is a depth-indexed histogram keyed by rule name.
type FeatureVector struct {
	counts map[string][]int
}

func NewFeatureVector() *FeatureVector {
	return &FeatureVector{counts: make(map[string][]int)}
}

// NewFeatureVectorFor seeds an empty entry for every name in universe so
// vectors built from the same grammar share their keys.
func NewFeatureVectorFor(universe FeatureSet) *FeatureVector {
	fv := NewFeatureVector()
	for name := range universe {
		fv.counts[name] = nil
	}
	return fv
}

// Tally increments the count for name at depth.
func (fv *FeatureVector) Tally(name string, depth int) {
	if depth < 0 {
		panic("core: negative feature depth")
	}
	vec := fv.counts[name]
	for len(vec) <= depth {
		vec = append(vec, 0)
	}
	vec[depth]++
	fv.counts[name] = vec
}

// Get returns the per-depth counts for name.
func (fv *FeatureVector) Get(name string) []int {
	return fv.counts[name]
}

// Total returns the count for name summed over every depth.
func (fv *FeatureVector) Total(name string) int {
	total := 0
	for _, c := range fv.counts[name] {
		total += c
	}
	return total
}

// Names returns every key in sorted order, including untallied ones.
func (fv *FeatureVector) Names() []string {
	names := make([]string, 0, len(fv.counts))
	for name := range fv.counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MaxDepth returns one past the deepest tallied depth.
func (fv *FeatureVector) MaxDepth() int {
	max := 0
	for _, vec := range fv.counts {
		if len(vec) > max {
			max = len(vec)
		}
	}
	return max
}

// Flatten lays the histogram out as len(universe)*depth numbers, names in
// sorted order, each followed by its counts at depths 0..depth-1.
func (fv *FeatureVector) Flatten(universe FeatureSet, depth int) []int {
	names := universe.Names()
	out := make([]int, 0, len(names)*depth)
	for _, name := range names {
		vec := fv.counts[name]
		for d := 0; d < depth; d++ {
			if d < len(vec) {
				out = append(out, vec[d])
			} else {
				out = append(out, 0)
			}
		}
	}
	return out
}
