package hierarchy

import "github.com/RoaringBitmap/roaring/v2"

// PathEngine derives all left-most depth-first search paths from the
// target class to the hierarchy roots, in lock-step with the builder's
// traversal. Each path carries a bitmap of class ordinals so detectors can
// skip paths that do not contain a class without a linear scan; the index
// is rebuilt lazily because ordinals for newly-appended parents are only
// assigned once the builder visits them.
type PathEngine struct {
	reg     *Registry
	paths   [][]string
	members []*roaring.Bitmap // nil when stale
}

// NewPathEngine seeds the engine with the single path [[target]].
func NewPathEngine(reg *Registry, target string) *PathEngine {
	return &PathEngine{
		reg:   reg,
		paths: [][]string{{target}},
	}
}

// Extend replaces every path whose last element is class with one sibling
// path per parent, preserving parent declaration order. It must run
// exactly once per class, at first discovery, before the builder recurses
// into that class's parents; a class with no parents leaves its paths as
// termini.
func (e *PathEngine) Extend(class string, parents []string) {
	if len(parents) == 0 {
		return
	}

	next := make([][]string, 0, len(e.paths))
	for _, p := range e.paths {
		if p[len(p)-1] != class {
			next = append(next, p)
			continue
		}
		for _, parent := range parents {
			branch := make([]string, len(p), len(p)+1)
			copy(branch, p)
			next = append(next, append(branch, parent))
		}
	}
	e.paths = next
	e.members = nil
}

// Paths returns a copy of the current search paths.
func (e *PathEngine) Paths() [][]string {
	out := make([][]string, len(e.paths))
	for i, p := range e.paths {
		out[i] = make([]string, len(p))
		copy(out[i], p)
	}
	return out
}

// SetPaths replaces the search paths without validation. Callers may
// substitute paths reflecting an alternate resolution order; detectors use
// the replacement as-is on their next call.
func (e *PathEngine) SetPaths(paths [][]string) {
	e.paths = make([][]string, len(paths))
	for i, p := range paths {
		e.paths[i] = make([]string, len(p))
		copy(e.paths[i], p)
	}
	e.members = nil
}

// PathsContaining returns the indices, in path order, of paths that
// contain class.
func (e *PathEngine) PathsContaining(class string) []int {
	ord, ok := e.reg.Ordinal(class)
	if !ok {
		return nil
	}
	e.ensureIndex()
	var out []int
	for i, bm := range e.members {
		if bm.Contains(ord) {
			out = append(out, i)
		}
	}
	return out
}

// Len returns the number of search paths.
func (e *PathEngine) Len() int {
	return len(e.paths)
}

// At returns the path at index i without copying. The caller must not
// mutate it.
func (e *PathEngine) At(i int) []string {
	return e.paths[i]
}

// ensureIndex rebuilds the per-path ordinal bitmaps. Classes the registry
// does not know (possible after SetPaths) are simply not indexed.
func (e *PathEngine) ensureIndex() {
	if e.members != nil {
		return
	}
	e.members = make([]*roaring.Bitmap, len(e.paths))
	for i, p := range e.paths {
		bm := roaring.New()
		for _, name := range p {
			if ord, ok := e.reg.Ordinal(name); ok {
				bm.Add(ord)
			}
		}
		e.members[i] = bm
	}
}
