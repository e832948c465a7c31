package analyzer

import (
	"regexp"
	"runtime"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/panbanda/heir/internal/hierarchy"
	"github.com/panbanda/heir/pkg/models"
	"github.com/panbanda/heir/pkg/provider"
)

// Batch analyzes every root class of a namespace in one pass. Sessions
// are independent and share no mutable state, so they are built
// concurrently; the provider only needs to be safe for concurrent reads.
type Batch struct {
	prov        provider.Provider
	workers     int
	sessionOpts []hierarchy.Option
}

// BatchOption is a functional option for configuring Batch.
type BatchOption func(*Batch)

// WithWorkers sets the maximum number of concurrent session builds.
func WithWorkers(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithSessionOptions applies the given options to every session the batch
// constructs.
func WithSessionOptions(opts ...hierarchy.Option) BatchOption {
	return func(b *Batch) {
		b.sessionOpts = opts
	}
}

// NewBatch creates a batch analyzer over prov.
func NewBatch(prov provider.Provider, opts ...BatchOption) *Batch {
	b := &Batch{
		prov:    prov,
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Roots returns the classes matching namespace that are not a direct
// parent of any other matching class: the most-derived classes, each the
// target of one session. Input order is preserved.
func (b *Batch) Roots(namespace *regexp.Regexp, classes []string) []string {
	var matched []string
	for _, c := range classes {
		if namespace.MatchString(c) {
			matched = append(matched, c)
		}
	}

	isParent := make(map[string]bool)
	for _, c := range matched {
		for _, p := range b.prov.DirectParents(c) {
			isParent[p] = true
		}
	}

	var roots []string
	for _, c := range matched {
		if !isParent[c] {
			roots = append(roots, c)
		}
	}
	return roots
}

// Analyze builds one session per root class concurrently, runs the
// detectors over each, and merges the graph views into a single combined
// view. onProgress, when non-nil, is called once per completed session
// and must be safe for concurrent use.
func (b *Batch) Analyze(namespace *regexp.Regexp, classes []string, onProgress func()) (*models.BatchReport, error) {
	roots := b.Roots(namespace, classes)

	sessions := make([]*hierarchy.Session, len(roots))
	errs := make([]error, len(roots))
	p := pool.New().WithMaxGoroutines(b.workers)
	for i, root := range roots {
		p.Go(func() {
			sessions[i], errs[i] = hierarchy.NewSession(b.prov, root, b.sessionOpts...)
			if onProgress != nil {
				onProgress()
			}
		})
	}
	p.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	result := &models.BatchReport{
		GeneratedAt: time.Now().UTC(),
		Namespace:   namespace.String(),
		Roots:       roots,
		Reports:     make([]*models.HierarchyReport, 0, len(sessions)),
		Graph:       models.NewInheritanceGraph(),
	}
	for _, session := range sessions {
		report, err := NewDetector(session).Report()
		if err != nil {
			return nil, err
		}
		result.Reports = append(result.Reports, report)
		result.Graph.Merge(BuildGraph(session))
	}
	return result, nil
}
