package hierarchy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/panbanda/heir/pkg/provider"
)

// builder performs one pre-order depth-first traversal from the target
// class, populating the registry and extending the path engine in
// lock-step.
type builder struct {
	prov          provider.Provider
	ignore        *regexp.Regexp
	universalRoot string
	reg           *Registry
	engine        *PathEngine
	expanding     map[string]bool // in-progress on the current walk
}

func (b *builder) build(target string) error {
	b.expanding = make(map[string]bool)
	return b.visit(target, nil)
}

// visit registers class on first discovery, extends the search paths, and
// recurses into each parent in declared order. A class reached while still
// being expanded on the current walk is a cycle; a class already
// registered only has its visit count incremented, since its subtree was
// registered on the first visit.
func (b *builder) visit(class string, trail []string) error {
	if b.expanding[class] {
		cycle := append(append([]string{}, trail...), class)
		return fmt.Errorf("%w: %s", ErrCircularInheritance, strings.Join(cycle, " -> "))
	}
	if node, ok := b.reg.Node(class); ok {
		node.VisitCount++
		return nil
	}

	node := b.reg.Register(class)
	node.Parents = b.parents(class)
	node.Methods = b.prov.OwnMethods(class)
	b.engine.Extend(class, node.Parents)

	b.expanding[class] = true
	trail = append(trail, class)
	for _, parent := range node.Parents {
		if err := b.visit(parent, trail); err != nil {
			return err
		}
		b.reg.AddChild(parent, class)
	}
	delete(b.expanding, class)
	return nil
}

// parents resolves the post-filter parent list for class. Parents matching
// the ignore pattern are dropped along with their entire subtree (they are
// never descended into). A class left with zero parents receives the
// synthetic universal root when that behavior is enabled; the root itself
// never does, so it terminates every path it appears on.
func (b *builder) parents(class string) []string {
	declared := b.prov.DirectParents(class)
	parents := make([]string, 0, len(declared))
	seen := make(map[string]bool, len(declared))
	for _, p := range declared {
		if seen[p] {
			continue
		}
		seen[p] = true
		if b.ignore != nil && b.ignore.MatchString(p) {
			continue
		}
		parents = append(parents, p)
	}
	if len(parents) == 0 && b.universalRoot != "" && class != b.universalRoot {
		parents = append(parents, b.universalRoot)
	}
	return parents
}
