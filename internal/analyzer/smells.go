// Package analyzer contains the smell detectors and the graph/tree
// projections that operate over a built hierarchy session.
package analyzer

import (
	"fmt"
	"time"

	"github.com/panbanda/heir/internal/hierarchy"
	"github.com/panbanda/heir/pkg/models"
)

// Detector runs the structural smell detectors over a session. Every
// method is a pure function of the session's current registry and paths,
// recomputed on each call; nothing is cached, so a SetPaths override is
// always reflected by the next call.
type Detector struct {
	session *hierarchy.Session
}

// NewDetector creates a detector over session.
func NewDetector(session *hierarchy.Session) *Detector {
	return &Detector{session: session}
}

// Overridden returns every method defined in more than one class, mapped
// to its defining classes in canonical discovery order.
func (d *Detector) Overridden() map[string][]string {
	out := make(map[string][]string)
	for name, classes := range d.session.MethodIndex() {
		if len(classes) > 1 {
			out[name] = append([]string{}, classes...)
		}
	}
	return out
}

// OverriddenMethods returns the overridden methods sorted by name, the
// form used for display.
func (d *Detector) OverriddenMethods() []models.OverriddenMethod {
	index := d.session.MethodIndex()
	out := make([]models.OverriddenMethod, 0)
	for _, name := range d.session.MethodNames() {
		if classes := index[name]; len(classes) > 1 {
			out = append(out, models.OverriddenMethod{
				Name:    name,
				Classes: append([]string{}, classes...),
			})
		}
	}
	return out
}

// Unreachable reports overridden method implementations that left-most
// depth-first lookup can never select. The first matching class on a path
// wins, so later occurrences on the same path(s) are dead code. Results
// are ordered by method name, then defining class in canonical order.
func (d *Detector) Unreachable() []models.UnreachableMethod {
	index := d.session.MethodIndex()
	var out []models.UnreachableMethod
	for _, method := range d.session.MethodNames() {
		defs := index[method]
		if len(defs) < 2 {
			continue
		}
		reached := d.reachable(defs)
		for _, class := range defs {
			if !reached[class] {
				out = append(out, models.UnreachableMethod{Class: class, Method: method})
			}
		}
	}
	return out
}

// reachable computes which defining classes resolution can select, using
// only the current paths. Primary dispatch scans the paths in order from
// their start; the first defining class wins. Each reached definer then
// resolves its upward continuation by scanning the path suffixes after its
// own position, paths in order, where again the first defining class wins.
// Definers never reached by this chain are dead.
func (d *Detector) reachable(defs []string) map[string]bool {
	engine := d.session.Engine()
	isDef := make(map[string]bool, len(defs))
	for _, c := range defs {
		isDef[c] = true
	}

	reached := make(map[string]bool, len(defs))
	var queue []string
	if first := firstDefiner(engine, isDef); first != "" {
		queue = append(queue, first)
	}
	for len(queue) > 0 {
		class := queue[0]
		queue = queue[1:]
		if reached[class] {
			continue
		}
		reached[class] = true
		if next := nextDefiner(engine, class, isDef); next != "" && !reached[next] {
			queue = append(queue, next)
		}
	}
	return reached
}

// firstDefiner returns the first defining class found scanning every path
// from its start, in path order.
func firstDefiner(engine *hierarchy.PathEngine, isDef map[string]bool) string {
	for i := 0; i < engine.Len(); i++ {
		for _, class := range engine.At(i) {
			if isDef[class] {
				return class
			}
		}
	}
	return ""
}

// nextDefiner returns the first defining class on the path suffixes
// strictly after class, scanning the paths containing class in order.
func nextDefiner(engine *hierarchy.PathEngine, class string, isDef map[string]bool) string {
	for _, i := range engine.PathsContaining(class) {
		path := engine.At(i)
		pos := -1
		for j, c := range path {
			if c == class {
				pos = j
				break
			}
		}
		if pos < 0 {
			continue
		}
		for _, anc := range path[pos+1:] {
			if isDef[anc] {
				return anc
			}
		}
	}
	return ""
}

// MultipleInheritance returns the classes with more than one parent, in
// canonical discovery order.
func (d *Detector) MultipleInheritance() []string {
	var out []string
	for _, class := range d.session.ClassesList() {
		count, err := d.session.ParentsCount(class)
		if err != nil {
			continue
		}
		if count > 1 {
			out = append(out, class)
		}
	}
	return out
}

// Exported returns, per class, the methods whose true implementation
// class differs from the class they are visible through.
func (d *Detector) Exported() map[string]map[string]string {
	out := make(map[string]map[string]string)
	for _, em := range d.ExportedMethods() {
		if out[em.Class] == nil {
			out[em.Class] = make(map[string]string)
		}
		out[em.Class][em.Method] = em.Origin
	}
	return out
}

// ExportedMethods is the display form of Exported: canonical class order,
// declaration order within a class.
func (d *Detector) ExportedMethods() []models.ExportedMethod {
	var out []models.ExportedMethod
	for _, class := range d.session.ClassesList() {
		methods, err := d.session.OwnMethods(class)
		if err != nil {
			continue
		}
		for _, m := range methods {
			if m.Origin != "" && m.Origin != class {
				out = append(out, models.ExportedMethod{Class: class, Method: m.Name, Origin: m.Origin})
			}
		}
	}
	return out
}

// Report composes the four detector results into a single display
// structure. It fails with ErrUnbalancedReport if the parallel sequences
// backing the overridden section disagree in length.
func (d *Detector) Report() (*models.HierarchyReport, error) {
	overridden := d.OverriddenMethods()
	names := make([]string, 0, len(overridden))
	classLists := make([][]string, 0, len(overridden))
	for _, om := range overridden {
		names = append(names, om.Name)
		classLists = append(classLists, om.Classes)
	}
	if len(names) != len(classLists) {
		return nil, fmt.Errorf("%w: %d methods vs %d class lists",
			hierarchy.ErrUnbalancedReport, len(names), len(classLists))
	}

	unreachable := d.Unreachable()
	mi := d.MultipleInheritance()
	exported := d.ExportedMethods()

	report := &models.HierarchyReport{
		GeneratedAt:         time.Now().UTC(),
		Target:              d.session.Target(),
		Fingerprint:         d.session.Fingerprint(),
		Overridden:          overridden,
		Unreachable:         unreachable,
		MultipleInheritance: mi,
		Exported:            exported,
	}
	report.Summary = models.ReportSummary{
		Classes:             d.session.ClassesCount(),
		Paths:               len(d.session.Paths()),
		OverriddenMethods:   len(overridden),
		UnreachableMethods:  len(unreachable),
		MultipleInheritance: len(mi),
		ExportedMethods:     len(exported),
	}
	return report, nil
}
