package hierarchy

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/panbanda/heir/pkg/provider"
)

// Session owns one fully-built hierarchy: a registry of class nodes, the
// canonical discovery order, the method index, and the search paths. The
// entire build completes inside NewSession before any query is answered;
// afterwards the session is immutable except for SetPaths. Independent
// sessions share no mutable state and may be built concurrently as long as
// the provider is safe for concurrent reads.
type Session struct {
	target      string
	reg         *Registry
	engine      *PathEngine
	methodIndex map[string][]string
	methodNames []string // sorted, for deterministic iteration
	fingerprint string
}

// Option configures session construction.
type Option func(*sessionOptions)

type sessionOptions struct {
	ignorePattern string
	universalRoot string
	fingerprint   string
}

// WithIgnorePattern prunes classes matching the regular expression, along
// with their entire subtrees, from the traversal.
func WithIgnorePattern(pattern string) Option {
	return func(o *sessionOptions) {
		o.ignorePattern = pattern
	}
}

// WithUniversalRoot substitutes the named synthetic root for classes that
// otherwise have zero parents. An empty name disables the behavior.
func WithUniversalRoot(name string) Option {
	return func(o *sessionOptions) {
		o.universalRoot = name
	}
}

// WithFingerprint records a content fingerprint of the analyzed input for
// report metadata.
func WithFingerprint(fp string) Option {
	return func(o *sessionOptions) {
		o.fingerprint = fp
	}
}

// NewSession builds the hierarchy reachable from target and finalizes the
// method index. It fails with ErrInvalidArgument on a missing target or an
// ignore pattern that does not compile, and with ErrCircularInheritance
// when the provider reports a cyclic hierarchy.
func NewSession(prov provider.Provider, target string, opts ...Option) (*Session, error) {
	if target == "" {
		return nil, fmt.Errorf("%w: no target class supplied", ErrInvalidArgument)
	}
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}

	var ignore *regexp.Regexp
	if o.ignorePattern != "" {
		re, err := regexp.Compile(o.ignorePattern)
		if err != nil {
			return nil, fmt.Errorf("%w: ignore pattern %q: %v", ErrInvalidArgument, o.ignorePattern, err)
		}
		ignore = re
	}

	reg := NewRegistry()
	b := &builder{
		prov:          prov,
		ignore:        ignore,
		universalRoot: o.universalRoot,
		reg:           reg,
		engine:        NewPathEngine(reg, target),
	}
	if err := b.build(target); err != nil {
		return nil, err
	}

	index := reg.MethodIndex()
	names := make([]string, 0, len(index))
	for name := range index {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Session{
		target:      target,
		reg:         reg,
		engine:      b.engine,
		methodIndex: index,
		methodNames: names,
		fingerprint: o.fingerprint,
	}, nil
}

// Target returns the class the session was built from.
func (s *Session) Target() string {
	return s.target
}

// Fingerprint returns the input fingerprint, if one was recorded.
func (s *Session) Fingerprint() string {
	return s.fingerprint
}

// ClassesList returns every discovered class in canonical search order.
func (s *Session) ClassesList() []string {
	return s.reg.Classes()
}

// ClassesCount returns the number of discovered classes.
func (s *Session) ClassesCount() int {
	return s.reg.Len()
}

// ParentsList returns the post-filter parents of class, defaulting to the
// target when class is empty.
func (s *Session) ParentsList(class string) ([]string, error) {
	node, err := s.node(class)
	if err != nil {
		return nil, err
	}
	return append([]string{}, node.Parents...), nil
}

// ParentsCount returns the number of parents of class.
func (s *Session) ParentsCount(class string) (int, error) {
	node, err := s.node(class)
	if err != nil {
		return 0, err
	}
	return len(node.Parents), nil
}

// ChildrenList returns the known children of class in insertion order,
// defaulting to the target when class is empty.
func (s *Session) ChildrenList(class string) ([]string, error) {
	node, err := s.node(class)
	if err != nil {
		return nil, err
	}
	return append([]string{}, node.Children...), nil
}

// ChildrenCount returns the number of known children of class.
func (s *Session) ChildrenCount(class string) (int, error) {
	node, err := s.node(class)
	if err != nil {
		return 0, err
	}
	return len(node.Children), nil
}

// MethodsList returns the names of methods declared directly on class, in
// declaration order, defaulting to the target when class is empty.
func (s *Session) MethodsList(class string) ([]string, error) {
	methods, err := s.OwnMethods(class)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.Name
	}
	return names, nil
}

// MethodsCount returns the number of methods declared directly on class.
func (s *Session) MethodsCount(class string) (int, error) {
	node, err := s.node(class)
	if err != nil {
		return 0, err
	}
	return len(node.Methods), nil
}

// OwnMethods returns the methods declared directly on class, including
// origin information for re-exported functions.
func (s *Session) OwnMethods(class string) ([]provider.Method, error) {
	node, err := s.node(class)
	if err != nil {
		return nil, err
	}
	return append([]provider.Method{}, node.Methods...), nil
}

// VisitCount returns how many ancestor paths reached class during the
// build.
func (s *Session) VisitCount(class string) (int, error) {
	node, err := s.node(class)
	if err != nil {
		return 0, err
	}
	return node.VisitCount, nil
}

// MethodIndex maps each method name to its defining classes in canonical
// search order. The returned map is shared; callers must not mutate it.
func (s *Session) MethodIndex() map[string][]string {
	return s.methodIndex
}

// MethodNames returns all indexed method names, sorted.
func (s *Session) MethodNames() []string {
	return append([]string{}, s.methodNames...)
}

// Paths returns a copy of the current search paths.
func (s *Session) Paths() [][]string {
	return s.engine.Paths()
}

// SetPaths unconditionally replaces the search paths. The builder is not
// re-run; subsequent detector calls operate on the replacement as-is.
func (s *Session) SetPaths(paths [][]string) {
	s.engine.SetPaths(paths)
}

// Engine exposes the path engine for detectors.
func (s *Session) Engine() *PathEngine {
	return s.engine
}

func (s *Session) node(class string) (*ClassNode, error) {
	if class == "" {
		class = s.target
	}
	node, ok := s.reg.Node(class)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, class)
	}
	return node, nil
}
