package hierarchy

import "github.com/panbanda/heir/pkg/provider"

// ClassNode is a single class in the registry. Nodes are exclusively owned
// by their registry; accessors on Session hand out copies.
type ClassNode struct {
	Name       string
	Parents    []string // declared order, unique, post ignore-filter
	Children   []string // insertion-ordered, unique
	Methods    []provider.Method
	VisitCount int
}

// Registry maps class names to nodes and records first-discovery order.
// The discovery order (pre-order DFS from the target) is the canonical
// search order used for sorting and display: every class appears exactly
// once regardless of how many ancestor paths reach it.
type Registry struct {
	nodes   map[string]*ClassNode
	order   []string
	ordinal map[string]uint32
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		nodes:   make(map[string]*ClassNode),
		ordinal: make(map[string]uint32),
	}
}

// Register adds a class on first discovery and returns its node. The
// node's VisitCount starts at 1.
func (r *Registry) Register(name string) *ClassNode {
	node := &ClassNode{Name: name, VisitCount: 1}
	r.nodes[name] = node
	r.ordinal[name] = uint32(len(r.order))
	r.order = append(r.order, name)
	return node
}

// Node returns the node for name, if registered.
func (r *Registry) Node(name string) (*ClassNode, bool) {
	n, ok := r.nodes[name]
	return n, ok
}

// Classes returns the canonical discovery order.
func (r *Registry) Classes() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered classes.
func (r *Registry) Len() int {
	return len(r.order)
}

// Ordinal returns the class's position in the discovery order.
func (r *Registry) Ordinal(name string) (uint32, bool) {
	ord, ok := r.ordinal[name]
	return ord, ok
}

// AddChild appends child to parent's children if absent. The parent must
// already be registered.
func (r *Registry) AddChild(parent, child string) {
	node, ok := r.nodes[parent]
	if !ok {
		return
	}
	for _, c := range node.Children {
		if c == child {
			return
		}
	}
	node.Children = append(node.Children, child)
}

// MethodIndex maps each method name to the classes defining it, ordered by
// discovery order. Built once after traversal completes.
func (r *Registry) MethodIndex() map[string][]string {
	index := make(map[string][]string)
	for _, name := range r.order {
		for _, m := range r.nodes[name].Methods {
			index[m.Name] = append(index[m.Name], name)
		}
	}
	return index
}
