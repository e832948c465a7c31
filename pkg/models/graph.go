package models

import (
	"fmt"
	"strings"
)

// GraphNode represents a class in the inheritance graph.
type GraphNode struct {
	ID         string `json:"id"`
	Methods    int    `json:"methods"`
	VisitCount int    `json:"visit_count"`
}

// GraphEdge is a directed child-to-parent edge; inheritance flows upward.
type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// InheritanceGraph is the directed-graph projection of a registry: one
// node per class, one edge per child-to-parent link.
type InheritanceGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// NewInheritanceGraph creates an empty graph.
func NewInheritanceGraph() *InheritanceGraph {
	return &InheritanceGraph{
		Nodes: make([]GraphNode, 0),
		Edges: make([]GraphEdge, 0),
	}
}

// AddNode appends a node.
func (g *InheritanceGraph) AddNode(node GraphNode) {
	g.Nodes = append(g.Nodes, node)
}

// AddEdge appends an edge.
func (g *InheritanceGraph) AddEdge(edge GraphEdge) {
	g.Edges = append(g.Edges, edge)
}

// Merge unions other into g, de-duplicating nodes by ID and edges by
// endpoint pair. Node order follows first appearance across the inputs.
func (g *InheritanceGraph) Merge(other *InheritanceGraph) {
	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		seen[n.ID] = true
	}
	for _, n := range other.Nodes {
		if !seen[n.ID] {
			seen[n.ID] = true
			g.Nodes = append(g.Nodes, n)
		}
	}

	edges := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		edges[e.From+"\x00"+e.To] = true
	}
	for _, e := range other.Edges {
		key := e.From + "\x00" + e.To
		if !edges[key] {
			edges[key] = true
			g.Edges = append(g.Edges, e)
		}
	}
}

// ToMermaid generates Mermaid diagram syntax. Edges point child to parent,
// rendered bottom-up.
func (g *InheritanceGraph) ToMermaid() string {
	var b strings.Builder
	b.WriteString("graph BT\n")
	for _, node := range g.Nodes {
		fmt.Fprintf(&b, "    %s[\"%s\"]\n", sanitizeGraphID(node.ID), node.ID)
	}
	for _, edge := range g.Edges {
		fmt.Fprintf(&b, "    %s --> %s\n", sanitizeGraphID(edge.From), sanitizeGraphID(edge.To))
	}
	return b.String()
}

// ToDOT generates Graphviz DOT syntax with upward rank direction.
func (g *InheritanceGraph) ToDOT() string {
	var b strings.Builder
	b.WriteString("digraph hierarchy {\n")
	b.WriteString("    rankdir=BT;\n")
	b.WriteString("    node [shape=box];\n")
	for _, node := range g.Nodes {
		fmt.Fprintf(&b, "    %q;\n", node.ID)
	}
	for _, edge := range g.Edges {
		fmt.Fprintf(&b, "    %q -> %q;\n", edge.From, edge.To)
	}
	b.WriteString("}\n")
	return b.String()
}

// sanitizeGraphID makes an ID safe for Mermaid.
func sanitizeGraphID(id string) string {
	var b strings.Builder
	for _, c := range id {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			b.WriteRune(c)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// TreeNode is one node of the rooted tree view: the root is the analysis
// target and each node's children are its parent classes, so shared
// ancestors appear once per path that reaches them.
type TreeNode struct {
	Name     string      `json:"name"`
	Children []*TreeNode `json:"children,omitempty"`
}

// GraphMetrics holds computed metrics for an inheritance graph.
type GraphMetrics struct {
	NodeMetrics []NodeMetric `json:"node_metrics"`
	Summary     GraphSummary `json:"summary"`
}

// NodeMetric is the per-class metric set.
type NodeMetric struct {
	ID        string  `json:"id"`
	PageRank  float64 `json:"pagerank"`
	InDegree  int     `json:"in_degree"`
	OutDegree int     `json:"out_degree"`
}

// GraphSummary provides aggregate graph statistics.
type GraphSummary struct {
	TotalNodes int     `json:"total_nodes"`
	TotalEdges int     `json:"total_edges"`
	AvgDegree  float64 `json:"avg_degree"`
	Components int     `json:"components"`
}
