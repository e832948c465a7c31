package analyzer

import (
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/panbanda/heir/internal/hierarchy"
	"github.com/panbanda/heir/pkg/models"
)

// BuildGraph projects a session's registry into a directed inheritance
// graph: one node per class in canonical order, one child-to-parent edge
// per parent link.
func BuildGraph(session *hierarchy.Session) *models.InheritanceGraph {
	g := models.NewInheritanceGraph()
	for _, class := range session.ClassesList() {
		methods, _ := session.MethodsCount(class)
		visits, _ := session.VisitCount(class)
		g.AddNode(models.GraphNode{ID: class, Methods: methods, VisitCount: visits})

		parents, err := session.ParentsList(class)
		if err != nil {
			continue
		}
		for _, parent := range parents {
			g.AddEdge(models.GraphEdge{From: class, To: parent})
		}
	}
	return g
}

// BuildTree projects the session into a rooted tree: the root is the
// target and each node's children are its parent classes. Shared ancestors
// are expanded once per path that reaches them, which is exactly the shape
// of the search paths.
func BuildTree(session *hierarchy.Session) *models.TreeNode {
	return treeNode(session, session.Target())
}

func treeNode(session *hierarchy.Session, class string) *models.TreeNode {
	node := &models.TreeNode{Name: class}
	parents, err := session.ParentsList(class)
	if err != nil {
		return node
	}
	for _, parent := range parents {
		node.Children = append(node.Children, treeNode(session, parent))
	}
	return node
}

// Metrics computes degree, PageRank, and connected-component statistics
// for an inheritance graph. PageRank over the child-to-parent digraph
// ranks the ancestors the most lookup traffic flows through.
func Metrics(g *models.InheritanceGraph) *models.GraphMetrics {
	metrics := &models.GraphMetrics{
		NodeMetrics: make([]models.NodeMetric, 0, len(g.Nodes)),
	}
	if len(g.Nodes) == 0 {
		return metrics
	}

	directed := simple.NewDirectedGraph()
	undirected := simple.NewUndirectedGraph()
	idFor := make(map[string]int64, len(g.Nodes))
	for i, n := range g.Nodes {
		id := int64(i)
		idFor[n.ID] = id
		directed.AddNode(simple.Node(id))
		undirected.AddNode(simple.Node(id))
	}

	inDegree := make(map[string]int, len(g.Nodes))
	outDegree := make(map[string]int, len(g.Nodes))
	for _, e := range g.Edges {
		from, okFrom := idFor[e.From]
		to, okTo := idFor[e.To]
		if !okFrom || !okTo || from == to {
			continue
		}
		outDegree[e.From]++
		inDegree[e.To]++
		directed.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
		undirected.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}

	ranks := network.PageRank(directed, 0.85, 1e-6)
	for _, n := range g.Nodes {
		metrics.NodeMetrics = append(metrics.NodeMetrics, models.NodeMetric{
			ID:        n.ID,
			PageRank:  ranks[idFor[n.ID]],
			InDegree:  inDegree[n.ID],
			OutDegree: outDegree[n.ID],
		})
	}

	metrics.Summary = models.GraphSummary{
		TotalNodes: len(g.Nodes),
		TotalEdges: len(g.Edges),
		Components: len(topo.ConnectedComponents(undirected)),
	}
	if len(g.Nodes) > 0 {
		metrics.Summary.AvgDegree = float64(len(g.Edges)) / float64(len(g.Nodes))
	}
	return metrics
}
