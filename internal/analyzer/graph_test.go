package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panbanda/heir/pkg/models"
)

func TestBuildGraphDiamond(t *testing.T) {
	g := BuildGraph(diamondSession(t))

	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	assert.Equal(t, []string{"Grandchild", "Child1", "Abstract", "Child2"}, ids)

	assert.Equal(t, []models.GraphEdge{
		{From: "Grandchild", To: "Child1"},
		{From: "Grandchild", To: "Child2"},
		{From: "Child1", To: "Abstract"},
		{From: "Child2", To: "Abstract"},
	}, g.Edges)

	assert.Equal(t, 2, g.Nodes[2].VisitCount, "Abstract is reached by both branches")
}

func TestGraphMerge(t *testing.T) {
	a := BuildGraph(diamondSession(t))
	b := BuildGraph(diamondSession(t))

	merged := models.NewInheritanceGraph()
	merged.Merge(a)
	merged.Merge(b)

	assert.Len(t, merged.Nodes, 4, "nodes deduplicate by ID")
	assert.Len(t, merged.Edges, 4, "edges deduplicate by endpoints")
}

func TestBuildTree(t *testing.T) {
	tree := BuildTree(diamondSession(t))

	require.Equal(t, "Grandchild", tree.Name)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, "Child1", tree.Children[0].Name)
	assert.Equal(t, "Child2", tree.Children[1].Name)

	// Shared ancestors expand once per path, like the search paths do.
	require.Len(t, tree.Children[0].Children, 1)
	require.Len(t, tree.Children[1].Children, 1)
	assert.Equal(t, "Abstract", tree.Children[0].Children[0].Name)
	assert.Equal(t, "Abstract", tree.Children[1].Children[0].Name)
}

func TestMetricsDiamond(t *testing.T) {
	m := Metrics(BuildGraph(diamondSession(t)))

	assert.Equal(t, 4, m.Summary.TotalNodes)
	assert.Equal(t, 4, m.Summary.TotalEdges)
	assert.Equal(t, 1, m.Summary.Components)
	assert.InDelta(t, 1.0, m.Summary.AvgDegree, 1e-9)

	byID := make(map[string]models.NodeMetric)
	for _, n := range m.NodeMetrics {
		byID[n.ID] = n
	}
	assert.Equal(t, 2, byID["Abstract"].InDegree)
	assert.Equal(t, 0, byID["Abstract"].OutDegree)
	assert.Equal(t, 0, byID["Grandchild"].InDegree)
	assert.Equal(t, 2, byID["Grandchild"].OutDegree)

	// All lookup traffic flows into the shared root.
	for _, id := range []string{"Grandchild", "Child1", "Child2"} {
		assert.Greater(t, byID["Abstract"].PageRank, byID[id].PageRank)
	}
}

func TestMetricsEmptyGraph(t *testing.T) {
	m := Metrics(models.NewInheritanceGraph())
	assert.Equal(t, 0, m.Summary.TotalNodes)
	assert.Empty(t, m.NodeMetrics)
}

func TestToMermaidAndDOT(t *testing.T) {
	g := BuildGraph(diamondSession(t))

	mermaid := g.ToMermaid()
	assert.Contains(t, mermaid, "graph BT")
	assert.Contains(t, mermaid, "Grandchild")

	dot := g.ToDOT()
	assert.Contains(t, dot, "digraph")
	assert.Contains(t, dot, "rankdir=BT")
	assert.Contains(t, dot, "\"Child1\" -> \"Abstract\"")
}
