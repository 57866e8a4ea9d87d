// Package analysis computes summary statistics for a tree.
package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/dsv/pkg/tree"
)

// Stats summarizes the shape and values of a tree.
type Stats struct {
	Nodes    int     `json:"nodes"`
	Height   int     `json:"height"`
	Leaves   int     `json:"leaves"`
	Complete bool    `json:"complete"`
	Min      int     `json:"min"`
	Max      int     `json:"max"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"std_dev"`

	// Diameter is the number of edges on the longest path between two nodes.
	Diameter int `json:"diameter"`

	// Center is the slot with the highest betweenness. Ties go to the lower slot.
	Center      int               `json:"center"`
	Betweenness BetweennessResult `json:"betweenness"`
}

// Compute returns the stats of t. An empty tree yields zero stats with
// Center -1.
func Compute(t tree.Tree) Stats {
	s := Stats{Center: -1, Complete: t.IsComplete()}
	if t.Empty() {
		return s
	}
	s.Nodes = t.Len()
	s.Height = t.Height()

	values := make([]float64, 0, t.Len())
	s.Min, s.Max = math.MaxInt, math.MinInt
	t.Walk(func(p tree.Position) bool {
		values = append(values, float64(p.Value))
		s.Min = min(s.Min, p.Value)
		s.Max = max(s.Max, p.Value)
		if p.Node.Left == nil && p.Node.Right == nil {
			s.Leaves++
		}
		return true
	})
	s.Mean, s.StdDev = stat.PopMeanStdDev(values, nil)
	sort.Float64s(values)
	s.Median = stat.Quantile(0.5, stat.Empirical, values, nil)

	g := Graph(t)
	s.Diameter = diameter(g)
	s.Betweenness = ApproxBetweenness(g, RecommendSampleSize(s.Nodes), 1)
	s.Center = center(s.Nodes, s.Betweenness.Scores)
	return s
}

// Graph returns t as an undirected graph whose node IDs are slots.
func Graph(t tree.Tree) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	t.Walk(func(p tree.Position) bool {
		g.AddNode(simple.Node(p.Slot))
		if p.Parent >= 0 {
			g.SetEdge(g.NewEdge(simple.Node(p.Parent), simple.Node(p.Slot)))
		}
		return true
	})
	return g
}

// diameter uses the two-sweep method: the farthest node from any start is
// one end of a longest path.
func diameter(g *simple.UndirectedGraph) int {
	if g.Nodes().Len() < 2 {
		return 0
	}
	far, _ := farthest(g, simple.Node(0))
	_, d := farthest(g, far)
	return d
}

func farthest(g *simple.UndirectedGraph, from graph.Node) (graph.Node, int) {
	shortest := path.DijkstraFrom(from, g)
	best, bestDist := from, 0.0
	nodes := graph.NodesOf(g.Nodes())
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
	for _, n := range nodes {
		if w := shortest.WeightTo(n.ID()); !math.IsInf(w, 1) && w > bestDist {
			best, bestDist = n, w
		}
	}
	return best, int(bestDist)
}

func center(n int, scores map[int64]float64) int {
	best, bestScore := 0, -1.0
	for slot := 0; slot < n; slot++ {
		if sc := scores[int64(slot)]; sc > bestScore {
			best, bestScore = slot, sc
		}
	}
	return best
}
