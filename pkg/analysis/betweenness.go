package analysis

import (
	"context"
	"math/rand/v2"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
)

// BetweennessMode specifies how betweenness centrality was computed.
type BetweennessMode string

const (
	// BetweennessExact runs Brandes' algorithm from every node.
	BetweennessExact BetweennessMode = "exact"

	// BetweennessApproximate runs it from a sample of pivots and scales up.
	BetweennessApproximate BetweennessMode = "approximate"
)

// BetweennessResult contains the result of betweenness computation.
type BetweennessResult struct {
	Scores     map[int64]float64 `json:"-"`
	Mode       BetweennessMode   `json:"mode"`
	SampleSize int               `json:"sample_size"`
	TotalNodes int               `json:"total_nodes"`
	Elapsed    time.Duration     `json:"elapsed_ns"`
}

// ApproxBetweenness computes betweenness centrality from sampleSize random
// pivots. When the sample covers the graph it falls back to gonum's exact
// computation.
func ApproxBetweenness(g *simple.UndirectedGraph, sampleSize int, seed uint64) BetweennessResult {
	start := time.Now()
	nodes := graph.NodesOf(g.Nodes())
	// gonum's Nodes may be map-backed.
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
	n := len(nodes)

	sampleSize = max(sampleSize, 1)
	result := BetweennessResult{
		Scores:     make(map[int64]float64),
		Mode:       BetweennessApproximate,
		SampleSize: sampleSize,
		TotalNodes: n,
	}
	if n == 0 {
		result.Elapsed = time.Since(start)
		return result
	}
	if sampleSize >= n {
		result.Scores = network.Betweenness(g)
		result.Mode = BetweennessExact
		result.SampleSize = n
		result.Elapsed = time.Since(start)
		return result
	}

	pivots := sampleNodes(nodes, sampleSize, seed)
	var mu sync.Mutex
	eg, _ := errgroup.WithContext(context.Background())
	eg.SetLimit(runtime.NumCPU())
	for _, p := range pivots {
		eg.Go(func() error {
			local := make(map[int64]float64)
			singleSourceBetweenness(g, p, local)
			mu.Lock()
			for id, v := range local {
				result.Scores[id] += v
			}
			mu.Unlock()
			return nil
		})
	}
	_ = eg.Wait()

	// Each undirected pair is counted from both ends; halve to match gonum.
	scale := float64(n) / float64(sampleSize) / 2
	for id := range result.Scores {
		result.Scores[id] *= scale
	}
	result.Elapsed = time.Since(start)
	return result
}

// sampleNodes picks k nodes with a partial Fisher-Yates shuffle.
func sampleNodes(nodes []graph.Node, k int, seed uint64) []graph.Node {
	if k >= len(nodes) {
		return nodes
	}
	shuffled := make([]graph.Node, len(nodes))
	copy(shuffled, nodes)
	rng := rand.New(rand.NewPCG(seed, seed))
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(shuffled)-i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:k]
}

// singleSourceBetweenness adds the dependency of source on every other node
// to bc (Brandes, 2001).
func singleSourceBetweenness(g *simple.UndirectedGraph, source graph.Node, bc map[int64]float64) {
	src := source.ID()
	sigma := map[int64]float64{src: 1}
	dist := map[int64]int{src: 0}
	delta := make(map[int64]float64)
	pred := make(map[int64][]int64)

	queue := []int64{src}
	var order []int64
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		order = append(order, v)

		var neighbors []int64
		it := g.From(v)
		for it.Next() {
			neighbors = append(neighbors, it.Node().ID())
		}
		sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })

		for _, w := range neighbors {
			if _, seen := dist[w]; !seen {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
			if dist[w] == dist[v]+1 {
				sigma[w] += sigma[v]
				pred[w] = append(pred[w], v)
			}
		}
	}

	for i := len(order) - 1; i >= 0; i-- {
		w := order[i]
		for _, v := range pred[w] {
			delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
		}
		if w != src {
			bc[w] += delta[w]
		}
	}
}

// RecommendSampleSize balances accuracy against speed. Small trees get an
// exact computation.
func RecommendSampleSize(nodeCount int) int {
	switch {
	case nodeCount < 100:
		return nodeCount
	case nodeCount < 500:
		return max(nodeCount/5, 50)
	case nodeCount < 2000:
		return 100
	default:
		return 200
	}
}
