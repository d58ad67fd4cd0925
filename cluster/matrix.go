package cluster

import (
	"container/heap"
	"context"
	"runtime"
	"sort"

	sliceutil "github.com/projectdiscovery/utils/slice"
	"golang.org/x/sync/errgroup"
)

// Edge is an unordered pair of distinct fingerprints with their edit distance.
// A is always lexicographically smaller than B
type Edge struct {
	A        string
	B        string
	Distance int

	// position in the heap, -1 once removed
	index int
}

// NewEdge returns a predictable edge between two fingerprints
func NewEdge(a, b string, distance int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b, Distance: distance, index: -1}
}

// MatrixOptions controls distance matrix construction
type MatrixOptions struct {
	// Workers is the number of goroutines computing distances (0 = runtime.NumCPU())
	Workers int
	// Distance defaults to Levenshtein
	Distance DistanceFunc
}

// Matrix holds every pairwise distance between live fingerprints.
// Edges are kept in a min-heap ordered by (distance, a, b) so the global
// minimum is always at the top, and an adjacency list per fingerprint
// allows removing all edges of a fingerprint without a full scan.
type Matrix struct {
	heap      edgeHeap
	adjacency map[string][]*Edge
}

// BuildMatrix computes the distance of every pair of distinct fingerprints.
// Rows are computed in parallel, each worker owns a disjoint slice of edges.
func BuildMatrix(ctx context.Context, fingerprints []string, opts MatrixOptions) (*Matrix, error) {
	if opts.Distance == nil {
		opts.Distance = Levenshtein
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	fps := sliceutil.Dedupe(fingerprints)
	sort.Strings(fps)
	n := len(fps)

	m := &Matrix{adjacency: make(map[string][]*Edge, n)}
	if n < 2 {
		return m, nil
	}

	edges := make([]Edge, n*(n-1)/2)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := 0; i < n-1; i++ {
		row := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			offset := rowOffset(row, n)
			for j := row + 1; j < n; j++ {
				edges[offset+j-row-1] = Edge{
					A:        fps[row],
					B:        fps[j],
					Distance: opts.Distance(fps[row], fps[j]),
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m.heap = make(edgeHeap, len(edges))
	for i := range edges {
		e := &edges[i]
		e.index = i
		m.heap[i] = e
		m.adjacency[e.A] = append(m.adjacency[e.A], e)
		m.adjacency[e.B] = append(m.adjacency[e.B], e)
	}
	heap.Init(&m.heap)
	return m, nil
}

// rowOffset returns index of edge (i, i+1) in the flattened upper triangle
func rowOffset(i, n int) int {
	return i * (2*n - i - 1) / 2
}

// Len returns number of live edges
func (m *Matrix) Len() int {
	return m.heap.Len()
}

// Min returns the edge with the smallest distance, ties broken by (a, b)
func (m *Matrix) Min() (Edge, bool) {
	if m.heap.Len() == 0 {
		return Edge{}, false
	}
	return m.heap[0].snapshot(), true
}

// Remove deletes every edge referencing fingerprint (in either position)
// and returns the number of removed edges
func (m *Matrix) Remove(fingerprint string) int {
	removed := 0
	for _, e := range m.adjacency[fingerprint] {
		if e.index < 0 {
			continue
		}
		heap.Remove(&m.heap, e.index)
		removed++
	}
	delete(m.adjacency, fingerprint)
	return removed
}

// Contains returns true if any live edge references fingerprint
func (m *Matrix) Contains(fingerprint string) bool {
	for _, e := range m.adjacency[fingerprint] {
		if e.index >= 0 {
			return true
		}
	}
	return false
}

// Fingerprints returns every fingerprint referenced by a live edge
func (m *Matrix) Fingerprints() []string {
	out := make([]string, 0, len(m.adjacency))
	for fp := range m.adjacency {
		if m.Contains(fp) {
			out = append(out, fp)
		}
	}
	sort.Strings(out)
	return out
}

// Edges returns a snapshot of live edges ordered by (distance, a, b)
func (m *Matrix) Edges() []Edge {
	out := make([]Edge, 0, m.heap.Len())
	for _, e := range m.heap {
		out = append(out, e.snapshot())
	}
	sort.Slice(out, func(i, j int) bool {
		return edgeLess(&out[i], &out[j])
	})
	return out
}

// snapshot returns a detached copy of the edge
func (e *Edge) snapshot() Edge {
	c := *e
	c.index = -1
	return c
}

func edgeLess(x, y *Edge) bool {
	if x.Distance != y.Distance {
		return x.Distance < y.Distance
	}
	if x.A != y.A {
		return x.A < y.A
	}
	return x.B < y.B
}

// edgeHeap implements heap.Interface and tracks heap positions on edges
type edgeHeap []*Edge

var _ heap.Interface = (*edgeHeap)(nil)

func (h edgeHeap) Len() int { return len(h) }

func (h edgeHeap) Less(i, j int) bool { return edgeLess(h[i], h[j]) }

func (h edgeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *edgeHeap) Push(x any) {
	e := x.(*Edge)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *edgeHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}
