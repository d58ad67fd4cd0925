package cluster

import (
	"fmt"

	"github.com/projectdiscovery/clusterx/internal/membership"
	"github.com/projectdiscovery/gologger"
)

// Cluster is a deduplicated set of raw values.
// A cluster keeps its id once created and its membership only grows.
type Cluster struct {
	ID      int
	Members []string

	seen map[string]struct{}
}

func newCluster(id int) *Cluster {
	return &Cluster{ID: id, seen: map[string]struct{}{}}
}

func (c *Cluster) add(value string) bool {
	if _, ok := c.seen[value]; ok {
		return false
	}
	c.seen[value] = struct{}{}
	c.Members = append(c.Members, value)
	return true
}

// Clusters maps dense cluster ids to their members
type Clusters map[int][]string

// MergeEvent describes one iteration of the merge loop
type MergeEvent struct {
	A        string
	B        string
	Distance int
	// Dropped is the fingerprint retired from the matrix (the one with smaller count)
	Dropped string
	// ClusterID is the cluster that received the pair
	ClusterID int
	// Created is true when the pair did not match any existing cluster
	Created bool
	// EdgesRemoved is the number of edges pruned with Dropped
	EdgesRemoved int
}

// Result of a clustering run
type Result struct {
	Clusters Clusters
	Events   []MergeEvent
}

// Engine runs the greedy nearest pair merge loop over a distance matrix.
// It owns the matrix and mutates it, an engine must not be shared or reused.
type Engine struct {
	index     *Index
	matrix    *Matrix
	threshold int
	clusters  []*Cluster
	owner     membership.Backend
	events    []MergeEvent
	done      bool
}

// NewEngine creates a merge engine for one run
func NewEngine(index *Index, matrix *Matrix, threshold int) *Engine {
	return &Engine{
		index:     index,
		matrix:    matrix,
		threshold: threshold,
	}
}

// Run executes the merge loop until the matrix is empty or the smallest
// remaining distance exceeds the threshold.
//
// Every iteration picks the globally closest pair (p0, p1), adds the raw
// values of both into the first cluster (lowest id) already holding one of
// them or into a new cluster, then retires the fingerprint with the smaller
// occurrence count by removing all of its edges. At least one fingerprint is
// retired per iteration so the loop ends after at most |F|-1 iterations.
func (e *Engine) Run() (*Result, error) {
	if e.done {
		return nil, ErrEngineConsumed
	}
	e.done = true

	if e.matrix.Len() == 0 {
		return nil, &InsufficientDataError{Fingerprints: e.index.Len()}
	}
	for _, fp := range e.matrix.Fingerprints() {
		if _, ok := e.index.Group(fp); !ok {
			return nil, fmt.Errorf("%w: %q", ErrIndexMismatch, fp)
		}
	}

	e.owner = membership.New(e.index.ByteSize())
	defer e.owner.Cleanup()

	e.seed()
	gologger.Verbose().Msgf("clustering %d fingerprints with %d edges (threshold %d, %d seed clusters)", e.index.Len(), e.matrix.Len(), e.threshold, len(e.clusters))

	for {
		edge, ok := e.matrix.Min()
		if !ok || edge.Distance > e.threshold {
			break
		}
		e.merge(edge)
	}

	gologger.Verbose().Msgf("clustering finished after %d merges with %d clusters", len(e.events), len(e.clusters))
	return &Result{Clusters: e.output(), Events: e.events}, nil
}

// seed creates one cluster per fingerprint group with more than one member
func (e *Engine) seed() {
	for _, g := range e.index.Groups() {
		if len(g.Members) < 2 {
			continue
		}
		c := e.newCluster()
		for _, raw := range g.Members {
			if c.add(raw) {
				e.owner.Set(raw, c.ID)
			}
		}
	}
}

func (e *Engine) newCluster() *Cluster {
	c := newCluster(len(e.clusters))
	e.clusters = append(e.clusters, c)
	return c
}

func (e *Engine) merge(edge Edge) {
	g0 := e.group(edge.A)
	g1 := e.group(edge.B)

	raws := make([]string, 0, len(g0.Members)+len(g1.Members))
	raws = append(raws, g0.Members...)
	raws = append(raws, g1.Members...)

	target := -1
	for _, raw := range raws {
		if id, ok := e.owner.Get(raw); ok && (target < 0 || id < target) {
			target = id
		}
	}
	created := target < 0
	var c *Cluster
	if created {
		c = e.newCluster()
	} else {
		c = e.clusters[target]
	}
	for _, raw := range raws {
		// values owned by another cluster stay there
		if id, ok := e.owner.Get(raw); ok && id != c.ID {
			continue
		}
		if c.add(raw) {
			e.owner.Set(raw, c.ID)
		}
	}

	// the less frequent fingerprint is retired, ties retire B
	dropped := edge.B
	if g0.Count < g1.Count {
		dropped = edge.A
	}
	removed := e.matrix.Remove(dropped)

	event := MergeEvent{
		A:            edge.A,
		B:            edge.B,
		Distance:     edge.Distance,
		Dropped:      dropped,
		ClusterID:    c.ID,
		Created:      created,
		EdgesRemoved: removed,
	}
	e.events = append(e.events, event)
	gologger.Debug().Msgf("merged %q and %q (distance %d) into cluster %d, dropped %q with %d edges", edge.A, edge.B, edge.Distance, c.ID, dropped, removed)
}

// group returns the group of a fingerprint present in the matrix,
// Run checks that every matrix fingerprint is indexed before merging
func (e *Engine) group(fingerprint string) *Group {
	g, _ := e.index.Group(fingerprint)
	return g
}

// output renumbers clusters into a dense id sequence
func (e *Engine) output() Clusters {
	out := make(Clusters, len(e.clusters))
	next := 0
	for _, c := range e.clusters {
		if len(c.Members) == 0 {
			continue
		}
		members := make([]string, len(c.Members))
		copy(members, c.Members)
		out[next] = members
		next++
	}
	return out
}
