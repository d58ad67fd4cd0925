package clusterx

import (
	"context"

	"github.com/projectdiscovery/clusterx/cluster"
	"github.com/projectdiscovery/clusterx/fingerprint"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/utils/errkit"
)

var (
	ErrNegativeThreshold = errkit.New("distance threshold must be >= 0")
)

// Options of the clusterer
type Options struct {
	// Column to cluster (DefaultColumn if empty)
	Column string
	// Threshold is the maximum edit distance between fingerprints to merge them
	Threshold int
	// Keyer computes fingerprints (default fingerprint.Fingerprint)
	Keyer fingerprint.Keyer
	// Distance between fingerprints (default cluster.Levenshtein)
	Distance cluster.DistanceFunc
	// Workers used in parallel phases (0 = runtime.NumCPU())
	Workers int
}

// Clusterer groups near duplicate values of a column
type Clusterer struct {
	Options *Options
}

// New creates and returns new clusterer instance from options
func New(opts *Options) (*Clusterer, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Threshold < 0 {
		return nil, ErrNegativeThreshold
	}
	if opts.Column == "" {
		opts.Column = DefaultColumn
	}
	if opts.Keyer == nil {
		opts.Keyer = fingerprint.Fingerprint{}
	}
	if opts.Distance == nil {
		opts.Distance = cluster.Levenshtein
	}
	return &Clusterer{Options: opts}, nil
}

// Cluster validates the column, fingerprints its values and clusters the
// fingerprints by edit distance.
// It returns an *InvalidColumnError before doing any work if the column is
// unusable and a *cluster.InsufficientDataError if fewer than two distinct
// fingerprints exist.
func (c *Clusterer) Cluster(ctx context.Context, table *Table) (*cluster.Result, error) {
	records, err := Fingerprints(ctx, table, c.Options.Column, c.Options.Keyer, c.Options.Workers)
	if err != nil {
		return nil, err
	}
	gologger.Verbose().Msgf("fingerprinted %d values of column %q", len(records), c.Options.Column)
	return cluster.Run(ctx, records, cluster.Options{
		Threshold: c.Options.Threshold,
		Workers:   c.Options.Workers,
		Distance:  c.Options.Distance,
	})
}

// ClusterValues is a shorthand for clustering a plain list of values
func (c *Clusterer) ClusterValues(ctx context.Context, values []string) (*cluster.Result, error) {
	opts := *c.Options
	opts.Column = DefaultColumn
	tmp := &Clusterer{Options: &opts}
	return tmp.Cluster(ctx, NewTableFromValues(values))
}
