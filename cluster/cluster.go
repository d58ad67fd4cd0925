// Package cluster implements edit distance clustering of fingerprints.
//
// Raw values are first grouped by fingerprint (Index), the pairwise edit
// distance of all distinct fingerprints is computed once (Matrix), then the
// Engine greedily merges the closest pair of fingerprints while their distance
// is within the threshold, retiring the less frequent fingerprint of each pair.
package cluster

import "context"

// Options of a clustering run
type Options struct {
	// Threshold is the maximum mergeable edit distance
	Threshold int
	// Workers used to build the distance matrix (0 = runtime.NumCPU())
	Workers int
	// Distance defaults to Levenshtein
	Distance DistanceFunc
}

// Run indexes records, builds the distance matrix and runs the merge loop.
// Each call uses its own index, matrix and engine so concurrent runs are independent.
func Run(ctx context.Context, records []Record, opts Options) (*Result, error) {
	idx := NewIndex(records)
	matrix, err := BuildMatrix(ctx, idx.Fingerprints(), MatrixOptions{
		Workers:  opts.Workers,
		Distance: opts.Distance,
	})
	if err != nil {
		return nil, err
	}
	return NewEngine(idx, matrix, opts.Threshold).Run()
}
