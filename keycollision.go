package clusterx

import (
	"context"
	"fmt"
	"runtime"

	"github.com/projectdiscovery/clusterx/cluster"
	"github.com/projectdiscovery/clusterx/fingerprint"
	"golang.org/x/sync/errgroup"
)

// rows fingerprinted by a single goroutine
const fingerprintBatchSize = 4096

// Fingerprints annotates every row of table with the fingerprint of column.
// Rows with a missing (nil) value are skipped. Row counts are carried over
// so that fingerprint occurrence counts can be aggregated by the index.
// Batches of rows are keyed in parallel, output keeps the table order.
func Fingerprints(ctx context.Context, table *Table, column string, keyer fingerprint.Keyer, workers int) ([]cluster.Record, error) {
	if err := ValidateColumn(table, column); err != nil {
		return nil, err
	}
	if keyer == nil {
		keyer = fingerprint.Fingerprint{}
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	keyed := make([]cluster.Record, len(table.Rows))
	present := make([]bool, len(table.Rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(table.Rows); start += fingerprintBatchSize {
		begin := start
		end := begin + fingerprintBatchSize
		if end > len(table.Rows) {
			end = len(table.Rows)
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := begin; i < end; i++ {
				row := table.Rows[i]
				v, ok := row.Values[column]
				if !ok || v == nil {
					continue
				}
				raw, ok := v.(string)
				if !ok {
					raw = fmt.Sprint(v)
				}
				keyed[i] = cluster.Record{Value: raw, Fingerprint: keyer.Key(raw), Count: row.Count}
				present[i] = true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]cluster.Record, 0, len(keyed))
	for i, r := range keyed {
		if present[i] {
			records = append(records, r)
		}
	}
	return records, nil
}
