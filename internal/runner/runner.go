package runner

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/projectdiscovery/clusterx"
	"github.com/projectdiscovery/clusterx/cluster"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/utils/errkit"
)

// Runner reads the input table, clusters it and writes the result
type Runner struct {
	options *Options
	profile *clusterx.Config
	stdin   io.Reader
}

// New creates a runner from cli options
func New(options *Options) (*Runner, error) {
	profile, err := options.buildProfile()
	if err != nil {
		return nil, err
	}
	return &Runner{options: options, profile: profile, stdin: os.Stdin}, nil
}

// Run executes a single clustering run
func (r *Runner) Run(ctx context.Context) error {
	table, err := r.readTable()
	if err != nil {
		return err
	}

	opts, err := r.profile.Options()
	if err != nil {
		return err
	}
	c, err := clusterx.New(opts)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := c.Cluster(ctx, table)
	if err != nil {
		return err
	}
	gologger.Info().Msgf("Found %d clusters in %d rows (%d merges) in %v", len(result.Clusters), len(table.Rows), len(result.Events), time.Since(start).Round(time.Millisecond))

	return r.write(result)
}

func (r *Runner) readTable() (*clusterx.Table, error) {
	in := r.stdin
	if r.options.Input != "" {
		f, err := os.Open(r.options.Input)
		if err != nil {
			return nil, errkit.Wrap(err, "could not open input file")
		}
		defer f.Close()
		in = f
	}
	if r.options.CSV {
		return clusterx.ReadCSV(in, r.profile.CountColumn)
	}
	return clusterx.ReadLines(in)
}

func (r *Runner) write(result *cluster.Result) error {
	var out io.Writer = os.Stdout
	if r.options.Output != "" {
		f, err := os.OpenFile(r.options.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return errkit.Wrap(err, "failed to open output file")
		}
		defer f.Close()
		out = f
	}
	if r.options.JSON {
		return clusterx.WriteJSON(out, result.Clusters)
	}
	return clusterx.WriteText(out, result.Clusters, r.options.Template)
}
