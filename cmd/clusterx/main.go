package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/projectdiscovery/clusterx/cluster"
	"github.com/projectdiscovery/clusterx/internal/runner"
	"github.com/projectdiscovery/gologger"
)

func main() {
	cliOpts := runner.ParseFlags()

	r, err := runner.New(cliOpts)
	if err != nil {
		gologger.Fatal().Msgf("could not create runner: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := r.Run(ctx); err != nil {
		var insufficient *cluster.InsufficientDataError
		if errors.As(err, &insufficient) {
			gologger.Fatal().Msgf("nothing to cluster: %v", err)
		}
		gologger.Fatal().Msgf("clustering failed: %v", err)
	}
}
