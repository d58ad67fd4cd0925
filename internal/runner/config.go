package runner

import (
	"github.com/projectdiscovery/clusterx"
	"github.com/projectdiscovery/clusterx/cluster"
	"github.com/projectdiscovery/clusterx/fingerprint"
)

// DefaultThreshold is used when neither flags nor profile set a threshold
const DefaultThreshold = 2

// buildProfile merges the clustering profile (if any) with cli flags,
// flags explicitly set on the command line take precedence
func (o *Options) buildProfile() (*clusterx.Config, error) {
	cfg := &clusterx.Config{}
	if o.Profile != "" {
		loaded, err := clusterx.NewConfig(o.Profile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if o.Column != "" {
		cfg.Column = o.Column
	}
	if o.CountColumn != "" {
		cfg.CountColumn = o.CountColumn
	}
	// -1 is the flag default and means unset
	if o.Threshold < -1 {
		return nil, clusterx.ErrNegativeThreshold
	}
	if o.Threshold >= 0 {
		threshold := o.Threshold
		cfg.Threshold = &threshold
	}
	if cfg.Threshold == nil {
		threshold := DefaultThreshold
		cfg.Threshold = &threshold
	}
	if o.Keyer != "" {
		cfg.Keyer = o.Keyer
	}
	if cfg.Keyer == "" {
		cfg.Keyer = fingerprint.KeyerFingerprint
	}
	if o.NGramSize > 0 {
		cfg.NGramSize = o.NGramSize
	}
	if o.Distance != "" {
		cfg.Distance = o.Distance
	}
	if cfg.Distance == "" {
		cfg.Distance = cluster.DistanceLevenshtein
	}
	if o.Workers > 0 {
		cfg.Workers = o.Workers
	}
	if cfg.Column == "" {
		cfg.Column = clusterx.DefaultColumn
	}
	return cfg, nil
}
