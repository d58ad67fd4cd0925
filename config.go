package clusterx

import (
	"os"

	"github.com/projectdiscovery/clusterx/cluster"
	"github.com/projectdiscovery/clusterx/fingerprint"
	"github.com/projectdiscovery/utils/errkit"
	"gopkg.in/yaml.v3"
)

// Config is a clustering profile
type Config struct {
	Column      string `yaml:"column"`
	CountColumn string `yaml:"count-column,omitempty"`
	Threshold   *int   `yaml:"threshold,omitempty"`
	Keyer       string `yaml:"keyer"`
	NGramSize   int    `yaml:"ngram-size,omitempty"`
	Distance    string `yaml:"distance"`
	Workers     int    `yaml:"workers,omitempty"`
}

// NewConfig reads config from file
func NewConfig(filePath string) (*Config, error) {
	bin, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err = yaml.Unmarshal(bin, &cfg); err != nil {
		return nil, errkit.Wrap(err, "could not parse profile "+filePath)
	}
	return &cfg, nil
}

// Generate Sample creates a sample yaml file with default/sample values
func GenerateSample(filePath string) error {
	threshold := 2
	cfg := Config{
		Column:    DefaultColumn,
		Threshold: &threshold,
		Keyer:     fingerprint.KeyerFingerprint,
		NGramSize: fingerprint.DefaultNGramSize,
		Distance:  cluster.DistanceLevenshtein,
	}
	bin, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, bin, 0644)
}

// Options converts profile to clusterer options
func (c *Config) Options() (*Options, error) {
	keyer, err := fingerprint.ByName(c.Keyer, c.NGramSize)
	if err != nil {
		return nil, err
	}
	distance, err := cluster.DistanceByName(c.Distance)
	if err != nil {
		return nil, err
	}
	opts := &Options{
		Column:   c.Column,
		Keyer:    keyer,
		Distance: distance,
		Workers:  c.Workers,
	}
	if c.Threshold != nil {
		opts.Threshold = *c.Threshold
	}
	return opts, nil
}
