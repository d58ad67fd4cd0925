package clusterx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/projectdiscovery/clusterx/fingerprint"
	"github.com/stretchr/testify/require"
)

func TestGenerateSampleRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.Nil(t, GenerateSample(path))

	cfg, err := NewConfig(path)
	require.Nil(t, err)
	require.Equal(t, DefaultColumn, cfg.Column)
	require.NotNil(t, cfg.Threshold)
	require.Equal(t, 2, *cfg.Threshold)

	opts, err := cfg.Options()
	require.Nil(t, err)
	require.Equal(t, 2, opts.Threshold)
	require.IsType(t, fingerprint.Fingerprint{}, opts.Keyer)
}

func TestConfigOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	data := "column: city\nkeyer: ngram\nngram-size: 3\ndistance: fast\nworkers: 2\n"
	require.Nil(t, os.WriteFile(path, []byte(data), 0600))

	cfg, err := NewConfig(path)
	require.Nil(t, err)
	opts, err := cfg.Options()
	require.Nil(t, err)
	require.Equal(t, "city", opts.Column)
	require.Equal(t, fingerprint.NGram{Size: 3}, opts.Keyer)
	require.Equal(t, 2, opts.Workers)
	require.Equal(t, 0, opts.Threshold)
	require.Equal(t, 1, opts.Distance("abc", "abd"))

	cfg.Keyer = "metaphone"
	_, err = cfg.Options()
	require.NotNil(t, err)
}
