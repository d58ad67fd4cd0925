package runner

import (
	"os"

	"github.com/projectdiscovery/clusterx"
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	fileutil "github.com/projectdiscovery/utils/file"
)

type Options struct {
	Input           string // input file (stdin if empty)
	CSV             bool
	Column          string
	CountColumn     string
	Threshold       int
	Keyer           string
	NGramSize       int
	Distance        string
	Workers         int
	Output          string
	JSON            bool
	Template        string
	Config          string
	Profile         string
	GenerateProfile string
	Verbose         bool
	Silent          bool
	Debug           bool
}

func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Cluster near duplicate values of a column using key collision and edit distance.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Input, "input", "i", "", "input file with one value per line or csv (default stdin)"),
		flagSet.BoolVar(&opts.CSV, "csv", false, "parse input as csv with header row"),
		flagSet.StringVarP(&opts.Column, "column", "c", "", "csv column to cluster (default 'value' for line input)"),
		flagSet.StringVarP(&opts.CountColumn, "count-column", "cc", "", "csv integer column holding pre-aggregated occurrence counts"),
	)

	flagSet.CreateGroup("clustering", "Clustering",
		flagSet.IntVarP(&opts.Threshold, "threshold", "t", -1, "maximum edit distance between fingerprints to merge (default 2)"),
		flagSet.StringVarP(&opts.Keyer, "keyer", "k", "", "key collision keyer (fingerprint, ngram, identity)"),
		flagSet.IntVarP(&opts.NGramSize, "ngram-size", "ns", 0, "ngram size used by ngram keyer (default 2)"),
		flagSet.StringVarP(&opts.Distance, "distance", "d", "", "edit distance implementation (levenshtein, fast)"),
		flagSet.IntVarP(&opts.Workers, "workers", "w", 0, "number of workers for fingerprinting and distance computation (default cpu count)"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "", "output file to write clusters"),
		flagSet.BoolVarP(&opts.JSON, "json", "j", false, "write clusters as json"),
		flagSet.StringVarP(&opts.Template, "template", "tp", clusterx.DefaultTemplate, "output line template ({{id}}, {{value}}, {{size}})"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Debug, "debug", false, "display every merge performed"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVar(printVersion, "version", "display clusterx version"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&opts.Config, "config", "", `clusterx cli config file (default '$HOME/.config/clusterx/config.yaml')`),
		flagSet.StringVarP(&opts.Profile, "profile", "p", "", "clustering profile yaml (column, threshold, keyer, distance)"),
		flagSet.StringVarP(&opts.GenerateProfile, "generate-profile", "gp", "", "write a sample clustering profile to given path and exit"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.Config != "" {
		if err := flagSet.MergeConfigFile(opts.Config); err != nil {
			gologger.Error().Msgf("failed to read config file got %v", err)
		}
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Debug {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	if opts.GenerateProfile != "" {
		if err := clusterx.GenerateSample(opts.GenerateProfile); err != nil {
			gologger.Fatal().Msgf("failed to write sample profile to %v got %v", opts.GenerateProfile, err)
		}
		gologger.Info().Msgf("Sample profile written to %v", opts.GenerateProfile)
		os.Exit(0)
	}

	if opts.Input != "" && !fileutil.FileExists(opts.Input) {
		gologger.Fatal().Msgf("input file %v does not exist", opts.Input)
	}
	if opts.Input == "" && !fileutil.HasStdin() {
		gologger.Fatal().Msgf("clusterx: no input found")
	}
	return opts
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}
