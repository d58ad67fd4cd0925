package runner

import (
	"github.com/projectdiscovery/gologger"
)

var banner = `
      __           __
 ____/ /_ _____ __/ /____ ___ __ __
/ __/ / // (_-</ __/ -_) __/\ \ /
\__/_/\_,_/___/\__/\__/_/  /_\_\
`

var version = "v0.0.1"

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tprojectdiscovery.io\n\n")
}
