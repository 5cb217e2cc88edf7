package config

import "fmt"

// ModuleName is the name of this module as defined in go.mod.
const ModuleName = "github/universalwallet/wallet-bridge"

// The following vars are automatically injected via -ldflags.
var (
	Commit    = "< 40 chars git commit hash via ldflags >"
	BuildDate = "1970-01-01T00:00:00+00:00"
)

// GetFormattedBuildArgs returns "<ModuleName> @ <Commit> (<BuildDate>)".
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
