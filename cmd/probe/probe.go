package probe

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/universalwallet/wallet-bridge/internal/config"
	"github/universalwallet/wallet-bridge/internal/util/command"
)

const (
	verboseFlag string = "verbose"

	probeTimeout = 5 * time.Second
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("probe",
		newLiveness(),
		newReadiness(),
	)
}

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Probes the /-/healthy endpoint of a running server",
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool(verboseFlag)
			cfg := config.DefaultServiceConfigFromEnv()

			probe(fmt.Sprintf("http://localhost%s/-/healthy?mgmt-secret=%s", cfg.Echo.ListenAddress, cfg.Management.Secret), verbose)
		},
	}
	cmd.Flags().BoolP(verboseFlag, "v", false, "print the probe response body")

	return cmd
}

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Probes the /-/ready endpoint of a running server",
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool(verboseFlag)
			cfg := config.DefaultServiceConfigFromEnv()

			probe(fmt.Sprintf("http://localhost%s/-/ready", cfg.Echo.ListenAddress), verbose)
		},
	}
	cmd.Flags().BoolP(verboseFlag, "v", false, "print the probe response body")

	return cmd
}

// probe exits non-zero when the endpoint does not answer 200 in time, so it
// can back container health checks directly.
func probe(url string, verbose bool) {
	client := &http.Client{Timeout: probeTimeout}

	res, err := client.Get(url)
	if err != nil {
		log.Fatal().Err(err).Str("url", url).Msg("Probe request failed")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		log.Fatal().Err(err).Str("url", url).Msg("Failed to read probe response")
	}

	if verbose {
		fmt.Println(string(body))
	}

	if res.StatusCode != http.StatusOK {
		log.Fatal().Int("status", res.StatusCode).Str("url", url).Msg("Probe failed")
	}
}
