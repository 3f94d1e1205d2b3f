package probe

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newReadiness() *cobra.Command {
	return &cobra.Command{
		Use:   "readiness",
		Short: "Checks whether the local server is ready to sign",
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				log.Error().Err(err).Msg("Failed to read verbose flag")
				os.Exit(1)
			}

			if err := probeEndpoint("ready", verbose); err != nil {
				log.Error().Err(err).Msg("Readiness probe failed")
				os.Exit(1)
			}
		},
	}
}
