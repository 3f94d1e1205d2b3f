package probe

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newLiveness() *cobra.Command {
	return &cobra.Command{
		Use:   "liveness",
		Short: "Checks whether the local server process is alive",
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				log.Error().Err(err).Msg("Failed to read verbose flag")
				os.Exit(1)
			}

			if err := probeEndpoint("healthy", verbose); err != nil {
				log.Error().Err(err).Msg("Liveness probe failed")
				os.Exit(1)
			}
		},
	}
}
