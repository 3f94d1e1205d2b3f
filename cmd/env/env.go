package env

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/keymint/go-signer/internal/config"
)

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Prints the effective server configuration",
		Run: func(_ *cobra.Command, _ []string) {
			cfg := config.DefaultServiceConfigFromEnv()
			// never print the secret
			cfg.Signing.Mnemonic = redact(cfg.Signing.Mnemonic)
			cfg.Signing.Passphrase = redact(cfg.Signing.Passphrase)

			out, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to marshal config")
			}
			fmt.Println(string(out))
		},
	}
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return "<set>"
}
