package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/keymint/go-signer/cmd/decode"
	"github/keymint/go-signer/cmd/env"
	"github/keymint/go-signer/cmd/keygen"
	"github/keymint/go-signer/cmd/probe"
	"github/keymint/go-signer/cmd/server"
	"github/keymint/go-signer/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "signer",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

A stateless multi-chain signing service written in Go.
Requires configuration through ENV.`, config.ModuleName),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	// attach the subcommands
	rootCmd.AddCommand(
		decode.New(),
		env.New(),
		keygen.New(),
		probe.New(),
		server.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
