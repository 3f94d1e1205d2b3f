// Package command holds shared plumbing for cobra subcommands.
package command

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github/keymint/go-signer/internal/api"
	"github/keymint/go-signer/internal/api/router"
	"github/keymint/go-signer/internal/config"
)

// NewSubcommandGroup returns a command that only dispatches to its
// subcommands, printing usage when called bare.
func NewSubcommandGroup(use string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use: use,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Error().Err(err).Msg("Failed to print help")
			}
			os.Exit(0)
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// WithServer configures logging, builds a wired server from the config and
// runs the closure against it, shutting the server down afterwards.
func WithServer(ctx context.Context, cfg config.Server, closure func(ctx context.Context, s *api.Server) error) error {
	ConfigureLogging(cfg)

	s, err := api.NewServer(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize server")
		return err
	}

	router.Init(s)

	defer func() {
		if errs := s.Shutdown(context.Background()); len(errs) > 0 {
			log.Error().Errs("errors", errs).Msg("Errors while shutting down server")
		}
	}()

	return closure(ctx, s)
}

// ConfigureLogging applies the logger config to the global zerolog instance.
func ConfigureLogging(cfg config.Server) {
	zerolog.SetGlobalLevel(cfg.Logger.Level)
	if cfg.Logger.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter())
	}
}
