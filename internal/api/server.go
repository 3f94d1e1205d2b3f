package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github/keymint/go-signer/internal/account"
	"github/keymint/go-signer/internal/account/mnemonic"
	"github/keymint/go-signer/internal/config"
	"github/keymint/go-signer/internal/dex"
	"github/keymint/go-signer/internal/mev"
)

// Router groups the route tree. Handlers register themselves on the group
// matching their concern.
type Router struct {
	Routes []*echo.Route

	Root          *echo.Group
	Management    *echo.Group
	APIV1Accounts *echo.Group
	APIV1EVM      *echo.Group
	APIV1Solana   *echo.Group
	APIV1Swap     *echo.Group
}

// Server is a central struct keeping all the dependencies. Components are
// constructed in NewServer; Echo and Router are initialized by router.Init.
type Server struct {
	Echo   *echo.Echo
	Router *Router

	Config config.Server

	Mnemonics mnemonic.Service
	Accounts  account.Service
	Kyber     *dex.KyberClient
	Odos      *dex.OdosClient
	Relay     *mev.Client
}

// NewServer builds the component graph from the configuration. The relay
// client is optional: an empty relay URL disables it.
func NewServer(cfg config.Server) (*Server, error) {
	mnemonics := mnemonic.NewService()

	s := &Server{
		Config:    cfg,
		Mnemonics: mnemonics,
		Accounts:  account.NewService(mnemonics),
		Kyber:     dex.NewKyberClient(cfg.Dex.KyberBaseURL, cfg.Dex.KyberChain),
		Odos:      dex.NewOdosClient(cfg.Dex.OdosBaseURL),
	}

	if cfg.Relay.URL != "" {
		relay, err := mev.NewClient(mev.Config{
			RelayURL: cfg.Relay.URL,
			Builders: cfg.Relay.Builders,
			Timeout:  cfg.Relay.Timeout,
		})
		if err != nil {
			return nil, err
		}
		s.Relay = relay
	}

	return s, nil
}

// SigningAccount derives the account at the given index from the configured
// mnemonic.
func (s *Server) SigningAccount(index uint32, chain account.Chain) (*account.Account, error) {
	return s.Accounts.FromMnemonic(s.Config.Signing.Mnemonic, s.Config.Signing.Passphrase, index, chain)
}

// Ready reports whether all components the server depends on are initialized.
func (s *Server) Ready() bool {
	if s.Echo == nil || s.Router == nil || s.Mnemonics == nil || s.Accounts == nil {
		log.Debug().Msg("Server is not fully initialized")
		return false
	}
	if s.Config.Signing.Mnemonic == "" {
		log.Debug().Msg("No signing mnemonic configured")
		return false
	}
	if _, err := s.Mnemonics.Parse(s.Config.Signing.Mnemonic); err != nil {
		log.Debug().Err(err).Msg("Configured signing mnemonic is invalid")
		return false
	}
	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
