// Package config assembles the server configuration from environment
// variables. Every setting has a default, so a bare environment yields a
// runnable local configuration.
package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const envPrefix = "SIGNER"

// EchoServer holds the HTTP listener settings.
type EchoServer struct {
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnablePrometheusMiddleware     bool
}

// Signing holds the key material the server signs with. The mnemonic is the
// only secret the process carries; accounts are derived per request.
type Signing struct {
	Mnemonic   string
	Passphrase string
}

// Dex holds the aggregator endpoints. Empty values fall back to the public
// APIs.
type Dex struct {
	KyberBaseURL string
	KyberChain   string
	OdosBaseURL  string
}

// Relay holds the MEV relay settings.
type Relay struct {
	URL      string
	Builders []string
	Timeout  time.Duration
}

// Logger holds the zerolog settings.
type Logger struct {
	Level              zerolog.Level
	PrettyPrintConsole bool
}

// Server is the root configuration for the signing service.
type Server struct {
	Echo    EchoServer
	Signing Signing
	Dex     Dex
	Relay   Relay
	Logger  Logger
}

// DefaultServiceConfigFromEnv returns the server config as defined by the
// environment, with defaults applied for anything unset.
func DefaultServiceConfigFromEnv() Server {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("echo.listen_address", ":8080")
	v.SetDefault("echo.hide_internal_server_error_details", true)
	v.SetDefault("echo.enable_recover_middleware", true)
	v.SetDefault("echo.enable_request_id_middleware", true)
	v.SetDefault("echo.enable_prometheus_middleware", true)

	v.SetDefault("signing.mnemonic", "")
	v.SetDefault("signing.passphrase", "")

	v.SetDefault("dex.kyber_base_url", "")
	v.SetDefault("dex.kyber_chain", "ethereum")
	v.SetDefault("dex.odos_base_url", "")

	v.SetDefault("relay.url", "https://relay.flashbots.net")
	v.SetDefault("relay.builders", "flashbots")
	v.SetDefault("relay.timeout", "30s")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.pretty_print_console", false)

	level, err := zerolog.ParseLevel(v.GetString("logger.level"))
	if err != nil {
		level = zerolog.InfoLevel
	}

	return Server{
		Echo: EchoServer{
			ListenAddress:                  v.GetString("echo.listen_address"),
			HideInternalServerErrorDetails: v.GetBool("echo.hide_internal_server_error_details"),
			EnableRecoverMiddleware:        v.GetBool("echo.enable_recover_middleware"),
			EnableRequestIDMiddleware:      v.GetBool("echo.enable_request_id_middleware"),
			EnablePrometheusMiddleware:     v.GetBool("echo.enable_prometheus_middleware"),
		},
		Signing: Signing{
			Mnemonic:   v.GetString("signing.mnemonic"),
			Passphrase: v.GetString("signing.passphrase"),
		},
		Dex: Dex{
			KyberBaseURL: v.GetString("dex.kyber_base_url"),
			KyberChain:   v.GetString("dex.kyber_chain"),
			OdosBaseURL:  v.GetString("dex.odos_base_url"),
		},
		Relay: Relay{
			URL:      v.GetString("relay.url"),
			Builders: strings.Split(v.GetString("relay.builders"), ","),
			Timeout:  v.GetDuration("relay.timeout"),
		},
		Logger: Logger{
			Level:              level,
			PrettyPrintConsole: v.GetBool("logger.pretty_print_console"),
		},
	}
}
