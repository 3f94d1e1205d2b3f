// Package test provides helpers for spinning up a fully-wired server in
// handler tests.
package test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github/keymint/go-signer/internal/api"
	"github/keymint/go-signer/internal/api/router"
	"github/keymint/go-signer/internal/config"
)

// TestMnemonic is the well-known reference phrase. Test accounts derive
// from it; never fund them.
const TestMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// WithTestServer creates a wired server with a test configuration and hands
// it to the closure.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Echo.ListenAddress = ":0"
	// The default prometheus registry is process-global; registering per test
	// server would collide.
	cfg.Echo.EnablePrometheusMiddleware = false
	cfg.Signing.Mnemonic = TestMnemonic
	cfg.Signing.Passphrase = ""

	s, err := api.NewServer(cfg)
	require.NoError(t, err)

	router.Init(s)

	closure(s)
}
