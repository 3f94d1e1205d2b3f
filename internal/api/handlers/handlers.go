// Package handlers collects all route registrations.
package handlers

import (
	"github.com/labstack/echo/v4"

	"github/keymint/go-signer/internal/api"
	"github/keymint/go-signer/internal/api/handlers/accounts"
	"github/keymint/go-signer/internal/api/handlers/common"
	"github/keymint/go-signer/internal/api/handlers/evm"
	"github/keymint/go-signer/internal/api/handlers/solana"
	"github/keymint/go-signer/internal/api/handlers/swap"
)

// AttachAllRoutes registers every route on the server's router.
func AttachAllRoutes(s *api.Server) {
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		common.GetVersionRoute(s),

		accounts.PostGenerateMnemonicRoute(s),
		accounts.GetAddressRoute(s),

		evm.PostSignMessageRoute(s),
		evm.PostSignTypedDataRoute(s),
		evm.PostSignTransactionRoute(s),
		evm.PostDecodeTransactionRoute(s),
		evm.PostSendPrivateTransactionRoute(s),

		solana.PostSignMessageRoute(s),
		solana.PostSignTransactionRoute(s),

		swap.GetKyberRoutesRoute(s),
		swap.PostOdosQuoteRoute(s),
	}
}
