// Package solana exposes Solana signing operations over HTTP.
package solana

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/keymint/go-signer/internal/account"
	"github/keymint/go-signer/internal/api"
	"github/keymint/go-signer/internal/api/httperrors"
	"github/keymint/go-signer/internal/metrics"
	solsign "github/keymint/go-signer/internal/solana"
)

type PostSignMessagePayload struct {
	AccountIndex uint32 `json:"account_index"`
	Message      string `json:"message"`
}

type PostSignMessageResponse struct {
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

func PostSignMessageRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Solana.POST("/sign-message", postSignMessageHandler(s))
}

func postSignMessageHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body PostSignMessagePayload
		if err := c.Bind(&body); err != nil {
			return httperrors.NewBadRequest(httperrors.TypeGeneric, "Malformed request body.")
		}

		acct, err := s.SigningAccount(body.AccountIndex, account.ChainSolana)
		if err != nil {
			return err
		}
		defer acct.Wipe()

		sig, err := solsign.SignMessage(acct, []byte(body.Message))
		if err != nil {
			return err
		}

		metrics.SignaturesTotal.WithLabelValues("solana", "message").Inc()

		return c.JSON(http.StatusOK, PostSignMessageResponse{
			PublicKey: acct.PublicKey().String(),
			Signature: sig,
		})
	}
}
