// Package evm exposes EVM signing operations over HTTP.
package evm

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/keymint/go-signer/internal/account"
	"github/keymint/go-signer/internal/api"
	"github/keymint/go-signer/internal/api/httperrors"
	evmsign "github/keymint/go-signer/internal/evm"
	"github/keymint/go-signer/internal/metrics"
)

type PostSignMessagePayload struct {
	AccountIndex uint32 `json:"account_index"`
	Message      string `json:"message"`
}

type PostSignMessageResponse struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
}

func PostSignMessageRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1EVM.POST("/sign-message", postSignMessageHandler(s))
}

// Signs the message with the EIP-191 personal message prefix.
func postSignMessageHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body PostSignMessagePayload
		if err := c.Bind(&body); err != nil {
			return httperrors.NewBadRequest(httperrors.TypeGeneric, "Malformed request body.")
		}

		acct, err := s.SigningAccount(body.AccountIndex, account.ChainEVM)
		if err != nil {
			return err
		}
		defer acct.Wipe()

		sig, err := evmsign.SignPersonal(acct, []byte(body.Message))
		if err != nil {
			return err
		}

		metrics.SignaturesTotal.WithLabelValues("evm", "message").Inc()

		return c.JSON(http.StatusOK, PostSignMessageResponse{
			Address:   acct.Address().Hex(),
			Signature: sig.String(),
		})
	}
}
