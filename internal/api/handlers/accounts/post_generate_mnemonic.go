// Package accounts exposes mnemonic generation and account derivation.
package accounts

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/keymint/go-signer/internal/account/mnemonic"
	"github/keymint/go-signer/internal/api"
	"github/keymint/go-signer/internal/api/httperrors"
)

type PostGenerateMnemonicPayload struct {
	// Word count of the phrase, one of 12, 15, 18, 21 or 24. Defaults to 12.
	Words int `json:"words"`
}

type PostGenerateMnemonicResponse struct {
	Mnemonic string `json:"mnemonic"`
	Words    int    `json:"words"`
}

func PostGenerateMnemonicRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Accounts.POST("/mnemonic", postGenerateMnemonicHandler(s))
}

func postGenerateMnemonicHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body PostGenerateMnemonicPayload
		if err := c.Bind(&body); err != nil {
			return httperrors.NewBadRequest(httperrors.TypeGeneric, "Malformed request body.")
		}
		if body.Words == 0 {
			body.Words = mnemonic.WordCount12
		}
		switch body.Words {
		case mnemonic.WordCount12, mnemonic.WordCount15, mnemonic.WordCount18, mnemonic.WordCount21, mnemonic.WordCount24:
		default:
			return httperrors.NewBadRequest(httperrors.TypeGeneric, "Word count must be one of 12, 15, 18, 21 or 24.")
		}

		phrase, err := s.Mnemonics.Generate(body.Words)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, PostGenerateMnemonicResponse{
			Mnemonic: phrase,
			Words:    body.Words,
		})
	}
}
