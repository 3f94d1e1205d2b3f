package evm

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/keymint/go-signer/internal/api"
	"github/keymint/go-signer/internal/api/httperrors"
	"github/keymint/go-signer/internal/mev"
)

type PostSendPrivateTransactionPayload struct {
	RawTransaction string `json:"raw_transaction"`
	MaxBlockNumber uint64 `json:"max_block_number,omitempty"`
	Fast           bool   `json:"fast,omitempty"`
}

type PostSendPrivateTransactionResponse struct {
	TxHash string `json:"tx_hash"`
}

func PostSendPrivateTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1EVM.POST("/private-transaction", postSendPrivateTransactionHandler(s))
}

// Forwards a raw signed transaction to the MEV relay for private inclusion.
func postSendPrivateTransactionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.Relay == nil {
			return httperrors.NewHTTPError(http.StatusServiceUnavailable, httperrors.TypeGeneric, "No relay configured.")
		}

		var body PostSendPrivateTransactionPayload
		if err := c.Bind(&body); err != nil {
			return httperrors.NewBadRequest(httperrors.TypeGeneric, "Malformed request body.")
		}
		if body.RawTransaction == "" {
			return httperrors.NewBadRequest(httperrors.TypeGeneric, "raw_transaction is required.")
		}

		var prefs *mev.PrivateTransactionPreferences
		if body.Fast {
			prefs = &mev.PrivateTransactionPreferences{Fast: true}
		}

		hash, err := s.Relay.SendPrivateTransaction(c.Request().Context(), body.RawTransaction, body.MaxBlockNumber, prefs)
		if err != nil {
			return httperrors.NewHTTPErrorWithDetail(http.StatusBadGateway, httperrors.TypeGeneric, "Relay rejected the transaction.", err.Error())
		}

		return c.JSON(http.StatusOK, PostSendPrivateTransactionResponse{TxHash: hash})
	}
}
