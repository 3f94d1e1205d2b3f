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

type PostSignTransactionPayload struct {
	AccountIndex uint32 `json:"account_index"`

	// Transaction is the base58-encoded serialized transaction to sign.
	Transaction string `json:"transaction"`
}

type PostSignTransactionResponse struct {
	PublicKey         string `json:"public_key"`
	SignedTransaction string `json:"signed_transaction"`
}

func PostSignTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Solana.POST("/sign-transaction", postSignTransactionHandler(s))
}

func postSignTransactionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body PostSignTransactionPayload
		if err := c.Bind(&body); err != nil {
			return httperrors.NewBadRequest(httperrors.TypeGeneric, "Malformed request body.")
		}

		tx, err := solsign.DeserializeTransaction(body.Transaction)
		if err != nil {
			return err
		}

		acct, err := s.SigningAccount(body.AccountIndex, account.ChainSolana)
		if err != nil {
			return err
		}
		defer acct.Wipe()

		signed, err := solsign.SignTransaction(acct, tx)
		if err != nil {
			return err
		}

		metrics.SignaturesTotal.WithLabelValues("solana", "transaction").Inc()

		return c.JSON(http.StatusOK, PostSignTransactionResponse{
			PublicKey:         acct.PublicKey().String(),
			SignedTransaction: signed,
		})
	}
}
