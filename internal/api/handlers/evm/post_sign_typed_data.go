package evm

import (
	"net/http"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/labstack/echo/v4"

	"github/keymint/go-signer/internal/account"
	"github/keymint/go-signer/internal/api"
	"github/keymint/go-signer/internal/api/httperrors"
	evmsign "github/keymint/go-signer/internal/evm"
	"github/keymint/go-signer/internal/metrics"
)

type PostSignTypedDataPayload struct {
	AccountIndex uint32             `json:"account_index"`
	TypedData    apitypes.TypedData `json:"typed_data"`
}

type PostSignTypedDataResponse struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
}

func PostSignTypedDataRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1EVM.POST("/sign-typed-data", postSignTypedDataHandler(s))
}

func postSignTypedDataHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body PostSignTypedDataPayload
		if err := c.Bind(&body); err != nil {
			return httperrors.NewBadRequest(httperrors.TypeGeneric, "Malformed request body.")
		}

		acct, err := s.SigningAccount(body.AccountIndex, account.ChainEVM)
		if err != nil {
			return err
		}
		defer acct.Wipe()

		sig, err := evmsign.SignTypedData(acct, body.TypedData)
		if err != nil {
			return err
		}

		metrics.SignaturesTotal.WithLabelValues("evm", "typed_data").Inc()

		return c.JSON(http.StatusOK, PostSignTypedDataResponse{
			Address:   acct.Address().Hex(),
			Signature: sig.String(),
		})
	}
}
