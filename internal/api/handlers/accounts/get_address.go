package accounts

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github/keymint/go-signer/internal/account"
	"github/keymint/go-signer/internal/api"
	"github/keymint/go-signer/internal/api/httperrors"
)

type GetAddressResponse struct {
	Chain   string `json:"chain"`
	Index   uint32 `json:"index"`
	Address string `json:"address"`
}

func GetAddressRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Accounts.GET("/:chain/:index/address", getAddressHandler(s))
}

// Derives the account at the given index from the configured mnemonic and
// returns its public identity. Key material never leaves the process.
func getAddressHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		chain := account.Chain(c.Param("chain"))
		switch chain {
		case account.ChainEVM, account.ChainSolana:
		default:
			return httperrors.NewBadRequest(httperrors.TypeGeneric, "Chain must be \"evm\" or \"solana\".")
		}

		index, err := strconv.ParseUint(c.Param("index"), 10, 32)
		if err != nil {
			return httperrors.NewBadRequest(httperrors.TypeGeneric, "Index must be an unsigned integer.")
		}

		acct, err := s.SigningAccount(uint32(index), chain)
		if err != nil {
			return err
		}
		defer acct.Wipe()

		return c.JSON(http.StatusOK, GetAddressResponse{
			Chain:   string(chain),
			Index:   uint32(index),
			Address: acct.Identity(),
		})
	}
}
