package evm

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/labstack/echo/v4"

	"github/keymint/go-signer/internal/api"
	"github/keymint/go-signer/internal/api/httperrors"
	evmsign "github/keymint/go-signer/internal/evm"
)

type PostDecodeTransactionPayload struct {
	RawTransaction string `json:"raw_transaction"`
}

type PostDecodeTransactionResponse struct {
	Type    string `json:"type"`
	ChainID string `json:"chain_id,omitempty"`
	Nonce   uint64 `json:"nonce"`

	GasPrice             string `json:"gas_price,omitempty"`
	MaxFeePerGas         string `json:"max_fee_per_gas,omitempty"`
	MaxPriorityFeePerGas string `json:"max_priority_fee_per_gas,omitempty"`

	Gas    uint64 `json:"gas"`
	To     string `json:"to,omitempty"`
	Value  string `json:"value"`
	Data   string `json:"data,omitempty"`
	Sender string `json:"sender"`
}

func PostDecodeTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1EVM.POST("/decode-transaction", postDecodeTransactionHandler(s))
}

// Decodes a raw signed transaction and recovers its sender.
func postDecodeTransactionHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body PostDecodeTransactionPayload
		if err := c.Bind(&body); err != nil {
			return httperrors.NewBadRequest(httperrors.TypeGeneric, "Malformed request body.")
		}

		tx, err := evmsign.DecodeRaw(body.RawTransaction)
		if err != nil {
			return err
		}

		sender, err := evmsign.RecoverSender(body.RawTransaction)
		if err != nil {
			return err
		}

		resp := PostDecodeTransactionResponse{
			Type:   tx.Type.String(),
			Nonce:  tx.Nonce,
			Gas:    tx.Gas,
			Value:  tx.Value.String(),
			Sender: sender.Hex(),
		}
		if tx.ChainID != nil {
			resp.ChainID = tx.ChainID.String()
		}
		if tx.GasPrice != nil {
			resp.GasPrice = tx.GasPrice.String()
		}
		if tx.GasFeeCap != nil {
			resp.MaxFeePerGas = tx.GasFeeCap.String()
		}
		if tx.GasTipCap != nil {
			resp.MaxPriorityFeePerGas = tx.GasTipCap.String()
		}
		if tx.To != nil {
			resp.To = tx.To.Hex()
		}
		if len(tx.Data) > 0 {
			resp.Data = hexutil.Encode(tx.Data)
		}

		return c.JSON(http.StatusOK, resp)
	}
}
