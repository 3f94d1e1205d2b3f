package evm

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/labstack/echo/v4"

	"github/keymint/go-signer/internal/account"
	"github/keymint/go-signer/internal/api"
	"github/keymint/go-signer/internal/api/httperrors"
	evmsign "github/keymint/go-signer/internal/evm"
	"github/keymint/go-signer/internal/metrics"
)

type PostSignTransactionPayload struct {
	AccountIndex uint32 `json:"account_index"`

	// Type is the envelope kind: "legacy" or "eip1559".
	Type    string `json:"type"`
	ChainID int64  `json:"chain_id"`
	Nonce   uint64 `json:"nonce"`

	GasPrice             string `json:"gas_price,omitempty"`
	MaxFeePerGas         string `json:"max_fee_per_gas,omitempty"`
	MaxPriorityFeePerGas string `json:"max_priority_fee_per_gas,omitempty"`

	Gas   uint64 `json:"gas"`
	To    string `json:"to,omitempty"` // empty means contract creation
	Value string `json:"value,omitempty"`
	Data  string `json:"data,omitempty"` // 0x-prefixed hex
}

type PostSignTransactionResponse struct {
	Address        string `json:"address"`
	RawTransaction string `json:"raw_transaction"`
}

func PostSignTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1EVM.POST("/sign-transaction", postSignTransactionHandler(s))
}

func postSignTransactionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body PostSignTransactionPayload
		if err := c.Bind(&body); err != nil {
			return httperrors.NewBadRequest(httperrors.TypeGeneric, "Malformed request body.")
		}

		tx, err := transactionFromPayload(&body)
		if err != nil {
			return err
		}

		acct, err := s.SigningAccount(body.AccountIndex, account.ChainEVM)
		if err != nil {
			return err
		}
		defer acct.Wipe()

		raw, err := evmsign.EncodeAndSign(tx, acct)
		if err != nil {
			return err
		}

		metrics.SignaturesTotal.WithLabelValues("evm", "transaction").Inc()

		return c.JSON(http.StatusOK, PostSignTransactionResponse{
			Address:        acct.Address().Hex(),
			RawTransaction: raw,
		})
	}
}

func transactionFromPayload(body *PostSignTransactionPayload) (*evmsign.Transaction, error) {
	tx := &evmsign.Transaction{
		Nonce: body.Nonce,
		Gas:   body.Gas,
	}

	switch body.Type {
	case "", "legacy":
		tx.Type = evmsign.TxLegacy
	case "eip1559":
		tx.Type = evmsign.TxDynamicFee
	case "eip2930":
		tx.Type = evmsign.TxAccessList
	case "eip4844":
		tx.Type = evmsign.TxBlob
	case "eip7702":
		tx.Type = evmsign.TxSetCode
	default:
		return nil, httperrors.NewBadRequest(httperrors.TypeUnsupportedTx, "Unknown transaction type.")
	}

	if body.ChainID != 0 {
		tx.ChainID = big.NewInt(body.ChainID)
	}

	if body.To != "" {
		if !common.IsHexAddress(body.To) {
			return nil, httperrors.NewBadRequest(httperrors.TypeInvalidAddress, "Invalid recipient address.")
		}
		to := common.HexToAddress(body.To)
		tx.To = &to
	}

	var err error
	if tx.Value, err = decimalField(body.Value); err != nil {
		return nil, httperrors.NewBadRequest(httperrors.TypeGeneric, "Invalid value.")
	}
	if tx.GasPrice, err = decimalField(body.GasPrice); err != nil {
		return nil, httperrors.NewBadRequest(httperrors.TypeGeneric, "Invalid gas_price.")
	}
	if tx.GasFeeCap, err = decimalField(body.MaxFeePerGas); err != nil {
		return nil, httperrors.NewBadRequest(httperrors.TypeGeneric, "Invalid max_fee_per_gas.")
	}
	if tx.GasTipCap, err = decimalField(body.MaxPriorityFeePerGas); err != nil {
		return nil, httperrors.NewBadRequest(httperrors.TypeGeneric, "Invalid max_priority_fee_per_gas.")
	}

	if body.Data != "" {
		data, err := hexutil.Decode(body.Data)
		if err != nil {
			return nil, httperrors.NewBadRequest(httperrors.TypeGeneric, "Data must be 0x-prefixed hex.")
		}
		tx.Data = data
	}

	return tx, nil
}

// decimalField parses a base-10 amount string. Empty means zero.
func decimalField(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, httperrors.NewBadRequest(httperrors.TypeGeneric, "Invalid amount.")
	}
	return v, nil
}
