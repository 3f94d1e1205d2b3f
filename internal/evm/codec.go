package evm

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github/keymint/go-signer/internal/account"
)

// EncodeAndSign canonically encodes and signs a transaction, returning the
// 0x-prefixed hex of the broadcastable envelope.
//
// Legacy transactions are signed under EIP-155 replay protection
// (v = recoveryId + chainId*2 + 35); dynamic-fee transactions use the typed
// envelope 0x02 || RLP([...]) with v in {0, 1}. The chain id is required on
// every call: signing without one is a caller error, never defaulted.
func EncodeAndSign(tx *Transaction, acct *account.Account) (string, error) {
	key := acct.ECDSAPrivateKey()
	if key == nil {
		return "", errors.Wrap(ErrSignature, "account holds no secp256k1 key")
	}
	if tx.ChainID == nil || tx.ChainID.Sign() <= 0 {
		return "", errors.Wrapf(ErrMissingChainID, "%s transaction", tx.Type)
	}

	var (
		inner  types.TxData
		signer types.Signer
	)

	switch tx.Type {
	case TxLegacy:
		inner = &types.LegacyTx{
			Nonce:    tx.Nonce,
			GasPrice: tx.GasPrice,
			Gas:      tx.Gas,
			To:       tx.To,
			Value:    tx.Value,
			Data:     tx.Data,
		}
		signer = types.NewEIP155Signer(tx.ChainID)

	case TxDynamicFee:
		inner = &types.DynamicFeeTx{
			ChainID:    tx.ChainID,
			Nonce:      tx.Nonce,
			GasTipCap:  tx.GasTipCap,
			GasFeeCap:  tx.GasFeeCap,
			Gas:        tx.Gas,
			To:         tx.To,
			Value:      tx.Value,
			Data:       tx.Data,
			AccessList: tx.AccessList,
		}
		signer = types.NewLondonSigner(tx.ChainID)

	case TxAccessList, TxBlob, TxSetCode:
		return "", errors.Wrapf(ErrUnsupportedTransactionType, "%s", tx.Type)

	default:
		return "", errors.Wrapf(ErrUnsupportedTransactionType, "0x%02x", uint8(tx.Type))
	}

	signedTx, err := types.SignTx(types.NewTx(inner), signer, key)
	if err != nil {
		return "", errors.Wrap(ErrSignature, err.Error())
	}

	raw, err := signedTx.MarshalBinary()
	if err != nil {
		return "", errors.Wrap(ErrSignature, err.Error())
	}

	return hexutil.Encode(raw), nil
}

// DecodeRaw decodes a 0x-prefixed raw transaction. The leading byte
// distinguishes the envelope kind: typed transactions begin with a small type
// byte (0x01-0x7f) while a legacy transaction's first byte is an RLP list
// marker (>= 0xc0). Truncated or malformed input yields ErrDecode.
func DecodeRaw(rawHex string) (*Transaction, error) {
	decoded, err := decodeBinary(rawHex)
	if err != nil {
		return nil, err
	}

	tx := &Transaction{
		Type:    TxType(decoded.Type()),
		ChainID: decoded.ChainId(),
		Nonce:   decoded.Nonce(),
		Gas:     decoded.Gas(),
		To:      decoded.To(),
		Value:   decoded.Value(),
		Data:    decoded.Data(),
	}

	switch tx.Type {
	case TxLegacy:
		tx.GasPrice = decoded.GasPrice()
	case TxAccessList:
		tx.GasPrice = decoded.GasPrice()
		tx.AccessList = decoded.AccessList()
	default:
		tx.GasTipCap = decoded.GasTipCap()
		tx.GasFeeCap = decoded.GasFeeCap()
		tx.AccessList = decoded.AccessList()
	}

	return tx, nil
}

// RecoverSender recovers the signing address of a raw signed transaction.
func RecoverSender(rawHex string) (common.Address, error) {
	decoded, err := decodeBinary(rawHex)
	if err != nil {
		return common.Address{}, err
	}

	sender, err := types.Sender(types.LatestSignerForChainID(decoded.ChainId()), decoded)
	if err != nil {
		return common.Address{}, errors.Wrap(ErrSignature, err.Error())
	}
	return sender, nil
}

func decodeBinary(rawHex string) (*types.Transaction, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(rawHex), "0x"))
	if err != nil {
		return nil, errors.Wrap(ErrDecode, err.Error())
	}
	if len(raw) == 0 {
		return nil, errors.Wrap(ErrDecode, "empty payload")
	}

	decoded := new(types.Transaction)
	if err := decoded.UnmarshalBinary(raw); err != nil {
		return nil, errors.Wrap(ErrDecode, err.Error())
	}
	return decoded, nil
}
