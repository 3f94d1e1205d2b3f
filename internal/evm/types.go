package evm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// Errors returned by the EVM signing surface.
var (
	ErrSignature                  = errors.New("signature error")
	ErrInvalidAddress             = errors.New("invalid address")
	ErrDecode                     = errors.New("failed to decode transaction")
	ErrUnsupportedTransactionType = errors.New("unsupported transaction type")
	ErrMissingChainID             = errors.New("missing chain id")
)

// TxType enumerates the transaction envelope kinds. The set is closed: every
// codec switch carries an explicit arm per kind, so adding one is a
// compile-visible extension point.
type TxType uint8

const (
	TxLegacy     TxType = 0x00
	TxAccessList TxType = 0x01 // EIP-2930
	TxDynamicFee TxType = 0x02 // EIP-1559
	TxBlob       TxType = 0x03 // EIP-4844
	TxSetCode    TxType = 0x04 // EIP-7702
)

// String returns the conventional name of the envelope kind.
func (t TxType) String() string {
	switch t {
	case TxLegacy:
		return "legacy"
	case TxAccessList:
		return "eip2930"
	case TxDynamicFee:
		return "eip1559"
	case TxBlob:
		return "eip4844"
	case TxSetCode:
		return "eip7702"
	default:
		return "unknown"
	}
}

// Transaction is the chain-agnostic view of an EVM transaction used by the
// codec. Only the Legacy and DynamicFee kinds are signable; the remaining
// kinds are structurally represented so decoded envelopes can be inspected.
type Transaction struct {
	Type    TxType
	ChainID *big.Int
	Nonce   uint64

	// Legacy gas pricing.
	GasPrice *big.Int

	// EIP-1559 gas pricing.
	GasTipCap *big.Int // max priority fee per gas
	GasFeeCap *big.Int // max fee per gas

	Gas   uint64
	To    *common.Address // nil means contract creation
	Value *big.Int
	Data  []byte

	AccessList types.AccessList
}
