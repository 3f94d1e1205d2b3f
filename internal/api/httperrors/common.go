package httperrors

import (
	"net/http"

	"github.com/pkg/errors"

	"github/keymint/go-signer/internal/account"
	"github/keymint/go-signer/internal/account/mnemonic"
	"github/keymint/go-signer/internal/evm"
	"github/keymint/go-signer/internal/solana"
)

// FromDomainError maps known domain sentinels to public HTTP errors. Unknown
// errors map to a plain 500 so internals never leak into the payload.
func FromDomainError(err error) *HTTPError {
	switch {
	case errors.Is(err, mnemonic.ErrInvalidMnemonic):
		return NewBadRequest(TypeInvalidMnemonic, "Invalid mnemonic phrase.")
	case errors.Is(err, account.ErrInvalidPrivateKey), errors.Is(err, account.ErrInvalidPrivateKeyHex):
		return NewBadRequest(TypeInvalidPrivateKey, "Invalid private key.")
	case errors.Is(err, account.ErrUnsupportedChain):
		return NewBadRequest(TypeGeneric, "Unsupported chain.")
	case errors.Is(err, evm.ErrInvalidAddress):
		return NewBadRequest(TypeInvalidAddress, "Invalid address.")
	case errors.Is(err, evm.ErrMissingChainID):
		return NewBadRequest(TypeGeneric, "Chain id is required.")
	case errors.Is(err, evm.ErrUnsupportedTransactionType):
		return NewBadRequest(TypeUnsupportedTx, "Unsupported transaction type.")
	case errors.Is(err, evm.ErrDecode), errors.Is(err, solana.ErrDecode):
		return NewBadRequest(TypeDecode, "Failed to decode payload.")
	case errors.Is(err, evm.ErrSignature), errors.Is(err, solana.ErrSignature):
		return NewBadRequest(TypeSignature, "Failed to process signature.")
	default:
		return NewHTTPError(http.StatusInternalServerError, TypeGeneric, "Internal server error.")
	}
}
