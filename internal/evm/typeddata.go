package evm

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"

	"github/keymint/go-signer/internal/account"
	"github/keymint/go-signer/pkg/sign"
)

// SignTypedData signs EIP-712 typed structured data: the digest is
// keccak256(0x1901 || domainSeparator || hashStruct(message)).
//
// If the domain carries a verifyingContract it must be a well-formed,
// non-zero 20-byte address. A zero or malformed contract address is rejected
// with ErrInvalidAddress before hashing: a signature over such a domain is
// syntactically valid but semantically meaningless, and producing one would
// only mask a caller bug.
func SignTypedData(acct *account.Account, typedData apitypes.TypedData) (sign.Signature, error) {
	if err := validateDomain(typedData.Domain); err != nil {
		return nil, err
	}

	signer, err := acct.Secp256k1Signer()
	if err != nil {
		return nil, err
	}

	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return nil, errors.Wrap(ErrSignature, err.Error())
	}

	sig, err := signer.Sign(hash)
	if err != nil {
		return nil, errors.Wrap(ErrSignature, err.Error())
	}
	return sig, nil
}

// RecoverTypedData recovers the signing address of an EIP-712 signature.
// The domain guard applied when signing is deliberately not applied here:
// recovery must work against already-produced, possibly third-party
// signatures over whatever domain they carry.
func RecoverTypedData(typedData apitypes.TypedData, sig sign.Signature) (common.Address, error) {
	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return common.Address{}, errors.Wrap(ErrSignature, err.Error())
	}

	addr, err := sign.RecoverAddress(hash, sig)
	if err != nil {
		return common.Address{}, errors.Wrap(ErrSignature, err.Error())
	}
	return addr, nil
}

func validateDomain(domain apitypes.TypedDataDomain) error {
	if domain.VerifyingContract == "" {
		return nil
	}
	if !common.IsHexAddress(domain.VerifyingContract) {
		return errors.Wrapf(ErrInvalidAddress, "malformed verifying contract %q", domain.VerifyingContract)
	}
	if common.HexToAddress(domain.VerifyingContract) == (common.Address{}) {
		return errors.Wrap(ErrInvalidAddress, "verifying contract is the zero address")
	}
	return nil
}
