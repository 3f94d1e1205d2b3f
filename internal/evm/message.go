package evm

import (
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github/keymint/go-signer/internal/account"
	"github/keymint/go-signer/pkg/sign"
)

// SignPersonal signs a message per EIP-191: the digest is
// keccak256("\x19Ethereum Signed Message:\n" + len(message) + message),
// signed with deterministic-nonce ECDSA. The returned 65-byte signature
// carries a recovery id in {27, 28}.
//
// The account is borrowed for this call only; nothing is retained.
func SignPersonal(acct *account.Account, message []byte) (sign.Signature, error) {
	signer, err := acct.Secp256k1Signer()
	if err != nil {
		return nil, err
	}

	sig, err := signer.Sign(accounts.TextHash(message))
	if err != nil {
		return nil, errors.Wrap(ErrSignature, err.Error())
	}
	return sig, nil
}

// RecoverPersonal recovers the signing address of an EIP-191 personal
// message signature.
func RecoverPersonal(message []byte, sig sign.Signature) (common.Address, error) {
	addr, err := sign.RecoverAddress(accounts.TextHash(message), sig)
	if err != nil {
		return common.Address{}, errors.Wrap(ErrSignature, err.Error())
	}
	return addr, nil
}
