// Package solana implements message and transaction signing for Solana
// accounts. Signatures and serialized transactions are rendered as base58
// strings, matching the encoding used on the wire.
package solana

import (
	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github/keymint/go-signer/internal/account"
	"github/keymint/go-signer/pkg/sign"
)

// SignMessage signs arbitrary message bytes with the account's ed25519 key
// and returns the 64-byte signature in base58.
func SignMessage(acct *account.Account, message []byte) (string, error) {
	signer, err := acct.Ed25519Signer()
	if err != nil {
		return "", err
	}
	sig, err := signer.Sign(message)
	if err != nil {
		return "", errors.Wrap(ErrSignature, err.Error())
	}
	return base58.Encode(sig), nil
}

// VerifySignature checks a base58 signature over message bytes against a
// base58 public key. A well-formed signature that does not match returns
// false with a nil error; malformed inputs return an error.
func VerifySignature(pubkey string, message []byte, signature string) (bool, error) {
	pub, err := solanago.PublicKeyFromBase58(pubkey)
	if err != nil {
		return false, errors.Wrap(ErrSignature, "invalid public key encoding")
	}
	raw, err := base58.Decode(signature)
	if err != nil {
		return false, errors.Wrap(ErrSignature, "invalid signature encoding")
	}
	return sign.VerifyEd25519(pub, message, sign.Signature(raw)), nil
}

// SignTransaction signs the transaction with the account's keypair wherever
// the message lists its public key as a required signer, then serializes the
// signed transaction to its canonical binary form rendered as base58.
func SignTransaction(acct *account.Account, tx *solanago.Transaction) (string, error) {
	if _, err := acct.Ed25519Signer(); err != nil {
		return "", err
	}
	key := acct.SolanaPrivateKey()
	_, err := tx.Sign(func(pub solanago.PublicKey) *solanago.PrivateKey {
		if key.PublicKey().Equals(pub) {
			return &key
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrap(ErrSignature, err.Error())
	}

	data, err := tx.MarshalBinary()
	if err != nil {
		return "", errors.Wrap(ErrSignature, err.Error())
	}
	return base58.Encode(data), nil
}

// DeserializeTransaction parses a base58-encoded serialized transaction back
// into its structured form, signatures included.
func DeserializeTransaction(raw string) (*solanago.Transaction, error) {
	data, err := base58.Decode(raw)
	if err != nil {
		return nil, errors.Wrap(ErrDecode, "invalid base58")
	}
	tx, err := solanago.TransactionFromDecoder(bin.NewBinDecoder(data))
	if err != nil {
		return nil, errors.Wrap(ErrDecode, err.Error())
	}
	return tx, nil
}

// BuildTransferTransaction assembles an unsigned system-program transfer of
// lamports from one account to another, with from as the fee payer.
func BuildTransferTransaction(from, to solanago.PublicKey, lamports uint64, recentBlockhash solanago.Hash) (*solanago.Transaction, error) {
	ix := system.NewTransferInstruction(lamports, from, to).Build()
	tx, err := solanago.NewTransaction(
		[]solanago.Instruction{ix},
		recentBlockhash,
		solanago.TransactionPayer(from),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build transfer transaction")
	}
	return tx, nil
}
