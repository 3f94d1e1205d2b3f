package account

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github/keymint/go-signer/pkg/sign"
)

// Chain identifies the chain family an account belongs to.
type Chain string

const (
	ChainEVM    Chain = "evm"
	ChainSolana Chain = "solana"
)

// Errors returned by account construction.
var (
	ErrInvalidPrivateKey    = errors.New("invalid private key")
	ErrInvalidPrivateKeyHex = errors.New("invalid private key hex")
	ErrUnsupportedChain     = errors.New("unsupported chain type")
)

// Account holds chain-tagged key material and its public identity.
// The holder owns it exclusively; signers borrow it per operation and never
// retain it across calls.
type Account struct {
	chain Chain

	evmKey    *ecdsa.PrivateKey // set when chain == ChainEVM
	solanaKey solana.PrivateKey // set when chain == ChainSolana

	address common.Address   // EVM identity
	pubkey  solana.PublicKey // Solana identity
}

// Chain returns the chain family of this account.
func (a *Account) Chain() Chain { return a.chain }

// Address returns the EVM address. Zero for non-EVM accounts.
func (a *Account) Address() common.Address { return a.address }

// PublicKey returns the Solana public key. Zero for non-Solana accounts.
func (a *Account) PublicKey() solana.PublicKey { return a.pubkey }

// Identity returns the canonical text rendering of the public identity:
// checksummed hex for EVM, base58 for Solana.
func (a *Account) Identity() string {
	if a.chain == ChainSolana {
		return a.pubkey.String()
	}
	return a.address.Hex()
}

// Secp256k1Signer returns a borrowed signing capability over the EVM key.
func (a *Account) Secp256k1Signer() (*sign.Secp256k1Signer, error) {
	if a.chain != ChainEVM || a.evmKey == nil {
		return nil, errors.Wrap(ErrUnsupportedChain, "account holds no secp256k1 key")
	}
	return sign.NewSecp256k1Signer(a.evmKey), nil
}

// Ed25519Signer returns a borrowed signing capability over the Solana key.
func (a *Account) Ed25519Signer() (*sign.Ed25519Signer, error) {
	if a.chain != ChainSolana || a.solanaKey == nil {
		return nil, errors.Wrap(ErrUnsupportedChain, "account holds no ed25519 key")
	}
	return sign.NewEd25519Signer(a.solanaKey)
}

// SolanaPrivateKey returns the borrowed 64-byte keypair for transaction
// signing. Nil for non-Solana accounts.
func (a *Account) SolanaPrivateKey() solana.PrivateKey { return a.solanaKey }

// ECDSAPrivateKey returns the borrowed secp256k1 key for transaction signing.
// Nil for non-EVM accounts.
func (a *Account) ECDSAPrivateKey() *ecdsa.PrivateKey { return a.evmKey }

// ExportPrivateKey renders the private key material in the chain's native
// encoding: 0x-prefixed hex for EVM, base58 keypair for Solana. This is the
// only operation that serializes key material.
func (a *Account) ExportPrivateKey() string {
	switch a.chain {
	case ChainSolana:
		return a.solanaKey.String()
	default:
		return hexutil.Encode(ethcrypto.FromECDSA(a.evmKey))
	}
}

// Wipe zeroizes the key material. The account is unusable afterwards.
// Best-effort hardening; Go gives no guarantee about copies made by the
// runtime or the curve libraries.
func (a *Account) Wipe() {
	if a.solanaKey != nil {
		for i := range a.solanaKey {
			a.solanaKey[i] = 0
		}
		a.solanaKey = nil
	}
	if a.evmKey != nil {
		a.evmKey.D = new(big.Int)
		a.evmKey = nil
	}
}
