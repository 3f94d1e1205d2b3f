package account

import (
	"crypto/ecdsa"
	"encoding/hex"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github/keymint/go-signer/internal/account/mnemonic"
)

// Service constructs accounts from mnemonics, raw keys, or fresh randomness
type Service interface {
	// FromMnemonic derives the account at the given BIP-44 index
	FromMnemonic(phrase string, passphrase string, index uint32, chain Chain) (*Account, error)

	// FromRawKey builds an account from chain-native encoded key material:
	// hex (optional 0x prefix) for EVM, base58 keypair for Solana
	FromRawKey(input string, chain Chain) (*Account, error)

	// Random generates a fresh account with a cryptographically secure key.
	// A failure of the underlying randomness source is unrecoverable and
	// panics rather than returning an error.
	Random(chain Chain) *Account
}

type service struct {
	mnemonics mnemonic.Service
}

// NewService creates a new account Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(mnemonics mnemonic.Service) Service {
	return &service{mnemonics: mnemonics}
}

// FromMnemonic validates the phrase, derives the BIP-39 seed, walks the
// chain-specific BIP-44 path and returns the resulting account.
// Deterministic: same inputs always yield the same account.
func (s *service) FromMnemonic(phrase string, passphrase string, index uint32, chain Chain) (*Account, error) {
	parsed, err := s.mnemonics.Parse(phrase)
	if err != nil {
		return nil, err
	}

	seed := s.mnemonics.ToSeed(parsed, passphrase)
	defer clearBytes(seed)

	switch chain {
	case ChainEVM:
		keyBytes, err := deriveSecp256k1Key(seed, EVMDerivationPath(index))
		if err != nil {
			return nil, errors.Wrap(err, "failed to derive evm key")
		}
		defer clearBytes(keyBytes)
		return newEVMAccount(keyBytes)

	case ChainSolana:
		keypair, err := deriveEd25519Key(seed, SolanaDerivationPath(index))
		if err != nil {
			return nil, errors.Wrap(err, "failed to derive solana key")
		}
		return newSolanaAccount(solana.PrivateKey(keypair)), nil

	default:
		return nil, errors.Wrapf(ErrUnsupportedChain, "%s", chain)
	}
}

// FromRawKey parses chain-native encoded key material.
func (s *service) FromRawKey(input string, chain Chain) (*Account, error) {
	switch chain {
	case ChainEVM:
		keyHex := strings.TrimPrefix(strings.TrimSpace(input), "0x")
		keyBytes, err := hex.DecodeString(keyHex)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidPrivateKeyHex, err.Error())
		}
		defer clearBytes(keyBytes)
		if len(keyBytes) != 32 {
			return nil, errors.Wrapf(ErrInvalidPrivateKeyHex, "expected 32 bytes, got %d", len(keyBytes))
		}
		return newEVMAccount(keyBytes)

	case ChainSolana:
		key, err := solana.PrivateKeyFromBase58(strings.TrimSpace(input))
		if err != nil {
			return nil, errors.Wrap(ErrInvalidPrivateKey, err.Error())
		}
		if len(key) != 64 {
			return nil, errors.Wrapf(ErrInvalidPrivateKey, "expected 64-byte keypair, got %d", len(key))
		}
		return newSolanaAccount(key), nil

	default:
		return nil, errors.Wrapf(ErrUnsupportedChain, "%s", chain)
	}
}

// Random generates a fresh account.
func (s *service) Random(chain Chain) *Account {
	switch chain {
	case ChainSolana:
		return newSolanaAccount(solana.NewWallet().PrivateKey)
	default:
		key, err := ethcrypto.GenerateKey()
		if err != nil {
			// crypto/rand failure; nothing sane can continue from here.
			panic(errors.Wrap(err, "secure randomness source failed"))
		}
		return newAccountFromECDSA(key)
	}
}

// newEVMAccount converts raw 32-byte key material to an account, rejecting
// out-of-range scalars for the curve order.
func newEVMAccount(keyBytes []byte) (*Account, error) {
	key, err := ethcrypto.ToECDSA(keyBytes)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPrivateKey, err.Error())
	}
	return newAccountFromECDSA(key), nil
}

func newAccountFromECDSA(key *ecdsa.PrivateKey) *Account {
	return &Account{
		chain:   ChainEVM,
		evmKey:  key,
		address: ethcrypto.PubkeyToAddress(key.PublicKey),
	}
}

func newSolanaAccount(key solana.PrivateKey) *Account {
	return &Account{
		chain:     ChainSolana,
		solanaKey: key,
		pubkey:    key.PublicKey(),
	}
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
