package sign

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// Ensure our types implement the interfaces at compile time.
var _ Signer = (*Secp256k1Signer)(nil)
var _ PublicKey = (*Secp256k1PublicKey)(nil)

// Secp256k1PublicKey implements the PublicKey interface for secp256k1 keys.
type Secp256k1PublicKey struct{ *ecdsa.PublicKey }

// Address returns the 20-byte EVM address derived from this key.
func (p Secp256k1PublicKey) Address() common.Address {
	return ethcrypto.PubkeyToAddress(*p.PublicKey)
}

func (p Secp256k1PublicKey) Bytes() []byte  { return ethcrypto.FromECDSAPub(p.PublicKey) }
func (p Secp256k1PublicKey) String() string { return p.Address().Hex() }

// NewSecp256k1PublicKey wraps an ECDSA public key.
func NewSecp256k1PublicKey(pub *ecdsa.PublicKey) Secp256k1PublicKey {
	return Secp256k1PublicKey{pub}
}

// Secp256k1Signer signs 32-byte digests with deterministic-nonce ECDSA.
type Secp256k1Signer struct {
	privateKey *ecdsa.PrivateKey
	publicKey  Secp256k1PublicKey
}

func (s *Secp256k1Signer) PublicKey() PublicKey { return s.publicKey }

// Sign expects the input to be a 32-byte hash (e.g. a Keccak256 digest).
// The recovery id in the returned signature is normalized to 27/28.
func (s *Secp256k1Signer) Sign(hash []byte) (Signature, error) {
	sig, err := ethcrypto.Sign(hash, s.privateKey)
	if err != nil {
		return nil, err
	}
	if sig[64] < 27 {
		sig[64] += 27
	}
	return Signature(sig), nil
}

// NewSecp256k1Signer creates a signer from an ECDSA private key.
func NewSecp256k1Signer(key *ecdsa.PrivateKey) *Secp256k1Signer {
	return &Secp256k1Signer{
		privateKey: key,
		publicKey:  Secp256k1PublicKey{&key.PublicKey},
	}
}

// NewSecp256k1SignerFromHex creates a signer from a hex-encoded private key,
// with or without a 0x prefix.
func NewSecp256k1SignerFromHex(privateKeyHex string) (*Secp256k1Signer, error) {
	privateKeyHex = strings.TrimPrefix(privateKeyHex, "0x")
	key, err := ethcrypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse secp256k1 private key")
	}
	return NewSecp256k1Signer(key), nil
}

// RecoverAddress recovers the signing address from a signature over hash.
// Accepts recovery ids in both 0/1 and 27/28 form.
func RecoverAddress(hash []byte, sig Signature) (common.Address, error) {
	pub, err := RecoverPublicKey(hash, sig)
	if err != nil {
		return common.Address{}, err
	}
	return ethcrypto.PubkeyToAddress(*pub.PublicKey), nil
}

// RecoverPublicKey recovers the public key from a signature over hash.
func RecoverPublicKey(hash []byte, sig Signature) (Secp256k1PublicKey, error) {
	if len(sig) != 65 {
		return Secp256k1PublicKey{}, errors.New("invalid signature length")
	}
	localSig := make([]byte, 65)
	copy(localSig, sig)
	if localSig[64] >= 27 {
		localSig[64] -= 27
	}
	pub, err := ethcrypto.SigToPub(hash, localSig)
	if err != nil {
		return Secp256k1PublicKey{}, errors.Wrap(err, "signature recovery failed")
	}
	return Secp256k1PublicKey{pub}, nil
}
