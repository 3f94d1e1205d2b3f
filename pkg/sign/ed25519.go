package sign

import (
	"crypto/ed25519"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

var _ Signer = (*Ed25519Signer)(nil)
var _ PublicKey = (*Ed25519PublicKey)(nil)

// Ed25519PublicKey implements the PublicKey interface for ed25519 keys.
type Ed25519PublicKey struct{ solana.PublicKey }

func (p Ed25519PublicKey) Bytes() []byte  { return p.PublicKey.Bytes() }
func (p Ed25519PublicKey) String() string { return p.PublicKey.String() }

// NewEd25519PublicKey wraps a solana public key.
func NewEd25519PublicKey(pub solana.PublicKey) Ed25519PublicKey {
	return Ed25519PublicKey{pub}
}

// Ed25519Signer signs raw message bytes (no pre-hashing, per EdDSA).
type Ed25519Signer struct {
	privateKey solana.PrivateKey
	publicKey  Ed25519PublicKey
}

func (s *Ed25519Signer) PublicKey() PublicKey { return s.publicKey }

// Sign signs the raw message bytes and returns a 64-byte signature.
func (s *Ed25519Signer) Sign(message []byte) (Signature, error) {
	sig, err := s.privateKey.Sign(message)
	if err != nil {
		return nil, err
	}
	return Signature(sig[:]), nil
}

// NewEd25519Signer creates a signer from a 64-byte solana keypair.
func NewEd25519Signer(key solana.PrivateKey) (*Ed25519Signer, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("invalid ed25519 keypair length %d", len(key))
	}
	return &Ed25519Signer{
		privateKey: key,
		publicKey:  Ed25519PublicKey{key.PublicKey()},
	}, nil
}

// VerifyEd25519 verifies a 64-byte signature over the raw message bytes.
// A well-formed but non-matching signature returns false, never an error.
func VerifyEd25519(pub solana.PublicKey, message []byte, sig Signature) bool {
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub.Bytes()), message, sig)
}
