package sign

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Signer is an interface for a chain-agnostic signer.
//
// Implementations sign a digest (secp256k1) or a raw message (ed25519);
// which one is expected is documented per implementation.
type Signer interface {
	PublicKey() PublicKey                // Public key associated with this signer.
	Sign(data []byte) (Signature, error) // Sign generates a signature for the given data.
}

// Verifier is an interface for signature verification against a public key.
type Verifier interface {
	Verify(data []byte, sig Signature, pub PublicKey) bool
}

// PublicKey is an interface for a chain-agnostic public key.
type PublicKey interface {
	fmt.Stringer // Canonical text rendering (hex address for EVM, base58 for Solana).

	Bytes() []byte
}

// Signature is a generic byte slice representing a cryptographic signature.
type Signature []byte

// Scheme represents the curve family a signature belongs to.
type Scheme uint8

const (
	SchemeSecp256k1 Scheme = iota
	SchemeEd25519
	SchemeUnknown Scheme = 255
)

// String returns the string representation of the scheme.
func (s Scheme) String() string {
	switch s {
	case SchemeSecp256k1:
		return "secp256k1"
	case SchemeEd25519:
		return "ed25519"
	default:
		return "unknown"
	}
}

// Scheme returns the curve family for this signature based on its length.
func (s Signature) Scheme() Scheme {
	switch len(s) {
	case 65:
		// r (32 bytes) || s (32 bytes) || v (1 byte)
		return SchemeSecp256k1
	case 64:
		return SchemeEd25519
	default:
		return SchemeUnknown
	}
}

// MarshalJSON implements the json.Marshaler interface, encoding the signature as a hex string.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	decoded, err := hexutil.Decode(hexStr)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

// String implements the fmt.Stringer interface.
func (s Signature) String() string {
	return hexutil.Encode(s)
}
