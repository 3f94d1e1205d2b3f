package account

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
)

const hardenedOffset = 0x80000000

// EVMDerivationPath returns the BIP-44 path for an EVM account index.
// All EVM chains share coin type 60.
func EVMDerivationPath(index uint32) string {
	return fmt.Sprintf("m/44'/60'/0'/0/%d", index)
}

// SolanaDerivationPath returns the BIP-44 path for a Solana account index.
// Solana uses coin type 501 with a fully hardened path, change level 0.
func SolanaDerivationPath(index uint32) string {
	return fmt.Sprintf("m/44'/501'/%d'/0'", index)
}

// deriveSecp256k1Key derives a 32-byte secp256k1 private key from seed and
// BIP44 path. Caller must clear the returned key after use.
func deriveSecp256k1Key(seed []byte, path string) ([]byte, error) {
	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	indices, err := parseBIP44Path(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse BIP44 path")
	}

	key := masterKey
	for _, index := range indices {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
	}

	return key.Key, nil
}

// deriveEd25519Key derives a 64-byte ed25519 keypair from seed and a fully
// hardened BIP44 path, per SLIP-0010. Non-hardened segments are invalid for
// ed25519 and rejected.
func deriveEd25519Key(seed []byte, path string) (ed25519.PrivateKey, error) {
	indices, err := parseBIP44Path(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse BIP44 path")
	}

	mac := hmac.New(sha512.New, []byte("ed25519 seed"))
	mac.Write(seed)
	digest := mac.Sum(nil)
	key, chainCode := digest[:32], digest[32:]

	for _, index := range indices {
		if index < hardenedOffset {
			return nil, errors.Errorf("ed25519 derivation requires hardened segments, got %d", index)
		}

		// data = 0x00 || key || ser32(index)
		data := make([]byte, 0, 37)
		data = append(data, 0x00)
		data = append(data, key...)
		data = binary.BigEndian.AppendUint32(data, index)

		mac = hmac.New(sha512.New, chainCode)
		mac.Write(data)
		digest = mac.Sum(nil)
		key, chainCode = digest[:32], digest[32:]
	}

	return ed25519.NewKeyFromSeed(key), nil
}

// parseBIP44Path parses a BIP44 path string into child indices.
// Example: "m/44'/60'/0'/0/0" -> [2147483692, 2147483708, 2147483648, 0, 0]
func parseBIP44Path(path string) ([]uint32, error) {
	if len(path) == 0 || path[0] != 'm' {
		return nil, errors.Errorf("invalid BIP44 path: %s", path)
	}

	// Remove 'm/' prefix
	if len(path) > 2 && path[1] == '/' {
		path = path[2:]
	} else {
		return nil, errors.Errorf("invalid BIP44 path: %s", path)
	}

	// Split by '/'
	parts := []string{}
	current := ""
	for _, char := range path {
		if char == '/' {
			if current != "" {
				parts = append(parts, current)
				current = ""
			}
		} else {
			current += string(char)
		}
	}
	if current != "" {
		parts = append(parts, current)
	}

	// Parse each part
	indices := make([]uint32, 0, len(parts))
	for _, part := range parts {
		hardened := false
		if len(part) > 0 && (part[len(part)-1] == '\'' || part[len(part)-1] == 'h') {
			hardened = true
			part = part[:len(part)-1]
		}

		var index uint32
		if _, err := fmt.Sscanf(part, "%d", &index); err != nil {
			return nil, errors.Errorf("invalid path segment: %s", part)
		}

		if hardened {
			index += hardenedOffset
		}

		indices = append(indices, index)
	}

	return indices, nil
}
