package mnemonic

import (
	"crypto/sha512"
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

// ErrInvalidMnemonic is returned when a phrase fails wordlist or checksum validation.
var ErrInvalidMnemonic = errors.New("invalid mnemonic phrase")

type service struct{}

// NewService creates a new mnemonic Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return &service{}
}

// Generate generates a new random mnemonic (BIP-39).
// wordCount must be one of 12, 15, 18, 21 or 24; each 3 words carry 32 bits
// of entropy, so the entropy size is wordCount/3*32 bits.
func (s *service) Generate(wordCount int) (string, error) {
	switch wordCount {
	case WordCount12, WordCount15, WordCount18, WordCount21, WordCount24:
	default:
		return "", errors.Errorf("invalid word count: %d, must be one of [12, 15, 18, 21, 24]", wordCount)
	}

	entropy, err := bip39.NewEntropy(wordCount / 3 * 32)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate mnemonic")
	}

	return phrase, nil
}

// Parse validates the phrase and returns it with normalized whitespace.
// The checksum bits embedded in the final word must validate against the
// entropy bits, otherwise ErrInvalidMnemonic is returned.
func (s *service) Parse(phrase string) (string, error) {
	normalized := strings.Join(strings.Fields(phrase), " ")
	if _, err := bip39.EntropyFromMnemonic(normalized); err != nil {
		return "", errors.Wrap(ErrInvalidMnemonic, err.Error())
	}
	return normalized, nil
}

// IsValid reports whether the phrase is a valid BIP-39 mnemonic.
func (s *service) IsValid(phrase string) bool {
	return bip39.IsMnemonicValid(strings.Join(strings.Fields(phrase), " "))
}

// ToSeed converts a mnemonic to a 64-byte seed using PBKDF2.
// BIP39: seed = PBKDF2(mnemonic, "mnemonic" + passphrase, 2048, 64, SHA512).
// Deterministic: identical inputs always yield the identical seed, and any
// difference in passphrase (including "" vs a set one) changes the result.
func (s *service) ToSeed(mnemonic string, passphrase string) []byte {
	const (
		pbkdf2Iterations = 2048 // BIP39 standard iterations
		pbkdf2KeyLength  = 64   // BIP39 standard key length (512 bits)
	)

	return pbkdf2.Key(
		[]byte(mnemonic),
		[]byte("mnemonic"+passphrase),
		pbkdf2Iterations,
		pbkdf2KeyLength,
		sha512.New,
	)
}
