package mnemonic

// Word counts accepted for generated phrases, per BIP-39.
const (
	WordCount12 = 12
	WordCount15 = 15
	WordCount18 = 18
	WordCount21 = 21
	WordCount24 = 24

	// DefaultWordCount is used when the caller has no preference.
	DefaultWordCount = WordCount24
)

// Service provides BIP-39 mnemonic functionality
type Service interface {
	// Generate generates a new random mnemonic with the given word count
	Generate(wordCount int) (string, error)

	// Parse validates a phrase (wordlist membership and checksum) and
	// returns it in normalized form
	Parse(phrase string) (string, error)

	// IsValid reports whether the phrase is a valid BIP-39 mnemonic
	IsValid(phrase string) bool

	// ToSeed derives the 64-byte BIP-39 seed for a mnemonic and passphrase
	ToSeed(mnemonic string, passphrase string) []byte
}
