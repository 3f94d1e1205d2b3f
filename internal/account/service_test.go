package account_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/keymint/go-signer/internal/account"
	"github/keymint/go-signer/internal/account/mnemonic"
)

const testPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// Canonical BIP-44 identities for the reference phrase with empty passphrase.
const (
	evmVectorAddress    = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94" // m/44'/60'/0'/0/0
	evmVectorKeyHex     = "0x1837c1be8e2995ec11cda2b066151be2cfb48adf9e47b151d46adab3a21cdf67"
	solanaVectorPubkey  = "2EUrWmf5xMmWER9BtDbXbGbZjoL7R3eTDMXYR6H6cKPj" // m/44'/501'/5'/0'
	solanaVectorKeypair = "2yj1p1pVstUJ3iVVJt4NjqYf6ikb3mK2ZAkxwYiZNUc5QECNhBxmvoRMpyzoRgyYMpYGbS8tcPmwriSTZ6nUd81B"
)

func newService() account.Service {
	return account.NewService(mnemonic.NewService())
}

func TestFromMnemonicEVMVector(t *testing.T) {
	svc := newService()

	acct, err := svc.FromMnemonic(testPhrase, "", 0, account.ChainEVM)
	require.NoError(t, err)

	assert.Equal(t, account.ChainEVM, acct.Chain())
	assert.Equal(t, evmVectorAddress, acct.Identity())
	assert.Equal(t, evmVectorKeyHex, acct.ExportPrivateKey())
}

func TestFromMnemonicSolanaVector(t *testing.T) {
	svc := newService()

	acct, err := svc.FromMnemonic(testPhrase, "", 5, account.ChainSolana)
	require.NoError(t, err)

	assert.Equal(t, account.ChainSolana, acct.Chain())
	assert.Equal(t, solanaVectorPubkey, acct.Identity())
}

func TestFromMnemonicDeterministic(t *testing.T) {
	svc := newService()

	for _, chain := range []account.Chain{account.ChainEVM, account.ChainSolana} {
		first, err := svc.FromMnemonic(testPhrase, "", 2, chain)
		require.NoError(t, err)
		second, err := svc.FromMnemonic(testPhrase, "", 2, chain)
		require.NoError(t, err)
		assert.Equal(t, first.Identity(), second.Identity())

		// A different index or passphrase yields a different account.
		other, err := svc.FromMnemonic(testPhrase, "", 3, chain)
		require.NoError(t, err)
		assert.NotEqual(t, first.Identity(), other.Identity())

		withPass, err := svc.FromMnemonic(testPhrase, "hunter2", 2, chain)
		require.NoError(t, err)
		assert.NotEqual(t, first.Identity(), withPass.Identity())
	}
}

func TestFromMnemonicInvalidPhrase(t *testing.T) {
	svc := newService()

	_, err := svc.FromMnemonic("invalid phrase that is not a valid mnemonic", "", 0, account.ChainEVM)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mnemonic.ErrInvalidMnemonic))
}

func TestFromRawKeyEVM(t *testing.T) {
	svc := newService()

	const keyHex = "c277f46a9cab407af9ac3cdf517b33f1d6e3615faf4a52a57ecc7b7d187a075d"

	plain, err := svc.FromRawKey(keyHex, account.ChainEVM)
	require.NoError(t, err)
	prefixed, err := svc.FromRawKey("0x"+keyHex, account.ChainEVM)
	require.NoError(t, err)
	assert.Equal(t, plain.Identity(), prefixed.Identity())
}

func TestFromRawKeyEVMErrors(t *testing.T) {
	svc := newService()

	cases := []struct {
		name  string
		input string
	}{
		{"non-hex characters", "zzf46a9cab407af9ac3cdf517b33f1d6e3615faf4a52a57ecc7b7d187a075d"},
		{"wrong length", "c277f46a9cab"},
		{"empty", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.FromRawKey(tc.input, account.ChainEVM)
			require.Error(t, err)
			assert.True(t, errors.Is(err, account.ErrInvalidPrivateKeyHex))
		})
	}

	// Scalar above the curve order is rejected by the curve check, not the hex check.
	_, err := svc.FromRawKey("fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe", account.ChainEVM)
	require.Error(t, err)
	assert.True(t, errors.Is(err, account.ErrInvalidPrivateKey))
}

func TestFromRawKeySolana(t *testing.T) {
	svc := newService()

	acct, err := svc.FromRawKey(solanaVectorKeypair, account.ChainSolana)
	require.NoError(t, err)
	assert.Equal(t, solanaVectorPubkey, acct.Identity())
	assert.Equal(t, solanaVectorKeypair, acct.ExportPrivateKey())

	_, err = svc.FromRawKey("not-base58-0OIl", account.ChainSolana)
	require.Error(t, err)
	assert.True(t, errors.Is(err, account.ErrInvalidPrivateKey))
}

func TestRandom(t *testing.T) {
	svc := newService()

	evm := svc.Random(account.ChainEVM)
	assert.Equal(t, account.ChainEVM, evm.Chain())
	assert.NotEmpty(t, evm.Identity())

	sol := svc.Random(account.ChainSolana)
	assert.Equal(t, account.ChainSolana, sol.Chain())
	assert.NotEmpty(t, sol.Identity())

	// Two random accounts must differ.
	assert.NotEqual(t, evm.Identity(), svc.Random(account.ChainEVM).Identity())
}

func TestSignerBorrowsRespectChain(t *testing.T) {
	svc := newService()

	evm := svc.Random(account.ChainEVM)
	_, err := evm.Ed25519Signer()
	assert.Error(t, err)
	_, err = evm.Secp256k1Signer()
	assert.NoError(t, err)

	sol := svc.Random(account.ChainSolana)
	_, err = sol.Secp256k1Signer()
	assert.Error(t, err)
	_, err = sol.Ed25519Signer()
	assert.NoError(t, err)
}
