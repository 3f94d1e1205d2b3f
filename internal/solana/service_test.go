package solana_test

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/keymint/go-signer/internal/account"
	"github/keymint/go-signer/internal/account/mnemonic"
	"github/keymint/go-signer/internal/solana"
)

const testKeypairBase58 = "2yj1p1pVstUJ3iVVJt4NjqYf6ikb3mK2ZAkxwYiZNUc5QECNhBxmvoRMpyzoRgyYMpYGbS8tcPmwriSTZ6nUd81B"

func testAccount(t *testing.T) *account.Account {
	t.Helper()
	accounts := account.NewService(mnemonic.NewService())
	acct, err := accounts.FromRawKey(testKeypairBase58, account.ChainSolana)
	require.NoError(t, err)
	return acct
}

func TestSignMessageVerifyRoundTrip(t *testing.T) {
	acct := testAccount(t)
	message := []byte("hello solana")

	sig, err := solana.SignMessage(acct, message)
	require.NoError(t, err)
	require.NotEmpty(t, sig)

	ok, err := solana.VerifySignature(acct.PublicKey().String(), message, sig)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSignMessageDeterministic(t *testing.T) {
	acct := testAccount(t)
	message := []byte("same input, same output")

	first, err := solana.SignMessage(acct, message)
	require.NoError(t, err)
	second, err := solana.SignMessage(acct, message)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestVerifySignatureRejectsTamperedMessage(t *testing.T) {
	acct := testAccount(t)

	sig, err := solana.SignMessage(acct, []byte("original"))
	require.NoError(t, err)

	ok, err := solana.VerifySignature(acct.PublicKey().String(), []byte("tampered"), sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifySignatureRejectsWrongKey(t *testing.T) {
	acct := testAccount(t)
	other := account.NewService(mnemonic.NewService()).Random(account.ChainSolana)

	sig, err := solana.SignMessage(acct, []byte("payload"))
	require.NoError(t, err)

	ok, err := solana.VerifySignature(other.PublicKey().String(), []byte("payload"), sig)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifySignatureMalformedInputs(t *testing.T) {
	acct := testAccount(t)

	sig, err := solana.SignMessage(acct, []byte("payload"))
	require.NoError(t, err)

	_, err = solana.VerifySignature("not!base58", []byte("payload"), sig)
	require.Error(t, err)
	assert.True(t, errors.Is(err, solana.ErrSignature))

	_, err = solana.VerifySignature(acct.PublicKey().String(), []byte("payload"), "0OIl")
	require.Error(t, err)
	assert.True(t, errors.Is(err, solana.ErrSignature))

	// Wrong length but well-encoded: compares false, not an error.
	short := base58.Encode([]byte{0x01, 0x02, 0x03})
	ok, err := solana.VerifySignature(acct.PublicKey().String(), []byte("payload"), short)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSignMessageWrongChainAccount(t *testing.T) {
	evmAcct := account.NewService(mnemonic.NewService()).Random(account.ChainEVM)

	_, err := solana.SignMessage(evmAcct, []byte("payload"))
	require.Error(t, err)
}

func TestSignTransactionRoundTrip(t *testing.T) {
	acct := testAccount(t)
	recipient := solanago.NewWallet().PublicKey()
	blockhash := solanago.Hash(solanago.NewWallet().PublicKey())

	tx, err := solana.BuildTransferTransaction(acct.PublicKey(), recipient, 1_000_000, blockhash)
	require.NoError(t, err)

	raw, err := solana.SignTransaction(acct, tx)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	decoded, err := solana.DeserializeTransaction(raw)
	require.NoError(t, err)
	require.Len(t, decoded.Signatures, 1)
	require.NoError(t, decoded.VerifySignatures())

	assert.Equal(t, blockhash, decoded.Message.RecentBlockhash)
	require.NotEmpty(t, decoded.Message.AccountKeys)
	assert.Equal(t, acct.PublicKey(), decoded.Message.AccountKeys[0])
}

func TestSignTransactionWrongChainAccount(t *testing.T) {
	solAcct := testAccount(t)
	evmAcct := account.NewService(mnemonic.NewService()).Random(account.ChainEVM)
	blockhash := solanago.Hash(solanago.NewWallet().PublicKey())

	tx, err := solana.BuildTransferTransaction(solAcct.PublicKey(), solanago.NewWallet().PublicKey(), 1, blockhash)
	require.NoError(t, err)

	_, err = solana.SignTransaction(evmAcct, tx)
	require.Error(t, err)
}

func TestDeserializeTransactionMalformed(t *testing.T) {
	_, err := solana.DeserializeTransaction("not!base58")
	require.Error(t, err)
	assert.True(t, errors.Is(err, solana.ErrDecode))

	_, err = solana.DeserializeTransaction(base58.Encode([]byte{0x01}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, solana.ErrDecode))
}
