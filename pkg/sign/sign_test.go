package sign_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/keymint/go-signer/pkg/sign"
)

func TestSecp256k1SignAndRecover(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	signer := sign.NewSecp256k1Signer(key)
	hash := crypto.Keccak256([]byte("hello secp256k1"))

	sig, err := signer.Sign(hash)
	require.NoError(t, err)
	require.Len(t, []byte(sig), 65)
	assert.Contains(t, []byte{27, 28}, sig[64])
	assert.Equal(t, sign.SchemeSecp256k1, sig.Scheme())

	recovered, err := sign.RecoverAddress(hash, sig)
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), recovered)
}

func TestSecp256k1SignerFromHex(t *testing.T) {
	const keyHex = "c277f46a9cab407af9ac3cdf517b33f1d6e3615faf4a52a57ecc7b7d187a075d"

	plain, err := sign.NewSecp256k1SignerFromHex(keyHex)
	require.NoError(t, err)
	prefixed, err := sign.NewSecp256k1SignerFromHex("0x" + keyHex)
	require.NoError(t, err)
	assert.Equal(t, plain.PublicKey().String(), prefixed.PublicKey().String())

	_, err = sign.NewSecp256k1SignerFromHex("not-hex")
	assert.Error(t, err)
}

func TestRecoverAddressRejectsMalformedSignature(t *testing.T) {
	hash := crypto.Keccak256([]byte("msg"))
	_, err := sign.RecoverAddress(hash, sign.Signature{0x01, 0x02})
	assert.Error(t, err)
}

func TestEd25519SignAndVerify(t *testing.T) {
	wallet := solana.NewWallet()
	signer, err := sign.NewEd25519Signer(wallet.PrivateKey)
	require.NoError(t, err)

	msg := []byte("hello ed25519")
	sig, err := signer.Sign(msg)
	require.NoError(t, err)
	require.Len(t, []byte(sig), 64)
	assert.Equal(t, sign.SchemeEd25519, sig.Scheme())

	assert.True(t, sign.VerifyEd25519(wallet.PublicKey(), msg, sig))

	// Tampered message must not verify.
	assert.False(t, sign.VerifyEd25519(wallet.PublicKey(), []byte("hello Ed25519"), sig))

	// Flipped signature byte must not verify.
	bad := make(sign.Signature, len(sig))
	copy(bad, sig)
	bad[0] ^= 0xff
	assert.False(t, sign.VerifyEd25519(wallet.PublicKey(), msg, bad))
}

func TestEd25519SignerRejectsShortKey(t *testing.T) {
	_, err := sign.NewEd25519Signer(solana.PrivateKey([]byte{1, 2, 3}))
	assert.Error(t, err)
}

func TestSignatureJSONRoundTrip(t *testing.T) {
	orig := sign.Signature{0xde, 0xad, 0xbe, 0xef}
	data, err := orig.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"0xdeadbeef"`, string(data))

	var decoded sign.Signature
	require.NoError(t, decoded.UnmarshalJSON(data))
	assert.Equal(t, orig, decoded)
}
