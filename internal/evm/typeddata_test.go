package evm_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/keymint/go-signer/internal/evm"
)

func mailTypedData(chainID int64, verifyingContract string) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
				{Name: "verifyingContract", Type: "address"},
			},
			"Mail": {
				{Name: "to", Type: "address"},
				{Name: "contents", Type: "string"},
			},
		},
		PrimaryType: "Mail",
		Domain: apitypes.TypedDataDomain{
			Name:              "Test",
			Version:           "1",
			ChainId:           math.NewHexOrDecimal256(chainID),
			VerifyingContract: verifyingContract,
		},
		Message: map[string]interface{}{
			"to":       "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
			"contents": "Hello, EIP-712!",
		},
	}
}

func TestSignTypedDataRoundTrip(t *testing.T) {
	acct := testAccount(t)
	td := mailTypedData(1, "0x0000000000000000000000000000000000000001")

	sig, err := evm.SignTypedData(acct, td)
	require.NoError(t, err)
	require.Len(t, []byte(sig), 65)

	recovered, err := evm.RecoverTypedData(td, sig)
	require.NoError(t, err)
	assert.Equal(t, acct.Address(), recovered)
}

func TestSignTypedDataDomainSeparation(t *testing.T) {
	acct := testAccount(t)

	mainnet, err := evm.SignTypedData(acct, mailTypedData(1, "0x0000000000000000000000000000000000000001"))
	require.NoError(t, err)
	polygon, err := evm.SignTypedData(acct, mailTypedData(137, "0x0000000000000000000000000000000000000001"))
	require.NoError(t, err)

	// Same struct, domains differing only in chainId: signatures must differ.
	assert.NotEqual(t, mainnet, polygon)
}

func TestSignTypedDataRejectsZeroVerifyingContract(t *testing.T) {
	acct := testAccount(t)

	_, err := evm.SignTypedData(acct, mailTypedData(1, "0x0000000000000000000000000000000000000000"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, evm.ErrInvalidAddress))
}

func TestSignTypedDataRejectsMalformedVerifyingContract(t *testing.T) {
	acct := testAccount(t)

	for _, contract := range []string{"invalid_address", "0x1234", "742d35Cc6634C0532925a3b844Bc454e4438f44e00"} {
		_, err := evm.SignTypedData(acct, mailTypedData(1, contract))
		require.Error(t, err, "contract %q must be rejected", contract)
		assert.True(t, errors.Is(err, evm.ErrInvalidAddress))
	}
}

func TestSignTypedDataAllowsAbsentVerifyingContract(t *testing.T) {
	acct := testAccount(t)

	td := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {{Name: "name", Type: "string"}},
			"Mail": {
				{Name: "to", Type: "address"},
				{Name: "contents", Type: "string"},
			},
		},
		PrimaryType: "Mail",
		Domain:      apitypes.TypedDataDomain{Name: "Test"},
		Message: map[string]interface{}{
			"to":       "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
			"contents": "no verifying contract",
		},
	}

	sig, err := evm.SignTypedData(acct, td)
	require.NoError(t, err)

	recovered, err := evm.RecoverTypedData(td, sig)
	require.NoError(t, err)
	assert.Equal(t, acct.Address(), recovered)
}

func TestRecoverTypedDataSkipsDomainGuard(t *testing.T) {
	acct := testAccount(t)

	// Sign under a valid domain, then recover after swapping in the zero
	// contract: recovery itself must not enforce the signing guard.
	valid := mailTypedData(1, "0x0000000000000000000000000000000000000001")
	sig, err := evm.SignTypedData(acct, valid)
	require.NoError(t, err)

	degenerate := mailTypedData(1, "0x0000000000000000000000000000000000000000")
	recovered, err := evm.RecoverTypedData(degenerate, sig)
	require.NoError(t, err)
	// Different domain hash, so a different (wrong) signer falls out; the
	// point is that recovery succeeds rather than erroring.
	assert.NotEqual(t, acct.Address(), recovered)
}
