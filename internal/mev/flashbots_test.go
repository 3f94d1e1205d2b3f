package mev_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/keymint/go-signer/internal/mev"
	"github/keymint/go-signer/pkg/sign"
)

const rawTestTx = "0xf8a91e850174f35da582d3ea94ec53bf9167f50cdeb3ae105f56099aaab9061f8380b844095ea7b3000000000000000000000000163a5ec5e9c32238d075e2d829fe9fa87451e3b70000000000000000000000000000000000000000000000000de0b6b3a764000025a03b59bc434bc3e660969a0d414352dfc0fac09f68ed259b8c2a9a2140aa5fbdcaa00cdcbfc8150ecc0b321b903dca58081915fe97ad625f4ad4d8fdf04cc33c9660"

// checkSignatureHeader recovers the signer from the header and checks it
// matches the claimed address.
func checkSignatureHeader(t *testing.T, header string, body []byte) {
	t.Helper()
	parts := strings.SplitN(header, ":", 2)
	require.Len(t, parts, 2)

	sig, err := hexutil.Decode(parts[1])
	require.NoError(t, err)

	bodyHash := ethcrypto.Keccak256Hash(body)
	recovered, err := sign.RecoverAddress(accounts.TextHash([]byte(bodyHash.Hex())), sign.Signature(sig))
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(parts[0]), recovered)
}

func TestSendBundle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		checkSignatureHeader(t, r.Header.Get("X-Flashbots-Signature"), body)

		var req struct {
			JSONRPC string `json:"jsonrpc"`
			Method  string `json:"method"`
			Params  []struct {
				Txs             []string `json:"txs"`
				BlockNumber     string   `json:"blockNumber"`
				ReplacementUUID string   `json:"replacementUuid"`
				Builders        []string `json:"builders"`
			} `json:"params"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.Equal(t, "eth_sendBundle", req.Method)
		require.Len(t, req.Params, 1)
		assert.Equal(t, []string{rawTestTx}, req.Params[0].Txs)
		assert.Equal(t, "0x148b36f", req.Params[0].BlockNumber)
		assert.Equal(t, []string{"flashbots"}, req.Params[0].Builders)
		_, err = uuid.Parse(req.Params[0].ReplacementUUID)
		assert.NoError(t, err)

		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"bundleHash":"0x2228f5d8"}}`))
	}))
	defer server.Close()

	client, err := mev.NewClient(mev.Config{RelayURL: server.URL, Builders: []string{"flashbots"}})
	require.NoError(t, err)

	resp, err := client.SendBundle(context.Background(), []string{rawTestTx}, 21541743)
	require.NoError(t, err)
	assert.Contains(t, resp, "bundleHash")
}

func TestSendPrivateTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		checkSignatureHeader(t, r.Header.Get("X-Flashbots-Signature"), body)

		var req struct {
			Method string `json:"method"`
			Params []struct {
				Tx             string                             `json:"tx"`
				MaxBlockNumber string                             `json:"maxBlockNumber"`
				Preferences    *mev.PrivateTransactionPreferences `json:"preferences"`
			} `json:"params"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "eth_sendPrivateTransaction", req.Method)
		require.Len(t, req.Params, 1)
		assert.Equal(t, rawTestTx, req.Params[0].Tx)
		assert.Equal(t, "0x148b387", req.Params[0].MaxBlockNumber)
		require.NotNil(t, req.Params[0].Preferences)
		assert.True(t, req.Params[0].Preferences.Fast)

		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x45df1bc3"}`))
	}))
	defer server.Close()

	client, err := mev.NewClient(mev.Config{RelayURL: server.URL, Builders: []string{"flashbots"}})
	require.NoError(t, err)

	prefs := &mev.PrivateTransactionPreferences{
		Fast:    true,
		Privacy: &mev.PrivacyPreference{Builders: []string{"flashbots"}},
	}
	hash, err := client.SendPrivateTransaction(context.Background(), rawTestTx, 21541767, prefs)
	require.NoError(t, err)
	assert.Equal(t, "0x45df1bc3", hash)
}

func TestSendPrivateTransactionRelayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32600,"message":"invalid transaction"}}`))
	}))
	defer server.Close()

	client, err := mev.NewClient(mev.Config{RelayURL: server.URL, Builders: []string{"flashbots"}})
	require.NoError(t, err)

	_, err = client.SendPrivateTransaction(context.Background(), rawTestTx, 0, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mev.ErrRelay))
	assert.Contains(t, err.Error(), "invalid transaction")
}

func TestNewClientValidatesConfig(t *testing.T) {
	_, err := mev.NewClient(mev.Config{Builders: []string{"flashbots"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mev.ErrInvalidConfig))

	_, err = mev.NewClient(mev.Config{RelayURL: "https://relay.flashbots.net"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mev.ErrInvalidConfig))

	client, err := mev.NewClient(mev.DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, client)
}
