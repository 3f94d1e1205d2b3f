// Package mev submits signed transactions to block builders through the
// Flashbots relay JSON-RPC API.
package mev

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github/keymint/go-signer/pkg/sign"
)

// Errors returned by the relay client.
var (
	ErrInvalidConfig = errors.New("invalid relay configuration")
	ErrRelay         = errors.New("relay error")
)

const defaultRelayURL = "https://relay.flashbots.net"

// DefaultBuilders is the builder set bundles are shared with when the
// configuration does not name its own.
var DefaultBuilders = []string{
	"flashbots",
	"f1b.io",
	"rsync",
	"beaverbuild.org",
	"builder0x69",
	"Titan",
	"EigenPhi",
	"boba-builder",
	"Gambit Labs",
	"payload",
	"Loki",
	"BuildAI",
	"JetBuilder",
	"tbuilder",
	"penguinbuild",
	"bobthebuilder",
	"BTCS",
	"bloXroute",
}

// Config holds the relay endpoint and the builders to share bundles with.
type Config struct {
	RelayURL string
	Builders []string
	Timeout  time.Duration
}

// DefaultConfig targets the public Flashbots relay.
func DefaultConfig() Config {
	return Config{
		RelayURL: defaultRelayURL,
		Builders: DefaultBuilders,
		Timeout:  30 * time.Second,
	}
}

func (c Config) validate() error {
	if c.RelayURL == "" {
		return errors.Wrap(ErrInvalidConfig, "empty relay url")
	}
	if len(c.Builders) == 0 {
		return errors.Wrap(ErrInvalidConfig, "no builders configured")
	}
	return nil
}

type bundleParams struct {
	Txs               []string `json:"txs"`
	BlockNumber       string   `json:"blockNumber"`
	MinTimestamp      uint64   `json:"minTimestamp"`
	MaxTimestamp      uint64   `json:"maxTimestamp"`
	RevertingTxHashes []string `json:"revertingTxHashes"`
	ReplacementUUID   string   `json:"replacementUuid"`
	Builders          []string `json:"builders"`
}

// PrivacyPreference controls which hints and builders see a private
// transaction.
type PrivacyPreference struct {
	Hints    []string `json:"hints,omitempty"`
	Builders []string `json:"builders,omitempty"`
}

// RefundPreference routes a share of the backrun value to an address.
type RefundPreference struct {
	Address string `json:"address"`
	Percent int32  `json:"percent"`
}

// ValidityPreference carries refund requirements for a private transaction.
type ValidityPreference struct {
	Refund []RefundPreference `json:"refund,omitempty"`
}

// PrivateTransactionPreferences tunes how the relay handles a private
// transaction.
type PrivateTransactionPreferences struct {
	Fast     bool                `json:"fast"`
	Privacy  *PrivacyPreference  `json:"privacy,omitempty"`
	Validity *ValidityPreference `json:"validity,omitempty"`
}

type privateTxParams struct {
	Tx             string                         `json:"tx"`
	MaxBlockNumber string                         `json:"maxBlockNumber,omitempty"`
	Preferences    *PrivateTransactionPreferences `json:"preferences,omitempty"`
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type rpcError struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      int64     `json:"id"`
	Result  string    `json:"result"`
	Error   *rpcError `json:"error"`
}

// Client submits bundles and private transactions to a relay. Requests are
// authenticated with a fresh ephemeral key each call, so submissions do not
// build a searcher reputation identity.
type Client struct {
	http   *http.Client
	config Config
	logger zerolog.Logger
}

// NewClient validates the configuration and builds a relay client.
func NewClient(config Config) (*Client, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultConfig().Timeout
	}
	return &Client{
		http:   &http.Client{Timeout: timeout},
		config: config,
		logger: log.With().Str("component", "flashbots").Logger(),
	}, nil
}

// SendBundle submits raw signed transactions as an atomic bundle targeting
// the given block. Returns the relay's raw response body.
func (c *Client) SendBundle(ctx context.Context, txs []string, blockNumber uint64) (string, error) {
	body := rpcRequest{
		JSONRPC: "2.0",
		ID:      rand.Int63(),
		Method:  "eth_sendBundle",
		Params: []bundleParams{{
			Txs:               txs,
			BlockNumber:       fmt.Sprintf("0x%x", blockNumber),
			MinTimestamp:      0,
			MaxTimestamp:      uint64(time.Now().Unix()),
			RevertingTxHashes: []string{},
			ReplacementUUID:   uuid.NewString(),
			Builders:          c.config.Builders,
		}},
	}

	raw, err := c.post(ctx, body)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// SendPrivateTransaction submits a single raw signed transaction for private
// inclusion. maxBlockNumber of zero means no upper bound. Returns the
// transaction hash reported by the relay.
func (c *Client) SendPrivateTransaction(ctx context.Context, rawTxHex string, maxBlockNumber uint64, prefs *PrivateTransactionPreferences) (string, error) {
	params := privateTxParams{
		Tx:          rawTxHex,
		Preferences: prefs,
	}
	if maxBlockNumber > 0 {
		params.MaxBlockNumber = fmt.Sprintf("0x%x", maxBlockNumber)
	}

	body := rpcRequest{
		JSONRPC: "2.0",
		ID:      rand.Int63(),
		Method:  "eth_sendPrivateTransaction",
		Params:  []privateTxParams{params},
	}

	raw, err := c.post(ctx, body)
	if err != nil {
		return "", err
	}

	var resp rpcResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", errors.Wrap(ErrRelay, "malformed response body")
	}
	if resp.Error != nil {
		return "", errors.Wrapf(ErrRelay, "%d: %s", resp.Error.Code, resp.Error.Message)
	}
	return resp.Result, nil
}

func (c *Client) post(ctx context.Context, body rpcRequest) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request body")
	}

	header, err := signPayload(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.RelayURL, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Flashbots-Signature", header)

	c.logger.Debug().Str("method", body.Method).Uint64("id", uint64(body.ID)).Msg("submitting to relay")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Wrapf(ErrRelay, "status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}

// signPayload produces the X-Flashbots-Signature header value: the signer
// address and an EIP-191 signature over the hex-rendered keccak256 of the
// request body, joined by a colon.
func signPayload(payload []byte) (string, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate signing key")
	}
	signer := sign.NewSecp256k1Signer(key)

	bodyHash := ethcrypto.Keccak256Hash(payload)
	sig, err := signer.Sign(accounts.TextHash([]byte(bodyHash.Hex())))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%s", ethcrypto.PubkeyToAddress(key.PublicKey).Hex(), sig.String()), nil
}
