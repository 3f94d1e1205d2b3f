package dex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const odosBaseURL = "https://api.odos.xyz"

// PriceResponse is the answer of the token pricing endpoint.
type PriceResponse struct {
	CurrencyID string  `json:"currencyId"`
	Price      float64 `json:"price"`
}

// InputToken names a token and the amount to swap out of it.
type InputToken struct {
	TokenAddress string `json:"tokenAddress"`
	Amount       string `json:"amount"`
}

// OutputToken names a token and the proportion of output routed into it.
type OutputToken struct {
	TokenAddress string  `json:"tokenAddress"`
	Proportion   float64 `json:"proportion"`
}

// QuoteRequest describes a swap to be priced by the smart order router.
type QuoteRequest struct {
	ChainID              int32         `json:"chainId"`
	InputTokens          []InputToken  `json:"inputTokens"`
	OutputTokens         []OutputToken `json:"outputTokens"`
	GasPrice             float64       `json:"gasPrice"`
	UserAddr             string        `json:"userAddr"`
	SlippageLimitPercent float64       `json:"slippageLimitPercent"`
	SourceBlacklist      []string      `json:"sourceBlacklist"`
	SourceWhitelist      []string      `json:"sourceWhitelist"`
	PoolBlacklist        []string      `json:"poolBlacklist"`
	PathViz              bool          `json:"pathViz"`
	ReferralCode         int32         `json:"referralCode"`
	Compact              bool          `json:"compact"`
	LikeAsset            bool          `json:"likeAsset"`
	DisableRFQs          bool          `json:"disableRFQs"`
	Simple               bool          `json:"simple"`
}

// QuoteResponse is the priced route. PathID is the handle passed to Assemble.
type QuoteResponse struct {
	InTokens         []string        `json:"inTokens"`
	OutTokens        []string        `json:"outTokens"`
	InAmounts        []string        `json:"inAmounts"`
	OutAmounts       []string        `json:"outAmounts"`
	GasEstimate      float64         `json:"gasEstimate"`
	DataGasEstimate  int32           `json:"dataGasEstimate"`
	GweiPerGas       float64         `json:"gweiPerGas"`
	GasEstimateValue float64         `json:"gasEstimateValue"`
	InValues         []float64       `json:"inValues"`
	OutValues        []float64       `json:"outValues"`
	NetOutValue      float64         `json:"netOutValue"`
	PriceImpact      float64         `json:"priceImpact"`
	PercentDiff      float64         `json:"percentDiff"`
	PathID           string          `json:"pathId"`
	PathViz          json.RawMessage `json:"pathViz"`
	BlockNumber      int64           `json:"blockNumber"`
}

type assembleRequest struct {
	UserAddr string `json:"userAddr"`
	PathID   string `json:"pathId"`
	Simulate bool   `json:"simulate"`
}

// AssembleTransaction is the unsigned transaction produced by Assemble, ready
// to be encoded and signed.
type AssembleTransaction struct {
	Gas      int64  `json:"gas"`
	GasPrice int64  `json:"gasPrice"`
	Value    string `json:"value"`
	To       string `json:"to"`
	From     string `json:"from"`
	Data     string `json:"data"`
	Nonce    int64  `json:"nonce"`
	ChainID  int32  `json:"chainId"`
}

// AssembleResponse is the answer of the assemble endpoint.
type AssembleResponse struct {
	BlockNumber      int64               `json:"blockNumber"`
	GasEstimate      int64               `json:"gasEstimate"`
	GasEstimateValue float64             `json:"gasEstimateValue"`
	InputTokens      []InputToken        `json:"inputTokens"`
	NetOutValue      float64             `json:"netOutValue"`
	Transaction      AssembleTransaction `json:"transaction"`
	Simulation       json.RawMessage     `json:"simulation"`
}

// OdosClient talks to the Odos smart order router API.
type OdosClient struct {
	http    httpClient
	baseURL string
}

// NewOdosClient creates a client. An empty baseURL falls back to the public
// API.
func NewOdosClient(baseURL string) *OdosClient {
	if baseURL == "" {
		baseURL = odosBaseURL
	}
	headers := http.Header{}
	headers.Set("Accept", "*/*")
	headers.Set("Origin", "https://app.odos.xyz")
	headers.Set("Referer", "https://app.odos.xyz/")
	return &OdosClient{
		http:    newHTTPClient("odos", defaultTimeout, headers),
		baseURL: baseURL,
	}
}

// TokenPrice fetches the USD price of a token on the given chain.
func (c *OdosClient) TokenPrice(ctx context.Context, chainID, tokenAddr string) (*PriceResponse, error) {
	var out PriceResponse
	url := fmt.Sprintf("%s/pricing/token/%s/%s", c.baseURL, chainID, tokenAddr)
	if err := c.http.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Quote prices a swap through the smart order router.
func (c *OdosClient) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	var out QuoteResponse
	if err := c.http.postJSON(ctx, fmt.Sprintf("%s/sor/quote/v2", c.baseURL), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Assemble turns a quoted path into an unsigned transaction.
func (c *OdosClient) Assemble(ctx context.Context, userAddr, pathID string, simulate bool) (*AssembleResponse, error) {
	req := assembleRequest{UserAddr: userAddr, PathID: pathID, Simulate: simulate}

	var out AssembleResponse
	if err := c.http.postJSON(ctx, fmt.Sprintf("%s/sor/assemble", c.baseURL), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
