package dex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	kyberBaseURL      = "https://aggregator-api.kyberswap.com"
	kyberDefaultChain = "ethereum"

	// The aggregator rejects requests without a browser-like user agent.
	kyberUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	kyberBuildDeadline = 20 * time.Hour
)

// RouteSummary is the routing plan returned by the routes endpoint. It is
// echoed back verbatim when building the swap, so the raw route legs are kept
// undecoded.
type RouteSummary struct {
	TokenIn   string `json:"tokenIn"`
	AmountIn  string `json:"amountIn"`
	TokenOut  string `json:"tokenOut"`
	AmountOut string `json:"amountOut"`
	Gas       string `json:"gas"`
	GasPrice  string `json:"gasPrice"`
	GasUSD    string `json:"gasUsd"`

	AmountInUSD  string `json:"amountInUsd"`
	AmountOutUSD string `json:"amountOutUsd"`

	TokenInMarketPriceAvailable  bool `json:"tokenInMarketPriceAvailable"`
	TokenOutMarketPriceAvailable bool `json:"tokenOutMarketPriceAvailable"`

	ExtraFee  json.RawMessage `json:"extraFee"`
	Route     json.RawMessage `json:"route"`
	Checksum  string          `json:"checksum,omitempty"`
	Timestamp int64           `json:"timestamp,omitempty"`
}

// RouteData carries the routing plan plus the router contract to call.
type RouteData struct {
	RouteSummary  RouteSummary `json:"routeSummary"`
	RouterAddress string       `json:"routerAddress"`
}

// RouteResponse is the envelope of the routes endpoint.
type RouteResponse struct {
	Code      int64     `json:"code"`
	Message   string    `json:"message"`
	Data      RouteData `json:"data"`
	RequestID string    `json:"requestId"`
}

type buildRouteRequest struct {
	RouteSummary         RouteSummary `json:"routeSummary"`
	Sender               string       `json:"sender"`
	Recipient            string       `json:"recipient"`
	Deadline             int64        `json:"deadline"`
	SlippageTolerance    int64        `json:"slippageTolerance"`
	EnableGasEstimation  bool         `json:"enableGasEstimation"`
	IgnoreCappedSlippage bool         `json:"ignoreCappedSlippage"`
}

// BuildRouteData carries the encoded calldata for the swap.
type BuildRouteData struct {
	AmountIn         string          `json:"amountIn"`
	AmountInUSD      string          `json:"amountInUsd"`
	AmountOut        string          `json:"amountOut"`
	AmountOutUSD     string          `json:"amountOutUsd"`
	Gas              string          `json:"gas"`
	GasUSD           string          `json:"gasUsd"`
	OutputChange     json.RawMessage `json:"outputChange"`
	Data             string          `json:"data"`
	RouterAddress    string          `json:"routerAddress"`
	TransactionValue string          `json:"transactionValue"`
}

// BuildRouteResponse is the envelope of the route build endpoint.
type BuildRouteResponse struct {
	Code    int64          `json:"code"`
	Message string         `json:"message"`
	Data    BuildRouteData `json:"data"`
}

// KyberClient talks to the KyberSwap aggregator API for a single chain.
type KyberClient struct {
	http    httpClient
	baseURL string
}

// NewKyberClient creates a client for the given chain. Empty baseURL and
// chain fall back to the public aggregator and "ethereum".
func NewKyberClient(baseURL, chain string) *KyberClient {
	if baseURL == "" {
		baseURL = kyberBaseURL
	}
	if chain == "" {
		chain = kyberDefaultChain
	}
	headers := http.Header{}
	headers.Set("User-Agent", kyberUserAgent)
	return &KyberClient{
		http:    newHTTPClient("kyber", defaultTimeout, headers),
		baseURL: fmt.Sprintf("%s/%s", baseURL, chain),
	}
}

// GetRoutes fetches routing plans for swapping amountIn of tokenIn into
// tokenOut. Amounts are decimal strings in the token's smallest unit.
func (c *KyberClient) GetRoutes(ctx context.Context, tokenIn, tokenOut, amountIn string) (*RouteResponse, error) {
	query := url.Values{}
	query.Set("tokenIn", tokenIn)
	query.Set("tokenOut", tokenOut)
	query.Set("amountIn", amountIn)

	var out RouteResponse
	if err := c.http.getJSON(ctx, fmt.Sprintf("%s/api/v1/routes?%s", c.baseURL, query.Encode()), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BuildRoute turns a previously fetched routing plan into executable
// calldata. slippageTolerance is in basis points.
func (c *KyberClient) BuildRoute(ctx context.Context, summary RouteSummary, sender, recipient string, slippageTolerance int64, enableGasEstimation bool) (*BuildRouteResponse, error) {
	req := buildRouteRequest{
		RouteSummary:        summary,
		Sender:              sender,
		Recipient:           recipient,
		Deadline:            time.Now().Add(kyberBuildDeadline).Unix(),
		SlippageTolerance:   slippageTolerance,
		EnableGasEstimation: enableGasEstimation,
	}

	var out BuildRouteResponse
	if err := c.http.postJSON(ctx, fmt.Sprintf("%s/api/v1/route/build", c.baseURL), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
