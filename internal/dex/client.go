// Package dex provides thin REST clients for swap aggregators. The clients
// only shape requests and decode responses; routing decisions and transaction
// signing happen elsewhere.
package dex

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrUnexpectedStatus is returned when an aggregator answers with a non-2xx
// status. The wrapped message carries the status code and response body.
var ErrUnexpectedStatus = errors.New("unexpected status code")

const defaultTimeout = 10 * time.Second

type httpClient struct {
	client  *http.Client
	headers http.Header
	logger  zerolog.Logger
}

func newHTTPClient(component string, timeout time.Duration, headers http.Header) httpClient {
	return httpClient{
		client:  &http.Client{Timeout: timeout},
		headers: headers,
		logger:  log.With().Str("component", component).Logger(),
	}
}

func (c httpClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	return c.do(req, out)
}

func (c httpClient) postJSON(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "failed to encode request body")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c httpClient) do(req *http.Request, out any) error {
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}

	c.logger.Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("sending request")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Wrapf(ErrUnexpectedStatus, "%d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "failed to decode response body")
	}
	return nil
}
