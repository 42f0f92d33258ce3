// Package fetch retrieves profiling datasets from remote HTTP sources,
// such as a shared results bucket or another service instance.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gojek/heimdall/v7/httpclient"

	"github.com/enersim/simprof/internal/dataset"
)

type Client struct {
	http *httpclient.Client
}

const (
	defaultTimeout    = 30 * time.Second
	defaultRetryCount = 3
)

func NewClient() *Client {
	return &Client{
		http: httpclient.NewClient(
			httpclient.WithHTTPTimeout(defaultTimeout),
			httpclient.WithRetryCount(defaultRetryCount),
		),
	}
}

// FetchDataset downloads and decodes one dataset from url.
func (c *Client) FetchDataset(ctx context.Context, url string) (dataset.Dataset, error) {
	var d dataset.Dataset
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return d, err
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return d, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 && resp.StatusCode <= 599 {
		return d, fmt.Errorf(
			"error while trying to fetch dataset from %s. http status: %d",
			url,
			resp.StatusCode,
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		return d, fmt.Errorf("decoding dataset from %s: %w", url, err)
	}
	return d, nil
}
