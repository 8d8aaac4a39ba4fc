package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/janekbaraniewski/branchboard/internal/core"
)

const defaultTimeout = 15 * time.Second

type HTTPFetcher struct {
	Endpoint string
	Months   int
	Timeout  time.Duration
	Client   *http.Client
}

func NewHTTPFetcher(endpoint string, months int) *HTTPFetcher {
	return &HTTPFetcher{Endpoint: endpoint, Months: months, Timeout: defaultTimeout}
}

func (f *HTTPFetcher) Fetch(ctx context.Context) (core.APIResponse, error) {
	u, err := f.requestURL()
	if err != nil {
		return core.APIResponse{}, err
	}

	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return core.APIResponse{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return core.APIResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return core.APIResponse{}, fmt.Errorf("%w: HTTP %d", ErrHTTPStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.APIResponse{}, fmt.Errorf("reading body: %w", err)
	}
	return core.DecodeResponse(body)
}

func (f *HTTPFetcher) requestURL() (string, error) {
	u, err := url.Parse(f.Endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint %q: %w", f.Endpoint, err)
	}
	if f.Months > 0 {
		q := u.Query()
		q.Set("months", strconv.Itoa(f.Months))
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
