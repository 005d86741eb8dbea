package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vladyslavplus/KosherClouds-sub000/domain/shared"
)

// DefaultTimeout bounds every upstream call. The assembler fans out several
// of these concurrently, so one slow service must not hang the whole request.
const DefaultTimeout = 5 * time.Second

// newHTTPClient builds the client shared by all gateways.
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// getJSON performs a GET and decodes the body into out.
//
// Return contract shared by all gateways: 200 decodes into out and returns
// (true, nil); 404 is a valid "does not exist" answer and returns
// (false, nil); transport failures and any other status return an error
// classified as upstream unavailability.
func getJSON(ctx context.Context, client *http.Client, service, url string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build request for %s: %w", service, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return false, shared.NewUpstreamError(service, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, shared.NewUpstreamError(service, fmt.Errorf("invalid response body: %w", err))
		}
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, shared.NewUpstreamError(service, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}
