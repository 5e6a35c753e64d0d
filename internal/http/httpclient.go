package http

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// HTTPClientOptions configures HTTP client creation
type HTTPClientOptions struct {
	// Timeout is the request timeout duration (0 means no timeout)
	Timeout time.Duration
	// SkipSSLVerify disables SSL certificate verification (use with caution)
	SkipSSLVerify bool
	// RetryMax enables automatic retries with backoff when > 0
	RetryMax int
}

// NewHTTPClient creates an HTTP client with the specified options
func NewHTTPClient(opts HTTPClientOptions) *http.Client {
	if opts.RetryMax > 0 {
		return newRetryingClient(opts)
	}

	client := &http.Client{
		Timeout: opts.Timeout,
	}

	// Only configure custom transport if SSL verification needs to be skipped
	if opts.SkipSSLVerify {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		}
	}

	return client
}

// newRetryingClient wraps retryablehttp so callers get a plain *http.Client
// with retries and exponential backoff on transient failures.
func newRetryingClient(opts HTTPClientOptions) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	rc.Logger = nil
	rc.HTTPClient.Timeout = opts.Timeout
	if opts.SkipSSLVerify {
		rc.HTTPClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		}
	}

	client := rc.StandardClient()
	client.Timeout = opts.Timeout
	return client
}
