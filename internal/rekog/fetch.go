package rekog

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultFetchTimeout  = time.Second
	DefaultMaxImageBytes = 10 << 20
	defaultUserAgent     = "rekog/0.2"
	maxRedirects         = 3
)

// Fetcher downloads the body behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

var _ Fetcher = &HTTPFetcher{}

type FetcherOptions struct {
	// Timeout bounds the whole request: connect, headers and body.
	Timeout   time.Duration
	MaxBytes  int
	UserAgent string
	Logger    resty.Logger
}

// HTTPFetcher performs a single GET per URL with a hard timeout and no retries.
type HTTPFetcher struct {
	client   *resty.Client
	maxBytes int
}

func NewHTTPFetcher(opts FetcherOptions) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultFetchTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxImageBytes
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetCookieJar(nil).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "image/*").
		SetResponseBodyLimit(opts.MaxBytes).
		SetRedirectPolicy(
			resty.FlexibleRedirectPolicy(maxRedirects),
			resty.RedirectPolicyFunc(httpOnlyRedirects),
		)
	if opts.Logger != nil {
		client.SetLogger(opts.Logger)
	}

	return &HTTPFetcher{
		client:   client,
		maxBytes: opts.MaxBytes,
	}
}

// Fetch returns the response body, or a *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, classifyFetchError(url, err)
	}

	code := resp.StatusCode()
	if code < 200 || code >= 300 {
		return nil, &FetchError{
			Kind:       FetchHTTPStatus,
			URL:        url,
			StatusCode: code,
			Reason:     statusReason(resp.Status(), code),
		}
	}

	body := resp.Body()
	if len(body) > f.maxBytes {
		return nil, &FetchError{
			Kind:   FetchNetwork,
			URL:    url,
			Reason: fmt.Sprintf("response larger than %d bytes", f.maxBytes),
		}
	}
	return body, nil
}

func classifyFetchError(url string, err error) *FetchError {
	fe := &FetchError{Kind: FetchNetwork, URL: url, Reason: err.Error(), Err: err}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		fe.Kind = FetchTimeout
	}
	if errors.Is(err, resty.ErrResponseBodyTooLarge) {
		fe.Reason = "response body too large"
	}
	return fe
}

// statusReason turns "404 Not Found" into "Not Found".
func statusReason(status string, code int) string {
	reason := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if reason == "" {
		reason = http.StatusText(code)
	}
	return reason
}

func httpOnlyRedirects(req *http.Request, _ []*http.Request) error {
	switch strings.ToLower(req.URL.Scheme) {
	case "http", "https":
		return nil
	default:
		return fmt.Errorf("refusing redirect to %q scheme", req.URL.Scheme)
	}
}
