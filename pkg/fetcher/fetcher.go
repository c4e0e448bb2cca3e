package fetcher

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	defaultUserAgent   = "LinkScan/1.0"
	defaultMaxBodySize = 4 << 20
)

// Result is what one GET produced. StatusCode and Elapsed are always set on
// success; Body is populated by Fetch and left nil by Probe.
type Result struct {
	URL        string
	StatusCode int
	Elapsed    time.Duration
	Body       []byte
}

// Fetcher issues single GET requests with a bounded body size and an overall
// per-request timeout. A non-2xx status is a Result, not an error; only
// transport-level failures error.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
	authUser    string
	authPass    string
}

// Option configures a Fetcher during construction.
type Option func(*Fetcher)

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithBasicAuth attaches basic-auth credentials to every request.
func WithBasicAuth(user, pass string) Option {
	return func(f *Fetcher) {
		f.authUser = user
		f.authPass = pass
	}
}

// WithMaxBodySize caps how many bytes of a response body are read.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBodySize = n
		}
	}
}

// New creates a Fetcher whose requests give up after timeout.
func New(timeout time.Duration, opts ...Option) *Fetcher {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        20,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	f := &Fetcher{
		client:      &http.Client{Transport: transport, Timeout: timeout},
		userAgent:   defaultUserAgent,
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch GETs rawURL and returns status, elapsed time and body.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	return f.get(ctx, rawURL, true)
}

// Probe GETs rawURL for timing and status only, discarding the body.
func (f *Fetcher) Probe(ctx context.Context, rawURL string) (*Result, error) {
	return f.get(ctx, rawURL, false)
}

func (f *Fetcher) get(ctx context.Context, rawURL string, keepBody bool) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if f.authUser != "" {
		req.SetBasicAuth(f.authUser, f.authPass)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	res := &Result{URL: rawURL, StatusCode: resp.StatusCode}
	if keepBody {
		body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
		if err != nil {
			return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
		}
		res.Body = body
	} else {
		// Drain so the connection can be reused, but keep nothing
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, f.maxBodySize))
	}
	res.Elapsed = time.Since(start)

	return res, nil
}
