package urlcheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultTimeout bounds each individual HEAD or GET probe.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxConcurrent bounds in-flight probes during batch validation.
	DefaultMaxConcurrent = 5

	userAgent = "Mozilla/5.0 (compatible; URLValidator/1.0)"

	// Pages whose declared length is under emptyContentLength bytes and whose
	// trimmed body is under emptyBodyChars characters count as empty.
	emptyContentLength = 100
	emptyBodyChars     = 50
)

// Result is the per-URL outcome of a validation probe. Failures are always
// captured here, never returned as errors: one unreachable resource must not
// abort a batch.
type Result struct {
	URL        string `json:"url"`
	IsValid    bool   `json:"isValid"`
	StatusCode int    `json:"statusCode,omitempty"`
	Error      string `json:"error,omitempty"`
	IsEmpty    bool   `json:"isEmpty,omitempty"`
}

type Validator struct {
	client  *http.Client
	timeout time.Duration
	log     *zap.Logger
}

func New(log *zap.Logger) *Validator {
	return NewWithTimeout(log, DefaultTimeout)
}

func NewWithTimeout(log *zap.Logger, timeout time.Duration) *Validator {
	if log == nil {
		log = zap.NewNop()
	}
	// Timeouts are applied per request via context so HEAD and GET each get
	// an independent budget.
	return &Validator{client: &http.Client{}, timeout: timeout, log: log}
}

// ValidateURL classifies a single URL. Malformed URLs and non-HTTP(S)
// schemes are rejected without any network call. A reachable URL whose GET
// probe fails after a successful HEAD is still reported valid: some servers
// reject GET but answer HEAD, and HEAD success is sufficient proof of
// reachability.
func (v *Validator) ValidateURL(ctx context.Context, rawURL string) Result {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return Result{URL: rawURL, IsValid: false, Error: "Invalid URL format"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Result{URL: rawURL, IsValid: false, Error: "Only HTTP and HTTPS protocols are allowed"}
	}

	headResp, res, ok := v.head(ctx, rawURL)
	if !ok {
		return res
	}

	return v.get(ctx, rawURL, headResp.StatusCode)
}

func (v *Validator) head(ctx context.Context, rawURL string) (*http.Response, Result, bool) {
	hctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(hctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return nil, Result{URL: rawURL, IsValid: false, Error: "Invalid URL format"}, false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, Result{URL: rawURL, IsValid: false, Error: "Request timeout"}, false
		}
		return nil, Result{URL: rawURL, IsValid: false, Error: err.Error()}, false
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, Result{
			URL:        rawURL,
			IsValid:    false,
			StatusCode: resp.StatusCode,
			Error:      fmt.Sprintf("HTTP %s", resp.Status),
		}, false
	}
	return resp, Result{}, true
}

// get follows a successful HEAD with a body probe on an independent timer,
// flagging near-empty pages. Any GET failure falls back to the HEAD verdict.
func (v *Validator) get(ctx context.Context, rawURL string, headStatus int) Result {
	gctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(gctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Result{URL: rawURL, IsValid: true, StatusCode: headStatus}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		return Result{URL: rawURL, IsValid: true, StatusCode: headStatus}
	}
	defer resp.Body.Close()

	if resp.ContentLength >= 0 && resp.ContentLength < emptyContentLength {
		body, err := io.ReadAll(io.LimitReader(resp.Body, emptyContentLength))
		if err == nil && len(strings.TrimSpace(string(body))) < emptyBodyChars {
			return Result{
				URL:        rawURL,
				IsValid:    false,
				StatusCode: resp.StatusCode,
				IsEmpty:    true,
				Error:      "Page appears to be empty or has minimal content",
			}
		}
	}

	return Result{URL: rawURL, IsValid: true, StatusCode: resp.StatusCode}
}

// ValidateURLs validates a set of URLs with at most maxConcurrent probes in
// flight; a permit frees as soon as its URL completes. Results come back in
// input order, one per input URL.
func (v *Validator) ValidateURLs(ctx context.Context, urls []string, maxConcurrent int) []Result {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}

	results := make([]Result, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for i, u := range urls {
		g.Go(func() error {
			results[i] = v.ValidateURL(gctx, u)
			return nil
		})
	}
	// Workers never return errors; failures live in the result records.
	_ = g.Wait()

	invalid := 0
	for _, r := range results {
		if !r.IsValid {
			invalid++
		}
	}
	v.log.Info("validated urls",
		zap.Int("total", len(urls)),
		zap.Int("invalid", invalid),
		zap.Int("max_concurrent", maxConcurrent))

	return results
}

// InvalidURLs collects the URLs that failed validation.
func InvalidURLs(results []Result) map[string]bool {
	out := map[string]bool{}
	for _, r := range results {
		if !r.IsValid {
			out[r.URL] = true
		}
	}
	return out
}
