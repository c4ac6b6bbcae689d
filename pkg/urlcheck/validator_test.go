package urlcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidateURL_InvalidFormat(t *testing.T) {
	v := New(zap.NewNop())
	tests := []struct {
		name string
		url  string
	}{
		{name: "garbage", url: "not a url"},
		{name: "relative", url: "/path/only"},
		{name: "empty", url: ""},
		{name: "missing host", url: "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.ValidateURL(context.Background(), tt.url)
			assert.False(t, res.IsValid)
			assert.Equal(t, "Invalid URL format", res.Error)
			assert.Zero(t, res.StatusCode)
		})
	}
}

func TestValidateURL_NonHTTPScheme(t *testing.T) {
	v := New(zap.NewNop())
	res := v.ValidateURL(context.Background(), "ftp://example.com/file")
	assert.False(t, res.IsValid)
	assert.Equal(t, "Only HTTP and HTTPS protocols are allowed", res.Error)
}

func TestValidateURL_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	v := New(zap.NewNop())
	res := v.ValidateURL(context.Background(), srv.URL)
	assert.False(t, res.IsValid)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, res.Error, "404")
}

func TestValidateURL_Valid(t *testing.T) {
	body := strings.Repeat("substantial page content. ", 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	v := New(zap.NewNop())
	res := v.ValidateURL(context.Background(), srv.URL)
	assert.True(t, res.IsValid)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.False(t, res.IsEmpty)
	assert.Empty(t, res.Error)
}

func TestValidateURL_EmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	v := New(zap.NewNop())
	res := v.ValidateURL(context.Background(), srv.URL)
	assert.False(t, res.IsValid)
	assert.True(t, res.IsEmpty)
	assert.Equal(t, "Page appears to be empty or has minimal content", res.Error)
}

func TestValidateURL_GETFailureAfterHEADSuccessIsValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusOK)
			return
		}
		// Kill the GET connection without a response.
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)
		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		conn.Close()
	}))
	defer srv.Close()

	v := New(zap.NewNop())
	res := v.ValidateURL(context.Background(), srv.URL)
	assert.True(t, res.IsValid)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestValidateURL_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	v := NewWithTimeout(zap.NewNop(), 50*time.Millisecond)
	res := v.ValidateURL(context.Background(), srv.URL)
	assert.False(t, res.IsValid)
	assert.Equal(t, "Request timeout", res.Error)
}

func TestValidateURLs_OrderAndConcurrency(t *testing.T) {
	body := strings.Repeat("page body content filler text. ", 8)
	var inFlight, peak int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&inFlight, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	urls := make([]string, 12)
	for i := range urls {
		urls[i] = srv.URL + "/page" + string(rune('a'+i))
	}
	// A malformed URL in the middle must produce its own result slot.
	urls[5] = "::not-a-url::"

	v := New(zap.NewNop())
	results := v.ValidateURLs(context.Background(), urls, 5)

	require.Len(t, results, len(urls))
	for i, r := range results {
		assert.Equal(t, urls[i], r.URL, "results must keep input order")
		if i == 5 {
			assert.False(t, r.IsValid)
		} else {
			assert.True(t, r.IsValid)
		}
	}
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(5), "no more than maxConcurrent probes in flight")
}

func TestInvalidURLs(t *testing.T) {
	results := []Result{
		{URL: "https://ok.example.com", IsValid: true},
		{URL: "https://dead.example.com", IsValid: false},
		{URL: "bogus", IsValid: false},
	}
	invalid := InvalidURLs(results)
	assert.Equal(t, map[string]bool{
		"https://dead.example.com": true,
		"bogus":                    true,
	}, invalid)
}
