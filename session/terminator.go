package session

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

type credentialsKey struct{}

// WithCredentials attaches the browser's cookies to ctx so the remote
// logout call is made on behalf of that browser.
func WithCredentials(ctx context.Context, cookies []*http.Cookie) context.Context {
	return context.WithValue(ctx, credentialsKey{}, cookies)
}

func credentialsFromContext(ctx context.Context) []*http.Cookie {
	cookies, _ := ctx.Value(credentialsKey{}).([]*http.Cookie)
	return cookies
}

// RemoteTerminator ends the server-side session held by the identity backend.
type RemoteTerminator interface {
	Terminate(ctx context.Context) error
}

// HTTPTerminator POSTs an empty body to the backend logout endpoint.
// Only the status code matters; the response body is discarded.
type HTTPTerminator struct {
	url        string
	httpClient *http.Client
}

// NewHTTPTerminator creates a terminator for the given endpoint.
// A zero timeout leaves the call unbounded apart from ctx.
func NewHTTPTerminator(url string, timeout time.Duration) *HTTPTerminator {
	return &HTTPTerminator{
		url: url,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
	}
}

func (t *HTTPTerminator) Terminate(ctx context.Context) error {
	if t.url == "" {
		return fmt.Errorf("logout endpoint not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create logout request: %w", err)
	}
	for _, c := range credentialsFromContext(ctx) {
		req.AddCookie(c)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("logout failed: status %d", resp.StatusCode)
	}
	return nil
}
