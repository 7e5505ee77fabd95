package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultUserAgent = "matcap-scene/1.0"

// HTTP serves assets from a base URL.
type HTTP struct {
	Base      string
	Client    *http.Client
	UserAgent string
}

// NewHTTP returns a source rooted at base with a 60 second request timeout.
func NewHTTP(base string) *HTTP {
	return &HTTP{
		Base:      strings.TrimRight(base, "/"),
		Client:    &http.Client{Timeout: 60 * time.Second},
		UserAgent: defaultUserAgent,
	}
}

func (h *HTTP) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	url := h.Base + "/" + cleanName(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	req.Header.Set("User-Agent", h.UserAgent)
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assets: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, fmt.Errorf("assets: GET %s: HTTP %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

func (h *HTTP) String() string {
	return "http:" + h.Base
}
