package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"ratefeed/internal/adapters"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	maxBodyBytes    = 4 << 20
)

// HeaderObserver is notified with the headers of every successful response.
type HeaderObserver interface {
	Observe(header http.Header)
}

type Getter struct {
	http     *http.Client
	observer HeaderObserver
}

func (g *Getter) Get(ctx context.Context, url string) (*adapters.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %q: %w", url, err)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d for %q: %s", resp.StatusCode, url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body for %q: %w", url, err)
	}

	if g.observer != nil {
		g.observer.Observe(resp.Header)
	}

	return &adapters.Response{Body: body, Header: resp.Header}, nil
}

func NewGetter(httpClient *http.Client, observer HeaderObserver) *Getter {
	return &Getter{http: httpClient, observer: observer}
}
