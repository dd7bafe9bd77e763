package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"chromactl/internal/domain"
)

const (
	apiPrefix    = "/api/v1"
	maxErrorBody = 4 << 10
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("chroma %s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Unwrap maps server responses to the domain sentinels.
func (e *APIError) Unwrap() error {
	body := strings.ToLower(e.Body)
	switch {
	case e.Status == http.StatusNotFound, strings.Contains(body, "does not exist"):
		return domain.ErrCollectionNotFound
	case e.Status == http.StatusConflict, strings.Contains(body, "already exists"):
		return domain.ErrCollectionExists
	}
	return nil
}

// HTTP talks to a Chroma server at Base, e.g. http://localhost:8000.
type HTTP struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns a client for base; a nil hc uses http.DefaultClient.
func NewHTTP(base string, hc *http.Client) *HTTP {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTP{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

// Heartbeat checks that the server is reachable.
func (c *HTTP) Heartbeat(ctx context.Context) error {
	var out map[string]any
	return c.do(ctx, http.MethodGet, "/heartbeat", nil, &out)
}

func (c *HTTP) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}
	u := c.Base + apiPrefix + path
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Method: method, URL: u, Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("chroma %s %s: decoding response: %w", method, u, err)
	}
	return nil
}
