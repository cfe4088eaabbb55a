package mal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const clientIDHeader = "X-MAL-CLIENT-ID"

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any, operation string) error {
	call := func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return fmt.Errorf("create %s request: %w", operation, err)
		}
		req.URL.RawQuery = query.Encode()
		req.Header.Set(clientIDHeader, c.clientID)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("mal %s request: %w", operation, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			return newHTTPStatusError(operation, resp)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", operation, err)
		}
		return nil
	}

	err := c.exec.Execute(ctx, "mal_"+operation, call, classifyCatalogError)
	return wrapUnavailableIfNeeded(operation, err)
}

type HTTPStatusError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func newHTTPStatusError(operation string, resp *http.Response) *HTTPStatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &HTTPStatusError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "mal status error"
	}
	if e.Body == "" {
		return fmt.Sprintf("mal %s status: %s", e.Operation, e.Status)
	}
	return fmt.Sprintf("mal %s status: %s: %s", e.Operation, e.Status, e.Body)
}
