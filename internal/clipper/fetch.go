package clipper

import (
	"context"
	"io"
	"net/http"

	"recipeclip/internal/extract"
)

// browserUserAgent keeps recipe sites from serving bot walls.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// fetchPage retrieves the raw HTML of the target URL. Any failure, including
// a non-2xx status, comes back as a *extract.FetchError.
func (c *Clipper) fetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &extract.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &extract.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &extract.FetchError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &extract.FetchError{URL: url, Err: err}
	}
	return string(body), nil
}
