package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// fetchChunkSize bounds peak memory while streaming media to disk
const fetchChunkSize = 1 << 20

// fetchToFile streams the response body for url into dest in fixed-size
// chunks. Any non-2xx response is a failure. A stream error leaves no
// guarantee about partial contents, so the file is removed before returning.
func fetchToFile(ctx context.Context, client *http.Client, headers map[string]string, url, dest string, timeout time.Duration) error {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("http error %d fetching media", resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	buf := make([]byte, fetchChunkSize)
	if _, err := io.CopyBuffer(out, resp.Body, buf); err != nil {
		out.Close()
		os.Remove(dest)
		return fmt.Errorf("streaming media: %w", err)
	}

	if err := out.Close(); err != nil {
		os.Remove(dest)
		return fmt.Errorf("closing output file: %w", err)
	}

	return nil
}
