package template

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fractionestate/specify/internal/clierr"
)

const fileMode = 0o600

// downloadTimeout bounds the whole archive transfer. Archives are
// larger than metadata, so the per-request fetchTimeout does not apply.
const downloadTimeout = 5 * time.Minute

// Download streams a release asset into destDir and returns the path of
// the written archive. A partial file is removed on failure.
func (c *Client) Download(ctx context.Context, asset Asset, destDir string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.DownloadURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("building download request: %w", err)
	}
	c.authorize(req)

	// The metadata client's Timeout would cut off a slow archive body
	// mid-stream; reuse its transport under the deadline above instead.
	dl := &http.Client{Transport: c.httpClient.Transport}
	resp, err := dl.Do(req)
	if err != nil {
		return "", clierr.Newf(clierr.DownloadFailed, "downloading %s: %v", asset.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", clierr.Newf(clierr.DownloadFailed,
			"download of %s failed with %d", asset.Name, resp.StatusCode)
	}

	path := filepath.Join(destDir, asset.Name)
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode) //nolint:gosec // path derived from the asset name inside destDir
	if err != nil {
		return "", fmt.Errorf("creating archive file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(path)
		return "", clierr.Newf(clierr.DownloadFailed, "writing %s: %v", asset.Name, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing archive file: %w", err)
	}
	return path, nil
}
