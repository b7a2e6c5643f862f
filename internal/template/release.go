// Package template fetches Spec-Driven Development template releases
// from GitHub and extracts them into a workspace.
package template

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fractionestate/specify/internal/clierr"
)

// DefaultReleaseURL points at the latest template release of the
// canonical spec-kit repository.
const DefaultReleaseURL = "https://api.github.com/repos/FractionEstate/development-spec-kit/releases/latest"

// assetPrefix is the naming convention for template release assets:
// spec-kit-template-<agent>-<script>*.zip.
const assetPrefix = "spec-kit-template"

const fetchTimeout = 30 * time.Second

// Release is the subset of the GitHub release payload the CLI needs.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset is one downloadable release artifact.
type Asset struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	DownloadURL string `json:"browser_download_url"`
}

// Client talks to the GitHub release API.
type Client struct {
	httpClient *http.Client
	releaseURL string
	token      string
}

// NewClient builds a release client. A nil httpClient falls back to a
// default client; an empty releaseURL falls back to DefaultReleaseURL.
// The token, when set, is sent as a Bearer credential to lift GitHub's
// anonymous rate limits.
func NewClient(httpClient *http.Client, releaseURL, token string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: fetchTimeout}
	}
	if releaseURL == "" {
		releaseURL = DefaultReleaseURL
	}
	return &Client{httpClient: httpClient, releaseURL: releaseURL, token: token}
}

// LatestRelease fetches the latest template release metadata.
func (c *Client) LatestRelease(ctx context.Context) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.releaseURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("building release request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, clierr.Newf(clierr.DownloadFailed, "fetching release information: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, clierr.Newf(clierr.DownloadFailed,
			"GitHub API returned %d for %s", resp.StatusCode, c.releaseURL)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, clierr.Newf(clierr.DownloadFailed, "parsing release JSON: %v", err)
	}
	return &release, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// MatchAsset finds the release asset for an agent and script flavor.
// Assets follow the spec-kit-template-<agent>-<script>*.zip convention;
// the error for a missing asset lists what the release actually ships.
func MatchAsset(release *Release, agent, script string) (Asset, error) {
	pattern := fmt.Sprintf("%s-%s-%s", assetPrefix, agent, script)
	for _, asset := range release.Assets {
		if strings.Contains(asset.Name, pattern) && strings.HasSuffix(asset.Name, ".zip") {
			return asset, nil
		}
	}

	names := make([]string, len(release.Assets))
	for i, asset := range release.Assets {
		names[i] = asset.Name
	}
	err := clierr.Newf(clierr.DownloadFailed,
		"no release asset matches %s*.zip", pattern)
	return Asset{}, err.WithDetails(map[string]any{"available_assets": names})
}
