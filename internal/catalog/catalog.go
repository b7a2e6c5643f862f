// Package catalog fetches the model catalog from the remote models API,
// normalizes it into id → display-name pairs, and degrades to a curated
// fallback list whenever the network or the response shape fails.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultEndpoint is the remote model catalog endpoint.
const DefaultEndpoint = "https://models.inference.ai.azure.com/models"

// FetchTimeout bounds a single catalog request.
const FetchTimeout = 30 * time.Second

// Client fetches the model catalog. It is constructed explicitly and
// passed in wherever a fetch happens; there is no package-level client.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// NewClient creates a catalog client. A nil httpClient gets a default
// client with the fetch timeout; an empty endpoint gets DefaultEndpoint.
func NewClient(httpClient *http.Client, endpoint, token string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: FetchTimeout}
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{httpClient: httpClient, endpoint: endpoint, token: token}
}

// ResolveToken returns the sanitized API token: the CLI flag value wins,
// then GH_TOKEN, then GITHUB_TOKEN. Empty string when none is set.
func ResolveToken(cliToken string) string {
	for _, t := range []string{cliToken, os.Getenv("GH_TOKEN"), os.Getenv("GITHUB_TOKEN")} {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// modelEntry is the subset of an API model record the CLI cares about.
// Extra fields are ignored; missing fields degrade to the zero value.
type modelEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// listResponse matches the `{"data": [...]}` envelope shape.
type listResponse struct {
	Data []modelEntry `json:"data"`
}

// Fetch retrieves and normalizes the remote catalog into id → display
// name pairs. Any transport, status, or parse failure is returned as an
// error; callers degrade to the fallback catalog.
func (c *Client) Fetch(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog endpoint returned %s", resp.Status)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing catalog response: %w", err)
	}

	models, err := normalize(raw)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("catalog response contained no models")
	}
	return models, nil
}

// normalize accepts either the `{"data": [...]}` envelope or a bare JSON
// list of model records and maps them into {id: display_name}.
func normalize(raw json.RawMessage) (map[string]string, error) {
	var entries []modelEntry

	var envelope listResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Data != nil {
		entries = envelope.Data
	} else if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("unrecognized catalog response shape: %w", err)
	}

	models := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		id := simplifyID(e.ID)
		name := e.Name
		if name == "" {
			name = e.ID
		}
		models[id] = name
	}
	return models, nil
}

// simplifyID shortens registry-style ids ("azureml://registries/x/models/gpt-4o/versions/3")
// to the segment before the last path element.
func simplifyID(id string) string {
	if !strings.Contains(id, "/") {
		return id
	}
	parts := strings.Split(id, "/")
	return parts[len(parts)-2]
}
