package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fractionestate/specify/internal/cache"
	"github.com/fractionestate/specify/internal/catalog"
)

func newService(t *testing.T, endpoint string) *catalog.Service {
	t.Helper()
	return &catalog.Service{
		Client: catalog.NewClient(nil, endpoint, ""),
		Store:  cache.NewStore(t.TempDir()),
	}
}

func TestFetchEnvelopeShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": [
			{"id": "gpt-4o", "name": "GPT-4o", "publisher": "OpenAI"},
			{"id": "gpt-4o-mini", "name": "GPT-4o Mini"},
			{"id": "", "name": "ignored"},
			{"id": "no-name-model"}
		]}`))
	}))
	defer srv.Close()

	models, err := catalog.NewClient(nil, srv.URL, "").Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	want := map[string]string{
		"gpt-4o":        "GPT-4o",
		"gpt-4o-mini":   "GPT-4o Mini",
		"no-name-model": "no-name-model", // display name falls back to the id
	}
	if len(models) != len(want) {
		t.Fatalf("models len = %d, want %d: %v", len(models), len(want), models)
	}
	for id, name := range want {
		if models[id] != name {
			t.Errorf("models[%q] = %q, want %q", id, models[id], name)
		}
	}
}

func TestFetchBareListShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id": "mistral-small", "name": "Mistral Small"}]`))
	}))
	defer srv.Close()

	models, err := catalog.NewClient(nil, srv.URL, "").Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if models["mistral-small"] != "Mistral Small" {
		t.Errorf("models = %v, want mistral-small entry", models)
	}
}

func TestFetchSimplifiesRegistryIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"id": "registries/azure-openai/gpt-4o/3", "name": "GPT-4o"}]}`))
	}))
	defer srv.Close()

	models, err := catalog.NewClient(nil, srv.URL, "").Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if _, ok := models["gpt-4o"]; !ok {
		t.Errorf("models = %v, want simplified id gpt-4o", models)
	}
}

func TestFetchSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data": [{"id": "gpt-4o", "name": "GPT-4o"}]}`))
	}))
	defer srv.Close()

	if _, err := catalog.NewClient(nil, srv.URL, "tok123").Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want Bearer tok123", gotAuth)
	}
}

func TestFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := catalog.NewClient(nil, srv.URL, "").Fetch(context.Background()); err == nil {
		t.Fatal("Fetch() succeeded on 403 response")
	}
}

func TestFetchMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": [`))
	}))
	defer srv.Close()

	if _, err := catalog.NewClient(nil, srv.URL, "").Fetch(context.Background()); err == nil {
		t.Fatal("Fetch() succeeded on truncated JSON")
	}
}

func TestServiceFallbackOnNetworkFailure(t *testing.T) {
	// Server closed before use: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	svc := newService(t, srv.URL)
	res := svc.Get(context.Background(), catalog.Options{AllowNetwork: true})

	if res.Source != cache.SourceFallback {
		t.Errorf("Source = %q, want %q", res.Source, cache.SourceFallback)
	}
	if res.Err == nil {
		t.Error("Err = nil, want the fetch failure recorded")
	}
	fb := catalog.Fallback()
	if len(res.Models) != len(fb) {
		t.Fatalf("Models len = %d, want exact fallback map (%d)", len(res.Models), len(fb))
	}
	for id, name := range fb {
		if res.Models[id] != name {
			t.Errorf("Models[%q] = %q, want %q", id, res.Models[id], name)
		}
	}

	// The degraded result is persisted so the next call stays offline.
	entry, ok := svc.Store.Load()
	if !ok {
		t.Fatal("fallback result was not cached")
	}
	if entry.Source != cache.SourceFallback {
		t.Errorf("cached Source = %q, want %q", entry.Source, cache.SourceFallback)
	}
}

func TestServiceFreshCacheSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"data": [{"id": "gpt-4o", "name": "GPT-4o"}]}`))
	}))
	defer srv.Close()

	svc := newService(t, srv.URL)
	if err := svc.Store.Save(map[string]string{"cached-model": "Cached"}, cache.SourceAPI); err != nil {
		t.Fatal(err)
	}

	res := svc.Get(context.Background(), catalog.Options{AllowNetwork: true})
	if hits.Load() != 0 {
		t.Errorf("network hits = %d, want 0 with a fresh cache", hits.Load())
	}
	if !res.Cached {
		t.Error("Cached = false, want true")
	}
	if res.Models["cached-model"] != "Cached" {
		t.Errorf("Models = %v, want cached catalog unchanged", res.Models)
	}
}

func TestServiceForceRefreshBypassesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"data": [{"id": "gpt-4o", "name": "GPT-4o"}]}`))
	}))
	defer srv.Close()

	svc := newService(t, srv.URL)
	if err := svc.Store.Save(map[string]string{"cached-model": "Cached"}, cache.SourceAPI); err != nil {
		t.Fatal(err)
	}

	res := svc.Get(context.Background(), catalog.Options{ForceRefresh: true, AllowNetwork: true})
	if hits.Load() != 1 {
		t.Errorf("network hits = %d, want 1 with ForceRefresh", hits.Load())
	}
	if res.Source != cache.SourceAPI {
		t.Errorf("Source = %q, want %q", res.Source, cache.SourceAPI)
	}
	if _, ok := res.Models["gpt-4o"]; !ok {
		t.Errorf("Models = %v, want refetched catalog", res.Models)
	}
}

func TestServiceOfflineModeUsesFallbackWithoutCaching(t *testing.T) {
	svc := newService(t, "http://127.0.0.1:0")
	res := svc.Get(context.Background(), catalog.Options{ForceRefresh: true, AllowNetwork: false})

	if res.Source != cache.SourceFallback {
		t.Errorf("Source = %q, want %q", res.Source, cache.SourceFallback)
	}
	if res.Err != nil {
		t.Errorf("Err = %v, want nil in explicit offline mode", res.Err)
	}
	if _, ok := svc.Store.Load(); ok {
		t.Error("offline mode wrote the cache; a good cache must not be clobbered")
	}
}

func TestResolveKnownModel(t *testing.T) {
	name, err := catalog.Resolve(catalog.Fallback(), "gpt-4o")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if name != "GPT-4o" {
		t.Errorf("name = %q, want GPT-4o", name)
	}
}

func TestResolveTypoSuggestsCorrection(t *testing.T) {
	_, err := catalog.Resolve(catalog.Fallback(), "gpt4o")
	if err == nil {
		t.Fatal("Resolve() succeeded for unknown id")
	}

	var notFound *catalog.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error type = %T, want *NotFoundError", err)
	}
	if len(notFound.Suggestions) == 0 {
		t.Fatal("Suggestions empty, want at least one correction for gpt4o")
	}
	found := false
	for _, s := range notFound.Suggestions {
		if s == "gpt-4o" {
			found = true
		}
	}
	if !found {
		t.Errorf("Suggestions = %v, want gpt-4o included", notFound.Suggestions)
	}
}

func TestSuggestSubstringIgnoresCase(t *testing.T) {
	models := map[string]string{
		"Phi-3.5-MoE-instruct": "Phi-3.5-MoE instruct",
		"gpt-4o":               "GPT-4o",
	}

	suggestions := catalog.Suggest(models, "moe")
	found := false
	for _, s := range suggestions {
		if s == "Phi-3.5-MoE-instruct" {
			found = true
		}
	}
	if !found {
		t.Errorf("Suggest(moe) = %v, want mixed-case id matched by substring", suggestions)
	}
}

func TestResolveToken(t *testing.T) {
	t.Setenv("GH_TOKEN", "env-gh")
	t.Setenv("GITHUB_TOKEN", "env-github")

	if got := catalog.ResolveToken("cli-token"); got != "cli-token" {
		t.Errorf("ResolveToken(cli) = %q, want cli-token", got)
	}
	if got := catalog.ResolveToken(""); got != "env-gh" {
		t.Errorf("ResolveToken() = %q, want env-gh", got)
	}

	t.Setenv("GH_TOKEN", "  ")
	if got := catalog.ResolveToken(""); got != "env-github" {
		t.Errorf("ResolveToken() = %q, want env-github after blank GH_TOKEN", got)
	}
}
