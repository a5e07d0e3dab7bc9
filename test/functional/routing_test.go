//go:build functional

package functional

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avaroute/internal/config"
	"github.com/vyrodovalexey/avaroute/internal/routing"
	testconfig "github.com/vyrodovalexey/avaroute/test/config"
)

func TestFunctional_Examples_Lookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		method      string
		target      string
		headers     map[string]string
		wantService string
		wantAuth    bool
	}{
		{
			name:        "tenant header selects blue",
			method:      http.MethodGet,
			target:      "http://api.example.com/v1/users",
			headers:     map[string]string{"X-Tenant": "blue"},
			wantService: "api-blue",
			wantAuth:    true,
		},
		{
			name:        "other tenant falls to api",
			method:      http.MethodPost,
			target:      "http://api.example.com/v1/users",
			headers:     map[string]string{"X-Tenant": "green"},
			wantService: "api",
			wantAuth:    true,
		},
		{
			name:        "static asset",
			method:      http.MethodGet,
			target:      "http://www.example.com/static/site.css",
			wantService: "assets",
			wantAuth:    false,
		},
		{
			name:        "health uses gateway default",
			method:      http.MethodGet,
			target:      "http://www.example.com/health",
			wantService: "status",
			wantAuth:    true,
		},
		{
			name:        "host with port misses anchored host",
			method:      http.MethodGet,
			target:      "http://api.example.com:8443/v1/users",
			wantService: "default",
			wantAuth:    true,
		},
	}

	for _, doc := range exampleDocuments {
		table := loadExample(t, doc)

		for _, tt := range tests {
			tt := tt
			t.Run(doc+"/"+tt.name, func(t *testing.T) {
				t.Parallel()

				rule, err := table.FirstMatch(newRequest(tt.method, tt.target, tt.headers))
				require.NoError(t, err)
				assert.Equal(t, tt.wantService, rule.TargetService())
				assert.Equal(t, tt.wantAuth, rule.RequiresAuthentication(true))
			})
		}
	}
}

func TestFunctional_Examples_FormatsAgree(t *testing.T) {
	t.Parallel()

	yamlTable := loadExample(t, "routes.yaml")
	tomlTable := loadExample(t, "routes.toml")

	assert.Equal(t, yamlTable.Config(), tomlTable.Config())
}

func TestFunctional_Examples_NoLintWarnings(t *testing.T) {
	t.Parallel()

	for _, doc := range exampleDocuments {
		cfg, err := config.LoadConfig(testconfig.Load().ConfigPath(doc))
		require.NoError(t, err)
		assert.Empty(t, config.Lint(cfg), doc)
	}
}

func TestFunctional_Examples_CrossFormatRoundTrip(t *testing.T) {
	t.Parallel()

	table := loadExample(t, "routes.yaml")
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "converted.toml")
	require.NoError(t, config.WriteFile(tomlPath, table.Config()))

	converted, err := routing.Load(tomlPath)
	require.NoError(t, err)

	yamlPath := filepath.Join(dir, "converted.yaml")
	require.NoError(t, config.WriteFile(yamlPath, converted.Config()))

	back, err := routing.Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, table.Config(), back.Config())
}

func TestFunctional_Dispatcher_Reload(t *testing.T) {
	env := testconfig.Load()

	data, err := os.ReadFile(env.ConfigPath("routes.yaml"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	initial, err := routing.Load(path)
	require.NoError(t, err)
	store := routing.NewStore(initial)

	watcher, err := routing.NewWatcher(path, func(table *routing.Table) { store.Swap(table) },
		routing.WithDebounceDelay(50*time.Millisecond))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, watcher.Start(ctx))
	defer func() { _ = watcher.Stop() }()

	server := httptest.NewServer(dispatcher(store))
	defer server.Close()

	get := func(path string) *http.Response {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		return resp
	}

	resp := get("/anything")
	assert.Equal(t, "default:80", resp.Header.Get("X-Target"))
	assert.Equal(t, "http://authz.internal:8080/check", resp.Header.Get("X-Authorization-API"))

	// A broken edit leaves the running table in place.
	broken := strings.Replace(string(data), `"^/health$"`, `"^/health($"`, 1)
	require.NoError(t, os.WriteFile(path, []byte(broken), 0o600))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, "default:80", get("/anything").Header.Get("X-Target"))

	fixed := strings.Replace(string(data), "target_service: default", "target_service: catch-all", 1)
	require.NoError(t, os.WriteFile(path, []byte(fixed), 0o600))

	require.Eventually(t, func() bool {
		return get("/anything").Header.Get("X-Target") == "catch-all:80"
	}, env.Timeout, env.Interval)
}
