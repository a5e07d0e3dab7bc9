//go:build functional

/*
Package functional provides functional tests for avaroute. They load
the example documents under configs/ and drive lookups with real HTTP
requests.
*/
package functional

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avaroute/internal/routing"
	testconfig "github.com/vyrodovalexey/avaroute/test/config"
)

var exampleDocuments = []string{"routes.yaml", "routes.toml"}

// loadExample loads an example document.
func loadExample(t *testing.T, name string) *routing.Table {
	t.Helper()

	table, err := routing.Load(testconfig.Load().ConfigPath(name))
	require.NoError(t, err)
	return table
}

// newRequest builds a lookup request from an HTTP request.
func newRequest(method, target string, headers map[string]string) routing.Request {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return routing.RequestFromHTTP(req)
}

// dispatcher answers with the selected target, standing in for a
// gateway's dispatch loop.
func dispatcher(store *routing.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rule, err := store.FirstMatch(routing.RequestFromHTTP(r))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		w.Header().Set("X-Target", rule.TargetService()+":"+rule.TargetPort())
		if rule.RequiresAuthentication(true) {
			w.Header().Set("X-Authorization-API", store.Load().AuthorizationAPIURL())
		}
		w.WriteHeader(http.StatusOK)
	})
}
