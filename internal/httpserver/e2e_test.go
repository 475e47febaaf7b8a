package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fosscu/subdomain-checker/internal/availability"
)

// fakeBackend mimics GET /check-subdomain/{name} with a fixed set of
// claimed names.
func fakeBackend(t *testing.T, claimed ...string) *httptest.Server {
	t.Helper()
	taken := make(map[string]bool, len(claimed))
	for _, n := range claimed {
		taken[n] = true
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /check-subdomain/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if taken[r.PathValue("name")] {
			_, _ = w.Write([]byte(`{"is_available":false}`))
			return
		}
		_, _ = w.Write([]byte(`{"is_available":true}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestEndToEnd_RealClient(t *testing.T) {
	backend := fakeBackend(t, "www", "docs")

	client, err := availability.NewClient(backend.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	r := newTestServer(t, client)

	tests := []struct {
		name string
		want string
	}{
		{name: "acme", want: "acme.fosscu.org is available!"},
		{name: "docs", want: "docs.fosscu.org is not available, and it is already in use."},
	}
	for _, tt := range tests {
		w := postCheck(r, tt.name)
		if !strings.Contains(w.Body.String(), tt.want) {
			t.Errorf("%s: body missing %q", tt.name, tt.want)
		}
	}
}

func TestEndToEnd_BackendDown(t *testing.T) {
	backend := fakeBackend(t)
	endpoint := backend.URL
	backend.Close()

	client, err := availability.NewClient(endpoint)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	r := newTestServer(t, client)

	w := postCheck(r, "acme")
	if !strings.Contains(w.Body.String(), "Failed to check subdomain availability. Please try again.") {
		t.Errorf("body missing failure banner:\n%s", w.Body.String())
	}
}
