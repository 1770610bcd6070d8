package monitors

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/monitorly-dev/monitorly/internal/types"
)

func TestCheckHTTPStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		wantStatus string
		wantDetail string
	}{
		{name: "ok", code: 200, wantStatus: types.StatusUp},
		{name: "created", code: 201, wantStatus: types.StatusUp},
		{name: "not-modified", code: 304, wantStatus: types.StatusUp},
		{name: "not-found", code: 404, wantStatus: types.StatusDown, wantDetail: "HTTP 404"},
		{name: "unavailable", code: 503, wantStatus: types.StatusDown, wantDetail: "HTTP 503"},
		{name: "server-error", code: 500, wantStatus: types.StatusDown, wantDetail: "HTTP 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer srv.Close()

			result := CheckHTTP(srv.URL, 5*time.Second)

			if result.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", result.Status, tt.wantStatus)
			}
			if result.StatusCode == nil {
				t.Fatal("expected a status code")
			}
			if *result.StatusCode != tt.code {
				t.Errorf("status code = %d, want %d", *result.StatusCode, tt.code)
			}
			if result.ErrorDetail != tt.wantDetail {
				t.Errorf("error detail = %q, want %q", result.ErrorDetail, tt.wantDetail)
			}
		})
	}
}

func TestCheckHTTPFollowsRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer redirecting.Close()

	result := CheckHTTP(redirecting.URL, 5*time.Second)

	if result.Status != types.StatusUp {
		t.Errorf("status = %q, want %q", result.Status, types.StatusUp)
	}
}

func TestCheckHTTPRedirectLoop(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL, http.StatusFound)
	}))
	defer srv.Close()

	result := CheckHTTP(srv.URL, 5*time.Second)

	if result.Status != types.StatusDown {
		t.Errorf("status = %q, want %q", result.Status, types.StatusDown)
	}
	if !strings.Contains(result.ErrorDetail, "redirects") {
		t.Errorf("error detail = %q, want redirect cap", result.ErrorDetail)
	}
}

func TestCheckHTTPTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	start := time.Now()
	result := CheckHTTP(srv.URL, 50*time.Millisecond)
	elapsed := time.Since(start)

	if result.Status != types.StatusDown {
		t.Errorf("status = %q, want %q", result.Status, types.StatusDown)
	}
	if result.StatusCode != nil {
		t.Errorf("status code = %d, want none", *result.StatusCode)
	}
	if result.ErrorDetail == "" {
		t.Error("expected an error detail on timeout")
	}
	if elapsed > 400*time.Millisecond {
		t.Errorf("probe blocked %v past its deadline", elapsed)
	}
	if result.Latency <= 0 {
		t.Error("latency must still be measured on failure")
	}
}

func TestCheckHTTPConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	result := CheckHTTP(url, time.Second)

	if result.Status != types.StatusDown {
		t.Errorf("status = %q, want %q", result.Status, types.StatusDown)
	}
	if result.StatusCode != nil {
		t.Error("transport failures carry no status code")
	}
	if result.ErrorDetail == "" {
		t.Error("expected an error detail")
	}
}
