package monitors

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/monitorly-dev/monitorly/internal/types"
)

const maxRedirects = 10

// Result classifies the outcome of a single probe. Probes never return an
// error: timeouts, refused connections and non-2xx responses are all encoded
// into the result itself.
type Result struct {
	Status      string // types.StatusUp or types.StatusDown
	StatusCode  *int
	Latency     time.Duration
	ErrorDetail string
}

// CheckHTTP issues one GET against targetURL with the given request deadline
// and classifies the response. Status codes in [200,400) count as UP,
// anything else is DOWN with detail "HTTP <code>". Transport failures are
// DOWN with the underlying error's message. Latency is measured from request
// start to final outcome, including failures.
func CheckHTTP(targetURL string, timeout time.Duration) Result {
	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	start := time.Now()
	resp, err := client.Get(targetURL)
	latency := time.Since(start)

	if err != nil {
		return Result{
			Status:      types.StatusDown,
			Latency:     latency,
			ErrorDetail: probeErrorDetail(err),
		}
	}

	defer resp.Body.Close()

	code := resp.StatusCode

	if code >= 200 && code < 400 {
		return Result{
			Status:     types.StatusUp,
			StatusCode: &code,
			Latency:    latency,
		}
	}

	return Result{
		Status:      types.StatusDown,
		StatusCode:  &code,
		Latency:     latency,
		ErrorDetail: fmt.Sprintf("HTTP %d", code),
	}
}

// probeErrorDetail strips the url.Error envelope so the recorded detail reads
// "context deadline exceeded" rather than `Get "http://...": context
// deadline exceeded`.
func probeErrorDetail(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err.Error()
	}
	return err.Error()
}
