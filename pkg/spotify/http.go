package spotify

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Doer is the subset of *http.Client used by HTTPFetcher. It allows the
// transport to be replaced in tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPFetcher issues plain GET requests. No headers or body are set; any
// authentication belongs to the Doer. If HTTP is nil http.DefaultClient is
// used, and if Logger is nil the logrus standard logger is used.
type HTTPFetcher struct {
	HTTP   Doer
	Logger logrus.FieldLogger
}

var _ Fetcher[*http.Response] = (*HTTPFetcher)(nil)

// Fetch performs the GET and returns the response as is. Non-2xx statuses are
// not errors here; the caller owns the body and must close it.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*http.Response, error) {
	hc := f.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	log := f.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		log.WithError(err).WithField("url", rawURL).Warn("spotify request failed")
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"url":      rawURL,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("spotify request")
	return resp, nil
}

// NewHTTPClient returns a Client backed by an HTTPFetcher around hc. A nil hc
// falls back to http.DefaultClient.
func NewHTTPClient(hc *http.Client, logger logrus.FieldLogger, opts ...Option) *Client[*http.Response] {
	f := &HTTPFetcher{Logger: logger}
	if hc != nil {
		f.HTTP = hc
	}
	return New[*http.Response](f, opts...)
}
