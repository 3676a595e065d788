package github

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// loggingTransport records one debug event per request. Headers are never logged.
type loggingTransport struct {
	base http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	elapsed := time.Since(start)

	if err != nil {
		log.Debug().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Dur("duration", elapsed).
			Err(err).
			Msg("github request failed")
		return nil, err
	}

	log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", elapsed).
		Msg("github request")
	return resp, nil
}
