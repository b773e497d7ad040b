// Package httpclient builds the HTTP client shared by the directory adapters.
package httpclient

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// New creates an HTTP client with strict transport timeouts and, when
// configured, a request pacer.
func New(cfg Config) *http.Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	var rt http.RoundTripper = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	if cfg.RequestsPerSecond > 0 {
		rt = Paced(rt, rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1))
	}

	return &http.Client{Transport: rt}
}

// Paced wraps next so every request waits for a token from limiter.
func Paced(next http.RoundTripper, limiter *rate.Limiter) http.RoundTripper {
	return &pacedTransport{next: next, limiter: limiter}
}

type pacedTransport struct {
	next    http.RoundTripper
	limiter *rate.Limiter
}

func (t *pacedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.next.RoundTrip(req)
}
