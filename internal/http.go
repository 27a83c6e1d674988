package internal

import "net/http"

// HeaderTransport is a RoundTripper that fills in default headers on
// outgoing requests. Yahoo's endpoints reject requests without a browser
// User-Agent, so the provider client is built over one of these. Headers
// already present on a request are left untouched.
type HeaderTransport struct {
	Base    http.RoundTripper
	Headers http.Header
}

func (t *HeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for key, values := range t.Headers {
		if req.Header.Get(key) != "" {
			continue
		}
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
