package geocode

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// upstreamRedirect is an http.RoundTripper that sends requests aimed at the
// DSTK base URL to a test server and remembers the escaped path and query of
// each one as the provider built it.
type upstreamRedirect struct {
	base   string
	target *url.URL

	mu   sync.Mutex
	seen []string
}

// newUpstreamClient returns a client whose requests to base are served by
// testServerURL, plus the redirect recording them.
func newUpstreamClient(testServerURL, base string) (*http.Client, *upstreamRedirect) {
	target, err := url.Parse(testServerURL)
	if err != nil {
		panic(err)
	}
	rt := &upstreamRedirect{base: strings.TrimRight(base, "/"), target: target}
	return &http.Client{Transport: rt}, rt
}

func (u *upstreamRedirect) RoundTrip(req *http.Request) (*http.Response, error) {
	if !strings.HasPrefix(req.URL.String(), u.base+"/") {
		return http.DefaultTransport.RoundTrip(req)
	}

	u.mu.Lock()
	u.seen = append(u.seen, req.URL.RequestURI())
	u.mu.Unlock()

	out := req.Clone(req.Context())
	out.URL.Scheme = u.target.Scheme
	out.URL.Host = u.target.Host
	out.Host = u.target.Host
	return http.DefaultTransport.RoundTrip(out)
}

// requests returns the recorded request URIs in order.
func (u *upstreamRedirect) requests() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.seen...)
}
