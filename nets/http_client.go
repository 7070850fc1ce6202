package nets

import (
	"net/http"
	"net/url"
	"time"
)

type HTTPClient = *http.Client

// HTTPClient is tuned for fetching a handful of small files from one host concurrently.
func (Module) HTTPClient(
	dialer Dialer,
	getURL GetProxyURL,
	isLocalAddr IsLocalAddr,
) HTTPClient {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: func(req *http.Request) (*url.URL, error) {
				u, err := getURL()
				if err != nil || !IsHTTPProxy(u) {
					return nil, err
				}
				if local, err := isLocalAddr(req.URL.Host); err != nil || local {
					return nil, err
				}
				return u, nil
			},
			DialContext:           dialer.DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConnsPerHost:   8,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
		},
	}
}
