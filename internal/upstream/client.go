// Package upstream holds the HTTP clients for the vehicle and pricing
// services and the caller-credential sources they authenticate with.
package upstream

import (
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// NewRestyClient builds a JSON client with a bounded round trip and connect time.
func NewRestyClient(baseURL string, timeout, connectTimeout time.Duration) *resty.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   connectTimeout,
		ExpectContinueTimeout: time.Second,
	}

	return resty.New().
		SetBaseURL(baseURL).
		SetTransport(transport).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
}
