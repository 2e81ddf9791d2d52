package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc builds a proxy selector for outbound HTTP clients.
// With no explicit proxies configured it defers to the environment.
// noProxy is a comma-separated list of host suffixes to send direct;
// "*" disables proxying entirely.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	bypass := splitNoProxy(noProxy)

	return func(req *http.Request) (*url.URL, error) {
		if hostBypassed(req.URL.Hostname(), bypass) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

func splitNoProxy(noProxy string) []string {
	var out []string
	for _, part := range strings.Split(noProxy, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func hostBypassed(host string, bypass []string) bool {
	host = strings.ToLower(host)
	for _, b := range bypass {
		b = strings.TrimPrefix(b, ".")
		if b == "*" || host == b || strings.HasSuffix(host, "."+b) {
			return true
		}
	}
	return false
}
