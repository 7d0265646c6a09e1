// Package httpx builds the outbound HTTP client used for Google APIs.
package httpx

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	netproxy "golang.org/x/net/proxy"
)

type ClientOptions struct {
	Timeout time.Duration

	// Proxy is empty for direct connections, "env" for ProxyFromEnvironment,
	// or a http://, https:// or socks5:// URL.
	Proxy string
}

func NewClient(opts ClientOptions) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil

	raw := strings.TrimSpace(opts.Proxy)
	switch {
	case raw == "":
	case strings.EqualFold(raw, "env"):
		transport.Proxy = http.ProxyFromEnvironment
	default:
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy %q", raw)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			transport.Proxy = http.ProxyURL(u)
		case "socks5", "socks5h":
			var auth *netproxy.Auth
			if u.User != nil {
				pw, _ := u.User.Password()
				auth = &netproxy.Auth{User: u.User.Username(), Password: pw}
			}
			dialer, err := netproxy.SOCKS5("tcp", u.Host, auth, netproxy.Direct)
			if err != nil {
				return nil, fmt.Errorf("socks5 proxy: %w", err)
			}
			cd, ok := dialer.(netproxy.ContextDialer)
			if !ok {
				return nil, fmt.Errorf("socks5 dialer does not support context")
			}
			transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
				return cd.DialContext(ctx, network, addr)
			}
		default:
			return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout, Transport: transport}, nil
}
