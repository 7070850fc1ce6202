package nets

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"sync"

	"github.com/sambuaneesh/why-py/configs"
	"github.com/sambuaneesh/why-py/logs"
	"github.com/sambuaneesh/why-py/modes"
	"github.com/sambuaneesh/why-py/vars"
	"golang.org/x/net/proxy"
)

type ProxyAddr string

func (ProxyAddr) ConfigPath() string {
	return "proxy_addr"
}

var _ configs.Configurable = ProxyAddr("")

var proxyEnvs = []string{
	"WHYPY_PROXY",
	"ALL_PROXY", "all_proxy",
	"HTTPS_PROXY", "https_proxy",
	"HTTP_PROXY", "http_proxy",
	"SOCKS_PROXY", "socks_proxy",
}

// ProxyAddr is empty in development so tests never leave the host.
func (Module) ProxyAddr(
	mode modes.Mode,
	loader configs.Loader,
	logger logs.Logger,
) (ret ProxyAddr) {
	defer func() {
		if ret != "" {
			logger.Info("proxy", "addr", ret)
		}
	}()

	if mode == modes.ModeDevelopment {
		return ""
	}

	candidates := []ProxyAddr{
		configs.Get[ProxyAddr](loader),
	}
	for _, name := range proxyEnvs {
		candidates = append(candidates, ProxyAddr(os.Getenv(name)))
	}
	return vars.FirstNonZero(candidates...)
}

type GetProxyURL func() (*url.URL, error)

func (Module) GetProxyURL(
	proxyAddr ProxyAddr,
) GetProxyURL {
	return sync.OnceValues(func() (*url.URL, error) {
		if proxyAddr == "" {
			return nil, nil
		}
		u, err := url.Parse(string(proxyAddr))
		if err != nil {
			return nil, err
		}
		switch u.Scheme {
		case "socks":
			u.Scheme = "socks5"
		case "socks5", "socks5h", "http", "https":
		default:
			return nil, fmt.Errorf("unsupported proxy scheme: %q", u.Scheme)
		}
		return u, nil
	})
}

// IsHTTPProxy reports whether u is handled by the transport instead of the dialer.
func IsHTTPProxy(u *url.URL) bool {
	return u != nil && (u.Scheme == "http" || u.Scheme == "https")
}

type GetProxyDialer func() (Dialer, error)

// GetProxyDialer returns a SOCKS dialer, or a direct one when no SOCKS proxy is configured.
func (Module) GetProxyDialer(
	getURL GetProxyURL,
) GetProxyDialer {
	direct := any(&net.Dialer{}).(Dialer)
	return sync.OnceValues(func() (Dialer, error) {
		u, err := getURL()
		if err != nil {
			return nil, err
		}
		if u == nil || IsHTTPProxy(u) {
			return direct, nil
		}
		proxyDialer, err := proxy.FromURL(u, direct)
		if err != nil {
			return nil, err
		}
		return proxyDialer.(Dialer), nil
	})
}
