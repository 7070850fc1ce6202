package nets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/dscope"
	"github.com/sambuaneesh/why-py/configs"
	"github.com/sambuaneesh/why-py/modes"
)

func TestProxyAddrFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "whypy.cue")
	if err := os.WriteFile(path, []byte(`proxy_addr: "socks://127.0.0.1:1080"`), 0644); err != nil {
		t.Fatal(err)
	}
	dscope.New(
		modes.ForProduction(),
		new(Module),
		dscope.Provide(configs.NewLoader([]string{path}, "")),
	).Call(func(
		addr ProxyAddr,
		getURL GetProxyURL,
	) {
		if addr != "socks://127.0.0.1:1080" {
			t.Fatalf("got %v", addr)
		}
		u, err := getURL()
		if err != nil {
			t.Fatal(err)
		}
		if u.Scheme != "socks5" {
			t.Fatalf("got %v", u.Scheme)
		}
	})
}

func TestProxyAddrDevelopment(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoader(nil, "")),
	).Call(func(
		addr ProxyAddr,
		getDialer GetProxyDialer,
	) {
		if addr != "" {
			t.Fatalf("got %v", addr)
		}
		dialer, err := getDialer()
		if err != nil {
			t.Fatal(err)
		}
		if dialer == nil {
			t.Fatal()
		}
	})
}

func TestProxySchemes(t *testing.T) {
	for addr, want := range map[ProxyAddr]string{
		"socks://127.0.0.1:1080":  "socks5",
		"socks5h://10.0.0.1:1080": "socks5h",
		"http://10.0.0.1:3128":    "http",
		"ftp://10.0.0.1:21":       "",
	} {
		dscope.New(
			modes.ForProduction(),
			new(Module),
			dscope.Provide(configs.NewLoader(nil, "")),
		).Fork(
			func() ProxyAddr {
				return addr
			},
		).Call(func(
			getURL GetProxyURL,
			getDialer GetProxyDialer,
		) {
			u, err := getURL()
			if want == "" {
				if err == nil {
					t.Fatalf("%s: should fail", addr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if u.Scheme != want {
				t.Fatalf("%s: got %v", addr, u.Scheme)
			}
			if IsHTTPProxy(u) != (want == "http") {
				t.Fatalf("%s: got %v", addr, IsHTTPProxy(u))
			}
			if _, err := getDialer(); err != nil {
				t.Fatal(err)
			}
		})
	}
}
