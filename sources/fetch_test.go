//go:build !js

package sources

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/reusee/dscope"
	"github.com/sambuaneesh/why-py/configs"
	"github.com/sambuaneesh/why-py/logs"
	"github.com/sambuaneesh/why-py/modes"
	"github.com/sambuaneesh/why-py/whypyconfigs"
)

func TestEmbeddedManifest(t *testing.T) {
	fetch := FetchFS(Embedded())
	for _, name := range DefaultManifest {
		src, err := fetch(context.Background(), name)
		if err != nil {
			t.Fatal(err)
		}
		if src.Name != name {
			t.Fatalf("got %v", src.Name)
		}
		if strings.TrimSpace(src.Text) == "" {
			t.Fatalf("empty %s", name)
		}
	}
}

func TestFetchFSErrors(t *testing.T) {
	fetch := FetchFS(fstest.MapFS{
		"blank.star": &fstest.MapFile{Data: []byte(" \n")},
	})
	_, err := fetch(context.Background(), "missing")
	if !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("got %v", err)
	}
	_, err = fetch(context.Background(), "blank")
	if !errors.Is(err, ErrEmptyModule) {
		t.Fatalf("got %v", err)
	}
}

func newTestHost(t *testing.T) *httptest.Server {
	var host *Host
	dscope.New(
		modes.ForTest(t),
		new(logs.Module),
	).Call(func(
		logger logs.Logger,
	) {
		host = NewHost(Embedded(), DefaultManifest, logger)
	})
	server := httptest.NewServer(host.Handler())
	t.Cleanup(server.Close)
	return server
}

func TestFetchHTTP(t *testing.T) {
	server := newTestHost(t)
	fetch := FetchHTTP(server.Client(), server.URL+"/interpreter")

	src, err := fetch(t.Context(), "lexer")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(src.Text, "def next_token(") {
		t.Fatalf("got %q", src.Text)
	}

	_, err = fetch(t.Context(), "nope")
	if !errors.Is(err, ErrModuleNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestFetchHTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/empty.star":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()
	fetch := FetchHTTP(server.Client(), server.URL)

	_, err := fetch(t.Context(), "empty")
	if !errors.Is(err, ErrEmptyModule) {
		t.Fatalf("got %v", err)
	}
	_, err = fetch(t.Context(), "broken")
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Fatalf("got %v", err)
	}
}

func TestFetchProvider(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, "")
		},
		func() whypyconfigs.BaseURL {
			return ""
		},
	).Call(func(
		fetch Fetch,
		manifest Manifest,
	) {
		src, err := fetch(t.Context(), manifest[0])
		if err != nil {
			t.Fatal(err)
		}
		if src.FileName() != "tok.star" {
			t.Fatalf("got %v", src.FileName())
		}
	})
}
