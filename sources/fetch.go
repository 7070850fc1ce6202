package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/sambuaneesh/why-py/logs"
	"github.com/sambuaneesh/why-py/metrics"
	"github.com/sambuaneesh/why-py/nets"
	"github.com/sambuaneesh/why-py/whypyconfigs"
)

var (
	ErrModuleNotFound = errors.New("module not found")
	ErrEmptyModule    = errors.New("empty module")
)

// Fetch retrieves one module by name.
type Fetch func(ctx context.Context, name string) (ModuleSource, error)

func (Module) Fetch(
	baseURL whypyconfigs.BaseURL,
	client nets.HTTPClient,
	logger logs.Logger,
) Fetch {
	if baseURL == "" {
		logger.Info("module source", "from", "embedded")
		return FetchFS(Embedded())
	}
	logger.Info("module source", "from", string(baseURL))
	return FetchHTTP(client, string(baseURL))
}

// FetchHTTP fetches <baseURL>/<name>.star.
func FetchHTTP(client *http.Client, baseURL string) Fetch {
	return func(ctx context.Context, name string) (ret ModuleSource, err error) {
		status := "ok"
		defer func() {
			if err != nil {
				status = "error"
			}
			metrics.ModuleFetches.WithLabelValues("http", status).Inc()
		}()

		u, err := url.JoinPath(baseURL, name+Ext)
		if err != nil {
			return ret, fmt.Errorf("module url %s: %w", name, err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return ret, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return ret, fmt.Errorf("fetch %s: %w", u, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return ret, fmt.Errorf("fetch %s: %w", u, ErrModuleNotFound)
		case resp.StatusCode != http.StatusOK:
			return ret, fmt.Errorf("fetch %s: status %s", u, resp.Status)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return ret, fmt.Errorf("read %s: %w", u, err)
		}
		if strings.TrimSpace(string(body)) == "" {
			return ret, fmt.Errorf("fetch %s: %w", u, ErrEmptyModule)
		}

		return ModuleSource{
			Name: name,
			Text: string(body),
		}, nil
	}
}

// FetchFS reads <name>.star from fsys.
func FetchFS(fsys fs.FS) Fetch {
	return func(ctx context.Context, name string) (ret ModuleSource, err error) {
		status := "ok"
		defer func() {
			if err != nil {
				status = "error"
			}
			metrics.ModuleFetches.WithLabelValues("fs", status).Inc()
		}()

		if err := ctx.Err(); err != nil {
			return ret, err
		}
		content, err := fs.ReadFile(fsys, name+Ext)
		if errors.Is(err, fs.ErrNotExist) {
			return ret, fmt.Errorf("read %s: %w", name+Ext, ErrModuleNotFound)
		} else if err != nil {
			return ret, err
		}
		if strings.TrimSpace(string(content)) == "" {
			return ret, fmt.Errorf("read %s: %w", name+Ext, ErrEmptyModule)
		}
		return ModuleSource{
			Name: name,
			Text: string(content),
		}, nil
	}
}
