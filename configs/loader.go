package configs

import (
	"fmt"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Source is one CUE document.
type Source struct {
	Name    string
	Content []byte
}

// Loader resolves config paths against an ordered list of documents. Earlier documents win.
type Loader struct {
	getRoots func() ([]root, error)
}

type root struct {
	value cue.Value
	name  string
}

// NewLoader reads filePaths lazily on first lookup. A non-empty schemaSrc closes and validates every document.
func NewLoader(filePaths []string, schemaSrc string) Loader {
	return newLoader(func() (ret []Source, err error) {
		for _, filePath := range filePaths {
			content, err := os.ReadFile(filePath)
			if err != nil {
				return nil, err
			}
			ret = append(ret, Source{
				Name:    filePath,
				Content: content,
			})
		}
		return
	}, schemaSrc)
}

// NewSourceLoader is NewLoader for in-memory documents.
func NewSourceLoader(sources []Source, schemaSrc string) Loader {
	return newLoader(func() ([]Source, error) {
		return sources, nil
	}, schemaSrc)
}

func newLoader(read func() ([]Source, error), schemaSrc string) Loader {
	return Loader{
		getRoots: sync.OnceValues(func() (ret []root, err error) {
			sources, err := read()
			if err != nil {
				return nil, err
			}

			// one context, so documents unify with the schema
			ctx := cuecontext.New()

			var schema cue.Value
			if schemaSrc != "" {
				schema = ctx.CompileString(
					"close({"+schemaSrc+"})",
					cue.Filename("schema.cue"),
				)
				if err := schema.Err(); err != nil {
					return nil, fmt.Errorf("schema: %w", err)
				}
			}

			for _, source := range sources {
				value := ctx.CompileBytes(
					source.Content,
					cue.Filename(source.Name),
				)
				if err := value.Err(); err != nil {
					return nil, err
				}
				if schema.Exists() {
					if err := schema.Unify(value).Validate(); err != nil {
						return nil, fmt.Errorf("%s: %w", source.Name, err)
					}
				}
				ret = append(ret, root{
					value: value,
					name:  source.Name,
				})
			}

			return
		}),
	}
}

// AssignFirst decodes the value at path from the first document defining it.
func (l Loader) AssignFirst(path string, target any) error {
	roots, err := l.getRoots()
	if err != nil {
		return err
	}

	cuePath := cue.ParsePath(path)
	for _, info := range roots {
		value := info.value.LookupPath(cuePath)
		if !value.Exists() || value.Err() != nil {
			continue
		}
		if err := value.Decode(target); err != nil {
			return fmt.Errorf("%s: %s: %w", info.name, path, err)
		}
		return nil
	}

	return ErrValueNotFound
}

// Err reports whether every document loaded and validated.
func (l Loader) Err() error {
	_, err := l.getRoots()
	return err
}
