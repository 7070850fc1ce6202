package runtimes

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/sambuaneesh/why-py/rewrites"
)

// VFS is the runtime's in-memory filesystem of installed module sources.
type VFS struct {
	mu    sync.RWMutex
	files map[string]string
}

func NewVFS() *VFS {
	return &VFS{
		files: make(map[string]string),
	}
}

// Install writes all modules or none.
func (v *VFS) Install(modules []rewrites.RewrittenModule) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	staged := make(map[string]string, len(modules))
	for _, m := range modules {
		if _, ok := v.files[m.Path]; ok {
			return fmt.Errorf("install %s: %w", m.Path, ErrExists)
		}
		if _, ok := staged[m.Path]; ok {
			return fmt.Errorf("install %s: %w", m.Path, ErrExists)
		}
		staged[m.Path] = m.Text
	}
	maps.Copy(v.files, staged)
	return nil
}

func (v *VFS) Read(path string) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	text, ok := v.files[path]
	return text, ok
}

func (v *VFS) Paths() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Sorted(maps.Keys(v.files))
}
