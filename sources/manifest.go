package sources

import (
	"embed"
	"io/fs"
)

// Ext is the file extension of interpreter modules.
const Ext = ".star"

// ModuleSource is the text of one interpreter module as served by static hosting.
type ModuleSource struct {
	Name string
	Text string
}

func (m ModuleSource) FileName() string {
	return m.Name + Ext
}

// Manifest lists interpreter modules in dependency order.
type Manifest []string

var DefaultManifest = Manifest{
	"tok",
	"lexer",
	"parser",
	"ast",
	"environment",
	"object",
	"evaluator",
}

func (Module) Manifest() Manifest {
	return DefaultManifest
}

func (m Manifest) Contains(name string) bool {
	for _, n := range m {
		if n == name {
			return true
		}
	}
	return false
}

//go:embed interpreter/*.star
var interpreterFiles embed.FS

// Embedded returns the interpreter modules compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(interpreterFiles, "interpreter")
	if err != nil {
		panic(err)
	}
	return sub
}
