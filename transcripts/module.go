package transcripts

import (
	"os"

	"github.com/fatih/color"
	"github.com/reusee/dscope"
	"github.com/sambuaneesh/why-py/cmds"
)

type Module struct {
	dscope.Module
}

var noColorFlag = cmds.Switch("-no-color", "disable colored output")

// Colored reports whether renderers should emit color codes.
type Colored bool

func (Module) Colored() Colored {
	if *noColorFlag || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return Colored(!color.NoColor)
}
