package pipelines

import (
	"github.com/reusee/dscope"
	"github.com/sambuaneesh/why-py/logs"
	"github.com/sambuaneesh/why-py/runtimes"
)

type Module struct {
	dscope.Module
	Logs     logs.Module
	Runtimes runtimes.Module
}
