package sources

import (
	"github.com/reusee/dscope"
	"github.com/sambuaneesh/why-py/logs"
	"github.com/sambuaneesh/why-py/nets"
	"github.com/sambuaneesh/why-py/whypyconfigs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Nets    nets.Module
	Configs whypyconfigs.Module
}
