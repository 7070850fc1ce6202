package runtimes

import (
	"github.com/reusee/dscope"
	"github.com/sambuaneesh/why-py/logs"
	"github.com/sambuaneesh/why-py/sources"
	"github.com/sambuaneesh/why-py/whypyconfigs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Sources sources.Module
	Configs whypyconfigs.Module
}
