package debugs

import (
	"github.com/reusee/dscope"
	"github.com/sambuaneesh/why-py/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
