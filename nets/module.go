package nets

import (
	"github.com/reusee/dscope"
	"github.com/sambuaneesh/why-py/logs"
)

// Module provides the HTTP client used to fetch interpreter modules. A configs.Loader must be in scope.
type Module struct {
	dscope.Module
	Logs logs.Module
}
