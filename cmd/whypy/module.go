package main

import (
	"github.com/reusee/dscope"
	"github.com/sambuaneesh/why-py/controllers"
	"github.com/sambuaneesh/why-py/debugs"
	"github.com/sambuaneesh/why-py/sources"
)

type Module struct {
	dscope.Module
	Controllers controllers.Module
	Sources     sources.Module
	Debugs      debugs.Module
}
