package controllers

import (
	"github.com/reusee/dscope"
	"github.com/sambuaneesh/why-py/logs"
	"github.com/sambuaneesh/why-py/pipelines"
	"github.com/sambuaneesh/why-py/transcripts"
	"github.com/sambuaneesh/why-py/whypyconfigs"
)

type Module struct {
	dscope.Module
	Logs        logs.Module
	Pipelines   pipelines.Module
	Transcripts transcripts.Module
	Configs     whypyconfigs.Module
}
