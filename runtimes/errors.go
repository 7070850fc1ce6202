package runtimes

import (
	"errors"
	"fmt"
)

var (
	ErrExists        = errors.New("already exists")
	ErrUnprefixed    = errors.New("module reference outside the package")
	ErrLoadCycle     = errors.New("load cycle")
	ErrNoSuchModule  = errors.New("no such module")
	ErrNoSuchMember  = errors.New("no such member")
	ErrHandleClosed  = errors.New("runtime closed")
	ErrNotAttributed = errors.New("value has no attributes")
)

type Stage string

const (
	StageEngine    Stage = "engine"
	StageFetch     Stage = "fetch"
	StageRewrite   Stage = "rewrite"
	StageInstall   Stage = "install"
	StageBootstrap Stage = "bootstrap"
)

// ProvisionError is terminal for the session that requested provisioning.
type ProvisionError struct {
	Stage  Stage
	Module string
	Err    error
}

func (p *ProvisionError) Error() string {
	if p.Module != "" {
		return fmt.Sprintf("provision: %s %s: %v", p.Stage, p.Module, p.Err)
	}
	return fmt.Sprintf("provision: %s: %v", p.Stage, p.Err)
}

func (p *ProvisionError) Unwrap() error {
	return p.Err
}
