package runtimes

import (
	"context"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

// Engine is the embedded language runtime: the dialect interpreter modules are written in
// and the builtins predeclared for them.
type Engine struct {
	Options     *syntax.FileOptions
	Predeclared starlark.StringDict
}

func NewEngine() *Engine {
	return &Engine{
		Options: &syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
			GlobalReassign:  true,
			Recursion:       true,
		},
		Predeclared: starlark.StringDict{
			"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
		},
	}
}

type LoadEngine func(ctx context.Context) (*Engine, error)

func (Module) LoadEngine() LoadEngine {
	return func(ctx context.Context) (*Engine, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return NewEngine(), nil
	}
}
