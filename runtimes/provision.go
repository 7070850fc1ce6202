package runtimes

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/sambuaneesh/why-py/debugs"
	"github.com/sambuaneesh/why-py/logs"
	"github.com/sambuaneesh/why-py/metrics"
	"github.com/sambuaneesh/why-py/procs"
	"github.com/sambuaneesh/why-py/rewrites"
	"github.com/sambuaneesh/why-py/sessions"
	"github.com/sambuaneesh/why-py/sources"
	"github.com/sambuaneesh/why-py/whypyconfigs"
	"go.starlark.net/starlark"
	"golang.org/x/sync/errgroup"
)

// Provision loads the engine, installs the interpreter modules and bootstraps the initial session.
// On error no handle exists.
type Provision func(ctx context.Context) (*Handle, *sessions.Environment, error)

func (Module) Provision(
	loadEngine LoadEngine,
	fetch sources.Fetch,
	manifest sources.Manifest,
	prefix whypyconfigs.Prefix,
	bindings whypyconfigs.Bindings,
	logger logs.Logger,
	newSpan logs.NewSpan,
) Provision {
	return func(ctx context.Context) (handle *Handle, env *sessions.Environment, err error) {
		ctx, _ = newSpan(ctx, "provision")
		start := time.Now()
		defer func() {
			status := "ok"
			if err != nil {
				status = "error"
				logger.ErrorContext(ctx, "provision failed", "error", logs.WrapSpan(ctx, err))
			} else {
				logger.InfoContext(ctx, "provisioned",
					"handle", handle.ID(),
					"session", env.ID(),
					"duration", time.Since(start),
				)
			}
			metrics.Provisions.WithLabelValues(status).Inc()
			metrics.ProvisionDuration.Observe(time.Since(start).Seconds())
		}()

		p := &provisioning{
			ctx:        ctx,
			loadEngine: loadEngine,
			fetch:      fetch,
			manifest:   manifest,
			prefix:     string(prefix),
			bindings:   bindings,
			logger:     logger,
		}
		if err := procs.Run(p, procs.Proc[*provisioning](procs.Procs[*provisioning]{
			stage{StageEngine, (*provisioning).loadEngineStage},
			stage{StageFetch, (*provisioning).fetchStage},
			stage{StageRewrite, (*provisioning).rewriteStage},
			stage{StageInstall, (*provisioning).installStage},
			stage{StageBootstrap, (*provisioning).bootstrapStage},
		})); err != nil {
			if p.handle != nil {
				p.handle.Close()
			}
			return nil, nil, err
		}
		return p.handle, p.env, nil
	}
}

type provisioning struct {
	ctx        context.Context
	loadEngine LoadEngine
	fetch      sources.Fetch
	manifest   sources.Manifest
	prefix     string
	bindings   whypyconfigs.Bindings
	logger     logs.Logger

	engine  *Engine
	fetched []sources.ModuleSource
	staged  []rewrites.RewrittenModule
	handle  *Handle
	env     *sessions.Environment
}

type stage struct {
	name Stage
	run  func(*provisioning) error
}

var _ procs.Proc[*provisioning] = stage{}

func (s stage) Run(p *provisioning) (procs.Proc[*provisioning], error) {
	start := time.Now()
	if err := s.run(p); err != nil {
		var provisionErr *ProvisionError
		if !errors.As(err, &provisionErr) {
			err = &ProvisionError{
				Stage: s.name,
				Err:   err,
			}
		}
		return nil, err
	}
	p.logger.DebugContext(p.ctx, "provision stage",
		"stage", s.name,
		"duration", time.Since(start),
	)
	return nil, nil
}

func (p *provisioning) loadEngineStage() error {
	engine, err := p.loadEngine(p.ctx)
	if err != nil {
		return err
	}
	if engine == nil {
		return fmt.Errorf("no engine")
	}
	p.engine = engine
	return nil
}

func (p *provisioning) fetchStage() error {
	fetched := make([]sources.ModuleSource, len(p.manifest))
	group, ctx := errgroup.WithContext(p.ctx)
	for i, name := range p.manifest {
		group.Go(func() error {
			src, err := p.fetch(ctx, name)
			if err != nil {
				return &ProvisionError{
					Stage:  StageFetch,
					Module: name,
					Err:    err,
				}
			}
			fetched[i] = src
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	p.fetched = fetched
	return nil
}

func (p *provisioning) rewriteStage() error {
	staged, err := rewrites.RewriteAll(p.fetched, p.prefix)
	if err != nil {
		var unresolved *rewrites.UnresolvedError
		if errors.As(err, &unresolved) {
			return &ProvisionError{
				Stage:  StageRewrite,
				Module: unresolved.Module,
				Err:    err,
			}
		}
		return err
	}
	p.staged = staged
	return nil
}

func (p *provisioning) installStage() error {
	handle := newHandle(p.engine, p.prefix, p.logger)
	if err := handle.vfs.Install(p.staged); err != nil {
		return err
	}
	p.handle = handle
	return nil
}

func (p *provisioning) bootstrapStage() error {
	thread := p.handle.NewThread("bootstrap", func(msg string) {
		p.logger.InfoContext(p.ctx, "bootstrap output", "msg", msg)
	})

	for _, name := range p.manifest {
		if err := p.handle.importModule(thread, name); err != nil {
			return &ProvisionError{
				Stage:  StageBootstrap,
				Module: name,
				Err:    err,
			}
		}
	}

	value, err := p.handle.Call(thread, "environment", "new_environment")
	if err != nil {
		return err
	}
	env, err := sessions.New(value)
	if err != nil {
		return err
	}

	// prelude
	for _, name := range slices.Sorted(maps.Keys(p.bindings)) {
		obj, err := p.fromHost(thread, p.bindings[name])
		if err != nil {
			return fmt.Errorf("binding %s: %w", name, err)
		}
		if err := env.Define(name, obj); err != nil {
			return fmt.Errorf("binding %s: %w", name, err)
		}
	}

	p.env = env
	return nil
}

func (p *provisioning) fromHost(thread *starlark.Thread, value any) (ret starlark.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	obj, err := p.handle.Call(thread, "object", "from_host", debugs.ToStarlarkValue(value))
	if err != nil {
		return nil, err
	}
	isError, err := p.handle.Call(thread, "object", "is_error", obj)
	if err != nil {
		return nil, err
	}
	if isError.Truth() {
		message, err := Attr(obj, "message")
		if err != nil {
			return nil, err
		}
		if s, ok := starlark.AsString(message); ok {
			return nil, errors.New(s)
		}
		return nil, errors.New(message.String())
	}
	return obj, nil
}
