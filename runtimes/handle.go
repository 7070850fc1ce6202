package runtimes

import (
	"fmt"
	"path"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sambuaneesh/why-py/logs"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// Handle owns one provisioned runtime: installed module files, the loader with its cache,
// and the namespace of bootstrapped modules.
type Handle struct {
	id     string
	prefix string
	engine *Engine
	vfs    *VFS
	logger logs.Logger

	mu        sync.Mutex
	cache     map[string]*loaded // nil value marks a load in progress
	namespace map[string]*starlarkstruct.Module
	order     []string

	closed atomic.Bool
}

type loaded struct {
	globals starlark.StringDict
	err     error
}

func newHandle(engine *Engine, prefix string, logger logs.Logger) *Handle {
	return &Handle{
		id:        uuid.NewString(),
		prefix:    prefix,
		engine:    engine,
		vfs:       NewVFS(),
		logger:    logger,
		cache:     make(map[string]*loaded),
		namespace: make(map[string]*starlarkstruct.Module),
	}
}

func (h *Handle) ID() string {
	return h.id
}

func (h *Handle) Prefix() string {
	return h.prefix
}

func (h *Handle) VFS() *VFS {
	return h.vfs
}

// Path returns the installed path of module name.
func (h *Handle) Path(name string) string {
	return path.Join(h.prefix, name+".star")
}

// NewThread returns a thread whose loads resolve against this handle.
// Output of print goes to print, or is discarded if print is nil.
func (h *Handle) NewThread(name string, print func(string)) *starlark.Thread {
	return &starlark.Thread{
		Name: name,
		Load: h.load,
		Print: func(_ *starlark.Thread, msg string) {
			if print != nil {
				print(msg)
			}
		},
	}
}

func (h *Handle) load(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	if h.closed.Load() {
		return nil, ErrHandleClosed
	}
	if !strings.HasPrefix(module, h.prefix+"/") {
		return nil, fmt.Errorf("load %q: %w", module, ErrUnprefixed)
	}

	h.mu.Lock()
	entry, ok := h.cache[module]
	if ok {
		h.mu.Unlock()
		if entry == nil {
			return nil, fmt.Errorf("load %q: %w", module, ErrLoadCycle)
		}
		return entry.globals, entry.err
	}
	h.cache[module] = nil
	h.mu.Unlock()

	text, ok := h.vfs.Read(module)
	var globals starlark.StringDict
	var err error
	if !ok {
		err = fmt.Errorf("load %q: %w", module, ErrNoSuchModule)
	} else {
		globals, err = h.exec(thread, module, text)
	}

	h.mu.Lock()
	h.cache[module] = &loaded{
		globals: globals,
		err:     err,
	}
	h.mu.Unlock()

	return globals, err
}

// exec runs a module without freezing its globals. The evaluator keeps its call depth in module state.
func (h *Handle) exec(thread *starlark.Thread, module string, text string) (starlark.StringDict, error) {
	_, prog, err := starlark.SourceProgramOptions(h.engine.Options, module, text, h.engine.Predeclared.Has)
	if err != nil {
		return nil, err
	}
	return prog.Init(thread, h.engine.Predeclared)
}

// importModule loads name and records its exported members in the namespace.
func (h *Handle) importModule(thread *starlark.Thread, name string) error {
	globals, err := h.load(thread, h.Path(name))
	if err != nil {
		return err
	}
	members := make(starlark.StringDict, len(globals))
	for key, value := range globals {
		if strings.HasPrefix(key, "_") {
			continue
		}
		members[key] = value
	}
	h.mu.Lock()
	h.namespace[name] = &starlarkstruct.Module{
		Name:    name,
		Members: members,
	}
	h.order = append(h.order, name)
	h.mu.Unlock()
	return nil
}

// Modules returns bootstrapped module names in import order.
func (h *Handle) Modules() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.order...)
}

func (h *Handle) Member(module, name string) (starlark.Value, error) {
	if h.closed.Load() {
		return nil, ErrHandleClosed
	}
	h.mu.Lock()
	mod, ok := h.namespace[module]
	h.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", module, ErrNoSuchModule)
	}
	value, ok := mod.Members[name]
	if !ok {
		return nil, fmt.Errorf("%s.%s: %w", module, name, ErrNoSuchMember)
	}
	return value, nil
}

// Call invokes module.fn with positional args on thread.
func (h *Handle) Call(thread *starlark.Thread, module, fn string, args ...starlark.Value) (starlark.Value, error) {
	callable, err := h.Member(module, fn)
	if err != nil {
		return nil, err
	}
	return starlark.Call(thread, callable, starlark.Tuple(args), nil)
}

// Globals exposes the namespace for interactive inspection.
func (h *Handle) Globals() map[string]any {
	h.mu.Lock()
	defer h.mu.Unlock()
	ret := make(map[string]any, len(h.namespace))
	for name, mod := range h.namespace {
		ret[name] = mod
	}
	return ret
}

func (h *Handle) Close() {
	if h.closed.Swap(true) {
		return
	}
	h.mu.Lock()
	clear(h.cache)
	clear(h.namespace)
	h.order = nil
	h.mu.Unlock()
	h.logger.Info("runtime closed", "handle", h.id)
}

// Attr reads attribute name of a struct-like value.
func Attr(value starlark.Value, name string) (starlark.Value, error) {
	attrs, ok := value.(starlark.HasAttrs)
	if !ok {
		return nil, fmt.Errorf("%s: %w", value.Type(), ErrNotAttributed)
	}
	v, err := attrs.Attr(name)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("%s.%s: %w", value.Type(), name, ErrNoSuchMember)
	}
	return v, nil
}
