package sessions

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/google/uuid"
	"github.com/sambuaneesh/why-py/syncs"
	"go.starlark.net/starlark"
)

// Environment is the persistent binding table of one playground session.
// It wraps the interpreter's own environment value, so bindings made by evaluated code
// and by the host live in the same table.
type Environment struct {
	id    string
	value *starlark.Dict
	store *starlark.Dict
	slot  syncs.Semaphore
}

type NotFoundError struct {
	Name string
}

func (n *NotFoundError) Error() string {
	return "identifier not found: " + n.Name
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// New wraps an environment value of the form {"store": {...}, "outer": None}.
func New(value starlark.Value) (*Environment, error) {
	dict, ok := value.(*starlark.Dict)
	if !ok {
		return nil, fmt.Errorf("environment: want dict, got %s", value.Type())
	}
	v, found, err := dict.Get(starlark.String("store"))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("environment: no store")
	}
	store, ok := v.(*starlark.Dict)
	if !ok {
		return nil, fmt.Errorf("environment: want dict store, got %s", v.Type())
	}
	return &Environment{
		id:    uuid.NewString(),
		value: dict,
		store: store,
		slot:  syncs.NewSemaphore(1),
	}, nil
}

func (e *Environment) ID() string {
	return e.id
}

// Value is the interpreter-side environment, passed to evaluation.
func (e *Environment) Value() starlark.Value {
	return e.value
}

// Slot admits one execution or host access at a time.
func (e *Environment) Slot() syncs.Semaphore {
	return e.slot
}

func (e *Environment) Define(name string, value starlark.Value) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier: %q", name)
	}
	e.slot.Acquire()
	defer e.slot.Release()
	return e.store.SetKey(starlark.String(name), value)
}

func (e *Environment) Lookup(name string) (starlark.Value, error) {
	e.slot.Acquire()
	defer e.slot.Release()
	v, ok := e.Get(name)
	if !ok {
		return nil, &NotFoundError{
			Name: name,
		}
	}
	return v, nil
}

// Get reads a binding without taking the slot. Callers must hold it.
func (e *Environment) Get(name string) (starlark.Value, bool) {
	v, found, err := e.store.Get(starlark.String(name))
	if err != nil || !found {
		return nil, false
	}
	return v, true
}

func (e *Environment) Names() []string {
	e.slot.Acquire()
	defer e.slot.Release()
	names := make([]string, 0, e.store.Len())
	for _, key := range e.store.Keys() {
		if s, ok := key.(starlark.String); ok {
			names = append(names, string(s))
		}
	}
	slices.Sort(names)
	return names
}
