package procs

import "slices"

// Proc is one step of a process. Run returns the next step, or nil when done.
type Proc[C any] interface {
	Run(ctx C) (Proc[C], error)
}

// Procs runs its elements in order. An element returning a continuation is resumed before the next one starts.
type Procs[C any] []Proc[C]

var _ Proc[any] = Procs[any]{}

func (p Procs[C]) Run(ctx C) (Proc[C], error) {
	if len(p) == 0 {
		return nil, nil
	}
	proc, err := p[0].Run(ctx)
	if err != nil {
		return nil, err
	}
	if proc == nil {
		if len(p) == 1 {
			return nil, nil
		}
		return p[1:], nil
	}
	// p may be shared
	next := slices.Clone(p)
	next[0] = proc
	return next, nil
}

// Func adapts a function to Proc.
type Func[C any] func(ctx C) (Proc[C], error)

func (f Func[C]) Run(ctx C) (Proc[C], error) {
	return f(ctx)
}

// Run drives proc until it finishes or fails.
func Run[C any](ctx C, proc Proc[C]) (err error) {
	for proc != nil {
		proc, err = proc.Run(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}
