package pipelines

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sambuaneesh/why-py/logs"
	"github.com/sambuaneesh/why-py/metrics"
	"github.com/sambuaneesh/why-py/runtimes"
	"github.com/sambuaneesh/why-py/sessions"
	"go.starlark.net/starlark"
)

// Pipeline executes snippets on a provisioned runtime.
type Pipeline struct {
	handle  *runtimes.Handle
	logger  logs.Logger
	newSpan logs.NewSpan
}

type NewPipeline func(handle *runtimes.Handle) *Pipeline

func (Module) NewPipeline(
	logger logs.Logger,
	newSpan logs.NewSpan,
) NewPipeline {
	return func(handle *runtimes.Handle) *Pipeline {
		return &Pipeline{
			handle:  handle,
			logger:  logger,
			newSpan: newSpan,
		}
	}
}

// Execute runs source against env. Per-snippet failures are reported in the result, never as Go errors.
// Executions on one env are serialized.
func (p *Pipeline) Execute(ctx context.Context, source string, env *sessions.Environment) (result Result) {
	ctx = logs.WithSession(ctx, env.ID())
	ctx, _ = p.newSpan(ctx, "execute")
	start := time.Now()
	defer func() {
		metrics.Executions.WithLabelValues(result.Classification.String()).Inc()
		metrics.ExecutionDuration.Observe(time.Since(start).Seconds())
		p.logger.InfoContext(ctx, "execute",
			"classification", result.Classification.String(),
			"duration", time.Since(start),
		)
	}()

	slot := env.Slot()
	slot.Acquire()
	defer slot.Release()

	out := new(strings.Builder)
	thread := p.handle.NewThread("execute", func(msg string) {
		out.WriteString(msg)
		out.WriteString("\n")
	})

	classification, err := p.run(thread, source, env, out)
	if err != nil {
		p.logger.WarnContext(ctx, "fault", "error", logs.WrapSpan(ctx, err))
		out.WriteString(ErrorMarker + faultMessage(err) + "\n")
		classification = RuntimeError
	}

	return Result{
		Text:           strings.TrimRight(out.String(), "\n"),
		Classification: classification,
	}
}

func (p *Pipeline) run(thread *starlark.Thread, source string, env *sessions.Environment, out *strings.Builder) (_ Classification, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	parsed, err := p.handle.Call(thread, "parser", "parse", starlark.String(source))
	if err != nil {
		return 0, err
	}

	// diagnostics
	errs, err := runtimes.Attr(parsed, "errors")
	if err != nil {
		return 0, err
	}
	diagnostics, ok := errs.(starlark.Indexable)
	if !ok {
		return 0, fmt.Errorf("diagnostics: want list, got %s", errs.Type())
	}
	if diagnostics.Len() > 0 {
		for i := range diagnostics.Len() {
			line, message, err := diagnostic(diagnostics.Index(i))
			if err != nil {
				return 0, err
			}
			fmt.Fprintf(out, "%sline %d: %s\n", ErrorMarker, line, message)
		}
		return ParseError, nil
	}

	// evaluate
	program, err := runtimes.Attr(parsed, "program")
	if err != nil {
		return 0, err
	}
	value, err := p.handle.Call(thread, "evaluator", "eval_program", program, env.Value())
	if err != nil {
		return 0, err
	}

	if value == starlark.None {
		name, ok, err := trailingLet(program)
		if err != nil {
			return 0, err
		}
		if !ok {
			return Success, nil
		}
		bound, ok := env.Get(name)
		if !ok {
			return Success, nil
		}
		text, err := p.inspect(thread, bound)
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(out, "%s%s = %s\n", BindMarker, name, text)
		return Success, nil
	}

	isError, err := p.handle.Call(thread, "object", "is_error", value)
	if err != nil {
		return 0, err
	}
	if isError.Truth() {
		message, err := stringAttr(value, "message")
		if err != nil {
			return 0, err
		}
		out.WriteString(ErrorMarker + message + "\n")
		return RuntimeError, nil
	}

	text, err := p.inspect(thread, value)
	if err != nil {
		return 0, err
	}
	out.WriteString(ValueMarker + text + "\n")
	return Success, nil
}

func (p *Pipeline) inspect(thread *starlark.Thread, value starlark.Value) (string, error) {
	text, err := p.handle.Call(thread, "object", "inspect", value)
	if err != nil {
		return "", err
	}
	s, ok := starlark.AsString(text)
	if !ok {
		return "", fmt.Errorf("inspect: want string, got %s", text.Type())
	}
	return s, nil
}

func diagnostic(value starlark.Value) (line int, message string, err error) {
	v, err := runtimes.Attr(value, "line")
	if err != nil {
		return
	}
	if err = starlark.AsInt(v, &line); err != nil {
		return
	}
	message, err = stringAttr(value, "message")
	return
}

func stringAttr(value starlark.Value, name string) (string, error) {
	v, err := runtimes.Attr(value, name)
	if err != nil {
		return "", err
	}
	s, ok := starlark.AsString(v)
	if !ok {
		return "", fmt.Errorf("%s: want string, got %s", name, v.Type())
	}
	return s, nil
}

// trailingLet returns the bound name if the program ends with a let statement.
func trailingLet(program starlark.Value) (string, bool, error) {
	v, err := runtimes.Attr(program, "statements")
	if err != nil {
		return "", false, err
	}
	statements, ok := v.(starlark.Indexable)
	if !ok || statements.Len() == 0 {
		return "", false, nil
	}
	last := statements.Index(statements.Len() - 1)
	kind, err := stringAttr(last, "kind")
	if err != nil {
		return "", false, err
	}
	if kind != "LetStatement" {
		return "", false, nil
	}
	ident, err := runtimes.Attr(last, "name")
	if err != nil {
		return "", false, err
	}
	name, err := stringAttr(ident, "value")
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

func faultMessage(err error) string {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Msg
	}
	return err.Error()
}
