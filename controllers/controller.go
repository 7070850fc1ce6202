package controllers

import (
	"context"
	"strings"
	"sync"

	"github.com/sambuaneesh/why-py/logs"
	"github.com/sambuaneesh/why-py/metrics"
	"github.com/sambuaneesh/why-py/pipelines"
	"github.com/sambuaneesh/why-py/runtimes"
	"github.com/sambuaneesh/why-py/sessions"
	"github.com/sambuaneesh/why-py/transcripts"
	"github.com/sambuaneesh/why-py/whypyconfigs"
)

// Controller provisions the runtime once and runs submissions one at a time, in order.
type Controller struct {
	provision   runtimes.Provision
	newPipeline pipelines.NewPipeline
	logger      logs.Logger
	queueSize   int
	transcript  *transcripts.Transcript

	startOnce sync.Once
	startErr  error

	mu       sync.Mutex
	cond     *sync.Cond
	state    State
	input    string
	queue    chan submission
	pending  int
	closed   bool
	handle   *runtimes.Handle
	env      *sessions.Environment
	pipeline *pipelines.Pipeline
	done     chan struct{}
}

type submission struct {
	ctx  context.Context
	text string
	done chan struct{}
}

type NewController func() *Controller

func (Module) NewController(
	provision runtimes.Provision,
	newPipeline pipelines.NewPipeline,
	queueSize whypyconfigs.QueueSize,
	logger logs.Logger,
) NewController {
	return func() *Controller {
		c := &Controller{
			provision:   provision,
			newPipeline: newPipeline,
			logger:      logger,
			queueSize:   int(queueSize),
			transcript:  transcripts.New(),
		}
		c.cond = sync.NewCond(&c.mu)
		for _, line := range Banner {
			c.transcript.Append(transcripts.System, line)
		}
		return c
	}
}

// Start provisions the runtime. Only the first call does work; later calls return its result.
func (c *Controller) Start(ctx context.Context) error {
	c.startOnce.Do(func() {
		handle, env, err := c.provision(ctx)
		if err != nil {
			c.mu.Lock()
			c.state = ErrorState
			c.mu.Unlock()
			c.transcript.Append(transcripts.Error, "Failed to initialize the interpreter: "+err.Error())
			c.startErr = err
			return
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed {
			handle.Close()
			c.startErr = ErrClosed
			return
		}
		c.handle = handle
		c.env = env
		c.pipeline = c.newPipeline(handle)
		c.queue = make(chan submission, max(c.queueSize, 1))
		c.done = make(chan struct{})
		c.state = Ready
		go c.work(c.queue, c.done)
		c.logger.InfoContext(ctx, "controller ready",
			"session", env.ID(),
		)
	})
	return c.startErr
}

// Submit queues text for execution. The returned channel is closed once its entries are in the transcript.
func (c *Controller) Submit(ctx context.Context, text string) (<-chan struct{}, error) {
	done := make(chan struct{})
	if strings.TrimSpace(text) == "" {
		close(done)
		return done, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}
	if c.state == Loading || c.state == ErrorState {
		return nil, ErrNotReady
	}

	select {
	case c.queue <- submission{
		ctx:  context.WithoutCancel(ctx),
		text: text,
		done: done,
	}:
	default:
		return nil, ErrQueueFull
	}
	c.pending++
	metrics.QueuedSubmissions.Inc()
	return done, nil
}

func (c *Controller) work(queue chan submission, done chan struct{}) {
	defer close(done)
	for sub := range queue {
		metrics.QueuedSubmissions.Dec()
		c.setState(Submitting)

		c.transcript.Append(transcripts.Input, sub.text)
		result := c.pipeline.Execute(sub.ctx, sub.text, c.env)
		if result.Text != "" {
			kind := transcripts.Output
			if result.IsError() {
				kind = transcripts.Error
			}
			c.transcript.Append(kind, result.Text)
		}

		c.mu.Lock()
		c.pending--
		if c.state == Submitting {
			c.state = Ready
		}
		c.cond.Broadcast()
		c.mu.Unlock()
		close(sub.done)
	}
}

func (c *Controller) setState(state State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = state
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Transcript() *transcripts.Transcript {
	return c.transcript
}

func (c *Controller) Session() *sessions.Environment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.env
}

func (c *Controller) Handle() *runtimes.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle
}

func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = text
}

func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// HandleKey submits the pending input on Enter and clears it. Shift+Enter inserts a newline instead.
// Other keys are ignored.
func (c *Controller) HandleKey(ctx context.Context, ev KeyEvent) (<-chan struct{}, error) {
	if ev.Key != KeyEnter {
		return nil, nil
	}
	if ev.Shift {
		c.mu.Lock()
		c.input += "\n"
		c.mu.Unlock()
		return nil, nil
	}

	text := c.Input()
	done, err := c.Submit(ctx, text)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) != "" {
		c.mu.Lock()
		if c.input == text {
			c.input = ""
		}
		c.mu.Unlock()
	}
	return done, nil
}

// Wait blocks until every accepted submission has finished.
func (c *Controller) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.pending > 0 {
		c.cond.Wait()
	}
}

// Close drains the queue and releases the runtime.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	queue := c.queue
	done := c.done
	handle := c.handle
	c.mu.Unlock()

	if queue != nil {
		close(queue)
		<-done
	}
	if handle != nil {
		handle.Close()
	}
}
