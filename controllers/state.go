package controllers

import "errors"

type State uint8

const (
	Loading State = iota
	Ready
	Submitting
	ErrorState
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Submitting:
		return "submitting"
	case ErrorState:
		return "error"
	}
	return "unknown"
}

var (
	ErrNotReady  = errors.New("interpreter not ready")
	ErrQueueFull = errors.New("submission queue full")
	ErrClosed    = errors.New("controller closed")
)

const KeyEnter = "Enter"

type KeyEvent struct {
	Key   string
	Shift bool
}

var Banner = []string{
	"Welcome to the WhyPy REPL",
	"Inscribe your incantations below. Use the sacred Enter to evaluate.",
	"Note: This is a limited version that only supports single-line input.",
	"For multiline support, please visit the Getting Started guide.",
}
