package transcripts

import (
	"slices"
	"sync"
)

type Kind uint8

const (
	System Kind = iota
	Input
	Output
	Error
)

func (k Kind) String() string {
	switch k {
	case System:
		return "system"
	case Input:
		return "input"
	case Output:
		return "output"
	case Error:
		return "error"
	}
	return "unknown"
}

// Entry is immutable once appended.
type Entry struct {
	Seq  int
	Kind Kind
	Text string
}

// Transcript is an append-only sequence of entries.
type Transcript struct {
	// serializes Append including subscriber notification
	appendMu sync.Mutex

	mu          sync.Mutex
	entries     []Entry
	subscribers []*subscriber
}

type subscriber struct {
	fn func(Entry)
}

func New() *Transcript {
	return new(Transcript)
}

// Append adds an entry and notifies subscribers in order.
// Subscribers must not call Append.
func (t *Transcript) Append(kind Kind, text string) Entry {
	t.appendMu.Lock()
	defer t.appendMu.Unlock()

	t.mu.Lock()
	entry := Entry{
		Seq:  len(t.entries),
		Kind: kind,
		Text: text,
	}
	t.entries = append(t.entries, entry)
	subscribers := slices.Clone(t.subscribers)
	t.mu.Unlock()

	for _, sub := range subscribers {
		sub.fn(entry)
	}
	return entry
}

func (t *Transcript) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.entries)
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Subscribe registers fn for entries appended after the call.
func (t *Transcript) Subscribe(fn func(Entry)) (cancel func()) {
	sub := &subscriber{
		fn: fn,
	}
	t.mu.Lock()
	t.subscribers = append(t.subscribers, sub)
	t.mu.Unlock()
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.subscribers = slices.DeleteFunc(t.subscribers, func(s *subscriber) bool {
			return s == sub
		})
	}
}
