package whypyconfigs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/dscope"
	"github.com/sambuaneesh/why-py/configs"
	"github.com/sambuaneesh/why-py/modes"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "whypy.cue")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValues(t *testing.T) {
	path := writeConfig(t, `
base_url: "http://localhost:8000/interpreter"
queue_size: 4
prompt: "whypy> "
history_file: "/tmp/hist"
bindings: {
	answer: 42
	name: "whypy"
	ok: true
}
`)
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Loader {
			return NewLoader(path)
		},
	).Call(func(
		baseURL BaseURL,
		prefix Prefix,
		queueSize QueueSize,
		prompt Prompt,
		historyFile HistoryFile,
		bindings Bindings,
	) {
		if baseURL != "http://localhost:8000/interpreter" {
			t.Fatalf("got %v", baseURL)
		}
		if prefix != DefaultPrefix {
			t.Fatalf("got %v", prefix)
		}
		if queueSize != 4 {
			t.Fatalf("got %v", queueSize)
		}
		if prompt != "whypy> " {
			t.Fatalf("got %v", prompt)
		}
		if historyFile != "/tmp/hist" {
			t.Fatalf("got %v", historyFile)
		}
		if len(bindings) != 3 {
			t.Fatalf("got %v", bindings)
		}
		if bindings["answer"] != int64(42) {
			t.Fatalf("got %#v", bindings["answer"])
		}
		if bindings["ok"] != true {
			t.Fatalf("got %#v", bindings["ok"])
		}
	})
}

func TestDefaults(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() configs.Loader {
			return NewLoader()
		},
	).Call(func(
		prefix Prefix,
		queueSize QueueSize,
		prompt Prompt,
		bindings Bindings,
	) {
		if prefix != "whypy" {
			t.Fatalf("got %v", prefix)
		}
		if queueSize != DefaultQueueSize {
			t.Fatalf("got %v", queueSize)
		}
		if prompt != ">>> " {
			t.Fatalf("got %v", prompt)
		}
		if bindings != nil {
			t.Fatalf("got %v", bindings)
		}
	})
}

func TestSchemaRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, `unknown_key: 1`)
	loader := NewLoader(path)
	var v string
	if err := loader.AssignFirst("prompt", &v); err == nil {
		t.Fatal("should fail")
	}
}

func TestSchemaRejectsBadQueueSize(t *testing.T) {
	path := writeConfig(t, `queue_size: 0`)
	loader := NewLoader(path)
	var v int
	if err := loader.AssignFirst("queue_size", &v); err == nil {
		t.Fatal("should fail")
	}
}

func TestSourceLoader(t *testing.T) {
	loader := NewSourceLoader("page", `
prompt: "? "
bindings: {
	answer: 42
}
`)
	if p := configs.Get[Prompt](loader); p != "? " {
		t.Fatalf("got %q", p)
	}
	bindings := configs.Get[Bindings](loader)
	if bindings["answer"] != int64(42) {
		t.Fatalf("got %#v", bindings)
	}

	if err := NewSourceLoader("page", `colour: "red"`).Err(); err == nil {
		t.Fatal("should reject unknown key")
	}
}
