package configs

import "testing"

type testStr string

func (testStr) ConfigPath() string {
	return "str"
}

type testMissing int

func (testMissing) ConfigPath() string {
	return "missing"
}

func TestGet(t *testing.T) {
	loader := NewLoader([]string{"test.cue"}, testSchema)
	if s := Get[testStr](loader); s != "bar" {
		t.Fatalf("got %v", s)
	}
	if n := Get[testMissing](loader); n != 0 {
		t.Fatalf("got %v", n)
	}
}

func TestGetPanicsOnInvalid(t *testing.T) {
	loader := NewLoader([]string{"bad.cue"}, testSchema)
	defer func() {
		if recover() == nil {
			t.Fatal("should panic")
		}
	}()
	Get[testStr](loader)
}
