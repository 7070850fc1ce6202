package modes

import (
	"context"
	"testing"

	"github.com/reusee/dscope"
)

func TestForProduction(t *testing.T) {
	dscope.New(ForProduction()).Call(func(
		pt *testing.T,
		mode Mode,
		ctx context.Context,
	) {
		if pt != nil {
			t.Fatal()
		}
		if mode != ModeProduction {
			t.Fatalf("got %v", mode)
		}
		if ctx.Err() != nil {
			t.Fatal(ctx.Err())
		}
	})
}

func TestForTest(t *testing.T) {
	dscope.New(ForTest(t)).Call(func(
		tt *testing.T,
		mode Mode,
		ctx context.Context,
	) {
		if tt != t {
			t.Fatal()
		}
		if mode != ModeDevelopment {
			t.Fatalf("got %v", mode)
		}
		if ctx.Done() == nil {
			t.Fatal()
		}
	})
}
