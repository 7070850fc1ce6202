package rewrites

import (
	"errors"
	"strings"
	"testing"

	"github.com/sambuaneesh/why-py/sources"
)

var names = []string{"tok", "lexer", "parser", "ast", "environment", "object", "evaluator"}

func TestRewrite(t *testing.T) {
	text := `load("tok.star", "TOKEN")
load( "lexer.star", "new_lexer")
load("tokens.star", "X")
load("lexer_test.star", "Y")
def new_lexer_tok(): pass
`
	got := Rewrite(text, names, "whypy")
	expected := `load("whypy/tok.star", "TOKEN")
load( "whypy/lexer.star", "new_lexer")
load("tokens.star", "X")
load("lexer_test.star", "Y")
def new_lexer_tok(): pass
`
	if got != expected {
		t.Fatalf("got %q", got)
	}
	if u := Unresolved(got, names); len(u) != 0 {
		t.Fatalf("got %v", u)
	}
}

func TestRewriteIdempotent(t *testing.T) {
	text := `load("object.star", "NULL")`
	once := Rewrite(text, names, "whypy")
	twice := Rewrite(once, names, "whypy")
	if once != twice {
		t.Fatalf("got %q", twice)
	}
	if strings.Contains(twice, "whypy/whypy/") {
		t.Fatalf("got %q", twice)
	}
}

func TestRewriteDeterministic(t *testing.T) {
	fetch := sources.FetchFS(sources.Embedded())
	var modules []sources.ModuleSource
	for _, name := range sources.DefaultManifest {
		m, err := fetch(t.Context(), name)
		if err != nil {
			t.Fatal(err)
		}
		modules = append(modules, m)
	}
	a, err := RewriteAll(modules, "whypy")
	if err != nil {
		t.Fatal(err)
	}
	b, err := RewriteAll(modules, "whypy")
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("not deterministic: %s", a[i].Name)
		}
		if a[i].Path != "whypy/"+a[i].Name+".star" {
			t.Fatalf("got %v", a[i].Path)
		}
		if u := Unresolved(a[i].Text, sources.DefaultManifest); len(u) > 0 {
			t.Fatalf("%s: got %v", a[i].Name, u)
		}
	}
	// the parser loads three siblings
	var parser RewrittenModule
	for _, m := range a {
		if m.Name == "parser" {
			parser = m
		}
	}
	for _, dep := range []string{"tok", "lexer", "ast"} {
		if !strings.Contains(parser.Text, `load("whypy/`+dep+`.star"`) {
			t.Fatalf("missing %s in %q", dep, parser.Text)
		}
	}
}

func TestUnresolved(t *testing.T) {
	text := `load("lexer.star", "a")
load("whypy/tok.star", "b")
load("lexer.star", "c")
load("ast.star", "d")`
	got := Unresolved(text, names)
	if strings.Join(got, ",") != "lexer,ast" {
		t.Fatalf("got %v", got)
	}
	if Unresolved(text, nil) != nil {
		t.Fatal()
	}
}

func TestRewriteAllLeavesUnknownModules(t *testing.T) {
	modules := []sources.ModuleSource{
		{Name: "tok", Text: `X = 1`},
		{Name: "lexer", Text: `load("tok.star", "X")
load("strings.star", "Y")`},
	}
	got, err := RewriteAll(modules, "pkg")
	if err != nil {
		t.Fatal(err)
	}
	if got[1].Text != `load("pkg/tok.star", "X")
load("strings.star", "Y")` {
		t.Fatalf("got %q", got[1].Text)
	}
}

func TestUnresolvedError(t *testing.T) {
	var err error = &UnresolvedError{Module: "parser", Names: []string{"tok"}}
	var u *UnresolvedError
	if !errors.As(err, &u) {
		t.Fatal()
	}
	if err.Error() != "module parser: unresolved references: tok" {
		t.Fatalf("got %v", err)
	}
}
