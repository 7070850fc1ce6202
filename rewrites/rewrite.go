package rewrites

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/sambuaneesh/why-py/sources"
)

// RewrittenModule is a module whose cross-module loads point into the package directory.
type RewrittenModule struct {
	Name string
	Path string
	Text string
}

// UnresolvedError reports bare module references left after rewriting.
type UnresolvedError struct {
	Module string
	Names  []string
}

func (u *UnresolvedError) Error() string {
	return fmt.Sprintf("module %s: unresolved references: %s", u.Module, strings.Join(u.Names, ", "))
}

func barePattern(names []string) *regexp.Regexp {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, regexp.QuoteMeta(name))
	}
	// the name must fill the whole quoted path, so "tokens.star" or "lexer_test.star" never match "tok" or "lexer"
	return regexp.MustCompile(`(\bload\(\s*")(` + strings.Join(quoted, "|") + `)(\` + sources.Ext + `")`)
}

// Rewrite prefixes every bare load of a known module with prefix.
func Rewrite(text string, names []string, prefix string) string {
	if len(names) == 0 {
		return text
	}
	return barePattern(names).ReplaceAllString(text, "${1}"+prefix+"/${2}${3}")
}

// Unresolved returns the known module names still loaded without a prefix, in order of appearance.
func Unresolved(text string, names []string) (ret []string) {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]bool)
	for _, match := range barePattern(names).FindAllStringSubmatch(text, -1) {
		name := match[2]
		if seen[name] {
			continue
		}
		seen[name] = true
		ret = append(ret, name)
	}
	return
}

// RewriteAll rewrites every module against the set of names in modules.
func RewriteAll(modules []sources.ModuleSource, prefix string) ([]RewrittenModule, error) {
	names := make([]string, 0, len(modules))
	for _, m := range modules {
		names = append(names, m.Name)
	}
	ret := make([]RewrittenModule, 0, len(modules))
	for _, m := range modules {
		text := Rewrite(m.Text, names, prefix)
		if unresolved := Unresolved(text, names); len(unresolved) > 0 {
			return nil, &UnresolvedError{
				Module: m.Name,
				Names:  unresolved,
			}
		}
		ret = append(ret, RewrittenModule{
			Name: m.Name,
			Path: path.Join(prefix, m.FileName()),
			Text: text,
		})
	}
	return ret, nil
}
