package main

import (
	"context"
	"strings"

	"github.com/sambuaneesh/why-py/controllers"
)

// tapGlobals exposes the interpreter modules, the session store and an execute helper.
func tapGlobals(ctx context.Context, controller *controllers.Controller) map[string]any {
	globals := controller.Handle().Globals()
	globals["session"] = controller.Session().Value()
	globals["execute"] = func(source string) string {
		transcript := controller.Transcript()
		from := transcript.Len()
		done, err := controller.Submit(ctx, source)
		if err != nil {
			return err.Error()
		}
		<-done
		var lines []string
		for _, entry := range transcript.Entries()[from:] {
			lines = append(lines, entry.Text)
		}
		return strings.Join(lines, "\n")
	}
	return globals
}
