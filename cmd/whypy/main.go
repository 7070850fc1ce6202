package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/reusee/dscope"
	"github.com/sambuaneesh/why-py/cmds"
	"github.com/sambuaneesh/why-py/controllers"
	"github.com/sambuaneesh/why-py/debugs"
	"github.com/sambuaneesh/why-py/logs"
	"github.com/sambuaneesh/why-py/modes"
	"github.com/sambuaneesh/why-py/sources"
	"github.com/sambuaneesh/why-py/transcripts"
	"github.com/sambuaneesh/why-py/whypyconfigs"
	"golang.org/x/term"
)

var (
	serveAddr = cmds.Var[string]("serve", "serve interpreter modules on addr")
	tap       = cmds.Switch("-tap", "open a starlark REPL over the provisioned session")
)

func init() {
	cmds.Define("-version", cmds.Func(func() {
		os.Stdout.WriteString("whypy " + version + "\n")
		os.Exit(0)
	}).Desc("print version"))
}

const version = "0.1.0"

func main() {
	cmds.Execute(os.Args[1:])

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	if *serveAddr != "" {
		scope.Call(func(
			ctx context.Context,
			logger logs.Logger,
			manifest sources.Manifest,
		) {
			host := sources.NewHost(sources.Embedded(), manifest, logger)
			logger.InfoContext(ctx, "serving interpreter modules", "addr", *serveAddr)
			err := http.ListenAndServe(*serveAddr, host.Handler())
			if !errors.Is(err, http.ErrServerClosed) {
				ce(err)
			}
		})
		return
	}

	scope.Call(func(
		ctx context.Context,
		newController controllers.NewController,
		colored transcripts.Colored,
		prompt whypyconfigs.Prompt,
		historyFile whypyconfigs.HistoryFile,
		tapFunc debugs.Tap,
	) {
		controller := newController()
		defer controller.Close()

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		renderer := transcripts.NewRenderer(os.Stdout, string(prompt), !interactive, colored)
		if interactive {
			for _, entry := range controller.Transcript().Entries() {
				renderer.Render(entry)
			}
		}
		cancel := controller.Transcript().Subscribe(renderer.Render)
		defer cancel()

		if err := controller.Start(ctx); err != nil {
			os.Exit(1)
		}

		if *tap {
			tapFunc(ctx, "session", tapGlobals(ctx, controller))
			return
		}

		if interactive {
			ce(runREPL(ctx, controller, string(prompt), string(historyFile)))
		} else {
			ce(runBatch(ctx, controller, os.Stdin))
		}
	})
}

func ce(err error) {
	if err != nil {
		os.Stderr.WriteString(err.Error())
		os.Stderr.WriteString("\n")
		os.Exit(-1)
	}
}
