package logs

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/sambuaneesh/why-py/cmds"
	slogmulti "github.com/samber/slog-multi"
)

var level = new(slog.LevelVar)

var jsonFormat = cmds.Switch("-log-json", "write logs as JSON")

func init() {
	for name, l := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		cmds.Define("-log-"+name, cmds.Func(func() {
			level.Set(l)
		}).Desc("set log level to "+name))
	}

	// overridden by the flags
	if v := os.Getenv("WHYPY_LOG_LEVEL"); v != "" {
		_ = level.UnmarshalText([]byte(v))
	}
}

type Logger = *slog.Logger

func (Module) Logger(
	writer Writer,
) Logger {
	var handlers []slog.Handler

	// local
	var terminalHandler slog.Handler
	if !isSystemdService() {
		terminalHandler = newWriterHandler(writer, *jsonFormat)
		handlers = append(handlers, terminalHandler)
	}

	// systemd journal
	journalHandler, err := newJournalHandler()
	if err != nil {
		if terminalHandler != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "new systemd journal handler", 0)
			record.Add("error", err)
			_ = terminalHandler.Handle(context.Background(), record)
		}
	} else if journalHandler != nil {
		handlers = append(handlers, journalHandler)
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

func newWriterHandler(writer Writer, json bool) slog.Handler {
	options := &slog.HandlerOptions{
		Level: level,
	}
	if json {
		return slog.NewJSONHandler(writer, options)
	}
	return slog.NewTextHandler(writer, options)
}
