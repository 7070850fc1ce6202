//go:build !linux

package logs

import "log/slog"

// the journal only exists on linux hosts; browser and other builds log to the writer alone
func newJournalHandler() (slog.Handler, error) {
	return nil, nil
}

func isSystemdService() bool {
	return false
}
