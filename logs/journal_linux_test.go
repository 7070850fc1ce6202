//go:build linux

package logs

import "testing"

func TestToJournalKey(t *testing.T) {
	cases := map[string]string{
		"logs.span":    "LOGS_SPAN",
		"session-id":   "SESSION_ID",
		"stage2":       "STAGE2",
		"Module.Name!": "MODULE_NAME_",
	}
	for in, want := range cases {
		if got := toJournalKey(in); got != want {
			t.Fatalf("%s: got %s", in, got)
		}
	}
}
