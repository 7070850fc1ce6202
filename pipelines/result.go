package pipelines

import "strings"

type Classification uint8

const (
	Success Classification = iota
	ParseError
	RuntimeError
)

func (c Classification) String() string {
	switch c {
	case Success:
		return "Success"
	case ParseError:
		return "ParseError"
	case RuntimeError:
		return "RuntimeError"
	}
	return "Unknown"
}

const (
	ErrorMarker = "└─ Arcane Error: "
	ValueMarker = "└─ The runes speak: "
	BindMarker  = "└─ The runes bind: "
)

type Result struct {
	Text           string
	Classification Classification
}

func (r Result) IsError() bool {
	return r.Classification != Success
}

// HasErrorMarker reports whether any line of text starts with the error marker.
func HasErrorMarker(text string) bool {
	for line := range strings.Lines(text) {
		if strings.HasPrefix(line, ErrorMarker) {
			return true
		}
	}
	return false
}
