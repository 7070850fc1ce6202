package transcripts

import (
	"io"
	"sync"

	"github.com/fatih/color"
)

// Renderer writes entries to a terminal, one color per kind.
type Renderer struct {
	mu     sync.Mutex
	w      io.Writer
	prompt string
	echo   bool
	styles map[Kind]*color.Color
}

// NewRenderer returns a renderer writing to w. Input entries are prefixed with prompt and only written when echo is set.
func NewRenderer(w io.Writer, prompt string, echo bool, colored Colored) *Renderer {
	styles := map[Kind]*color.Color{
		System: color.New(color.FgMagenta),
		Input:  color.New(color.FgCyan),
		Output: color.New(color.FgGreen),
		Error:  color.New(color.FgRed, color.Bold),
	}
	for _, style := range styles {
		if colored {
			style.EnableColor()
		} else {
			style.DisableColor()
		}
	}
	return &Renderer{
		w:      w,
		prompt: prompt,
		echo:   echo,
		styles: styles,
	}
}

func (r *Renderer) Render(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	text := entry.Text
	if entry.Kind == Input {
		if !r.echo {
			return
		}
		text = r.prompt + text
	}
	style, ok := r.styles[entry.Kind]
	if !ok {
		io.WriteString(r.w, text+"\n")
		return
	}
	style.Fprintln(r.w, text)
}
