package whypyconfigs

import (
	"os"
	"path/filepath"

	"github.com/sambuaneesh/why-py/cmds"
	"github.com/sambuaneesh/why-py/configs"
	"github.com/sambuaneesh/why-py/vars"
)

// BaseURL is where interpreter modules are fetched from. Empty means the embedded copy.
type BaseURL string

var _ configs.Configurable = BaseURL("")

func (BaseURL) ConfigPath() string {
	return "base_url"
}

var baseURLFlag = cmds.Var[string]("-base-url", "fetch interpreter modules from this URL")

func (Module) BaseURL(
	loader configs.Loader,
) BaseURL {
	return vars.FirstNonZero(
		BaseURL(*baseURLFlag),
		configs.Get[BaseURL](loader),
		BaseURL(os.Getenv("WHYPY_BASE_URL")),
	)
}

// Prefix is the package directory modules are installed under.
type Prefix string

var _ configs.Configurable = Prefix("")

func (Prefix) ConfigPath() string {
	return "prefix"
}

const DefaultPrefix Prefix = "whypy"

func (Module) Prefix(
	loader configs.Loader,
) Prefix {
	return vars.FirstNonZero(
		configs.Get[Prefix](loader),
		DefaultPrefix,
	)
}

type QueueSize int

var _ configs.Configurable = QueueSize(0)

func (QueueSize) ConfigPath() string {
	return "queue_size"
}

const DefaultQueueSize QueueSize = 16

var queueSizeFlag = cmds.Var[int]("-queue-size", "max queued submissions")

func (Module) QueueSize(
	loader configs.Loader,
) QueueSize {
	return vars.FirstNonZero(
		QueueSize(max(*queueSizeFlag, 0)),
		configs.Get[QueueSize](loader),
		DefaultQueueSize,
	)
}

type Prompt string

var _ configs.Configurable = Prompt("")

func (Prompt) ConfigPath() string {
	return "prompt"
}

func (Module) Prompt(
	loader configs.Loader,
) Prompt {
	return vars.FirstNonZero(
		configs.Get[Prompt](loader),
		">>> ",
	)
}

type HistoryFile string

var _ configs.Configurable = HistoryFile("")

func (HistoryFile) ConfigPath() string {
	return "history_file"
}

func (Module) HistoryFile(
	loader configs.Loader,
) HistoryFile {
	if path := configs.Get[HistoryFile](loader); path != "" {
		return path
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return HistoryFile(filepath.Join(dir, "whypy_history"))
	}
	return ""
}

// Bindings are host values defined in every new session.
type Bindings map[string]any

var _ configs.Configurable = Bindings(nil)

func (Bindings) ConfigPath() string {
	return "bindings"
}

func (Module) Bindings(
	loader configs.Loader,
) Bindings {
	return configs.Get[Bindings](loader)
}
