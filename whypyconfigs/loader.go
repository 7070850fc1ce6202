package whypyconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/sambuaneesh/why-py/cmds"
	"github.com/sambuaneesh/why-py/configs"
	"github.com/sambuaneesh/why-py/logs"
)

//go:embed schema.cue
var schema string

var configFileFlag = cmds.Var[string]("-config", "config file path")

var filenames = []string{
	"whypy.cue",
	".whypy.cue",
}

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {
	paths := SearchPaths()
	if len(paths) > 0 {
		logger.Info("config file",
			"paths", paths,
		)
	}
	return configs.NewLoader(paths, schema)
}

// SearchPaths returns existing config files, most specific first.
func SearchPaths() (paths []string) {
	// explicit
	if *configFileFlag != "" {
		paths = append(paths, *configFileFlag)
	}
	if path := os.Getenv("WHYPY_CONFIG"); path != "" {
		paths = append(paths, path)
	}

	var dirs []string
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(configDir, "whypy"), configDir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}

// NewLoader validates files against the embedded schema.
func NewLoader(paths ...string) configs.Loader {
	return configs.NewLoader(paths, schema)
}

// NewSourceLoader validates inline CUE text against the embedded schema.
func NewSourceLoader(name string, content string) configs.Loader {
	return configs.NewSourceLoader([]configs.Source{
		{
			Name:    name,
			Content: []byte(content),
		},
	}, schema)
}
