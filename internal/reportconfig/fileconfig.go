package reportconfig

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/toml"
)

// DefaultConfigFile is the config file looked up in the working directory
// when no -config flag is given.
const DefaultConfigFile = "coverscope.toml"

// FileConfig mirrors the keys of the optional TOML configuration file. The
// file supplies defaults only; values given on the command line win.
type FileConfig struct {
	Reports         []string `toml:"reports"`
	Output          string   `toml:"output"`
	ReportTypes     []string `toml:"reporttypes"`
	SourceDirs      []string `toml:"sourcedirs"`
	AssemblyFilters []string `toml:"assemblyfilters"`
	ClassFilters    []string `toml:"classfilters"`
	FileFilters     []string `toml:"filefilters"`
	Tag             string   `toml:"tag"`
	Title           string   `toml:"title"`
	Verbosity       string   `toml:"verbosity"`
	InlineCSS       bool     `toml:"inlinecss"`
}

// LoadFileConfig decodes a TOML configuration file. The returned metadata
// tells which keys the file actually defined, so callers can distinguish an
// absent key from an explicit empty value. Unknown keys are reported but do
// not fail the load.
func LoadFileConfig(path string) (*FileConfig, toml.MetaData, error) {
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		slog.Warn("Config file contains unknown keys.", "file", path, "keys", keys)
	}
	return &cfg, meta, nil
}
