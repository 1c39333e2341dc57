// config.go — optional REPL settings file.
//
// The REPL reads ~/.cdecl.conf if it exists. The file is "human JSON"
// (hujson): comments and trailing commas are allowed, so the file stays
// pleasant to edit by hand:
//
//	{
//	    // Shown before each input line.
//	    "prompt": "cdecl: ",
//	    "color": true,
//	    "history": 500,
//	}
package cdecl

import (
	"encoding/json"
	"os"

	"github.com/tailscale/hujson"
)

// ConfigFile is the settings file name, looked up in the home directory.
const ConfigFile = ".cdecl.conf"

// Config holds the REPL settings. Zero values mean "use the default".
type Config struct {
	Prompt  string `json:"prompt"`
	Color   *bool  `json:"color"`   // nil = decide from the terminal
	History int    `json:"history"` // history lines replayed at startup
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() Config {
	return Config{Prompt: "cdecl: ", History: 1000}
}

// LoadConfig reads the settings at path. A missing file is not an error:
// the defaults are returned. A malformed file returns the defaults plus the
// error, so the caller can warn once and carry on.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(std, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultConfig().Prompt
	}
	if cfg.History <= 0 {
		cfg.History = DefaultConfig().History
	}
	return cfg, nil
}
