// Package config loads larch's runtime configuration: an optional YAML
// file followed by an environment-variable overlay, the latter always
// winning. This is ambient plumbing the language core has no opinion
// about, kept separate from lang/* the way the teacher keeps its own
// CLI concerns in internal/ (github.com/mna/nenuphar/internal/maincmd).
package config

import (
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// Config holds the handful of knobs the CLI and REPL consult. PromptColor
// toggles github.com/fatih/color coloring of the REPL prompt (error output
// is colored regardless); HistoryFile is where
// github.com/chzyer/readline persists REPL history between sessions.
type Config struct {
	PromptColor bool   `yaml:"prompt_color" env:"LARCH_PROMPT_COLOR"`
	HistoryFile string `yaml:"history_file" env:"LARCH_HISTORY_FILE"`
	MaxCallArgs int    `yaml:"max_call_args" env:"LARCH_MAX_CALL_ARGS"`
}

// defaults returns the baseline Config applied before the file and
// environment overlays. Baked in here rather than as struct tag
// envDefaults, which env.Parse would reapply over a value already loaded
// from the YAML file whenever the corresponding variable is unset.
func defaults() Config {
	return Config{PromptColor: true, HistoryFile: "~/.larch_history", MaxCallArgs: 255}
}

// Load starts from defaults(), merges path's YAML contents if the file
// exists (a missing file is not an error, so larch runs out of the box),
// then applies any matching environment variables on top, which always
// win.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, err
			}
		case os.IsNotExist(err):
			// no file: keep the baked-in defaults
		default:
			return nil, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
