package chomp

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// ProjectConfig represents a chomp.toml project configuration file.
// Command-line flags take precedence over anything set here.
type ProjectConfig struct {
	// Output is the default output path, relative to chomp.toml, used
	// when the command line leaves it to the project.
	Output string `toml:"output,omitempty"`

	// Debug enables debug logging by default.
	Debug bool `toml:"debug,omitempty"`

	// AllowEmpty controls whether a run whose result matched nothing
	// still writes the output file. Defaults to true: an empty match
	// set is valid data, not a failure.
	AllowEmpty *bool `toml:"allow-empty,omitempty"`
}

func (c *ProjectConfig) allowEmpty() bool {
	return c == nil || c.AllowEmpty == nil || *c.AllowEmpty
}

// LoadProjectConfig loads a chomp.toml file from the given path.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	var config ProjectConfig
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return &config, nil
}

// FindProjectConfig searches for a chomp.toml starting from dir and
// walking up to parent directories, stopping at a repository boundary.
// Returns ("", nil, nil) if none is found.
func FindProjectConfig(dir string) (string, *ProjectConfig, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, "chomp.toml")
		if _, err := os.Stat(path); err == nil {
			config, err := LoadProjectConfig(path)
			if err != nil {
				return "", nil, err
			}
			return path, config, nil
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}
