package stylecore

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up when none is given.
const DefaultConfigFile = ".stylecore.yaml"

// Config controls the CLI pipeline around the core parse/minimize calls.
type Config struct {
	Name string `yaml:"name"`
	// Minimize runs the equivalence-class pass after every parse.
	Minimize bool `yaml:"minimize"`
	// MaxErrors truncates the diagnostic list per file; 0 means unlimited.
	MaxErrors int `yaml:"max-errors"`
	// Format selects CLI output: "text" or "json".
	Format string `yaml:"format"`
	// CacheDir enables the content-hash report cache for batch runs when set.
	CacheDir string `yaml:"cache-dir"`
}

// DefaultConfig is what `stylecore init` writes and what missing fields
// fall back to.
func DefaultConfig() Config {
	return Config{
		Name:     "stylecore",
		Minimize: true,
		Format:   "text",
	}
}

// LoadConfig parses a YAML configuration file. An empty path loads the
// default file when present and silently falls back to defaults otherwise.
func LoadConfig(path string) (Config, error) {
	fallbackOK := false
	if path == "" {
		path = DefaultConfigFile
		fallbackOK = true
	}

	f, err := os.Open(path)
	if err != nil {
		if fallbackOK && os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	config := DefaultConfig()
	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

// WriteConfig marshals a config to the given path, creating or truncating
// the file.
func WriteConfig(path string, config Config) error {
	if path == "" {
		path = DefaultConfigFile
	}
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(d); err != nil {
		return err
	}
	return nil
}
