// Package config loads treepath settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phobologic/treepath/internal/lang"
	"github.com/phobologic/treepath/internal/parse"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".treepath.yaml"

// Output formats.
const (
	FormatText = "text"
	FormatTOON = "toon"
	FormatJSON = "json"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings shared by the commands. Zero values mean the
// default.
type Config struct {
	// Languages restricts the languages searched.
	Languages []string `yaml:"languages"`

	// Exclude holds doublestar patterns of repo-relative paths to skip.
	Exclude []string `yaml:"exclude"`

	// MaxFiles caps the number of files scanned, approximately. 0 = unlimited.
	MaxFiles int `yaml:"max_files"`

	// MaxFileSize skips files larger than this many bytes.
	MaxFileSize int64 `yaml:"max_file_size"`

	// Concurrency bounds parallel parsing. 0 = GOMAXPROCS.
	Concurrency int `yaml:"concurrency"`

	// Format is one of text, toon or json.
	Format string `yaml:"format"`

	// NamedPaths prints name-guarded paths instead of canonical ones.
	NamedPaths bool `yaml:"named_paths"`

	// SkipTests leaves test files out of searches.
	SkipTests bool `yaml:"skip_tests"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Languages:   []string{"csharp"},
		Exclude:     []string{"**/*.Designer.cs", "**/*.g.cs"},
		MaxFileSize: parse.DefaultMaxFileSize,
		Format:      FormatText,
	}
}

// Load reads the config at path over the defaults. A missing file is only
// an error when explicit is set.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	for _, name := range c.Languages {
		if _, err := lang.Lookup(name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	switch c.Format {
	case "", FormatText, FormatTOON, FormatJSON:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}
	if c.MaxFiles < 0 {
		return fmt.Errorf("%w: max_files must not be negative", ErrInvalidConfig)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("%w: max_file_size must not be negative", ErrInvalidConfig)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Marshal encodes c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Write stores c at path.
func (c Config) Write(path string) error {
	d, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, d, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
