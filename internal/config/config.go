package config

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/regions/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "regions.json"

	// DefaultLibPath is where region schemas and components are generated.
	DefaultLibPath = "app/regions"

	// DefaultRoutesPath is where example layouts and pages are generated.
	DefaultRoutesPath = "app/routes"
)

// Config represents regions.json.
type Config struct {
	// Module is the Go import path of the project. Read from go.mod when
	// empty.
	Module string `json:"module,omitempty"`

	// Paths locates generated code.
	Paths PathsConfig `json:"paths,omitempty"`

	// Defaults pre-answer generator prompts.
	Defaults DefaultsConfig `json:"defaults,omitempty"`

	// dir is the project root the config belongs to.
	dir string
}

// PathsConfig contains generated-code locations, relative to the project root.
type PathsConfig struct {
	Lib    string `json:"lib,omitempty"`
	Routes string `json:"routes,omitempty"`
}

// DefaultsConfig holds default generator answers. Empty means ask.
type DefaultsConfig struct {
	Strategy  string `json:"strategy,omitempty"`
	Validator string `json:"validator,omitempty"`
}

var (
	knownStrategies = []string{"load-function", "page-component", "snippet"}
	knownValidators = []string{"none", "openapi", "cty"}
)

// New returns a config with defaults applied.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads regions.json from dir. A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)

	cfg := &Config{dir: dir}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("R320").
				WithDetail("Failed to parse " + path + ": " + err.Error()).
				WithSuggestion("Check that regions.json is valid JSON")
		}
	case !os.IsNotExist(err):
		return nil, errors.New("R320").Wrap(err)
	}

	if cfg.Module == "" {
		cfg.Module = modulePath(dir)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the config as indented JSON.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("R320").Wrap(err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.New("R305").WithDetail(path).Wrap(err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Paths.Lib == "" {
		c.Paths.Lib = DefaultLibPath
	}
	if c.Paths.Routes == "" {
		c.Paths.Routes = DefaultRoutesPath
	}
}

// Validate checks the configured defaults against known values.
func (c *Config) Validate() error {
	if s := c.Defaults.Strategy; s != "" && !contains(knownStrategies, s) {
		return errors.New("R320").
			WithDetailf("defaults.strategy %q is not one of %s", s, strings.Join(knownStrategies, ", "))
	}
	if v := c.Defaults.Validator; v != "" && !contains(knownValidators, v) {
		return errors.New("R320").
			WithDetailf("defaults.validator %q is not one of %s", v, strings.Join(knownValidators, ", "))
	}
	return nil
}

// Dir returns the project root.
func (c *Config) Dir() string {
	if c.dir == "" {
		return "."
	}
	return c.dir
}

// LibPath returns the absolute-or-relative path of the lib directory.
func (c *Config) LibPath() string {
	return c.resolve(c.Paths.Lib)
}

// RoutesPath returns the path of the routes directory.
func (c *Config) RoutesPath() string {
	return c.resolve(c.Paths.Routes)
}

// LibImport returns the import path of the lib directory, or "" when the
// module path is unknown.
func (c *Config) LibImport() string {
	if c.Module == "" {
		return ""
	}
	return c.Module + "/" + filepath.ToSlash(filepath.Clean(c.Paths.Lib))
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// modulePath reads the module directive from dir/go.mod.
func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if rest, ok := strings.CutPrefix(line, "module"); ok && rest != "" && (rest[0] == ' ' || rest[0] == '\t') {
			return strings.Trim(strings.TrimSpace(rest), `"`)
		}
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
