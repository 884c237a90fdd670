package gen

import (
	"fmt"
	"go/token"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"

	"gopkg.in/yaml.v3"
)

// Defaults applied to a Config by NewGraph.
const (
	DefaultSuffix     = "Builder"
	DefaultHeader     = "Code generated by buildergen. DO NOT EDIT."
	DefaultFileSuffix = "_builder.go"
)

// Import paths of the runtime packages referenced by generated code.
const (
	RuntimePkg = "github.com/syssam/buildergen"
	OptionPkg  = "github.com/syssam/buildergen/option"
)

// Config holds the global codegen configuration shared by all types.
type Config struct {
	// Suffix is appended to the record name to form the builder name.
	Suffix string
	// Header is the comment written at the top of each generated file.
	Header string
	// FileSuffix replaces the ".go" extension of a source file to form the
	// name of its generated file.
	FileSuffix string
	// Features enables optional codegen features.
	Features []Feature
	// Hooks are applied on the generator before running it.
	Hooks []Hook
	// Generator replaces the default generator. Used mainly by hooks and
	// tools that render to something other than files.
	Generator Generator
	// Logger receives debug records about the generation. Defaults to a
	// discarding logger.
	Logger *slog.Logger
	// Workers bounds the number of files rendered concurrently.
	Workers int
}

// FeatureEnabled reports if the given feature name is enabled.
// It's exported to be used by the template engine as follows:
//
//	if enabled, _ := cfg.FeatureEnabled("buildx"); enabled {
//		...
//	}
func (c *Config) FeatureEnabled(name string) (bool, error) {
	for _, f := range AllFeatures {
		if name == f.Name {
			return f.Default || slices.ContainsFunc(c.Features, func(e Feature) bool { return e.Name == name }), nil
		}
	}
	return false, fmt.Errorf("unexpected feature name %q", name)
}

// featureEnabled is FeatureEnabled for names known to exist.
func (c *Config) featureEnabled(f Feature) bool {
	enabled, _ := c.FeatureEnabled(f.Name)
	return enabled
}

// defaults fills the zero fields of the config.
func (c *Config) defaults() error {
	if c.Suffix == "" {
		c.Suffix = DefaultSuffix
	}
	if !token.IsIdentifier("X" + c.Suffix) {
		return NewConfigError("Suffix", c.Suffix, "suffix must continue a Go identifier")
	}
	if c.Header == "" {
		c.Header = DefaultHeader
	}
	if c.FileSuffix == "" {
		c.FileSuffix = DefaultFileSuffix
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return nil
}

// FileConfig is the content of a .buildergen.yaml configuration file.
type FileConfig struct {
	Suffix     string   `yaml:"suffix,omitempty"`
	Header     string   `yaml:"header,omitempty"`
	FileSuffix string   `yaml:"file_suffix,omitempty"`
	Features   []string `yaml:"features,omitempty"`
	Workers    int      `yaml:"workers,omitempty"`
	// Types and Directive configure record loading.
	Types     []string `yaml:"types,omitempty"`
	Directive string   `yaml:"directive,omitempty"`
}

// ReadConfigFile reads a YAML configuration file.
func ReadConfigFile(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig decodes a YAML configuration. Unknown keys are rejected.
func DecodeConfig(r io.Reader) (*FileConfig, error) {
	fc := &FileConfig{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(fc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fc, nil
}

// Options converts the generation settings of the file to options.
func (fc *FileConfig) Options() []Option {
	var opts []Option
	if fc.Suffix != "" {
		opts = append(opts, WithSuffix(fc.Suffix))
	}
	if fc.Header != "" {
		opts = append(opts, WithHeader(fc.Header))
	}
	if fc.FileSuffix != "" {
		opts = append(opts, WithFileSuffix(fc.FileSuffix))
	}
	if len(fc.Features) > 0 {
		opts = append(opts, WithFeatureNames(fc.Features...))
	}
	if fc.Workers > 0 {
		opts = append(opts, WithWorkers(fc.Workers))
	}
	return opts
}
