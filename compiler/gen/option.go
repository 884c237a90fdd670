package gen

import (
	"errors"
	"go/token"
	"log/slog"
	"strings"
)

// Option configures code generation.
type Option func(*Config) error

// WithSuffix sets the suffix appended to record names to form builder names.
// For example, "Builder" turns Command into CommandBuilder.
func WithSuffix(suffix string) Option {
	return func(c *Config) error {
		if suffix == "" || !token.IsIdentifier("X"+suffix) {
			return NewConfigError("Suffix", suffix, "suffix must continue a Go identifier")
		}
		c.Suffix = suffix
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		if header == "" {
			return NewConfigError("Header", nil, "header cannot be empty")
		}
		c.Header = header
		return nil
	}
}

// WithFileSuffix sets the suffix of generated file names.
// For example: "_builder.go" turns command.go into command_builder.go.
func WithFileSuffix(suffix string) Option {
	return func(c *Config) error {
		if !strings.HasSuffix(suffix, ".go") || suffix == ".go" {
			return NewConfigError("FileSuffix", suffix, `file suffix must end with ".go" and not be ".go"`)
		}
		c.FileSuffix = suffix
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional code generation capabilities.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithFeatureNames enables features by name.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			f, ok := FeatureByName(name)
			if !ok {
				return NewConfigError("Features", name, "unknown feature")
			}
			c.Features = append(c.Features, f)
		}
		return nil
	}
}

// WithHooks adds generation hooks.
// Hooks are called before/after code generation.
func WithHooks(hooks ...Hook) Option {
	return func(c *Config) error {
		c.Hooks = append(c.Hooks, hooks...)
		return nil
	}
}

// WithGenerator sets a custom code generator.
// If not set, defaults to the Jennifer generator writing files.
func WithGenerator(g Generator) Option {
	return func(c *Config) error {
		if g == nil {
			return NewConfigError("Generator", nil, "generator cannot be nil")
		}
		c.Generator = g
		return nil
	}
}

// WithLogger sets the logger receiving generation records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithWorkers sets the number of files rendered concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
