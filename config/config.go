// Package config loads castxml settings from TOML files, CASTXML_*
// environment variables and command line flags.
package config

import (
	"fmt"
	"time"

	"github.com/teranos/castxml/emit"
	"github.com/teranos/castxml/errors"
)

// Config represents the castxml configuration
type Config struct {
	Output OutputConfig `mapstructure:"output" toml:"output" json:"output" yaml:"output"`
	Start  StartConfig  `mapstructure:"start" toml:"start" json:"start" yaml:"start"`
	Target TargetConfig `mapstructure:"target" toml:"target" json:"target" yaml:"target"`
	Detect DetectConfig `mapstructure:"detect" toml:"detect" json:"detect" yaml:"detect"`
	Log    LogConfig    `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// OutputConfig configures the written document
type OutputConfig struct {
	Format       string `mapstructure:"format" toml:"format" json:"format" yaml:"format"`                             // castxml or gccxml (default: castxml)
	EpicVersion  uint   `mapstructure:"epic_version" toml:"epic_version" json:"epic_version" yaml:"epic_version"`     // CastXML epic format version (default: 1)
	QualifiedIDs string `mapstructure:"qualified_ids" toml:"qualified_ids" json:"qualified_ids" yaml:"qualified_ids"` // suffix or numeric (default: suffix)
	File         string `mapstructure:"file" toml:"file" json:"file" yaml:"file"`                                     // Output path; empty = <input>.xml, "-" = stdout
}

// StartConfig selects the declarations to start from
type StartConfig struct {
	Names []string `mapstructure:"names" toml:"names" json:"names" yaml:"names"`
}

// TargetConfig points at a saved target profile
type TargetConfig struct {
	Profile string `mapstructure:"profile" toml:"profile" json:"profile" yaml:"profile"`
}

// DetectConfig configures compiler detection
type DetectConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds" yaml:"timeout_seconds"` // Compiler run limit (default: 60)
}

// LogConfig configures logging
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" json:"verbosity" yaml:"verbosity"`
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := c.EmitOptions(); err != nil {
		return err
	}
	if c.Detect.TimeoutSeconds <= 0 {
		return errors.NewInvalidOptionError("detect.timeout_seconds must be > 0, got %d", c.Detect.TimeoutSeconds)
	}
	if c.Log.Verbosity < 0 {
		return errors.NewInvalidOptionError("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}
	return nil
}

// EmitOptions converts the output and start settings into validated
// generation options.
func (c *Config) EmitOptions() (emit.Options, error) {
	format, err := emit.ParseFormat(c.Output.Format)
	if err != nil {
		return emit.Options{}, err
	}
	quals, err := emit.ParseQualifiedIDs(c.Output.QualifiedIDs)
	if err != nil {
		return emit.Options{}, err
	}
	opts := emit.Options{
		Format:       format,
		EpicVersion:  c.Output.EpicVersion,
		QualifiedIDs: quals,
		StartNames:   append([]string(nil), c.Start.Names...),
	}
	if err := opts.Validate(); err != nil {
		return emit.Options{}, err
	}
	return opts, nil
}

// OutputPath returns where the document for input goes. An empty result
// means stdout.
func (c *Config) OutputPath(input string) string {
	switch c.Output.File {
	case "-":
		return ""
	case "":
		return input + ".xml"
	}
	return c.Output.File
}

// DetectTimeout returns the compiler run limit
func (c *Config) DetectTimeout() time.Duration {
	if c.Detect.TimeoutSeconds <= 0 {
		return DefaultDetectTimeoutSeconds * time.Second
	}
	return time.Duration(c.Detect.TimeoutSeconds) * time.Second
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Output: {Format: %s, Epic: %d, QualifiedIDs: %s}, Start: %v, Profile: %q}",
		c.Output.Format, c.Output.EpicVersion, c.Output.QualifiedIDs, c.Start.Names, c.Target.Profile)
}
