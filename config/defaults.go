package config

import (
	"github.com/spf13/viper"
)

// DefaultDetectTimeoutSeconds bounds one compiler detection run
const DefaultDetectTimeoutSeconds = 60

// ProjectConfigName is the per-project config file found by walking up
// from the working directory
const ProjectConfigName = "castxml.toml"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output.format", "castxml")
	v.SetDefault("output.epic_version", 1)
	v.SetDefault("output.qualified_ids", "suffix")
	v.SetDefault("output.file", "")

	v.SetDefault("start.names", []string{})

	v.SetDefault("target.profile", "")

	v.SetDefault("detect.timeout_seconds", DefaultDetectTimeoutSeconds)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}
