package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/teranos/castxml/errors"
)

var globalConfig *Config
var viperInstance *viper.Viper

// explicitFile replaces the searched config files when set
var explicitFile string

// systemConfigPath is the lowest-precedence config file
var systemConfigPath = "/etc/castxml/config.toml"

// Load reads the castxml configuration using Viper
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	if explicitFile != "" {
		if _, err := os.Stat(explicitFile); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", explicitFile)
		}
	}

	v := initViper()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &config
	return globalConfig, nil
}

// GetViper returns the Viper instance, e.g. for binding command line flags
func GetViper() *viper.Viper {
	return initViper()
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Defaults only; environment variables do not apply to an explicit file
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config from %s", configPath)
	}

	return &config, nil
}

// SetConfigFile makes Load read only path instead of searching the
// system, user and project locations. Environment variables and bound
// flags still apply.
func SetConfigFile(path string) {
	explicitFile = path
	globalConfig = nil
	viperInstance = nil
}

// BindFlag makes a command line flag override key when the flag is set
func BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return errors.Newf("no flag to bind to %s", key)
	}
	globalConfig = nil
	return initViper().BindPFlag(key, flag)
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
	explicitFile = ""
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	// CASTXML_OUTPUT_FORMAT overrides output.format, and so on
	v.SetEnvPrefix("CASTXML")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// Precedence: system -> user -> project -> env vars -> flags
	mergeConfigFiles(v)

	viperInstance = v
	return v
}

// findProjectConfig searches for castxml.toml by walking up the directory tree
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ProjectConfigName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// Source is one config file location
type Source struct {
	Level  string // system, user, project or explicit
	Path   string
	Exists bool
}

// Sources lists the config file locations Load reads, lowest precedence
// first
func Sources() []Source {
	var sources []Source
	add := func(level, path string) {
		_, err := os.Stat(path)
		sources = append(sources, Source{Level: level, Path: path, Exists: err == nil})
	}
	if explicitFile != "" {
		add("explicit", explicitFile)
		return sources
	}
	add("system", systemConfigPath)
	if home, err := os.UserHomeDir(); err == nil {
		add("user", filepath.Join(home, ".castxml", "config.toml"))
	}
	if project := findProjectConfig(); project != "" {
		add("project", project)
	}
	return sources
}

// configPaths lists candidate config files, lowest precedence first
func configPaths() []string {
	if explicitFile != "" {
		return []string{explicitFile}
	}
	paths := []string{systemConfigPath}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".castxml", "config.toml"))
	}
	if project := findProjectConfig(); project != "" {
		paths = append(paths, project)
	}
	return paths
}

// mergeConfigFiles merges configuration files in precedence order.
// Unreadable files are skipped.
func mergeConfigFiles(v *viper.Viper) {
	for _, configPath := range configPaths() {
		if _, err := os.Stat(configPath); err != nil {
			continue
		}
		tempViper := viper.New()
		tempViper.SetConfigFile(configPath)
		tempViper.SetConfigType("toml")
		if err := tempViper.ReadInConfig(); err != nil {
			continue
		}
		if err := v.MergeConfigMap(tempViper.AllSettings()); err != nil {
			continue
		}
	}
}
