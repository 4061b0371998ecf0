package commands

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/castxml/config"
	"github.com/teranos/castxml/display"
	"github.com/teranos/castxml/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and check castxml configuration",
	Long: `Display and check castxml configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (CASTXML_* prefix, e.g. CASTXML_OUTPUT_FORMAT)
3. Project config (castxml.toml, searched up from the working directory)
4. User config (~/.castxml/config.toml)
5. System config (/etc/castxml/config.toml)
6. Default values

--config <file> replaces sources 3 to 5 with one file.

Examples:
  castxml config show                 # Show effective configuration
  castxml config show --format yaml   # ... as YAML
  castxml config validate             # Validate effective configuration
  castxml config validate other.toml  # Validate one file
  castxml config where                # List config file locations`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate effective configuration or one config file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigValidate,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	RunE:  runConfigWhere,
}

func init() {
	configShowCmd.Flags().String("format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configWhereCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format, _ := cmd.Flags().GetString("format"); format {
	case "json":
		return display.OutputJSON(out, cfg)

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(out, "# castxml configuration\n%s", data)

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(out, "# castxml configuration\n%s", data)

	default:
		return errors.NewInvalidOptionError("unsupported format: %s (supported: toml, json, yaml)", format)
	}
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if len(args) == 1 {
		cfg, err = config.LoadFromFile(args[0])
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  [DEFAULT]  Built-in defaults")
	for _, s := range config.Sources() {
		state := "missing"
		if s.Exists {
			state = "found"
		}
		fmt.Fprintf(out, "  [%-8s] %s (%s)\n", s.Level, s.Path, state)
	}
	fmt.Fprintln(out, "  [ENV]      CASTXML_* environment variables")
	fmt.Fprintln(out, "  [FLAGS]    Command line flags")
	return nil
}
