// Package commands implements the castxml command line.
package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/castxml/config"
	"github.com/teranos/castxml/errors"
	"github.com/teranos/castxml/logger"
)

// flagBindings maps config keys to the flags of each command that
// override them
var flagBindings = map[*cobra.Command]map[string]string{}

func bindFlags(cmd *cobra.Command, keys map[string]string) {
	flagBindings[cmd] = keys
}

// Setup prepares configuration and logging for cmd. The root command
// runs it before every subcommand.
func Setup(cmd *cobra.Command) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		config.SetConfigFile(path)
	}
	for key, name := range flagBindings[cmd] {
		if err := config.BindFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.WithHint(err, "check the TOML syntax of your castxml config files")
	}

	verbosity := Verbosity(cmd)
	if cfg.Log.Verbosity > verbosity {
		verbosity = cfg.Log.Verbosity
	}
	if err := logger.Initialize(cfg.Log.JSON, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	return nil
}

// Verbosity returns the -v count
func Verbosity(cmd *cobra.Command) int {
	v, _ := cmd.Flags().GetCount("verbose")
	return v
}

// WithDefaultCommand routes invocations that name no subcommand, such
// as `castxml tu.yaml`, to generate.
func WithDefaultCommand(root *cobra.Command, args []string) []string {
	root.InitDefaultHelpCmd()
	// Merges persistent flags into Flags() so Find can skip their values
	root.LocalFlags()
	positional := false
	for _, a := range args {
		switch {
		case a == "-h" || a == "--help":
			return args
		case !strings.HasPrefix(a, "-"):
			positional = true
		}
	}
	if !positional {
		return args
	}
	if c, _, err := root.Find(args); err == nil && c != root {
		return args
	}
	return append([]string{GenerateCmd.Name()}, args...)
}
