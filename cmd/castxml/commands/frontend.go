package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/castxml/config"
	"github.com/teranos/castxml/detect"
	"github.com/teranos/castxml/frontend"
)

// FrontendCmd represents the frontend command
var FrontendCmd = &cobra.Command{
	Use:   "frontend [-- extra-args...]",
	Short: "Print frontend arguments or predefines for a target profile",
	Long: `Print the compiler frontend argument list that reproduces a detected
target: its triple, include directories and language standard. With
--predefines print the builtin macro text instead.

The profile comes from --profile or the target.profile config setting.
Without a profile only explicit settings are printed.

Examples:
  castxml frontend --profile gcc.toml
  castxml frontend --profile gcc.toml --std c++20 -- input.cxx
  castxml frontend --profile cl.toml --predefines`,
	RunE: runFrontend,
}

func init() {
	FrontendCmd.Flags().String("profile", "", "Target profile written by castxml detect --save")
	FrontendCmd.Flags().String("std", "", "Language standard, overriding the one the profile implies")
	FrontendCmd.Flags().String("target", "", "Target triple, overriding the profile's")
	FrontendCmd.Flags().Bool("predefines", false, "Print the builtin predefines instead of arguments")
	FrontendCmd.Flags().Bool("float128", false, "The frontend target already provides __float128")

	bindFlags(FrontendCmd, map[string]string{
		"target.profile": "profile",
	})
}

func runFrontend(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var profile *detect.Profile
	if cfg.Target.Profile != "" {
		if profile, err = detect.LoadProfile(cfg.Target.Profile); err != nil {
			return err
		}
	}

	std, _ := cmd.Flags().GetString("std")
	target, _ := cmd.Flags().GetString("target")
	feArgs := frontend.Args(profile, frontend.Options{Target: target, Std: std, Extra: args})

	if pre, _ := cmd.Flags().GetBool("predefines"); pre {
		lang := frontend.LanguageFor(feArgs)
		lang.HasFloat128, _ = cmd.Flags().GetBool("float128")
		text, err := frontend.Predefines(profile, lang)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), frontend.Quote(feArgs))
	return err
}
