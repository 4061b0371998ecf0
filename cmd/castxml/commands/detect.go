package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/castxml/config"
	"github.com/teranos/castxml/detect"
	"github.com/teranos/castxml/display"
	"github.com/teranos/castxml/errors"
	"github.com/teranos/castxml/logger"
)

// DetectCmd represents the detect command
var DetectCmd = &cobra.Command{
	Use:   "detect <id> [-- <compiler> [compiler-args...]]",
	Short: "Inspect a target compiler and save its profile",
	Long: `Run a target compiler to learn its predefined macros, system include
directories and target triple. The result can be saved as a TOML target
profile for the frontend command.

Compiler ids:
  gnu, gnu-c     GCC-compatible compilers, C++ or C
  msvc, msvc-c   MSVC-compatible compilers, C++ or C (include
                 directories come from the INCLUDE environment variable)

Examples:
  castxml detect gnu -- g++ -std=c++17
  castxml detect gnu-c --command "gcc -m32" --save gcc32.toml
  castxml detect msvc -- cl --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetect,
}

func init() {
	DetectCmd.Flags().String("command", "", "Compiler command line, split like a shell would (instead of arguments after --)")
	DetectCmd.Flags().String("save", "", "Write the profile to this TOML file")
	DetectCmd.Flags().String("builtin-include", "", "Directory replacing the compiler's own intrinsics headers")
	DetectCmd.Flags().Bool("json", false, "Output the profile as JSON")
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	id := args[0]
	command := args[1:]
	if line, _ := cmd.Flags().GetString("command"); line != "" {
		if len(command) > 0 {
			return errors.NewInvalidOptionError("give the compiler either with --command or after --, not both")
		}
		if command, err = detect.SplitCommand(line); err != nil {
			return err
		}
	}
	if len(command) == 0 {
		err := errors.NewInvalidOptionError("no compiler command given")
		return errors.WithHintf(err, "try: castxml detect %s -- <compiler>", id)
	}

	builtin, _ := cmd.Flags().GetString("builtin-include")
	profile, err := detect.Detect(cmd.Context(), id, command, detect.Options{
		BuiltinIncludeDir: builtin,
		Timeout:           cfg.DetectTimeout(),
		Logger:            logger.ComponentLogger("detect"),
	})
	if err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := profile.Save(path); err != nil {
			return err
		}
		logger.Infow("target profile saved", logger.FieldPath, path)
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(cmd.OutOrStdout(), profile)
	}
	return display.Profile(cmd.OutOrStdout(), profile, Verbosity(cmd))
}
