package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/castxml/cmd/castxml/commands"
	"github.com/teranos/castxml/errors"
	"github.com/teranos/castxml/logger"
)

var rootCmd = &cobra.Command{
	Use:   "castxml",
	Short: "castxml - C and C++ declarations as XML",
	Long: `castxml - Describe the declarations and types of a C or C++ translation
unit as a deterministic XML document.

castxml reads AST documents written by a compiler frontend and writes
CastXML or legacy GCC-XML output for binding generators and analyzers.

Available commands:
  generate - Write the XML description of a translation unit (default)
  detect   - Inspect a target compiler and save its profile
  frontend - Print frontend arguments or predefines for a target profile
  inspect  - Summarize the contents of AST documents
  config   - Show and check castxml configuration
  version  - Show version information

Examples:
  castxml tu.yaml                        # Write tu.yaml.xml
  castxml tu.yaml --start ns::A -o -     # Start from ns::A, write to stdout
  castxml detect gnu -- g++ --save gcc.toml
  castxml inspect tu.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return commands.Setup(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().String("config", "", "Read configuration from this file only")
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.DetectCmd)
	rootCmd.AddCommand(commands.FrontendCmd)
	rootCmd.AddCommand(commands.InspectCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetArgs(commands.WithDefaultCommand(rootCmd, os.Args[1:]))
	err := rootCmd.ExecuteContext(ctx)
	logger.Cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		stop()
		os.Exit(1)
	}
}
