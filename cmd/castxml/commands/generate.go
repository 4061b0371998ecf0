package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/teranos/castxml/ast"
	"github.com/teranos/castxml/ast/astdoc"
	"github.com/teranos/castxml/config"
	"github.com/teranos/castxml/display"
	"github.com/teranos/castxml/emit"
	"github.com/teranos/castxml/errors"
	"github.com/teranos/castxml/logger"
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate <ast-document>",
	Short: "Write the XML description of a translation unit",
	Long: `Write the XML description of the declarations and types in an AST
document. This is the default command: "castxml tu.yaml" runs it.

By default every declaration of the translation unit is described. With
--start only the named declarations and everything they reference are.

Examples:
  castxml tu.yaml                          # Write tu.yaml.xml
  castxml generate tu.yaml -o -            # Write to stdout
  castxml generate tu.yaml --start ns::A   # Start from ns::A
  castxml generate tu.yaml --gccxml        # Legacy GCC-XML output
  castxml generate tu.yaml --watch         # Regenerate on change`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().StringP("output", "o", "", "Output file (default: <ast-document>.xml, - for stdout)")
	GenerateCmd.Flags().StringSlice("start", nil, "Qualified names of the declarations to start from (repeatable, comma separated)")
	GenerateCmd.Flags().String("format", "castxml", "Output format: castxml or gccxml")
	GenerateCmd.Flags().Bool("gccxml", false, "Shorthand for --format gccxml")
	GenerateCmd.Flags().Uint("format-version", 1, "CastXML epic format version")
	GenerateCmd.Flags().String("qualified-ids", "suffix", "Spelling of cv-qualified type ids: suffix or numeric")
	GenerateCmd.Flags().Bool("watch", false, "Regenerate whenever the AST document changes")

	bindFlags(GenerateCmd, map[string]string{
		"output.file":          "output",
		"start.names":          "start",
		"output.format":        "format",
		"output.epic_version":  "format-version",
		"output.qualified_ids": "qualified-ids",
	})
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if gcc, _ := cmd.Flags().GetBool("gccxml"); gcc {
		cfg.Output.Format = emit.FormatGCCXML.String()
	}
	opts, err := cfg.EmitOptions()
	if err != nil {
		return err
	}

	input := args[0]
	output := cfg.OutputPath(input)
	g := &generation{
		input:  input,
		output: output,
		opts:   opts,
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
		quiet:  output == "" || display.ShouldOutputJSON(cmd),
	}

	if err := g.run(); err != nil {
		return err
	}

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		return nil
	}
	if output == "" {
		return errors.NewInvalidOptionError("--watch needs an output file")
	}

	w, err := config.NewInputWatcher(input)
	if err != nil {
		return err
	}
	w.OnChange(func(string) error { return g.run() })
	w.Start()
	defer w.Stop()

	fmt.Fprintf(g.stderr, "Watching %s (Ctrl+C to stop)\n", input)
	select {
	case <-cmd.Context().Done():
	case <-w.Done():
	}
	return nil
}

// generation is one configured input/output pair, rerun on every change
// in watch mode.
type generation struct {
	input, output  string
	opts           emit.Options
	stdout, stderr io.Writer
	quiet          bool
}

func (g *generation) run() error {
	runID := uuid.NewString()
	log := logger.ChildLogger(logger.ComponentLogger("generate"), logger.FieldRunID, runID)
	opts := g.opts
	opts.Logger = log.Named("emit")

	tu, err := astdoc.LoadFile(g.input)
	if err != nil {
		return err
	}

	stats, err := g.write(tu, opts, log)
	if err != nil {
		return err
	}
	if !g.quiet {
		display.Generated(g.stderr, g.output, opts.Format, stats)
	}
	return nil
}

func (g *generation) write(tu *ast.TranslationUnit, opts emit.Options, log *zap.SugaredLogger) (*emit.Stats, error) {
	if g.output == "" {
		return emit.Generate(g.stdout, tu, opts)
	}

	// Write next to the destination and rename, so readers never see a
	// partial document.
	tmp, err := os.CreateTemp(filepath.Dir(g.output), "."+filepath.Base(g.output)+".*")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create output file for %s", g.output)
	}
	defer os.Remove(tmp.Name())

	stats, err := emit.Generate(tmp, tu, opts)
	if err == nil {
		err = tmp.Chmod(0o644)
	}
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "failed to close output file")
	}
	if err != nil {
		return nil, err
	}
	if err := os.Rename(tmp.Name(), g.output); err != nil {
		return nil, errors.Wrapf(err, "failed to write %s", g.output)
	}
	log.Debugw("output written", logger.FieldFile, g.output)
	return stats, nil
}
