package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/teranos/castxml/ast/astdoc"
	"github.com/teranos/castxml/detect"
	"github.com/teranos/castxml/emit"
)

// ShowCount is how many rows a listing shows at a verbosity level; -1
// means all of them.
func ShowCount(verbosity int) int {
	switch verbosity {
	case 0:
		return 10
	case 1:
		return 25
	default:
		return -1
	}
}

// Summary prints what an AST document contains.
func Summary(w io.Writer, path string, s astdoc.Summary, verbosity int) error {
	lang := "C"
	if s.CPlusPlus {
		lang = "C++"
	}
	pterm.Fprintln(w, pterm.Bold.Sprint(path))
	pterm.Fprintln(w, fmt.Sprintf("  %s %s (%s)", pterm.Gray("target:"), orUnknown(s.Triple), lang))
	pterm.Fprintln(w, fmt.Sprintf("  %s %d  %s %d  %s %d",
		pterm.Gray("files:"), s.Files,
		pterm.Gray("types:"), s.Types,
		pterm.Gray("declarations:"), s.Decls))
	if len(s.Kinds) == 0 {
		return nil
	}

	kinds := s.Kinds
	if n := ShowCount(verbosity); n >= 0 && len(kinds) > n {
		kinds = kinds[:n]
	}
	data := pterm.TableData{{"Kind", "Count"}}
	for _, k := range kinds {
		data = append(data, []string{k.Kind, fmt.Sprint(k.Count)})
	}
	pterm.Fprintln(w)
	if err := pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render(); err != nil {
		return err
	}
	if hidden := len(s.Kinds) - len(kinds); hidden > 0 {
		pterm.Fprintln(w, pterm.Gray(fmt.Sprintf("  ... %d more kinds (use -v to show more)", hidden)))
	}
	return nil
}

// Profile prints a detected target profile.
func Profile(w io.Writer, p *detect.Profile, verbosity int) error {
	pterm.Fprintln(w, pterm.Bold.Sprintf("%s compiler", p.ID))
	pterm.Fprintln(w, fmt.Sprintf("  %s %s", pterm.Gray("command:"), strings.Join(p.Command, " ")))
	pterm.Fprintln(w, fmt.Sprintf("  %s %s", pterm.Gray("triple:"), orUnknown(p.Triple)))
	pterm.Fprintln(w, fmt.Sprintf("  %s %d", pterm.Gray("predefined macros:"), strings.Count(p.Predefines, "#define ")))
	if !p.DetectedAt.IsZero() {
		pterm.Fprintln(w, fmt.Sprintf("  %s %s", pterm.Gray("detected:"), p.DetectedAt.Format(time.RFC3339)))
	}
	if len(p.Includes) == 0 {
		return nil
	}

	data := pterm.TableData{{"Include directory", "Kind"}}
	for _, inc := range p.Includes {
		kind := "system"
		if inc.Framework {
			kind = "framework"
		}
		data = append(data, []string{inc.Dir, kind})
	}
	pterm.Fprintln(w)
	if err := pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render(); err != nil {
		return err
	}
	if verbosity > 1 {
		pterm.Fprintln(w)
		pterm.Fprint(w, p.Predefines)
	}
	return nil
}

// Generated prints the outcome of one generate run.
func Generated(w io.Writer, output string, format emit.Format, s *emit.Stats) {
	if output == "" {
		output = "stdout"
	}
	pterm.Fprintln(w, fmt.Sprintf("%s %s %s (%d nodes, %d files, %s)",
		pterm.LightGreen("✓"),
		format,
		pterm.White(output),
		s.Nodes, s.Files, s.Duration.Round(time.Millisecond)))
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
