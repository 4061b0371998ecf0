// Package detect inspects a target compiler: its predefined macros, its
// system include directories and the triple they imply.
package detect

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/teranos/castxml/errors"
	"github.com/teranos/castxml/logger"
)

// Runner runs a compiler and captures its output.
type Runner interface {
	Run(ctx context.Context, args []string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, args []string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Options configures detection.
type Options struct {
	Runner            Runner              // Optional runner (default: ExecRunner)
	ProbeDir          string              // Where probe sources are written (default: a temporary directory)
	BuiltinIncludeDir string              // Replaces the compiler's own intrinsics directory (default: none)
	Getenv            func(string) string // Environment lookup for MSVC's INCLUDE (default: os.Getenv)
	HostTriple        string              // Triple adjusted by the predefines (default: HostTriple())
	Timeout           time.Duration       // Compiler run limit (default: 60s)
	Logger            *zap.SugaredLogger  // Optional logger (default: global logger named "detect")
}

func (o *Options) setDefaults() {
	if o.Runner == nil {
		o.Runner = ExecRunner{}
	}
	if o.Getenv == nil {
		o.Getenv = os.Getenv
	}
	if o.HostTriple == "" {
		o.HostTriple = HostTriple()
	}
	if o.Timeout <= 0 {
		o.Timeout = 60 * time.Second
	}
	if o.Logger == nil {
		o.Logger = logger.Logger.Named("detect")
	}
}

// KnownID reports whether id names a supported compiler flavor.
func KnownID(id string) bool {
	switch id {
	case "gnu", "gnu-c", "msvc", "msvc-c":
		return true
	}
	return false
}

// SplitCommand splits a configured compiler command line the way a POSIX
// shell would.
func SplitCommand(s string) ([]string, error) {
	args, err := shellquote.Split(s)
	if err != nil {
		return nil, errors.NewInvalidOptionError("cannot split compiler command %q: %v", s, err)
	}
	if len(args) == 0 {
		return nil, errors.NewInvalidOptionError("empty compiler command")
	}
	return args, nil
}

// Detect runs the compiler command as compiler flavor id and returns what
// it reports.
func Detect(ctx context.Context, id string, command []string, opts Options) (*Profile, error) {
	opts.setDefaults()
	if !KnownID(id) {
		err := errors.NewInvalidOptionError("compiler id %q not known", id)
		return nil, errors.WithHint(err, "expected one of gnu, gnu-c, msvc, msvc-c")
	}
	if len(command) == 0 {
		return nil, errors.NewInvalidOptionError("no compiler command given for %s", id)
	}

	dir := opts.ProbeDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "castxml-detect-")
		if err != nil {
			return nil, errors.Wrap(err, "failed to create probe directory")
		}
		defer os.RemoveAll(tmp)
		dir = tmp
	}

	ext := "cpp"
	if strings.HasSuffix(id, "-c") {
		ext = "c"
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	d := &detector{id: id, opts: opts, dir: dir, ext: ext}
	p := &Profile{ID: id, Command: append([]string(nil), command...), DetectedAt: time.Now().UTC().Truncate(time.Second)}
	var err error
	if strings.HasPrefix(id, "msvc") {
		err = d.msvc(ctx, command, p)
	} else {
		err = d.gnu(ctx, command, p)
	}
	if err != nil {
		return nil, err
	}

	p.Predefines = fixPredefines(p.Predefines)
	p.Triple = tripleFor(opts.HostTriple, p.Predefines)
	opts.Logger.Infow("compiler detected",
		logger.FieldCompiler, id,
		logger.FieldTriple, p.Triple,
		logger.FieldCount, len(p.Includes))
	return p, nil
}

type detector struct {
	id   string
	opts Options
	dir  string
	ext  string
}

func (d *detector) probe(name, content string) (string, error) {
	path := filepath.Join(d.dir, name+"."+d.ext)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write probe source")
	}
	return path, nil
}

func (d *detector) run(ctx context.Context, args []string) (string, string, error) {
	d.opts.Logger.Debugw("running compiler", logger.FieldCompiler, d.id, "command", shellquote.Join(args...))
	stdout, stderr, err := d.opts.Runner.Run(ctx, args)
	if err != nil {
		wrapped := errors.Wrapf(errors.ErrDetectFailed, "%s compiler command failed: %v", d.id, err)
		wrapped = errors.WithDetailf(wrapped, "command: %s", shellquote.Join(args...))
		if msg := strings.TrimSpace(string(stdout) + "\n" + string(stderr)); msg != "" {
			wrapped = errors.WithDetail(wrapped, msg)
		}
		return "", "", wrapped
	}
	return string(stdout), string(stderr), nil
}

const (
	searchStart      = "#include <...> search starts here:"
	frameworkSuffix  = " (framework directory)"
	frameworkDirTail = "/Frameworks"
)

// gnu runs `cc -E -dM -v empty.<ext>`: stdout carries the predefines and
// stderr lists the include search path.
func (d *detector) gnu(ctx context.Context, command []string, p *Profile) error {
	empty, err := d.probe("empty", "")
	if err != nil {
		return err
	}
	args := append(append([]string(nil), command...), "-E", "-dM", "-v", empty)
	stdout, stderr, err := d.run(ctx, args)
	if err != nil {
		return err
	}
	p.Predefines = stdout
	p.Includes = d.gnuIncludes(stderr)
	return nil
}

func (d *detector) gnuIncludes(stderr string) []Include {
	i := strings.Index(stderr, searchStart)
	if i < 0 {
		return nil
	}
	var includes []Include
	lines := strings.Split(stderr[i+len(searchStart):], "\n")
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, " ") {
			break
		}
		dir := strings.TrimSuffix(strings.TrimPrefix(line, " "), "\r")
		dir = strings.ReplaceAll(dir, `\`, "/")
		fw := false
		switch {
		case strings.HasSuffix(dir, frameworkSuffix) && len(dir) > len(frameworkSuffix):
			dir = strings.TrimSuffix(dir, frameworkSuffix)
			fw = true
		case strings.HasSuffix(dir, frameworkDirTail) && len(dir) > len(frameworkDirTail):
			fw = true
		}
		// The compiler's own intrinsics headers are replaced by ours.
		if !fw && d.opts.BuiltinIncludeDir != "" && fileExists(filepath.Join(dir, "emmintrin.h")) {
			dir = d.opts.BuiltinIncludeDir
		}
		includes = append(includes, Include{Dir: dir, Framework: fw})
	}
	return includes
}

// msvc compiles the probe with `cl -c -FoNUL detect_vs.<ext>`; the
// predefines start at the first #define line of stdout. Include
// directories come from the INCLUDE environment variable.
func (d *detector) msvc(ctx context.Context, command []string, p *Profile) error {
	src, err := d.probe("detect_vs", msvcProbe())
	if err != nil {
		return err
	}
	args := append(append([]string(nil), command...), "-c", "-FoNUL", src)
	stdout, _, err := d.run(ctx, args)
	if err != nil {
		return err
	}
	stdout = strings.ReplaceAll(stdout, "\r\n", "\n")
	if i := strings.Index(stdout, "\n#define"); i >= 0 {
		p.Predefines = stdout[i+1:]
	}
	for _, dir := range strings.Split(d.opts.Getenv("INCLUDE"), ";") {
		if dir != "" {
			p.Includes = append(p.Includes, Include{Dir: strings.ReplaceAll(dir, `\`, "/")})
		}
	}
	return nil
}

// fixPredefines drops definitions of __has* macros; the frontend provides
// its own builtin versions of them.
func fixPredefines(pd string) string {
	if !strings.Contains(pd, "#define __has") {
		return pd
	}
	lines := strings.SplitAfter(pd, "\n")
	out := lines[:0]
	for _, l := range lines {
		if !strings.HasPrefix(l, "#define __has") {
			out = append(out, l)
		}
	}
	return strings.Join(out, "")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
