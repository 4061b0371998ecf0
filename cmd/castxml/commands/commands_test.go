package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/castxml/config"
	"github.com/teranos/castxml/detect"
	"github.com/teranos/castxml/errors"
)

const document = `
schema: "1.0"
target: {triple: x86_64-pc-linux-gnu}
files:
  - {id: f1, name: a.h}
types:
  - {id: t1, class: Builtin, name: int, size: 32, align: 32}
decls:
  - {id: d0, kind: TranslationUnit, members: [d1, d2]}
  - {id: d1, kind: Namespace, name: ns, members: [d3]}
  - {id: d2, kind: Var, name: x, type: t1, file: f1, line: 1, mangled: x}
  - {id: d3, kind: Var, name: y, type: t1, file: f1, line: 2, mangled: _ZN2ns1yE}
root: d0
`

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	m.Run()
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "castxml",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Setup(cmd)
		},
	}
	root.PersistentFlags().CountP("verbose", "v", "")
	root.PersistentFlags().String("config", "", "")
	for _, c := range []*cobra.Command{GenerateCmd, DetectCmd, FrontendCmd, InspectCmd, ConfigCmd, VersionCmd} {
		root.AddCommand(c)
	}
	return root
}

// resetFlags restores every flag of cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes castxml with args in an isolated config environment.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	work := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	chdir(t, work)
	config.Reset()

	root := newRoot()
	resetFlags(root)
	t.Cleanup(func() {
		resetFlags(root)
		config.Reset()
	})

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(WithDefaultCommand(root, args))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tu.yaml")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o644))
	return path
}

func TestWithDefaultCommand(t *testing.T) {
	root := newRoot()
	defer resetFlags(root)

	tests := []struct {
		args []string
		want []string
	}{
		{nil, nil},
		{[]string{"tu.yaml"}, []string{"generate", "tu.yaml"}},
		{[]string{"-o", "out.xml", "tu.yaml"}, []string{"generate", "-o", "out.xml", "tu.yaml"}},
		{[]string{"-v", "detect", "gnu"}, []string{"-v", "detect", "gnu"}},
		{[]string{"inspect", "tu.yaml"}, []string{"inspect", "tu.yaml"}},
		{[]string{"help", "generate"}, []string{"help", "generate"}},
		{[]string{"--help"}, []string{"--help"}},
		{[]string{"-v"}, []string{"-v"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WithDefaultCommand(root, tt.args), "%v", tt.args)
	}
}

func TestGenerate_ToStdout(t *testing.T) {
	path := writeDocument(t)
	stdout, _, err := run(t, path, "-o", "-", "--start", "ns")
	require.NoError(t, err)
	assert.Equal(t, `<?xml version="1.0"?>
<CastXML format="1.1.4">
  <Namespace id="_1" name="ns" context="_2" members="_3"/>
  <Variable id="_3" name="y" type="_4" context="_1" location="f1:2" file="f1" line="2" mangled="_ZN2ns1yE"/>
  <FundamentalType id="_4" name="int" size="32" align="32"/>
  <Namespace id="_2" name="::"/>
  <File id="f1" name="a.h"/>
</CastXML>
`, stdout)
}

func TestGenerate_ToFile(t *testing.T) {
	path := writeDocument(t)
	_, stderr, err := run(t, "generate", path, "--gccxml")
	require.NoError(t, err)

	data, err := os.ReadFile(path + ".xml")
	require.NoError(t, err)
	assert.Contains(t, string(data), `<GCC_XML version="0.9.0" cvs_revision="1.144">`)
	assert.Contains(t, stderr, "gccxml "+path+".xml")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary files left behind")
}

func TestGenerate_ConfigAndEnv(t *testing.T) {
	path := writeDocument(t)
	cfgPath := filepath.Join(t.TempDir(), "castxml.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[output]\nepic_version = 3\nfile = \"-\"\n"), 0o644))
	t.Setenv("CASTXML_OUTPUT_QUALIFIED_IDS", "numeric")

	stdout, _, err := run(t, "--config", cfgPath, path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `<CastXML format="3.1.4">`)
}

func TestGenerate_Errors(t *testing.T) {
	_, _, err := run(t, "generate", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeDocument(t)
	_, _, err = run(t, path, "--gccxml", "--qualified-ids", "numeric")
	assert.True(t, errors.Is(err, errors.ErrInvalidOption))

	_, _, err = run(t, path, "--format", "json")
	assert.True(t, errors.Is(err, errors.ErrInvalidOption))

	_, _, err = run(t, path, "-o", "-", "--watch")
	assert.True(t, errors.Is(err, errors.ErrInvalidOption))
}

func TestInspect(t *testing.T) {
	path := writeDocument(t)
	stdout, _, err := run(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "x86_64-pc-linux-gnu (C++)")
	assert.Contains(t, stdout, "declarations: 4")

	stdout, _, err = run(t, "inspect", path, "--json")
	require.NoError(t, err)
	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Len(t, results, 1)
	assert.Equal(t, path, results[0]["path"])
	assert.Equal(t, float64(4), results[0]["decls"])
}

func TestDetect_Errors(t *testing.T) {
	_, _, err := run(t, "detect", "gnu")
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))

	_, _, err = run(t, "detect", "gnu", "--command", "g++", "--", "clang++")
	assert.True(t, errors.Is(err, errors.ErrInvalidOption))

	_, _, err = run(t, "detect", "icc", "--", "icc")
	assert.True(t, errors.Is(err, errors.ErrInvalidOption))
}

func TestFrontend(t *testing.T) {
	profilePath := filepath.Join(t.TempDir(), "gcc.toml")
	p := &detect.Profile{
		ID:         "gnu",
		Command:    []string{"g++"},
		Triple:     "x86_64-unknown-linux-gnu",
		Predefines: "#define __GNUC__ 12\n#define __cplusplus 201703L\n",
		Includes:   []detect.Include{{Dir: "/usr/include"}},
	}
	require.NoError(t, p.Save(profilePath))

	stdout, _, err := run(t, "frontend", "--profile", profilePath, "--", "in.cxx")
	require.NoError(t, err)
	assert.Equal(t, "-target x86_64-unknown-linux-gnu -nobuiltininc -nostdlibinc -isystem /usr/include -undef -std=gnu++17 in.cxx\n", stdout)

	stdout, _, err = run(t, "frontend", "--profile", profilePath, "--predefines")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "#define __castxml__ "))
	assert.Contains(t, stdout, "#define __GNUC__ 12\n")

	stdout, _, err = run(t, "frontend", "--std", "c++11")
	require.NoError(t, err)
	assert.Equal(t, "-std=c++11\n", stdout)
}

func TestConfigCommands(t *testing.T) {
	stdout, _, err := run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "format = 'castxml'")

	stdout, _, err = run(t, "config", "show", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"qualified_ids": "suffix"`)

	stdout, _, err = run(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration is valid")

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[output]\nformat = \"json\"\n"), 0o644))
	_, _, err = run(t, "config", "validate", bad)
	assert.True(t, errors.Is(err, errors.ErrInvalidOption))

	stdout, _, err = run(t, "config", "where")
	require.NoError(t, err)
	assert.Contains(t, stdout, "/etc/castxml/config.toml")
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "castxml version")
	assert.Contains(t, stdout, "CastXML 1.1.4")

	stdout, _, err = run(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"clang_version"`)
}

// chdir changes the working directory to dir for the duration of the test,
// like testing.T.Chdir (Go 1.24+), which this toolchain does not provide.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			panic("testing: chdir: restore working directory: " + err.Error())
		}
	})
}
