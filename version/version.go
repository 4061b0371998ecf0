package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Build information. These variables are set at build time via ldflags.
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version of castxml
	Version = "0.6.4"

	// ClangVersion is the version of the compiler frontend castxml emulates in its predefines
	ClangVersion = "17.0.6"
)

// Output format versions written into the document root element.
const (
	// FormatMinor and FormatPatch follow the epic number in <CastXML format="E.m.p">
	FormatMinor = 1
	FormatPatch = 4

	// GCCXMLVersion and GCCXMLRevision are the legacy <GCC_XML> root attributes
	GCCXMLVersion  = "0.9.0"
	GCCXMLRevision = "1.144"
)

// Info contains version and build information
type Info struct {
	CommitHash   string `json:"commit_hash"`
	BuildTime    string `json:"build_time"`
	Version      string `json:"version"`
	ClangVersion string `json:"clang_version"`
	GoVersion    string `json:"go_version"`
	Platform     string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash:   CommitHash,
		BuildTime:    BuildTime,
		Version:      Version,
		ClangVersion: ClangVersion,
		GoVersion:    runtime.Version(),
		Platform:     fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	return fmt.Sprintf("castxml version %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
}

// Value encodes a version as major*1000000 + minor*1000 + patch, the
// number castxml exposes to preprocessed sources as __castxml__.
func Value(v string) (uint64, error) {
	sv, err := semver.NewVersion(v)
	if err != nil {
		return 0, err
	}
	return sv.Major()*1000000 + sv.Minor()*1000 + sv.Patch(), nil
}

// Parts splits a version into major, minor and patch numbers.
func Parts(v string) (major, minor, patch uint64, err error) {
	sv, err := semver.NewVersion(v)
	if err != nil {
		return 0, 0, 0, err
	}
	return sv.Major(), sv.Minor(), sv.Patch(), nil
}

// FormatString renders the CastXML output format version for an epic number.
func FormatString(epic uint) string {
	return fmt.Sprintf("%d.%d.%d", epic, FormatMinor, FormatPatch)
}
