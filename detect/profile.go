package detect

import (
	"os"
	"path/filepath"
	"time"

	burnt "github.com/BurntSushi/toml"
	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/castxml/errors"
)

// Include is one system include directory of the target compiler.
type Include struct {
	Dir       string `toml:"dir" json:"dir"`
	Framework bool   `toml:"framework,omitempty" json:"framework,omitempty"`
}

// Profile is what detection learned about a target compiler. It is saved
// as TOML so later runs can skip running the compiler.
type Profile struct {
	ID         string    `toml:"id" json:"id"`           // Compiler flavor: gnu, gnu-c, msvc or msvc-c
	Command    []string  `toml:"command" json:"command"` // Compiler command line detection ran
	Triple     string    `toml:"triple" json:"triple"`
	Predefines string    `toml:"predefines" json:"predefines"`
	Includes   []Include `toml:"includes" json:"includes"`
	DetectedAt time.Time `toml:"detected_at" json:"detected_at"`
}

// IsMSVC reports whether the profile describes an MSVC-like compiler.
func (p *Profile) IsMSVC() bool { return p.ID == "msvc" || p.ID == "msvc-c" }

// IsC reports whether the compiler was detected in C mode.
func (p *Profile) IsC() bool { return p.ID == "gnu-c" || p.ID == "msvc-c" }

// Save writes the profile to path, creating parent directories.
func (p *Profile) Save(path string) error {
	data, err := toml.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "failed to marshal target profile")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create profile directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write target profile %s", path)
	}
	return nil
}

// LoadProfile reads a profile saved by Save.
func LoadProfile(path string) (*Profile, error) {
	var p Profile
	md, err := burnt.DecodeFile(path, &p)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read target profile %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		err := errors.NewInvalidOptionError("target profile %s: unknown key %s", path, undecoded[0])
		return nil, err
	}
	if !KnownID(p.ID) {
		err := errors.NewInvalidOptionError("target profile %s: unknown compiler id %q", path, p.ID)
		return nil, errors.WithHint(err, "expected one of gnu, gnu-c, msvc, msvc-c")
	}
	return &p, nil
}
