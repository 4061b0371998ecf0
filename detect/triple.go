package detect

import (
	"runtime"
	"strings"
)

// triple is a target triple split into arch-vendor-os[-environment].
type triple struct {
	arch, vendor, os, env string
}

func parseTriple(s string) triple {
	parts := strings.SplitN(s, "-", 4)
	for len(parts) < 3 {
		parts = append(parts, "unknown")
	}
	t := triple{arch: parts[0], vendor: parts[1], os: parts[2]}
	if len(parts) == 4 {
		t.env = parts[3]
	}
	return t
}

func (t triple) String() string {
	s := t.arch + "-" + t.vendor + "-" + t.os
	if t.env != "" {
		s += "-" + t.env
	}
	return s
}

// HostTriple approximates the default target of a compiler built for the
// running platform.
func HostTriple() string {
	arch := map[string]string{
		"amd64":   "x86_64",
		"386":     "i386",
		"arm64":   "aarch64",
		"arm":     "arm",
		"ppc64le": "powerpc64le",
		"riscv64": "riscv64",
		"s390x":   "s390x",
	}[runtime.GOARCH]
	if arch == "" {
		arch = runtime.GOARCH
	}
	switch runtime.GOOS {
	case "darwin":
		return arch + "-apple-darwin"
	case "windows":
		return arch + "-pc-windows-msvc"
	case "linux":
		return arch + "-unknown-linux-gnu"
	}
	return arch + "-unknown-" + runtime.GOOS
}

// tripleFor adjusts base to the architecture and platform the compiler's
// predefined macros reveal.
func tripleFor(base, predefines string) string {
	t := parseTriple(base)
	has := func(s string) bool { return strings.Contains(predefines, s) }
	switch {
	case has("#define __x86_64__ 1"), has("#define _M_X64 "):
		t.arch = "x86_64"
	case has("#define __amd64__ 1"), has("#define _M_AMD64 "):
		t.arch = "amd64"
	case has("#define __i386__ 1"), has("#define _M_IX86 "):
		t.arch = "i386"
	}
	if has("#define _WIN32 1") {
		t.vendor, t.os = "pc", "windows"
	}
	if has("#define __MINGW32__ 1") {
		t.env = "gnu"
	}
	return t.String()
}
