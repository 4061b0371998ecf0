// Package frontend turns a detected target profile into the argument list
// and builtin predefines for the compiler frontend that produces AST
// documents.
package frontend

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/castxml/detect"
)

// Options are the user's own frontend settings. Explicit values win over
// what the profile implies.
type Options struct {
	Target string   // Explicit -target triple
	Std    string   // Explicit -std= value, without the flag
	Extra  []string // Appended after the generated arguments
}

// Args builds the frontend argument list for p. The compiler's own include
// paths and predefines replace the frontend's, and the language standard
// is inferred from the predefines unless opts.Std is set.
func Args(p *detect.Profile, opts Options) []string {
	var args []string
	switch {
	case opts.Target != "":
		args = append(args, "-target", opts.Target)
	case p != nil && p.Triple != "":
		args = append(args, "-target", p.Triple)
	}
	if opts.Std != "" {
		args = append(args, "-std="+opts.Std)
	}
	if p == nil {
		return append(args, opts.Extra...)
	}

	args = append(args, "-nobuiltininc", "-nostdlibinc")
	for _, inc := range p.Includes {
		if inc.Framework {
			args = append(args, "-iframework", inc.Dir)
		} else {
			args = append(args, "-isystem", inc.Dir)
		}
	}
	args = append(args, "-undef")

	pd := p.Predefines
	if strings.Contains(pd, "#define _MSC_EXTENSIONS ") {
		args = append(args, "-fms-extensions")
	}
	if msc, ok := macroValue(pd, "_MSC_VER"); ok {
		args = append(args, "-fms-compatibility", "-fmsc-version="+msc)
		if opts.Std == "" {
			args = append(args, "-std="+msvcStd(pd, msc))
		}
	} else if opts.Std == "" {
		if std := gnuStd(pd); std != "" {
			args = append(args, "-std="+std)
		}
	}
	return append(args, opts.Extra...)
}

// Quote renders args as a shell command line.
func Quote(args []string) string {
	return shellquote.Join(args...)
}

func msvcStd(pd, msc string) string {
	if !strings.Contains(pd, "#define __cplusplus ") {
		return "c89"
	}
	ver, ok := leadingInt(msc)
	if !ok {
		ver = 1600
	}
	switch {
	case ver >= 1900:
		lang, _ := macroValue(pd, "_MSVC_LANG")
		if n, _ := leadingInt(lang); n >= 201703 {
			return "c++17"
		}
		return "c++14"
	case ver >= 1600:
		return "c++11"
	}
	return "c++98"
}

func gnuStd(pd string) string {
	std := "c"
	if strings.Contains(pd, "#define __GNUC__ ") && !strings.Contains(pd, "#define __STRICT_ANSI__ ") {
		std = "gnu"
	}
	if v, ok := macroValue(pd, "__cplusplus"); ok {
		date, _ := leadingInt(v)
		switch {
		case date >= 201703:
			return std + "++17"
		case date >= 201406:
			return std + "++1z"
		case date >= 201402:
			return std + "++14"
		case date >= 201103:
			return std + "++11"
		}
		return std + "++98"
	}
	if v, ok := macroValue(pd, "__STDC_VERSION__"); ok {
		date, _ := leadingInt(v)
		switch {
		case date >= 201112:
			return std + "11"
		case date >= 199901:
			return std + "99"
		}
		return std + "89"
	}
	return std + "89"
}

// macroValue returns the replacement text of "#define name value". The
// definition must end in a newline.
func macroValue(pd, name string) (string, bool) {
	prefix := "#define " + name + " "
	i := strings.Index(pd, prefix)
	if i < 0 {
		return "", false
	}
	rest := pd[i+len(prefix):]
	end := strings.IndexByte(rest, '\n')
	if end < 0 {
		return "", false
	}
	return strings.TrimSuffix(rest[:end], "\r"), true
}

// leadingInt parses the decimal digits at the start of s, so "201703L"
// reads as 201703.
func leadingInt(s string) (int64, bool) {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == 0 {
		return 0, false
	}
	v, err := strconv.ParseInt(s[:n], 10, 64)
	return v, err == nil
}
