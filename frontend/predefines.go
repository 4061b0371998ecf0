package frontend

import (
	"fmt"
	"strings"

	"github.com/teranos/castxml/detect"
	"github.com/teranos/castxml/version"
)

// Language is the subset of the frontend's language mode that decides
// which compatibility shims the predefines need.
type Language struct {
	CPlusPlus11 bool
	MSCompatVer int64 // _MSC_VER being emulated, 0 when not emulating MSVC
	HasFloat128 bool  // The target already provides __float128
}

// LanguageFor derives the language mode the frontend ends up in for args,
// as produced by Args.
func LanguageFor(args []string) Language {
	var lang Language
	for _, a := range args {
		switch {
		case strings.HasPrefix(a, "-fmsc-version="):
			lang.MSCompatVer, _ = leadingInt(strings.TrimPrefix(a, "-fmsc-version="))
		case strings.HasPrefix(a, "-std="):
			std := strings.TrimPrefix(a, "-std=")
			lang.CPlusPlus11 = strings.Contains(std, "++") && !strings.HasSuffix(std, "++98") && !strings.HasSuffix(std, "++03")
		}
	}
	return lang
}

// Predefines renders the builtin macro text the frontend should use in
// place of its own. Without a profile only the castxml identification
// macros are produced.
func Predefines(p *detect.Profile, lang Language) (string, error) {
	var b strings.Builder
	v, err := version.Value(version.Version)
	if err != nil {
		return "", err
	}
	major, minor, patch, err := version.Parts(version.ClangVersion)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "#define __castxml__ %d\n", v)
	fmt.Fprintf(&b, "#define __castxml_clang_major__ %d\n", major)
	fmt.Fprintf(&b, "#define __castxml_clang_minor__ %d\n", minor)
	fmt.Fprintf(&b, "#define __castxml_clang_patchlevel__ %d\n", patch)
	if p == nil {
		return b.String(), nil
	}

	pd := p.Predefines
	b.WriteString(pd)
	gnu := isActualGNU(pd)

	// The frontend lacks this GNU builtin; tolerate uses in function bodies.
	if gnu {
		b.WriteString("\n#define __builtin_va_arg_pack() 0\n#define __builtin_va_arg_pack_len() 1\n")
	}
	if gnu && !lang.HasFloat128 && hasAny(pd, "__i386__", "__x86_64__", "__ia64__") {
		b.WriteString("\ntypedef struct __castxml__float128_s { " +
			"  char x[16] __attribute__((aligned(16))); " +
			"} __castxml__float128;\n" +
			"#define __float128 __castxml__float128\n")
	}
	if lang.MSCompatVer >= 1900 && lang.CPlusPlus11 {
		b.WriteString("\ntemplate <typename T> T&& __castxml__declval() noexcept;\n" +
			"template <typename To, typename Fr, typename =\n" +
			"  decltype(__castxml__declval<To>() = __castxml__declval<Fr>())>\n" +
			"  static char (&__castxml__is_assignable_check(int))[1];\n" +
			"template <typename, typename>\n" +
			"  static char (&__castxml__is_assignable_check(...))[2];\n" +
			"#define __is_assignable(_To,_Fr) \\\n" +
			"  (sizeof(__castxml__is_assignable_check<_To,_Fr>(0)) == \\\n" +
			"   sizeof(char(&)[1]))\n")
	}
	// glibc math inlines use a GNU extension the frontend does not implement.
	if gnu && hasAny(pd, "__i386__") && hasAny(pd, "__OPTIMIZE__") && !hasAny(pd, "__NO_MATH_INLINES") {
		b.WriteString("\n#define __NO_MATH_INLINES 1\n")
	}
	return b.String(), nil
}

// isActualGNU reports whether pd came from GCC itself rather than a
// compiler imitating it.
func isActualGNU(pd string) bool {
	return hasAny(pd, "__GNUC__") && !hasAny(pd, "__clang__", "__INTEL_COMPILER", "__CUDACC__", "__PGI")
}

func hasAny(pd string, names ...string) bool {
	for _, n := range names {
		if strings.Contains(pd, "#define "+n+" ") {
			return true
		}
	}
	return false
}
