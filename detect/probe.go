package detect

import (
	"strings"
)

// msvcMacros are the predefined macros an MSVC-like compiler is asked to
// report. MSVC has no option to dump its predefines, so the probe source
// prints each one with #pragma message.
var msvcMacros = []string{
	"__AVX__", "__AVX2__", "_ATL_VER", "_CHAR_UNSIGNED", "_CPPRTTI", "_CPPUNWIND",
	"_DEBUG", "_DLL", "_INTEGRAL_MAX_BITS", "_MANAGED", "_MFC_VER", "_MSC_BUILD",
	"_MSC_EXTENSIONS", "_MSC_FULL_VER", "_MSC_VER", "_MSVC_LANG", "_MT", "_M_ALPHA",
	"_M_AMD64", "_M_ARM", "_M_ARM_FP", "_M_CEE", "_M_CEE_PURE", "_M_CEE_SAFE",
	"_M_IA64", "_M_IX86", "_M_IX86_FP", "_M_MPPC", "_M_MRX000", "_M_PPC", "_M_X64",
	"_NATIVE_WCHAR_T_DEFINED", "_OPENMP", "_VC_NODEFAULTLIB", "_WCHAR_T_DEFINED",
	"_WIN32", "_WIN64", "_Wp64", "__CLR_VER", "__MSVC_RUNTIME_CHECKS", "__cplusplus",
	"__cplusplus_cli", "__cplusplus_winrt",
}

// msvcProbe renders the source compiled by `cl -c -FoNUL`. Its diagnostics
// output starts with an empty message line followed by one #define line per
// defined macro.
func msvcProbe() string {
	var b strings.Builder
	b.WriteString("#define CASTXML_STR0(x) #x\n")
	b.WriteString("#define CASTXML_STR(x) CASTXML_STR0(x)\n")
	b.WriteString("#define CASTXML_DEFINE(x) \"#define \" #x \" \" CASTXML_STR(x)\n\n")
	b.WriteString("#pragma message(\"\")\n")
	for _, m := range msvcMacros {
		b.WriteString("#ifdef " + m + "\n")
		b.WriteString("# pragma message(CASTXML_DEFINE(" + m + "))\n")
		b.WriteString("#endif\n")
	}
	b.WriteString("#pragma message(\"class type_info;\")\n")
	return b.String()
}
