package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/castxml/display"
	"github.com/teranos/castxml/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show castxml version information",
	Long:  `Display version, output format versions, build time, commit hash and platform information for the castxml binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		out := cmd.OutOrStdout()

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(out, info)
		}
		fmt.Fprintln(out, info.String())
		fmt.Fprintf(out, "Output format: CastXML %s, GCC-XML %s\n", version.FormatString(1), version.GCCXMLVersion)
		fmt.Fprintf(out, "Frontend: clang %s\n", info.ClangVersion)
		fmt.Fprintf(out, "Platform: %s\n", info.Platform)
		fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
		return nil
	},
}

func init() {
	VersionCmd.Flags().BoolP("json", "j", false, "Output version info as JSON")
}
