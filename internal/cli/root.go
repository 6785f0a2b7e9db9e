package cli

import (
	"github.com/spf13/cobra"

	"github.com/remora-debug/remora/pkg/version"
)

var (
	logLevel string
	noColor  bool
)

var rootCmd = &cobra.Command{
	Use:   "remora",
	Short: "Remora - render debugger values from memory snapshots",
	Long: `Format raw memory as typed values, the way a debugger pretty-printer would.

Remora reads a memory snapshot (raw byte segments plus variable addresses)
and type descriptions, then renders each variable as structured text:
arbitrary-width integers (SystemC sc_uint<W>/sc_int<W>), structs with
inherited bases and access levels, enums with named values.

Key capabilities:
- Bit-field decoding at any width, signed or unsigned, either byte order
- Layout walking across base classes, including multiple inheritance
- Summary types: sc_uint<8> prints as sc_uint<8>(66), not as its guts
- Bad input degrades to inline markers like <unknown type>, never a crash`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(NewRenderCmd())
	rootCmd.AddCommand(NewAnalyzeCmd())
	rootCmd.AddCommand(NewDecodeCmd())
	rootCmd.AddCommand(NewEnumsCmd())
	rootCmd.AddCommand(NewShellCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.String())
		},
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
