package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewEnumsCmd creates the enums subcommand.
func NewEnumsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enums",
		Short: "List known enum types and their values",
		Long: `Lists every registered enum table: the built-in SystemC ones and any
declared under enums: in ~/.remora/config.yaml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}
			return printEnums(cmd.OutOrStdout(), sess)
		},
	}
}

// printEnums writes every registered enum table. Shared by the enums
// command and the shell.
func printEnums(out io.Writer, sess *session) error {
	enums := sess.registry.Enums()
	if len(enums) == 0 {
		fmt.Fprintln(out, "no enum types registered")
		return nil
	}

	for i, d := range enums {
		if i > 0 {
			fmt.Fprintln(out)
		}
		sign := "signed"
		if !d.Signed {
			sign = "unsigned"
		}
		fmt.Fprintf(out, "%s (%d bytes, %s)\n", sess.paint(titleStyle, d.Name), d.Size, sign)

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, v := range d.Values {
			fmt.Fprintf(w, "  %d\t%s\t%s\n", v.Value, v.Name, v.Doc)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}
