package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/remora-debug/remora/pkg/bitfield"
	"github.com/remora-debug/remora/pkg/inspect"
	"github.com/remora-debug/remora/pkg/render"
	"github.com/remora-debug/remora/pkg/snapshot"
	"github.com/remora-debug/remora/pkg/typedesc"
)

// NewAnalyzeCmd creates the analyze subcommand.
func NewAnalyzeCmd() *cobra.Command {
	var snapFlags SnapshotFlags

	cmd := &cobra.Command{
		Use:   "analyze <variable>",
		Short: "Show type, value, raw bits and memory for one variable",
		Long: `Breaks one variable down: its type and size, the formatted value,
the raw bit-field underneath (for integer-like types) and a hex dump
of the object's memory.

Examples:
  remora analyze -s capture.yaml counter`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}
			snap, insp, err := sess.openSnapshot(&snapFlags)
			if err != nil {
				return err
			}
			return analyzeVariable(cmd.OutOrStdout(), sess, snap, insp, args[0])
		},
	}

	snapFlags.AddFlags(cmd.Flags())
	return cmd
}

// analyzeVariable writes the full breakdown of one variable. Shared by
// the analyze command and the shell.
func analyzeVariable(out io.Writer, sess *session, snap *snapshot.Snapshot, insp *inspect.Inspector, name string) error {
	v, ok := snap.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown variable %q", name)
	}
	d, err := insp.DescribeType(v.TypeName)
	if err != nil {
		return err
	}

	image := make([]byte, d.Size)
	n, err := snap.ReadMemory(v.Address, image)
	if err != nil {
		return fmt.Errorf("failed to read %d bytes at 0x%x: %w", d.Size, v.Address, err)
	}
	image = image[:n]

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Variable:\t%s\n", v.Name)
	fmt.Fprintf(w, "Type:\t%s (%d bytes, %s)\n", d.Name, d.Size, d.Kind)
	fmt.Fprintf(w, "Address:\t0x%x\n", v.Address)

	if bits, offset, ok := valueBits(d); ok && offset+bitfield.ByteLen(bits.Bits) <= len(image) {
		sign := "unsigned"
		if bits.Signed {
			sign = "signed"
		}
		fmt.Fprintf(w, "Width:\t%d bits, %s\n", bits.Bits, sign)

		lo, hi := bitfield.Bounds(bits.Bits, bits.Signed)
		fmt.Fprintf(w, "Range:\t[%s, %s]\n", lo, hi)

		if raw, err := bitfield.Decode(image[offset:], bits.Bits, false, snap.Order()); err == nil {
			fmt.Fprintf(w, "Raw:\t0x%s\n", raw.Text(16))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\n", sess.paint(titleStyle, "Value:"))
	fmt.Fprintln(out, insp.FormatValue(v.Address, v.TypeName, snap))

	fmt.Fprintf(out, "\n%s\n", sess.paint(titleStyle, "Memory:"))
	fmt.Fprint(out, render.Hexdump(v.Address, image))
	return nil
}

// valueBits locates the bit-field behind an integer-like type: the
// descriptor itself for a plain arbitrary-width integer or enum, the
// first integer field for wrapper objects like sc_uint<W>.
func valueBits(d *typedesc.Descriptor) (*typedesc.Descriptor, int, bool) {
	switch d.Kind {
	case typedesc.KindArbitraryInt, typedesc.KindEnum:
		return d, 0, true
	case typedesc.KindStruct:
		for _, f := range d.Fields {
			if f.Type != nil && f.Type.Kind == typedesc.KindArbitraryInt {
				return f.Type, f.Offset, true
			}
		}
	}
	return nil, 0, false
}
