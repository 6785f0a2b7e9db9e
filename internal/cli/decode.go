package cli

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/remora-debug/remora/pkg/bitfield"
)

// NewDecodeCmd creates the decode subcommand.
func NewDecodeCmd() *cobra.Command {
	var width uint
	var signed bool
	var bigEndian bool

	cmd := &cobra.Command{
		Use:   "decode <hex-bytes>...",
		Short: "Decode raw bytes as an arbitrary-width bit-field",
		Long: `Decodes hex bytes as an integer of the given bit width.

The width defaults to every bit of the given bytes. Byte order
defaults to the configured one (little-endian out of the box).

Examples:
  # One byte, unsigned
  remora decode 42

  # The same byte as a signed 8-bit value
  remora decode --signed d6

  # 15 bits out of two little-endian bytes
  remora decode --width 15 --signed 0040`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}

			var raw strings.Builder
			for _, arg := range args {
				raw.WriteString(strings.TrimPrefix(strings.ToLower(arg), "0x"))
			}
			data, err := hex.DecodeString(raw.String())
			if err != nil {
				return fmt.Errorf("invalid hex input: %w", err)
			}
			if len(data) == 0 {
				return fmt.Errorf("no bytes to decode")
			}

			w := width
			if w == 0 {
				w = uint(len(data)) * 8
			}

			order := sess.cfg.Order()
			if bigEndian {
				order = binary.BigEndian
			}

			v, err := bitfield.Decode(data, w, signed, order)
			if err != nil {
				return err
			}

			sign := "unsigned"
			if signed {
				sign = "signed"
			}
			endian := "little-endian"
			if order == binary.BigEndian {
				endian = "big-endian"
			}
			lo, hi := bitfield.Bounds(w, signed)
			raw16, _ := bitfield.Decode(data, w, false, order)

			cmd.Printf("value: %s\n", v)
			cmd.Printf("raw:   0x%s\n", raw16.Text(16))
			cmd.Printf("bits:  %d %s, %s\n", w, sign, endian)
			cmd.Printf("range: [%s, %s]\n", lo, hi)
			return nil
		},
	}

	cmd.Flags().UintVarP(&width, "width", "w", 0, "Bit width (defaults to 8x the byte count)")
	cmd.Flags().BoolVar(&signed, "signed", false, "Two's-complement interpretation")
	cmd.Flags().BoolVar(&bigEndian, "big-endian", false, "Treat the bytes as big-endian")
	return cmd
}
