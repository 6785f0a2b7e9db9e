package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	remoraerrors "github.com/remora-debug/remora/internal/errors"
	"github.com/remora-debug/remora/pkg/inspect"
	"github.com/remora-debug/remora/pkg/snapshot"
)

var errShellExit = errors.New("exit")

// NewShellCmd creates the shell subcommand for interactive inspection.
func NewShellCmd() *cobra.Command {
	var snapFlags SnapshotFlags

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Open an interactive shell on a snapshot",
		Long: `Opens a REPL over one snapshot. Commands render variables on the
spot; history persists across sessions in ~/.remora/history.

Commands:
  print <var>    - Render a variable (alias: p)
  analyze <var>  - Type, raw bits and memory of a variable (alias: a)
  vars           - List snapshot variables
  types          - List registered type names
  enums          - List enum tables

Meta-commands:
  .help       - Show help message
  .exit       - Exit shell (or Ctrl+D)
  .quit       - Exit shell

Examples:
  remora shell -s capture.yaml
  remora> print counter
  counter = sc_uint<8>(66)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := newSession()
			if err != nil {
				return err
			}
			snap, insp, err := sess.openSnapshot(&snapFlags)
			if err != nil {
				return err
			}
			return runShell(sess, snap, insp)
		},
	}

	snapFlags.AddFlags(cmd.Flags())
	return cmd
}

// runShell runs the interactive loop with readline support.
func runShell(sess *session, snap *snapshot.Snapshot, insp *inspect.Inspector) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "remora> ",
		HistoryFile:     sess.loader.HistoryPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer remoraerrors.DeferClose(sess.log, rl, "failed to close line editor")

	fmt.Printf("Snapshot %s: %d variables, %d segments, %s.\n",
		snap.ID, len(snap.Variables), len(snap.Segments), orderName(snap))
	fmt.Println(sess.paint(hintStyle, "Type '.exit' to quit, '.help' for help."))
	fmt.Println()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				// Ctrl+C: Drop the current line.
				continue
			} else if errors.Is(err, io.EOF) {
				// Ctrl+D: Exit.
				fmt.Println()
				break
			}
			return fmt.Errorf("readline error: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := evalShellLine(sess, snap, insp, line); err != nil {
			if errors.Is(err, errShellExit) {
				break
			}
			fmt.Println(sess.paint(errorStyle, fmt.Sprintf("Error: %v", err)))
		}
	}

	return nil
}

// evalShellLine dispatches one shell input line.
func evalShellLine(sess *session, snap *snapshot.Snapshot, insp *inspect.Inspector, line string) error {
	parts := strings.Fields(line)

	switch parts[0] {
	case ".exit", ".quit":
		return errShellExit

	case ".help":
		fmt.Println("Commands:")
		fmt.Println("  print <var>    - Render a variable (alias: p)")
		fmt.Println("  analyze <var>  - Type, raw bits and memory of a variable (alias: a)")
		fmt.Println("  vars           - List snapshot variables")
		fmt.Println("  types          - List registered type names")
		fmt.Println("  enums          - List enum tables")
		fmt.Println()
		fmt.Println("Meta-commands:")
		fmt.Println("  .help       - Show this help message")
		fmt.Println("  .exit       - Exit shell (or Ctrl+D)")
		fmt.Println("  .quit       - Exit shell")
		return nil

	case "print", "p":
		if len(parts) != 2 {
			return fmt.Errorf("usage: print <variable>")
		}
		fmt.Printf("%s = %s\n", sess.paint(varStyle, parts[1]), renderVariable(snap, insp, parts[1]))
		return nil

	case "analyze", "a":
		if len(parts) != 2 {
			return fmt.Errorf("usage: analyze <variable>")
		}
		return analyzeVariable(os.Stdout, sess, snap, insp, parts[1])

	case "vars":
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tADDRESS\tTYPE")
		for _, v := range snap.Variables {
			fmt.Fprintf(w, "%s\t0x%x\t%s\n", v.Name, v.Address, v.TypeName)
		}
		return w.Flush()

	case "types":
		for _, name := range sess.registry.TypeNames() {
			fmt.Println(name)
		}
		return nil

	case "enums":
		return printEnums(os.Stdout, sess)

	default:
		if strings.HasPrefix(parts[0], ".") {
			return fmt.Errorf("unknown meta-command: %s (try .help)", parts[0])
		}
		return fmt.Errorf("unknown command: %s (try .help)", parts[0])
	}
}

func orderName(snap *snapshot.Snapshot) string {
	if snap.ByteOrder == "big" {
		return "big-endian"
	}
	return "little-endian"
}
