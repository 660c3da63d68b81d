// Package interactive provides the interactive command-line interface
// for the muxkit bench shell.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/muxkit/muxkit-go/pkg/demux"
	"github.com/muxkit/muxkit-go/pkg/profile"
)

// defaultHold is how long pulse and scan keep an output active when no
// duration is given.
const defaultHold = 100 * time.Millisecond

// Shell handles interactive mode for muxkit-shell.
type Shell struct {
	board *profile.Board
	rl    *readline.Instance
}

// New creates a new interactive shell over a built board.
func New(board *profile.Board) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "muxkit> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Shell{board: board, rl: rl}, nil
}

// Stdout returns a writer that properly coordinates with the readline
// input. Use this for log output to avoid interfering with the prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "state", "st":
			s.cmdState()

		case "on":
			s.cmdOn(args)

		case "off":
			s.cmdOff(args)

		case "pulse":
			s.cmdPulse(args)

		case "scan":
			s.cmdScan(args)

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
Muxkit Bench Commands:
  Outputs:
    state               - Show chip state and the active output
    on <output>         - Activate an output
    off [output]        - Release the active output (or a specific one)
    pulse <output> [ms] - Activate an output briefly (default 100 ms)
    scan [ms]           - Walk all outputs in order (default 100 ms each)

  General:
    help                - Show this help
    quit                - Exit shell

  Output Format:
    Outputs are named by index or pin label: 'on 3' and 'on Y3' are
    the same output.`)
}

// cmdState shows the board state.
func (s *Shell) cmdState() {
	sel := s.board.Selector()

	fmt.Fprintln(s.rl.Stdout(), "\nBoard State")
	fmt.Fprintln(s.rl.Stdout(), "-------------------------------------------")
	fmt.Fprintf(s.rl.Stdout(), "  Profile:  %s\n", s.board.Name())
	fmt.Fprintf(s.rl.Stdout(), "  Chip:     %s\n", s.board.Chip())
	fmt.Fprintf(s.rl.Stdout(), "  Outputs:  %d (%d address lines)\n", sel.OutputCount(), sel.Width())

	if k, ok := sel.Selected(); ok {
		fmt.Fprintf(s.rl.Stdout(), "  Active:   %s\n", s.board.Outputs()[k].Label())
	} else {
		fmt.Fprintf(s.rl.Stdout(), "  Active:   none (chip disabled)\n")
	}
	fmt.Fprintln(s.rl.Stdout())
}

// cmdOn activates an output.
func (s *Shell) cmdOn(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: on <output>")
		fmt.Fprintln(s.rl.Stdout(), "  Example: on 3   (or: on Y3)")
		return
	}

	out, err := resolveOutput(s.board, args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}

	prev, hadPrev := s.board.Selector().Selected()
	if err := out.Activate(); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Activate failed: %v\n", err)
		return
	}

	if hadPrev && prev != out.Index() {
		fmt.Fprintf(s.rl.Stdout(), "%s active (displaced %s)\n", out.Label(), s.board.Outputs()[prev].Label())
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%s active\n", out.Label())
}

// cmdOff releases an output. With no argument it releases whichever
// output is active.
func (s *Shell) cmdOff(args []string) {
	var out *demux.Output

	if len(args) == 0 {
		k, ok := s.board.Selector().Selected()
		if !ok {
			fmt.Fprintln(s.rl.Stdout(), "No output active")
			return
		}
		out = s.board.Outputs()[k]
	} else {
		var err error
		out, err = resolveOutput(s.board, args[0])
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
			return
		}
	}

	wasActive := out.IsActive()
	if err := out.Deactivate(); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Deactivate failed: %v\n", err)
		return
	}

	if !wasActive {
		fmt.Fprintf(s.rl.Stdout(), "%s was not active (no-op)\n", out.Label())
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%s released\n", out.Label())
}

// cmdPulse activates an output briefly.
func (s *Shell) cmdPulse(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: pulse <output> [ms]")
		fmt.Fprintln(s.rl.Stdout(), "  Example: pulse Y3 250")
		return
	}

	out, err := resolveOutput(s.board, args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}

	hold := defaultHold
	if len(args) >= 2 {
		hold, err = parseHold(args[1])
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Invalid duration: %v\n", err)
			return
		}
	}

	if err := out.Activate(); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Activate failed: %v\n", err)
		return
	}
	time.Sleep(hold)
	if err := out.Deactivate(); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Deactivate failed: %v\n", err)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "%s pulsed for %s\n", out.Label(), hold)
}

// cmdScan walks all outputs in index order, holding each briefly.
func (s *Shell) cmdScan(args []string) {
	hold := defaultHold
	if len(args) >= 1 {
		var err error
		hold, err = parseHold(args[0])
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Invalid duration: %v\n", err)
			return
		}
	}

	outs := s.board.Outputs()
	fmt.Fprintf(s.rl.Stdout(), "Scanning %d outputs (%s each)...\n", len(outs), hold)

	var active *demux.Output
	for _, out := range outs {
		if err := out.Activate(); err != nil {
			fmt.Fprintf(s.rl.Stdout(), "  %s: activate failed: %v\n", out.Label(), err)
			continue
		}
		active = out
		fmt.Fprintf(s.rl.Stdout(), "  %s\n", out.Label())
		time.Sleep(hold)
	}

	// Release whichever output survived so the scan ends disabled.
	if active != nil {
		if err := active.Deactivate(); err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Deactivate failed: %v\n", err)
			return
		}
	}

	fmt.Fprintln(s.rl.Stdout(), "Scan complete")
}

// resolveOutput maps an index or pin label ("3", "Y3", "y3") to the
// board's handle for it.
func resolveOutput(board *profile.Board, arg string) (*demux.Output, error) {
	label := strings.ToUpper(arg)
	for _, o := range board.Outputs() {
		if o.Label() == label {
			return o, nil
		}
	}

	k, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("not an output index or label: %s", arg)
	}
	return board.Output(k)
}

// parseHold parses a hold time given in milliseconds.
func parseHold(arg string) (time.Duration, error) {
	ms, err := strconv.Atoi(arg)
	if err != nil {
		return 0, err
	}
	if ms <= 0 {
		return 0, fmt.Errorf("hold must be positive, got %d", ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
