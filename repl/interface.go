package repl

import (
	"bufio"
	"fmt"
	"os"
)

// RunCLI runs the line-oriented REPL: each line read from stdin is
// either a ":"-prefixed meta-command or raw m4 source fed straight to
// the session, with the driver's accumulated output printed after
// every line.
func RunCLI(s *Session) error {
	scanner := bufio.NewScanner(os.Stdin)
	var printed int

	for {
		fmt.Print("m4go> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()

		result := dispatchMeta(s, line)
		if result.forwards {
			if err := s.Feed(line); err != nil {
				return fmt.Errorf("feeding input: %w", err)
			}
			out := s.Output()
			fmt.Print(out[printed:])
			printed = len(out)
			continue
		}

		if result.text != "" {
			fmt.Print(result.text)
		}
		if result.quit {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return s.Close()
}

// RunTUI runs the tview-based interactive session.
func RunTUI(s *Session) error {
	tui := NewTUI(s)
	return tui.Run()
}
