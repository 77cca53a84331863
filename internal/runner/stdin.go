package runner

import (
	"os"

	"golang.org/x/term"

	"github.com/maxvaer/dfuzz/internal/output"
	"github.com/maxvaer/dfuzz/internal/scanner"
)

const keyCtrlC = 0x03

// startStdinToggle puts the terminal in raw mode and toggles a pause gate
// on Enter or Space. When stdin is not a terminal it returns a nil pauser,
// which never blocks. The cleanup function restores the terminal.
func startStdinToggle(console *output.Console) (*scanner.Pauser, func()) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, func() {}
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		console.Warnf("Could not enable raw terminal: %v", err)
		return nil, func() {}
	}
	// Raw mode also drops output processing; keep \n -> \r\n for log lines.
	fixOutputProcessing(fd)

	pauser := scanner.NewPauser()
	go readKeys(fd, oldState, pauser, console)

	return pauser, func() { _ = term.Restore(fd, oldState) }
}

func readKeys(fd int, oldState *term.State, pauser *scanner.Pauser, console *output.Console) {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}

		switch buf[0] {
		case keyCtrlC:
			_ = term.Restore(fd, oldState)
			sendInterrupt()
			return
		case '\r', '\n', ' ':
			if pauser.Toggle() {
				console.Infof("Scan paused, press Enter or Space to resume")
			} else {
				console.Infof("Scan resumed")
			}
		}
	}
}
