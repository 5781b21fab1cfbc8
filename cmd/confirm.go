package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// terminalConfirmer asks on the terminal before a destructive action.
// Without a terminal it declines unless assumeYes is set.
type terminalConfirmer struct {
	assumeYes bool
	in        io.Reader
	out       io.Writer
	isTTY     func() bool
}

func newTerminalConfirmer(assumeYes bool, out io.Writer) terminalConfirmer {
	return terminalConfirmer{
		assumeYes: assumeYes,
		in:        os.Stdin,
		out:       out,
		isTTY:     func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

func (c terminalConfirmer) Confirm(ctx context.Context, message string) bool {
	if c.assumeYes {
		return true
	}
	if !c.isTTY() {
		log.Warn().Msg("Not a terminal and --yes not given, declining")
		return false
	}

	answer := make(chan string, 1)
	go func() {
		fmt.Fprintf(c.out, "%s [y/N]: ", message)
		line, _ := bufio.NewReader(c.in).ReadString('\n')
		answer <- line
	}()

	select {
	case <-ctx.Done():
		return false
	case line := <-answer:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}
