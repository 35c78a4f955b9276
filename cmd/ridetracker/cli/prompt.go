package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ttyConfirmer asks on the terminal. Without a terminal it declines
// unless the user passed --yes.
type ttyConfirmer struct {
	in         io.Reader
	out        io.Writer
	fd         int
	assumeYes  bool
	isTerminal func(fd int) bool
}

func newTTYConfirmer(assumeYes bool) *ttyConfirmer {
	return &ttyConfirmer{
		in:         os.Stdin,
		out:        os.Stderr,
		fd:         int(os.Stdin.Fd()),
		assumeYes:  assumeYes,
		isTerminal: term.IsTerminal,
	}
}

func (c *ttyConfirmer) Confirm(ctx context.Context, question string) bool {
	if c.assumeYes {
		return true
	}
	if !c.isTerminal(c.fd) {
		fmt.Fprintln(c.out, "stdin is not a terminal; pass --yes to confirm")
		return false
	}

	fmt.Fprintf(c.out, "%s [s/N]: ", question)
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}
