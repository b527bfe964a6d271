package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// confirmDeletion reads a yes/no answer from in. Only "yes" and "y"
// (case-insensitive) proceed.
func confirmDeletion(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "\nThis action cannot be undone.\nProceed with deletion? (yes/no): ")

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "yes", "y":
		return true
	default:
		return false
	}
}

// stdinIsTerminal reports whether a confirmation prompt can be answered.
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// stdoutIsTerminal reports whether the live progress display can render.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
