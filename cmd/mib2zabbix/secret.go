package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func readSecret(prompt string) ([]byte, error) {
	if !stdinIsTerminal() {
		return nil, errors.New("cannot prompt for a secret: standard input is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)
	return term.ReadPassword(int(os.Stdin.Fd()))
}
