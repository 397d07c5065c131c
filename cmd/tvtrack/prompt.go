package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	errNotNumber        = errors.New("not a number")
	errInvalidSelection = errors.New("invalid selection")
)

// prompter reads line-oriented answers from the user.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask prints label and returns the trimmed answer. io.EOF means input ended.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		fmt.Fprintln(p.out)
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) askInt(label string) (int, error) {
	s, err := p.ask(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, errNotNumber)
	}
	return n, nil
}

// pick asks for a 1-based index into a list of n items and returns it
// 0-based.
func (p *prompter) pick(label string, n int) (int, error) {
	choice, err := p.askInt(label)
	if err != nil {
		return 0, err
	}
	if choice < 1 || choice > n {
		return 0, fmt.Errorf("%d: %w", choice, errInvalidSelection)
	}
	return choice - 1, nil
}

func (p *prompter) confirm(label string) (bool, error) {
	s, err := p.ask(label + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
