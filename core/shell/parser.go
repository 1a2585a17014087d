// Package shell turns raw input lines into commands.
//
// Word splitting follows the POSIX rules for quoting, see
// https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html#tag_18_02
//
// Single quotes preserve their contents literally, double quotes preserve
// their contents but allow \" and \\ escapes, an unquoted backslash escapes
// the following character and unquoted whitespace separates words.
package shell

import (
	"errors"
	"fmt"

	"github.com/anmitsu/go-shlex"
)

var (
	// ErrUnterminatedQuote is returned for a quote that is never closed.
	ErrUnterminatedQuote = shlex.ErrNoClosing

	// ErrTrailingEscape is returned when a line ends in a bare backslash.
	ErrTrailingEscape = shlex.ErrNoEscaped
)

// ParsedCommand is a single line of input split into words.
type ParsedCommand struct {
	// Command is the first word on the line, empty for blank lines.
	Command string
	// Args holds the remaining words in order.
	Args []string
}

// IsEmpty returns true if the line contained no words.
func (p ParsedCommand) IsEmpty() bool {
	return p.Command == ""
}

// Argv returns the command and arguments as a single slice, the way
// os/exec and getopt expect them.
func (p ParsedCommand) Argv() []string {
	return append([]string{p.Command}, p.Args...)
}

// ParseError is returned when a line can't be split into words.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	switch {
	case errors.Is(e.Err, ErrUnterminatedQuote):
		return "unexpected EOF while looking for matching quote"
	case errors.Is(e.Err, ErrTrailingEscape):
		return "unexpected EOF after escape character"
	default:
		return fmt.Sprintf("can't parse line: %v", e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse splits a line into a command and its arguments.
func Parse(line string) (ParsedCommand, error) {
	words, err := shlex.Split(line, true)
	if err != nil {
		return ParsedCommand{}, &ParseError{Line: line, Err: err}
	}

	if len(words) == 0 {
		return ParsedCommand{}, nil
	}

	out := ParsedCommand{Command: words[0]}
	if len(words) > 1 {
		out.Args = words[1:]
	}
	return out, nil
}
