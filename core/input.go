package core

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/tinysh/core/config"
)

// ErrInterrupt is returned by a LineReader when the user cancels the
// current line with Ctrl-C.
var ErrInterrupt = readline.ErrInterrupt

// LineReader reads one line of input at a time.
type LineReader interface {
	// ReadLine shows the prompt and returns the next line without its line
	// terminator. It returns io.EOF once input is exhausted.
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewLineReader picks a reader for stdin based on the line editing mode.
func NewLineReader(mode string, stdin io.Reader, stdout, stderr io.Writer) (LineReader, error) {
	switch mode {
	case config.ModeNever:
		return newPlainReader(stdin, stdout), nil
	case config.ModeAlways:
		return newTerminalReader(stdin, stdout, stderr, true)
	default:
		if isTerminal(stdin) {
			return newTerminalReader(stdin, stdout, stderr, false)
		}
		return newPlainReader(stdin, stdout), nil
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && readline.IsTerminal(int(f.Fd()))
}

type plainReader struct {
	in  *bufio.Reader
	out io.Writer
}

func newPlainReader(stdin io.Reader, stdout io.Writer) *plainReader {
	return &plainReader{
		in:  bufio.NewReader(stdin),
		out: stdout,
	}
}

func (p *plainReader) ReadLine(prompt string) (string, error) {
	if _, err := io.WriteString(p.out, prompt); err != nil {
		return "", err
	}
	if f, ok := p.out.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return "", err
		}
	}

	line, err := p.in.ReadString('\n')
	switch {
	case err == io.EOF && line != "":
		// Unterminated last line, the next call reports EOF.
	case err != nil:
		return "", err
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

func (p *plainReader) Close() error {
	return nil
}

type terminalReader struct {
	rl *readline.Instance
}

func newTerminalReader(stdin io.Reader, stdout, stderr io.Writer, force bool) (*terminalReader, error) {
	cfg := &readline.Config{
		Stdin:               readline.NewCancelableStdin(stdin),
		Stdout:              stdout,
		Stderr:              stderr,
		HistoryLimit:        -1,
		ForceUseInteractive: force,
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &terminalReader{rl: rl}, nil
}

func (t *terminalReader) ReadLine(prompt string) (string, error) {
	t.rl.SetPrompt(prompt)
	return t.rl.Readline()
}

func (t *terminalReader) Close() error {
	return t.rl.Close()
}
