package core

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/josephlewis42/tinysh/core/fsutil"
	"github.com/josephlewis42/tinysh/core/logger"
	"github.com/josephlewis42/tinysh/core/shell"
)

// LookPath resolves a command name to an executable. If name contains a
// slash, it is tried directly relative to the working directory and the
// index is not consulted.
func (s *Shell) LookPath(name string) (string, error) {
	if strings.Contains(name, "/") {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.wd, path)
		}

		if err := fsutil.FindExecutable(s.fs, path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", &CommandNotFoundError{Command: name}
			}

			var pathErr *fs.PathError
			if errors.As(err, &pathErr) {
				err = pathErr.Err
			}
			return "", &ExecError{Command: name, Err: err}
		}
		return path, nil
	}

	if path, ok := s.Index.Lookup(name); ok {
		return path, nil
	}
	return "", &CommandNotFoundError{Command: name}
}

// launch runs an external program in the foreground and waits for it to
// exit. The program's exit status is stored in LastStatus, only a failure to
// start it is returned as an error.
func (s *Shell) launch(ctx context.Context, path string, cmd shell.ParsedCommand) error {
	c := exec.CommandContext(ctx, path, cmd.Args...)
	c.Args[0] = cmd.Command
	c.Dir = s.wd
	c.Env = s.Env.Environ()
	c.Stdin = s.childStdin()
	c.Stdout = s.Stdout
	c.Stderr = s.Stderr

	err := c.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		s.LastStatus = 0
	case errors.As(err, &exitErr):
		s.LastStatus = waitStatus(exitErr)
	default:
		return &ExecError{Command: cmd.Command, Err: err}
	}

	s.record(&logger.RunCommand{
		Command:             cmd.Argv(),
		ResolvedCommandPath: path,
		ExitStatus:          s.LastStatus,
	})
	return nil
}

// childStdin returns the reader children inherit. Only files are passed
// through, anything else would have to be copied and the copy could consume
// lines meant for the shell.
func (s *Shell) childStdin() io.Reader {
	if f, ok := s.Stdin.(*os.File); ok {
		return f
	}
	return nil
}

func waitStatus(err *exec.ExitError) int {
	if ws, ok := err.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return err.ExitCode()
}
