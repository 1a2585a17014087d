package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/josephlewis42/tinysh/core/config"
	"github.com/josephlewis42/tinysh/core/fsutil"
	"github.com/josephlewis42/tinysh/core/logger"
	"github.com/josephlewis42/tinysh/core/pathindex"
	"github.com/josephlewis42/tinysh/core/shell"
	"github.com/spf13/afero"
)

// Options configure a new Shell. Zero values fall back to the process's own
// stdio, environment and working directory.
type Options struct {
	Config *config.Configuration

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Environ is the initial environment as KEY=value pairs.
	Environ []string
	// Workdir is the initial working directory.
	Workdir string

	// Fs is used to index the search path and resolve directories.
	Fs afero.Fs
	// Events receives the session's event log.
	Events *logger.Logger
	// Log receives diagnostics.
	Log *log.Logger
}

// Shell is a single interactive session.
type Shell struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Env   *Env
	Index *pathindex.Index

	// LastStatus holds the exit status of the most recent command.
	LastStatus int

	fs      afero.Fs
	prompt  string
	homeEnv string
	reader  LineReader
	events  *logger.SessionLogger
	log     *log.Logger

	// wd is the canonical working directory, logicalWd the same directory
	// as the user reached it.
	wd        string
	logicalWd string
}

// NewShell sets up a session: it copies the environment, resolves the
// working directory and indexes the search path.
func NewShell(opts Options) (*Shell, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Shell{
		Stdin:   opts.Stdin,
		Stdout:  opts.Stdout,
		Stderr:  opts.Stderr,
		fs:      opts.Fs,
		prompt:  cfg.Prompt,
		homeEnv: cfg.HomeEnv,
		log:     opts.Log,
	}

	if s.Stdin == nil {
		s.Stdin = os.Stdin
	}
	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}
	if s.Stderr == nil {
		s.Stderr = os.Stderr
	}
	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.log == nil {
		s.log = log.New(s.Stderr, "[tinysh] ", 0)
	}

	events := opts.Events
	if events == nil {
		events = logger.NewNopLogger()
	}
	s.events = events.NewSession()

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	s.Env = NewEnvFromList(environ)

	searchPath, ok := s.Env.LookupEnv(cfg.PathEnv)
	if !ok {
		return nil, fmt.Errorf("$%s: %w", cfg.PathEnv, ErrSearchPathUnset)
	}

	if err := s.initWorkdir(opts.Workdir); err != nil {
		return nil, err
	}

	s.Index = pathindex.Build(s.fs, searchPath,
		pathindex.WithWorkdir(s.wd),
		pathindex.WithSkipHandler(func(dir string, err error) {
			s.log.Printf("skipping search path directory %q: %v", dir, err)
			s.record(&logger.DirectorySkipped{Dir: dir, Error: err.Error()})
		}),
	)

	reader, err := NewLineReader(cfg.LineEditing, s.Stdin, s.Stdout, s.Stderr)
	if err != nil {
		return nil, err
	}
	s.reader = reader

	return s, nil
}

func (s *Shell) initWorkdir(dir string) error {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		dir = wd
	}

	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	physical, err := fsutil.Realpath(s.fs, string(filepath.Separator), dir)
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	s.wd, s.logicalWd = physical, physical

	// Keep an inherited PWD if it names the same directory, it preserves the
	// symbolic links the user navigated through.
	if pwd, ok := s.Env.LookupEnv(EnvPWD); ok && filepath.IsAbs(pwd) {
		if resolved, err := fsutil.Realpath(s.fs, string(filepath.Separator), pwd); err == nil && resolved == physical {
			s.logicalWd = filepath.Clean(pwd)
		}
	}

	s.Env.Setenv(EnvPWD, s.logicalWd)
	return nil
}

// Getwd returns the canonical working directory.
func (s *Shell) Getwd() string {
	return s.wd
}

// LogicalWd returns the working directory without symbolic links resolved.
func (s *Shell) LogicalWd() string {
	return s.logicalWd
}

// Chdir changes the working directory. Relative paths are resolved against
// the current directory. On failure nothing changes.
func (s *Shell) Chdir(dir string) error {
	physical, err := fsutil.Realpath(s.fs, s.logicalWd, dir)
	if err != nil {
		return err
	}
	if err := fsutil.Searchable(s.fs, physical); err != nil {
		return err
	}

	logical := dir
	if !filepath.IsAbs(logical) {
		logical = filepath.Join(s.logicalWd, logical)
	}
	logical = filepath.Clean(logical)
	// ".." after a symbolic link leaves the lexical path pointing elsewhere.
	if resolved, err := fsutil.Realpath(s.fs, string(filepath.Separator), logical); err != nil || resolved != physical {
		logical = physical
	}

	s.Env.Setenv(EnvOldPWD, s.logicalWd)
	s.Env.Setenv(EnvPWD, logical)
	s.wd, s.logicalWd = physical, logical
	return nil
}

// SessionID returns the ID the session's events are logged under.
func (s *Shell) SessionID() string {
	return s.events.SessionID()
}

// Run reads and executes lines until input ends, exit is called or ctx is
// cancelled. It returns the status the process should exit with.
func (s *Shell) Run(ctx context.Context) int {
	_, interactive := s.reader.(*terminalReader)
	s.record(&logger.SessionStart{
		Workdir:         s.wd,
		IndexedPrograms: s.Index.Len(),
		Interactive:     interactive,
	})

	status := s.loop(ctx)

	s.record(&logger.SessionEnd{ExitStatus: status})
	return status
}

func (s *Shell) loop(ctx context.Context) int {
	for {
		if ctx.Err() != nil {
			return s.LastStatus
		}

		line, err := s.reader.ReadLine(s.prompt)
		switch {
		case err == io.EOF:
			return 0
		case err == ErrInterrupt:
			continue
		case err != nil:
			s.log.Printf("error reading input: %v", err)
			return StatusFailure
		}

		if status, exit := s.Execute(ctx, line); exit {
			return status
		}
	}
}

// Execute runs a single line of input. It returns the resulting status and
// whether the shell was asked to exit.
func (s *Shell) Execute(ctx context.Context, line string) (int, bool) {
	cmd, err := shell.Parse(line)
	if err == nil {
		if cmd.IsEmpty() {
			return s.LastStatus, false
		}
		err = s.dispatch(ctx, cmd)
	}

	var exit *ExitRequest
	if errors.As(err, &exit) {
		s.LastStatus = exit.Code
		return exit.Code, true
	}

	if err != nil {
		s.LastStatus = exitStatus(err)
		s.report(cmd, err)
	}
	return s.LastStatus, false
}

func (s *Shell) dispatch(ctx context.Context, cmd shell.ParsedCommand) error {
	if kind, ok := ParseBuiltin(cmd.Command); ok {
		s.record(&logger.RunBuiltin{Command: cmd.Argv()})
		s.LastStatus = 0
		return kind.Func()(s, cmd.Args)
	}

	path, err := s.LookPath(cmd.Command)
	if err != nil {
		return err
	}
	return s.launch(ctx, path, cmd)
}

// report tells the user about a failed command. Unknown commands and failed
// directory changes are written to stdout, everything else to stderr.
func (s *Shell) report(cmd shell.ParsedCommand, err error) {
	var argv []string
	if !cmd.IsEmpty() {
		argv = cmd.Argv()
	}

	var (
		notFound *CommandNotFoundError
		chdir    *ChdirError
		parse    *shell.ParseError
	)

	switch {
	case errors.As(err, &notFound):
		fmt.Fprintln(s.Stdout, err)
		s.record(&logger.UnknownCommand{Command: argv})
		return
	case errors.As(err, &chdir):
		fmt.Fprintln(s.Stdout, err)
	case errors.As(err, &parse):
		fmt.Fprintf(s.Stderr, "tinysh: syntax error: %v\n", err)
	default:
		fmt.Fprintln(s.Stderr, err)
	}

	s.record(&logger.InvalidInvocation{Command: argv, Error: err.Error()})
}

func (s *Shell) record(event logger.LogType) {
	if err := s.events.Record(event); err != nil {
		s.log.Printf("couldn't record event: %v", err)
	}
}

// Close releases the input reader.
func (s *Shell) Close() error {
	return s.reader.Close()
}
