package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pborman/getopt/v2"
)

// BuiltinKind identifies a command implemented by the shell itself.
type BuiltinKind int

const (
	BuiltinExit BuiltinKind = iota
	BuiltinEcho
	BuiltinType
	BuiltinPwd
	BuiltinCd

	numBuiltins
)

type builtinInfo struct {
	name  string
	usage string
	short string
}

var builtins = [numBuiltins]builtinInfo{
	BuiltinExit: {"exit", "exit [N]", "Exit the shell with status N."},
	BuiltinEcho: {"echo", "echo [ARG...]", "Write arguments to standard output."},
	BuiltinType: {"type", "type NAME", "Describe how NAME would be interpreted as a command."},
	BuiltinPwd:  {"pwd", "pwd [-LP]", "Print the current working directory."},
	BuiltinCd:   {"cd", "cd DIR", "Change the shell working directory."},
}

// String returns the name the builtin is invoked by.
func (k BuiltinKind) String() string {
	if k < 0 || k >= numBuiltins {
		return fmt.Sprintf("BuiltinKind(%d)", int(k))
	}
	return builtins[k].name
}

// Usage returns a one line synopsis of the arguments.
func (k BuiltinKind) Usage() string {
	return builtins[k].usage
}

// Short returns a one line description.
func (k BuiltinKind) Short() string {
	return builtins[k].short
}

// ParseBuiltin returns the builtin with the given name.
func ParseBuiltin(name string) (BuiltinKind, bool) {
	for k := BuiltinKind(0); k < numBuiltins; k++ {
		if builtins[k].name == name {
			return k, true
		}
	}
	return 0, false
}

// AllBuiltins lists every builtin in declaration order.
func AllBuiltins() []BuiltinKind {
	out := make([]BuiltinKind, 0, numBuiltins)
	for k := BuiltinKind(0); k < numBuiltins; k++ {
		out = append(out, k)
	}
	return out
}

// ShellBuiltinFunc is the implementation of a builtin.
type ShellBuiltinFunc func(s *Shell, args []string) error

// Func returns the implementation of the builtin.
func (k BuiltinKind) Func() ShellBuiltinFunc {
	switch k {
	case BuiltinExit:
		return Exit
	case BuiltinEcho:
		return Echo
	case BuiltinType:
		return Type
	case BuiltinPwd:
		return Pwd
	case BuiltinCd:
		return Cd
	default:
		panic(fmt.Sprintf("no implementation for %v", k))
	}
}

// Exit stops the shell. With no argument it does nothing.
func Exit(s *Shell, args []string) error {
	switch len(args) {
	case 0:
		return nil
	case 1:
		code, err := strconv.Atoi(args[0])
		if err != nil {
			return &RuntimeError{
				Command: BuiltinExit.String(),
				Err:     fmt.Errorf("%s: numeric argument required", args[0]),
			}
		}
		return &ExitRequest{Code: code}
	default:
		return &UsageError{Command: BuiltinExit.String(), Reason: "too many arguments"}
	}
}

// Echo writes its arguments separated by spaces.
func Echo(s *Shell, args []string) error {
	_, err := fmt.Fprintln(s.Stdout, strings.Join(args, " "))
	return err
}

// Type reports whether a name is a builtin or an executable on the path.
func Type(s *Shell, args []string) error {
	if len(args) != 1 {
		return &UsageError{Command: BuiltinType.String(), Usage: BuiltinType.Usage()}
	}

	name := args[0]
	if _, ok := ParseBuiltin(name); ok {
		fmt.Fprintf(s.Stdout, "%s is a shell builtin\n", name)
		return nil
	}
	if path, ok := s.Index.Lookup(name); ok {
		fmt.Fprintf(s.Stdout, "%s is %s\n", name, path)
		return nil
	}

	fmt.Fprintf(s.Stdout, "%s not found\n", name)
	s.LastStatus = StatusFailure
	return nil
}

// Pwd prints the working directory, -L selects the path as navigated and
// -P, the default, the path with symbolic links resolved.
func Pwd(s *Shell, args []string) error {
	opts := getopt.New()
	opts.Bool('L', "print the logical working directory")
	opts.Bool('P', "print the physical working directory")

	physical := true
	err := opts.Getopt(append([]string{BuiltinPwd.String()}, args...), func(opt getopt.Option) bool {
		// The last of -L and -P wins.
		switch opt.ShortName() {
		case "L":
			physical = false
		case "P":
			physical = true
		}
		return true
	})
	switch {
	case err != nil:
		return &UsageError{Command: BuiltinPwd.String(), Reason: err.Error()}
	case opts.NArgs() > 0:
		return &UsageError{Command: BuiltinPwd.String(), Reason: "too many arguments"}
	}

	if physical {
		fmt.Fprintln(s.Stdout, s.Getwd())
	} else {
		fmt.Fprintln(s.Stdout, s.LogicalWd())
	}
	return nil
}

// Cd changes the shell's working directory. "~" and "~/..." expand to the
// home directory and "-" returns to the previous directory.
func Cd(s *Shell, args []string) error {
	switch len(args) {
	case 1:
	case 0:
		return &UsageError{Command: BuiltinCd.String(), Usage: BuiltinCd.Usage()}
	default:
		return &UsageError{Command: BuiltinCd.String(), Reason: "too many arguments"}
	}

	arg := args[0]
	target := arg
	announce := false

	switch {
	case arg == "~" || strings.HasPrefix(arg, "~/"):
		home, ok := s.Env.LookupEnv(s.homeEnv)
		if !ok {
			return &RuntimeError{
				Command: BuiltinCd.String(),
				Err:     fmt.Errorf("%s not set", s.homeEnv),
			}
		}
		target = home + arg[1:]
	case arg == "-":
		prev, ok := s.Env.LookupEnv(EnvOldPWD)
		if !ok {
			return &RuntimeError{
				Command: BuiltinCd.String(),
				Err:     errors.New(EnvOldPWD + " not set"),
			}
		}
		target = prev
		announce = true
	}

	if err := s.Chdir(target); err != nil {
		return &RuntimeError{
			Command: BuiltinCd.String(),
			Err:     &ChdirError{Path: arg, Err: err},
		}
	}

	if announce {
		fmt.Fprintln(s.Stdout, s.LogicalWd())
	}
	return nil
}
