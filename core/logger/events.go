package logger

// LogEntry is a single line in the event log. Exactly one event field is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionId       string `json:"session_id,omitempty"`

	SessionStart      *SessionStart      `json:"session_start,omitempty"`
	SessionEnd        *SessionEnd        `json:"session_end,omitempty"`
	RunBuiltin        *RunBuiltin        `json:"run_builtin,omitempty"`
	RunCommand        *RunCommand        `json:"run_command,omitempty"`
	UnknownCommand    *UnknownCommand    `json:"unknown_command,omitempty"`
	InvalidInvocation *InvalidInvocation `json:"invalid_invocation,omitempty"`
	DirectorySkipped  *DirectorySkipped  `json:"directory_skipped,omitempty"`
}

// LogType is implemented by every event that can be stored in a LogEntry.
type LogType interface {
	attach(le *LogEntry)
}

// GetLogType returns the event held by the entry or nil if there is none.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.SessionEnd != nil:
		return le.SessionEnd
	case le.RunBuiltin != nil:
		return le.RunBuiltin
	case le.RunCommand != nil:
		return le.RunCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.InvalidInvocation != nil:
		return le.InvalidInvocation
	case le.DirectorySkipped != nil:
		return le.DirectorySkipped
	default:
		return nil
	}
}

// SessionStart is logged once the shell is ready to read input.
type SessionStart struct {
	Workdir         string `json:"workdir"`
	IndexedPrograms int    `json:"indexed_programs"`
	Interactive     bool   `json:"interactive"`
}

func (e *SessionStart) attach(le *LogEntry) { le.SessionStart = e }

// SessionEnd is logged when the read loop stops.
type SessionEnd struct {
	ExitStatus int `json:"exit_status"`
}

func (e *SessionEnd) attach(le *LogEntry) { le.SessionEnd = e }

// RunBuiltin is logged for each builtin invocation.
type RunBuiltin struct {
	Command []string `json:"command"`
}

func (e *RunBuiltin) attach(le *LogEntry) { le.RunBuiltin = e }

// RunCommand is logged after an external program exits.
type RunCommand struct {
	Command             []string `json:"command"`
	ResolvedCommandPath string   `json:"resolved_command_path"`
	ExitStatus          int      `json:"exit_status"`
}

func (e *RunCommand) attach(le *LogEntry) { le.RunCommand = e }

// UnknownCommand is logged when a command isn't a builtin or on the path.
type UnknownCommand struct {
	Command []string `json:"command"`
}

func (e *UnknownCommand) attach(le *LogEntry) { le.UnknownCommand = e }

// InvalidInvocation is logged when a line or command couldn't be run as
// written.
type InvalidInvocation struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

func (e *InvalidInvocation) attach(le *LogEntry) { le.InvalidInvocation = e }

// DirectorySkipped is logged for search path directories that couldn't be
// read.
type DirectorySkipped struct {
	Dir   string `json:"dir"`
	Error string `json:"error"`
}

func (e *DirectorySkipped) attach(le *LogEntry) { le.DirectorySkipped = e }
