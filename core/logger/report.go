package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       int        `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	SessionEnd        SessionEndReport        `json:"session_end_report"`
	RunBuiltin        RunBuiltinReport        `json:"run_builtin_report"`
	RunCommand        RunCommandReport        `json:"run_command_report"`
	UnknownCommand    UnknownCommandReport    `json:"unknown_command_report"`
	InvalidInvocation InvalidInvocationReport `json:"invalid_invocation_report"`
	DirectorySkipped  DirectorySkippedReport  `json:"directory_skipped_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *SessionStart:
		r.Sessions++
	case *SessionEnd:
		r.SessionEnd.update(event)
	case *RunBuiltin:
		r.RunBuiltin.update(event)
	case *RunCommand:
		r.RunCommand.update(event)
	case *UnknownCommand:
		r.UnknownCommand.update(event)
	case *InvalidInvocation:
		r.InvalidInvocation.update(event)
	case *DirectorySkipped:
		r.DirectorySkipped.update(event)
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

type SessionEndReport struct {
	ExitStatuses StrCounter `json:"exit_statuses"`
}

func (r *SessionEndReport) update(se *SessionEnd) {
	r.ExitStatuses.Increment(strconv.Itoa(se.ExitStatus))
}

type RunBuiltinReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *RunBuiltinReport) update(rb *RunBuiltin) {
	if len(rb.Command) > 0 {
		r.CommandNames.Increment(rb.Command[0])
	}
}

type RunCommandReport struct {
	// Name of the resolved command
	ResolvedCommandPaths StrCounter `json:"resolved_command_paths"`
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	// Exit statuses of the programs
	ExitStatuses StrCounter `json:"exit_statuses"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	r.ResolvedCommandPaths.Increment(rc.ResolvedCommandPath)
	if len(rc.Command) > 0 {
		r.CommandNames.Increment(rc.Command[0])
	}
	r.ExitStatuses.Increment(strconv.Itoa(rc.ExitStatus))
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(logEntry *UnknownCommand) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

type InvalidInvocationReport struct {
	Errors *PathCounter `json:"errors"`
}

func (r *InvalidInvocationReport) update(logEntry *InvalidInvocation) {
	if r.Errors == nil {
		r.Errors = NewPathCounter("command", "error")
	}

	command := ""
	if len(logEntry.Command) > 0 {
		command = logEntry.Command[0]
	}
	r.Errors.Increment(command, logEntry.Error)
}

type DirectorySkippedReport struct {
	Dirs StrCounter `json:"dirs"`
}

func (r *DirectorySkippedReport) update(ds *DirectorySkipped) {
	r.Dirs.Increment(ds.Dir)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for the given key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implements a custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implements a custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
