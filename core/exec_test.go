package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/josephlewis42/tinysh/core/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const echoArgsScript = `#!/bin/sh
echo "$*|$PWD"
exit 3
`

// newOsShell creates a shell on the host filesystem with bin as the only
// search path entry and wd as the working directory.
func newOsShell(t *testing.T, input, bin, wd string, out *bytes.Buffer, events *logger.Logger) *Shell {
	t.Helper()

	s, err := NewShell(Options{
		Stdin:   strings.NewReader(input),
		Stdout:  out,
		Stderr:  out,
		Environ: []string{"PATH=" + bin, "HOME=" + wd},
		Workdir: wd,
		Events:  events,
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestShell_launch(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test programs are shell scripts")
	}

	root := canonicalTempDir(t)
	bin := filepath.Join(root, "bin")
	work := filepath.Join(root, "work")
	require.NoError(t, os.MkdirAll(bin, 0755))
	require.NoError(t, os.MkdirAll(work, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bin, "show"), []byte(echoArgsScript), 0755))

	out := &bytes.Buffer{}
	events := &bytes.Buffer{}
	s := newOsShell(t, "show 'one two' three\ncd ..\nshow\n", bin, work, out, logger.NewJsonLinesLogRecorder(events))

	assert.Equal(t, 0, s.Run(context.Background()))
	assert.Equal(t, 3, s.LastStatus)
	assert.Equal(t, "$ one two three|"+work+"\n$ $ |"+root+"\n$ ", out.String())

	var report logger.Report
	require.NoError(t, logger.ReadJSONLinesLog(events, report.Update))
	assert.Equal(t, 2, report.RunCommand.CommandNames.Get("show"))
	assert.Equal(t, 2, report.RunCommand.ResolvedCommandPaths.Get(filepath.Join(bin, "show")))
	assert.Equal(t, 2, report.RunCommand.ExitStatuses.Get("3"))
}

func TestShell_launchRelativePath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test programs are shell scripts")
	}

	root := canonicalTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "local"), []byte(echoArgsScript), 0755))

	out := &bytes.Buffer{}
	s := newOsShell(t, "", root, root, out, nil)

	status, exit := s.Execute(context.Background(), "./local arg")

	assert.False(t, exit)
	assert.Equal(t, 3, status)
	assert.Equal(t, "arg|"+root+"\n", out.String())
}

func TestShell_emptySearchPathElement(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test programs are shell scripts")
	}

	root := canonicalTempDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tool"), []byte(echoArgsScript), 0755))

	out := &bytes.Buffer{}
	pathVar := filepath.Join(root, "sub") + string(os.PathListSeparator)
	s := newOsShell(t, "", pathVar, root, out, nil)

	status, _ := s.Execute(context.Background(), "type tool")
	assert.Equal(t, 0, status)
	status, _ = s.Execute(context.Background(), "tool x")
	assert.Equal(t, 3, status)
	assert.Equal(t, "tool is "+filepath.Join(root, "tool")+"\nx|"+root+"\n", out.String())
}

func TestShell_launchFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test programs are shell scripts")
	}

	root := canonicalTempDir(t)
	// Executable but not a valid program.
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken"), []byte{0, 1, 2, 3}, 0755))

	out := &bytes.Buffer{}
	s := newOsShell(t, "broken\necho next\n", root, root, out, nil)

	assert.Equal(t, 0, s.Run(context.Background()))
	assert.True(t, strings.HasPrefix(out.String(), "$ broken: "), out.String())
	assert.True(t, strings.HasSuffix(out.String(), "$ next\n$ "), out.String())
}

func TestShell_LookPath(t *testing.T) {
	out := &bytes.Buffer{}
	s := newTestShell(t, "", out)

	cases := map[string]struct {
		name     string
		expected string
		err      interface{}
	}{
		"indexed":        {"ls", "/bin/ls", nil},
		"later dir":      {"cat", "/usr/bin/cat", nil},
		"absolute":       {"/usr/bin/ls", "/usr/bin/ls", nil},
		"relative":       {"../../bin/ls", "/bin/ls", nil},
		"missing":        {"nope", "", &CommandNotFoundError{}},
		"missing path":   {"/bin/nope", "", &CommandNotFoundError{}},
		"not executable": {"/usr/bin/readme", "", &ExecError{}},
		"not indexed":    {"readme", "", &CommandNotFoundError{}},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			path, err := s.LookPath(tc.name)

			assert.Equal(t, tc.expected, path)
			switch tc.err.(type) {
			case nil:
				assert.NoError(t, err)
			case *CommandNotFoundError:
				var target *CommandNotFoundError
				assert.ErrorAs(t, err, &target)
			case *ExecError:
				var target *ExecError
				assert.ErrorAs(t, err, &target)
			}
		})
	}
}
