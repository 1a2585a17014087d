package shell

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleParse() {
	cmd, _ := Parse(`echo 'a  b' "c\"d"`)

	fmt.Printf("Command: %q\n", cmd.Command)
	fmt.Printf("Args: %q\n", cmd.Args)

	// Output: Command: "echo"
	// Args: ["a  b" "c\"d"]
}

func TestParse(t *testing.T) {
	cases := map[string]struct {
		line     string
		expected ParsedCommand
	}{
		"empty":             {"", ParsedCommand{}},
		"whitespace":        {" \t \n", ParsedCommand{}},
		"command only":      {"pwd", ParsedCommand{Command: "pwd"}},
		"trailing newline":  {"pwd\n", ParsedCommand{Command: "pwd"}},
		"collapse spaces":   {"echo   a    b", ParsedCommand{"echo", []string{"a", "b"}}},
		"single quotes":     {"echo 'a  b'", ParsedCommand{"echo", []string{"a  b"}}},
		"literal in single": {`echo 'a\nb'`, ParsedCommand{"echo", []string{`a\nb`}}},
		"escaped dquote":    {`echo "c\"d"`, ParsedCommand{"echo", []string{`c"d`}}},
		"escaped backslash": {`echo "a\\b"`, ParsedCommand{"echo", []string{`a\b`}}},
		"other escape kept": {`echo "a\nb"`, ParsedCommand{"echo", []string{`a\nb`}}},
		"unquoted escape":   {`echo a\ b`, ParsedCommand{"echo", []string{"a b"}}},
		"adjacent quotes":   {`echo 'a'"b"c`, ParsedCommand{"echo", []string{"abc"}}},
		"quoted command":    {`'my prog' x`, ParsedCommand{"my prog", []string{"x"}}},
		"flags":             {"ls -la /tmp", ParsedCommand{"ls", []string{"-la", "/tmp"}}},
		"mixed": {
			`echo 'a  b' "c\"d"`,
			ParsedCommand{"echo", []string{"a  b", `c"d`}},
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			actual, err := Parse(tc.line)

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestParse_errors(t *testing.T) {
	cases := map[string]struct {
		line        string
		expectedErr error
	}{
		"unterminated single": {"echo 'abc", ErrUnterminatedQuote},
		"unterminated double": {`echo "abc`, ErrUnterminatedQuote},
		"trailing escape":     {`echo abc\`, ErrTrailingEscape},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			_, err := Parse(tc.line)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Equal(t, tc.line, parseErr.Line)
		})
	}
}

func TestParsedCommand_Argv(t *testing.T) {
	cmd := ParsedCommand{Command: "ls", Args: []string{"-l", "/"}}

	assert.Equal(t, []string{"ls", "-l", "/"}, cmd.Argv())
	assert.False(t, cmd.IsEmpty())
	assert.True(t, ParsedCommand{}.IsEmpty())
}
