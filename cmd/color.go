package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/josephlewis42/tinysh/core/config"
)

var (
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
	ColorBoldCyan  = color.New(color.FgCyan, color.Bold)
)

// ColorPrinter colors output depending on the configured mode and whether
// the output is a terminal.
type ColorPrinter struct {
	enabled bool
}

// NewColorPrinter creates a printer for w. mode is one of auto, always or
// never.
func NewColorPrinter(mode string, w io.Writer) *ColorPrinter {
	switch mode {
	case config.ModeNever:
		return &ColorPrinter{enabled: false}
	case config.ModeAlways:
		return &ColorPrinter{enabled: true}
	default:
		f, ok := w.(*os.File)
		return &ColorPrinter{enabled: ok && readline.IsTerminal(int(f.Fd()))}
	}
}

// colorPrinterForFlag creates a printer for a --color flag value, falling back
// to the configured mode if the flag is empty.
func colorPrinterForFlag(flag string, configuration *config.Configuration, w io.Writer) (*ColorPrinter, error) {
	switch flag {
	case "":
		return NewColorPrinter(configuration.Color, w), nil
	case config.ModeAuto, config.ModeAlways, config.ModeNever:
		return NewColorPrinter(flag, w), nil
	default:
		return nil, fmt.Errorf("invalid --color %q, must be one of always, auto or never", flag)
	}
}

// Sprint formats a in the given color if coloring is enabled.
func (c *ColorPrinter) Sprint(col *color.Color, a ...interface{}) string {
	if !c.enabled {
		return fmt.Sprint(a...)
	}

	// The global default only looks at stdout.
	col.EnableColor()
	return col.Sprint(a...)
}
