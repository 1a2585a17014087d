package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
)

// Modes for settings that depend on whether a terminal is attached.
const (
	ModeAuto   = "auto"
	ModeAlways = "always"
	ModeNever  = "never"
)

type Configuration struct {
	configFs afero.Fs
	// configurationDir holds the directory the configuration was loaded from.
	configurationDir string

	Prompt      string `json:"prompt" validate:"required"`
	PathEnv     string `json:"path_env" validate:"required"`
	HomeEnv     string `json:"home_env" validate:"required"`
	LineEditing string `json:"line_editing" validate:"oneof=auto always never"`
	Color       string `json:"color" validate:"oneof=auto always never"`
	EventLog    string `json:"event_log"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// OpenEventLog opens the event log in an append only state. It returns nil
// if no event log is configured.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	if c.EventLog == "" {
		return nil, nil
	}
	return c.fs().OpenFile(c.eventLogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the configured event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	if c.EventLog == "" {
		return nil, &os.PathError{Op: "open", Path: "event_log", Err: os.ErrNotExist}
	}
	return c.fs().OpenFile(c.eventLogPath(), os.O_RDONLY, 0600)
}

func (c *Configuration) eventLogPath() string {
	if filepath.IsAbs(c.EventLog) || c.configurationDir == "" {
		return c.EventLog
	}
	return filepath.Join(c.configurationDir, c.EventLog)
}

// Default returns the built-in configuration. Relative paths in it resolve
// against the current directory.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewOsFs()
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
