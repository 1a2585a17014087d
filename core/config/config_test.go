package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := Default()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "$ ", cfg.Prompt)
	assert.Equal(t, "PATH", cfg.PathEnv)
	assert.Equal(t, "HOME", cfg.HomeEnv)
	assert.Equal(t, ModeAuto, cfg.LineEditing)
	assert.Equal(t, ModeAuto, cfg.Color)
	assert.Empty(t, cfg.EventLog)
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate   func(*Configuration)
		errField string
	}{
		"empty prompt":      {func(c *Configuration) { c.Prompt = "" }, "prompt"},
		"empty path env":    {func(c *Configuration) { c.PathEnv = "" }, "path_env"},
		"empty home env":    {func(c *Configuration) { c.HomeEnv = "" }, "home_env"},
		"bad line editing":  {func(c *Configuration) { c.LineEditing = "sometimes" }, "line_editing"},
		"bad color":         {func(c *Configuration) { c.Color = "blue" }, "color"},
		"custom is allowed": {func(c *Configuration) { c.Prompt = "> "; c.Color = ModeNever }, ""},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.errField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errField)
		})
	}
}

func TestLoadFs(t *testing.T) {
	t.Run("partial file keeps defaults", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/etc/tinysh/config.yaml", []byte("prompt: '> '\nevent_log: events.jsonl\n"), 0600))

		cfg, err := LoadFs(fsys, "/etc/tinysh")
		require.NoError(t, err)

		assert.Equal(t, "> ", cfg.Prompt)
		assert.Equal(t, "PATH", cfg.PathEnv)
		assert.Equal(t, "/etc/tinysh/events.jsonl", cfg.eventLogPath())
	})

	t.Run("accepts file path", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/cfg/config.yaml", defaultConfigData, 0600))

		cfg, err := LoadFs(fsys, "/cfg/config.yaml")
		require.NoError(t, err)
		assert.Equal(t, "/cfg", cfg.configurationDir)
	})

	t.Run("unknown field", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/cfg/config.yaml", []byte("promtp: '> '\n"), 0600))

		_, err := LoadFs(fsys, "/cfg")
		assert.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "/cfg/config.yaml", []byte("line_editing: maybe\n"), 0600))

		_, err := LoadFs(fsys, "/cfg")
		assert.Error(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadFs(afero.NewMemMapFs(), "/cfg")
		assert.Error(t, err)
	})
}

func TestEventLog(t *testing.T) {
	fsys := afero.NewMemMapFs()
	cfg := defaultConfig()
	cfg.configFs = fsys
	cfg.configurationDir = "/cfg"

	t.Run("disabled", func(t *testing.T) {
		fd, err := cfg.OpenEventLog()
		assert.NoError(t, err)
		assert.Nil(t, fd)

		_, err = cfg.ReadEventLog()
		assert.Error(t, err)
	})

	t.Run("append", func(t *testing.T) {
		cfg.EventLog = "events.jsonl"
		for _, line := range []string{"one\n", "two\n"} {
			fd, err := cfg.OpenEventLog()
			require.NoError(t, err)
			_, err = fd.WriteString(line)
			require.NoError(t, err)
			require.NoError(t, fd.Close())
		}

		contents, err := afero.ReadFile(fsys, "/cfg/events.jsonl")
		require.NoError(t, err)
		assert.Equal(t, "one\ntwo\n", string(contents))

		fd, err := cfg.ReadEventLog()
		require.NoError(t, err)
		fd.Close()
	})
}
