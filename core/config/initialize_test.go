package config

import (
	"bytes"
	"io/ioutil"
	"log"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	if err := Initialize(tempDir, log.New(ioutil.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, defaultConfig().Prompt, cfg.Prompt)
}

func TestInitializeFs_keepsExisting(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/cfg/config.yaml", []byte("prompt: '% '\n"), 0600))

	buf := &bytes.Buffer{}
	require.NoError(t, InitializeFs(fsys, "/cfg", log.New(buf, "", 0)))

	contents, err := afero.ReadFile(fsys, "/cfg/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "prompt: '% '\n", string(contents))
	assert.Contains(t, buf.String(), "already exists")
}
