package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/modelcat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	m := NewMain()
	defer m.Close()

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "modelfetch")
	assert.Contains(t, stdout.String(), "--config")
}

func TestMain_Run_UnknownFlag(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	m := NewMain()
	defer m.Close()

	err := m.Run(context.Background(), []string{"--no-such-flag"}, &stdout, &stderr)
	assert.Error(t, err)
}

func TestMain_LoadSources(t *testing.T) {
	t.Parallel()

	t.Run("defaults to the built-in sources", func(t *testing.T) {
		t.Parallel()

		m := NewMain()
		sources, err := m.loadSources(&CLI{})
		require.NoError(t, err)
		assert.Len(t, sources, len(DefaultSources()))
	})

	t.Run("narrows to the named sources", func(t *testing.T) {
		t.Parallel()

		m := NewMain()
		sources, err := m.loadSources(&CLI{Source: []string{"cerebras"}})
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, "cerebras", sources[0].Name)
	})

	t.Run("unknown source name is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		m := NewMain()
		_, err := m.loadSources(&CLI{Source: []string{"no-such-source"}})
		assert.Equal(t, modelcat.ENOTFOUND, modelcat.ErrorCode(err))
	})

	t.Run("loads sources from a config file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sources.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
sources:
  - name: custom
    kind: feed
    url: https://example.com/models.rss
`), 0644))

		m := NewMain()
		sources, err := m.loadSources(&CLI{Config: path})
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, modelcat.KindFeed, sources[0].Kind)
	})
}
