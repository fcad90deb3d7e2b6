package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnloc/pkg/config"
	"github.com/gnames/gnloc/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()

	for range 2 {
		require.NoError(t, EnsureDirs(home))
	}

	for _, dir := range []string{
		filepath.Join(home, ".config", "gnloc"),
		filepath.Join(home, ".cache", "gnloc"),
		filepath.Join(home, ".local", "share", "gnloc", "logs"),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}
}

func TestEnsureConfigFile(t *testing.T) {
	assert := assert.New(t)
	home := t.TempDir()
	require.NoError(t, EnsureDirs(home))

	created, err := EnsureConfigFile(home)
	require.NoError(t, err)
	assert.True(created)

	path := config.ConfigFilePath(home)
	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(templates.ConfigYAML, string(bs))

	// existing files are never overwritten
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0600))
	created, err = EnsureConfigFile(home)
	require.NoError(t, err)
	assert.False(created)
	bs, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(string(bs), "debug")
}

// The template must describe the same values as config.New.
func TestTemplateMatchesDefaults(t *testing.T) {
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(templates.ConfigYAML), &cfg))

	def := config.New()
	assert.Equal(t, def.Store, cfg.Store)
	assert.Equal(t, def.Database, cfg.Database)
	assert.Equal(t, def.PocketBase, cfg.PocketBase)
	assert.Equal(t, def.Cache, cfg.Cache)
	assert.Equal(t, def.Log, cfg.Log)
	assert.Equal(t, def.GeoDB.URL, cfg.GeoDB.URL)
	assert.Equal(t, def.GeoDB.PageSize, cfg.GeoDB.PageSize)
	assert.Equal(t, def.GeoDB.DelayMs, cfg.GeoDB.DelayMs)
	require.NotNil(t, cfg.GeoDB.CacheResponses)
	assert.True(t, *cfg.GeoDB.CacheResponses)
}
