package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRootCmd(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "gnloc", cmd.Use)
	assert.Contains(t, cmd.Short, "GNloc")
	assert.Contains(t, cmd.Long, "GNLOC_GEODB_API_KEY")
	assert.NotNil(t, cmd.PersistentPreRunE)
	assert.NotNil(t, cmd.RunE)
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)

	var names []string
	for _, v := range cmd.Commands() {
		names = append(names, v.Name())
	}
	for _, name := range []string{"create", "migrate", "country", "resolve", "crawl"} {
		assert.Contains(t, names, name)
	}
}

func TestRootVersion(t *testing.T) {
	for _, flag := range []string{"--version", "-V"} {
		cmd := getRootCmd()
		cmd.Version = "version: v1.2.3\nbuild:   abc123"

		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{flag})

		require.NoError(t, cmd.Execute(), flag)
		out := buf.String()
		assert.Contains(t, out, "v1.2.3", flag)
		assert.Contains(t, out, "abc123", flag)
		assert.NotContains(t, out, "gnloc version", flag)
	}
}

func TestRootHelp(t *testing.T) {
	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	help := buf.String()
	assert.Contains(t, help, "crawl")
	assert.Contains(t, help, "--backend")
	assert.Contains(t, help, "Configuration precedence")
}

func TestRootInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()
	assert.NotSame(t, cmd1, cmd2)
}

func TestRootInvalidCommand(t *testing.T) {
	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t,
		strings.Contains(buf.String(), "unknown") ||
			strings.Contains(err.Error(), "unknown"))
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "GNLOC_GEODB_API_KEY", envName("geodb.api_key"))
	assert.Equal(t, "GNLOC_STORE_BACKEND", envName("store.backend"))
}

func TestInitConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GNLOC_GEODB_API_KEY", "from-env")
	t.Setenv("GNLOC_DATABASE_PORT", "6543")
	t.Setenv("GNLOC_STORE_BACKEND", "postgres")

	created, err := ensureHome(home)
	require.NoError(t, err)
	assert.True(t, created)
	res, err := initConfig(home)
	require.NoError(t, err)
	assert.Equal(t, "from-env", res.GeoDB.APIKey)
	assert.Equal(t, 6543, res.Database.Port)
	assert.Equal(t, "postgres", res.Store.Backend)
	assert.Equal(t, "_superusers", res.PocketBase.AuthCollection)
	require.NotNil(t, res.GeoDB.CacheResponses)
	assert.True(t, *res.GeoDB.CacheResponses)
}
