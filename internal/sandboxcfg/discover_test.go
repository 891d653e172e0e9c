package sandboxcfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDomeRoot_EmptyFallsBackToCwd(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	got, err := resolveDomeRoot("")
	require.NoError(t, err)
	assert.Equal(t, cwd, got)
}

func TestResolveDomeRoot_TildeExpandsToHome(t *testing.T) {
	home, err := homeDir()
	require.NoError(t, err)

	got, err := resolveDomeRoot("~")
	require.NoError(t, err)
	assert.Equal(t, home, got)

	got, err = resolveDomeRoot("~/sandbox")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "sandbox"), got)
}

func TestResolveDomeRoot_DollarLeftUnexpanded(t *testing.T) {
	got, err := resolveDomeRoot("$HOME/dome")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "$"), "a leading $ must never be expanded here")
}

func TestResolveDomeRoot_DotIsCwdRelative(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	got, err := resolveDomeRoot(".")
	require.NoError(t, err)
	assert.Equal(t, cwd, got)

	got, err = resolveDomeRoot("./sandbox")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "sandbox"), got)
}

func TestResolveDomeRoot_AbsolutePassesThroughCleaned(t *testing.T) {
	got, err := resolveDomeRoot("/dome/../dome")
	require.NoError(t, err)
	assert.Equal(t, "/dome", got)
}

func TestDiscover_UsesEnvVar(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(domeEnvVar, dir)

	cfg, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Home())
}
