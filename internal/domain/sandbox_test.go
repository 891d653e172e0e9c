package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSandboxConfig_RequiresAtLeastOneRoot(t *testing.T) {
	_, err := NewSandboxConfig(nil, "/dome")
	require.ErrorIs(t, err, ErrNoRoots)
}

func TestNewSandboxConfig_RejectsRelativeRoot(t *testing.T) {
	_, err := NewSandboxConfig([]string{"dome"}, "dome")
	require.ErrorIs(t, err, ErrRootNotAbsolute)
}

func TestNewSandboxConfig_RejectsHomeOutsideRoots(t *testing.T) {
	_, err := NewSandboxConfig([]string{"/dome"}, "/other")
	require.ErrorIs(t, err, ErrHomeOutsideRoots)
}

func TestNewSandboxConfig_CanonicalizesRootsAndHome(t *testing.T) {
	cfg, err := NewSandboxConfig([]string{"/dome/../dome/./sub"}, "/dome/sub")
	require.NoError(t, err)
	assert.Equal(t, []string{"/dome/sub"}, cfg.Roots())
	assert.Equal(t, "/dome/sub", cfg.Home())
}

func TestSandboxConfig_ContainsUsesSeparatorBoundary(t *testing.T) {
	cfg, err := NewSandboxConfig([]string{"/dome"}, "/dome")
	require.NoError(t, err)

	assert.True(t, cfg.Contains("/dome"))
	assert.True(t, cfg.Contains("/dome/sub/file.txt"))
	assert.False(t, cfg.Contains("/dome2/file.txt"), "prefix match must respect path separator boundary")
	assert.False(t, cfg.Contains("/other"))
}

func TestSandboxConfig_HomeCanEqualRoot(t *testing.T) {
	cfg, err := NewSandboxConfig([]string{"/dome"}, "/dome")
	require.NoError(t, err)
	assert.Equal(t, "/dome", cfg.Home())
}

func TestSandboxConfig_MultipleRoots(t *testing.T) {
	cfg, err := NewSandboxConfig([]string{"/dome", "/dome/shared"}, "/dome/shared")
	require.NoError(t, err)
	assert.True(t, cfg.Contains("/dome/shared/x"))
	assert.True(t, cfg.Contains("/dome/x"))
}
