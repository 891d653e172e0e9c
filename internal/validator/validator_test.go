package validator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truman-dome/domeshell/internal/domain"
)

func sandboxAt(t *testing.T, root string) domain.SandboxConfig {
	t.Helper()
	cfg, err := domain.NewSandboxConfig([]string{root}, root)
	require.NoError(t, err)
	return cfg
}

func TestValidate_EmbeddedVarRejected(t *testing.T) {
	root := t.TempDir()
	cfg := sandboxAt(t, root)

	_, err := Validate("$HOME/x", cfg, root)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmbeddedVar)
	assert.Equal(t, "No such file or directory", ToUserMessage(err))
}

func TestValidate_WithinSandbox(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "data.txt"), []byte("x"), 0o644))
	cfg := sandboxAt(t, root)

	resolved, err := Validate("data.txt", cfg, root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "data.txt"), resolved)
}

func TestValidate_NonExistentPathAccepted(t *testing.T) {
	root := t.TempDir()
	cfg := sandboxAt(t, root)

	resolved, err := Validate("new/created/file.txt", cfg, root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "new/created/file.txt"), resolved)
}

func TestValidate_OutsideBoundary(t *testing.T) {
	root := t.TempDir()
	cfg := sandboxAt(t, root)

	_, err := Validate("/etc/passwd", cfg, root)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutsideBoundary)
}

func TestValidate_PrefixMatchIsNotSubstringMatch(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "root")
	sibling := filepath.Join(parent, "root2")
	require.NoError(t, os.Mkdir(root, 0o755))
	require.NoError(t, os.Mkdir(sibling, 0o755))

	cfg := sandboxAt(t, root)

	_, err := Validate(filepath.Join(sibling, "x"), cfg, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutsideBoundary)
}

func TestValidate_SymlinkCategoricallyDenied(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "passwd"), []byte("secret"), 0o644))

	link := filepath.Join(root, "escape")
	require.NoError(t, os.Symlink(outside, link))

	cfg := sandboxAt(t, root)

	_, err := Validate("escape/passwd", cfg, root)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSymlink)
}

func TestValidate_Idempotent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "data.txt"), []byte("x"), 0o644))
	cfg := sandboxAt(t, root)

	first, err := Validate("data.txt", cfg, root)
	require.NoError(t, err)

	second, err := Validate(first, cfg, "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestValidate_FollowSymlinks_ChainWithinSandboxResolves(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "real")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "file.txt"), []byte("x"), 0o644))

	link1 := filepath.Join(root, "link1")
	link2 := filepath.Join(root, "link2")
	link3 := filepath.Join(root, "link3")
	require.NoError(t, os.Symlink(target, link1))
	require.NoError(t, os.Symlink(link1, link2))
	require.NoError(t, os.Symlink(link2, link3))

	cfg := sandboxAt(t, root)

	resolved, err := Validate("link3/file.txt", cfg, root, WithFollowSymlinks())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(target, "file.txt"), resolved)
}

func TestValidate_FollowSymlinks_DeepChainELoops(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "real")
	require.NoError(t, os.Mkdir(target, 0o755))

	prev := target
	var last string
	for i := 0; i < 15; i++ {
		link := filepath.Join(root, "link"+string(rune('a'+i)))
		require.NoError(t, os.Symlink(prev, link))
		prev = link
		last = link
	}

	cfg := sandboxAt(t, root)

	_, err := Validate(last, cfg, root, WithFollowSymlinks())
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, CauseELoop, verr.Cause)
}

func TestToUserMessage_NeverSaysPermissionDenied(t *testing.T) {
	causes := []error{
		newError(CauseEmbeddedVar, ErrEmbeddedVar, "x"),
		newError(CauseSymlink, ErrSymlink, "x"),
		newError(CauseOutsideBoundary, ErrOutsideBoundary, "x"),
		newError(CauseELoop, ErrELoop, "x"),
	}
	for _, c := range causes {
		msg := ToUserMessage(c)
		assert.NotContains(t, msg, "Permission denied")
		assert.Equal(t, "No such file or directory", msg)
	}
}
