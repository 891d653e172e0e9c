package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/truman-dome/domeshell/internal/domain"
)

func TestParse_FlatPipeline(t *testing.T) {
	head, err := Parse("cat a | grep b | head -5")
	require.NoError(t, err)

	require.Equal(t, domain.CommandCat, head.Name)
	require.Len(t, head.Args, 1)
	assert.Equal(t, "a", head.Args[0].Raw)

	require.Len(t, head.Pipes, 2)

	grep := head.Pipes[0]
	assert.Equal(t, domain.CommandGrep, grep.Name)
	assert.Equal(t, []string{"b"}, rawArgs(grep.Args))
	assert.Empty(t, grep.Pipes, "successor pipe list must be empty (flat, not nested)")

	headCmd := head.Pipes[1]
	assert.Equal(t, domain.CommandHead, headCmd.Name)
	assert.Equal(t, []string{"-5"}, rawArgs(headCmd.Args))
	assert.Empty(t, headCmd.Pipes)
}

func TestParse_EmptyCommand(t *testing.T) {
	_, err := Parse("")
	require.ErrorIs(t, err, ErrEmptyCommand)

	_, err = Parse("   ")
	require.ErrorIs(t, err, ErrEmptyCommand)
}

func TestParse_UnknownHead(t *testing.T) {
	head, err := Parse("unknownthing foo")
	require.NoError(t, err)
	assert.True(t, head.IsUnknown())
	assert.Equal(t, "unknownthing", head.UnknownName)
	assert.Equal(t, "unknownthing", head.HeadText())
}

func TestParse_RedirectPairing(t *testing.T) {
	head, err := Parse("echo hi > a.txt > b.txt")
	require.NoError(t, err)

	require.Len(t, head.Redirects, 2)
	assert.Equal(t, domain.RedirectStdoutTruncate, head.Redirects[0].Kind)
	assert.Equal(t, "a.txt", head.Redirects[0].Target)
	assert.Equal(t, domain.RedirectStdoutTruncate, head.Redirects[1].Kind)
	assert.Equal(t, "b.txt", head.Redirects[1].Target)
}

func TestParse_GlobArgument(t *testing.T) {
	head, err := Parse(`ls *.txt "*.txt"`)
	require.NoError(t, err)
	require.Len(t, head.Args, 2)
	assert.Equal(t, domain.AtomGlob, head.Args[0].Kind)
	assert.Equal(t, domain.AtomLiteral, head.Args[1].Kind, "quoted glob chars are literal")
}

func TestParse_DepthIsFlatCount(t *testing.T) {
	head, err := Parse("a | b | c")
	require.NoError(t, err)
	assert.Equal(t, 3, head.Depth())
	assert.Same(t, head.Pipes[len(head.Pipes)-1], head.TailCommand())
}

func rawArgs(atoms []domain.Atom) []string {
	out := make([]string, len(atoms))
	for i, a := range atoms {
		out[i] = a.Raw
	}
	return out
}
