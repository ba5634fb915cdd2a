package textparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heron-feed/internal/render"
)

func TestParseEmpty(t *testing.T) {
	assert.Nil(t, New().Parse(""))
}

func TestParsePlainText(t *testing.T) {
	nodes := New().Parse("just plain words")
	require.Len(t, nodes, 1)
	assert.Equal(t, "just plain words", nodes[0].Text)
}

func TestParseMention(t *testing.T) {
	nodes := New().Parse("hey @ann look")
	require.Len(t, nodes, 3)

	assert.Equal(t, "hey ", nodes[0].Text)

	mention := nodes[1]
	assert.Equal(t, "a", mention.Tag)
	assert.Equal(t, "mention", mention.Class)
	assert.Equal(t, "ann", mention.Attrs["data-author-name"])
	assert.Equal(t, "@ann", mention.Children[0].Text)

	assert.Equal(t, " look", nodes[2].Text)
}

func TestParseLink(t *testing.T) {
	nodes := New().Parse("see https://example.com/a for more")
	require.Len(t, nodes, 3)

	link := nodes[1]
	assert.Equal(t, "a", link.Tag)
	assert.Equal(t, "link", link.Class)
	assert.Equal(t, "https://example.com/a", link.Attrs["href"])
	assert.Equal(t, "_blank", link.Attrs["target"])
}

func TestParseBareAtSignStaysPlain(t *testing.T) {
	nodes := New().Parse("meet @ noon")
	require.Len(t, nodes, 1)
	assert.Equal(t, "meet @ noon", nodes[0].Text)
}

func TestParsePreservesWhitespaceRuns(t *testing.T) {
	nodes := New().Parse("a  b")
	require.Len(t, nodes, 1)
	assert.Equal(t, "a  b", nodes[0].Text)
}

func TestParserSatisfiesRenderContract(t *testing.T) {
	var _ render.TextParser = New()
}
