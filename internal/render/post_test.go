package render

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heron-feed/internal/content"
	"heron-feed/internal/models"
)

func sampleView() PostView {
	return PostView{
		ID:        "p1",
		Type:      "text",
		Author:    &models.Author{ID: "u1", DisplayName: "Ann", AvatarSrc: "ann.png"},
		CreatedAt: time.Now().Add(-2 * time.Hour),
		LikeCount: 3,
		Items: []content.Item{
			{Kind: content.KindText, Tag: "text", Text: "hello"},
		},
		Comments: []models.Comment{
			{ID: "c1", Body: "first", Author: &models.Author{ID: "u2", DisplayName: "Bob", Name: "bob"}},
		},
		ShowComments: true,
	}
}

func TestRenderPostDeleted(t *testing.T) {
	r, _ := newTestRegistry()
	node, err := r.RenderPost(PostView{ID: "p1", Deleted: true})
	require.NoError(t, err)
	assert.Equal(t, "post post-deleted", node.Class)
	assert.Empty(t, node.Children)
}

func TestRenderPostFull(t *testing.T) {
	r, _ := newTestRegistry()
	node, err := r.RenderPost(sampleView())
	require.NoError(t, err)

	assert.Equal(t, "post type-text", node.Class)
	assert.Equal(t, "true", node.Attrs["has-avatar"])
	assert.Empty(t, node.Attrs["is-own"])

	avatar := findByClass(node, "avatar")
	require.NotNil(t, avatar)
	assert.Equal(t, "u1", avatar.Attrs["data-author-id"])

	items := findByClass(node, "items")
	require.NotNil(t, items)
	require.Len(t, items.Children, 1)
	assert.Contains(t, collectText(items), "hello")

	like := findByClass(node, "like-unlike")
	require.NotNil(t, like)
	assert.Equal(t, "3", like.Attrs["badge"])
	assert.Empty(t, like.Attrs["is-liked"])

	// Comment regions are guarded so inner clicks stay local
	comments := findByClass(node, "comments")
	require.NotNil(t, comments)
	assert.True(t, comments.StopPropagation)
	box := findByClass(node, "post-new-comment")
	require.NotNil(t, box)
	assert.True(t, box.StopPropagation)
}

func TestRenderPostLiked(t *testing.T) {
	r, _ := newTestRegistry()
	view := sampleView()
	view.Liked = true
	view.LikeCount = 4
	node, err := r.RenderPost(view)
	require.NoError(t, err)

	like := findByClass(node, "like-unlike")
	require.NotNil(t, like)
	assert.Equal(t, "true", like.Attrs["is-liked"])
	assert.Equal(t, "4", like.Attrs["badge"])
}

func TestRenderPostOwnShowsDeleteMenu(t *testing.T) {
	r, _ := newTestRegistry()
	view := sampleView()
	view.IsOwn = true
	node, err := r.RenderPost(view)
	require.NoError(t, err)

	assert.Equal(t, "true", node.Attrs["is-own"])
	require.NotNil(t, findByClass(node, "menu-item delete"))
}

func TestRenderPostMinimal(t *testing.T) {
	r, _ := newTestRegistry()
	view := sampleView()
	view.Minimal = true
	view.IsOwn = true
	node, err := r.RenderPost(view)
	require.NoError(t, err)

	assert.Equal(t, "true", node.Attrs["minimal"])
	// The teaser variant drops comments, the comment box and the menu
	assert.Nil(t, findByClass(node, "comments"))
	assert.Nil(t, findByClass(node, "post-new-comment"))
	assert.Nil(t, findByClass(node, "menu-item delete"))
}

func TestRenderPostNoComments(t *testing.T) {
	r, _ := newTestRegistry()
	view := sampleView()
	view.ShowComments = false
	node, err := r.RenderPost(view)
	require.NoError(t, err)
	assert.Nil(t, findByClass(node, "comments"))
	assert.Nil(t, findByClass(node, "post-new-comment"))
}

func TestRenderPostDraftSurvivesRender(t *testing.T) {
	r, _ := newTestRegistry()
	view := sampleView()
	view.CommentDraft = "half typed"
	node, err := r.RenderPost(view)
	require.NoError(t, err)

	box := findByClass(node, "post-new-comment")
	require.NotNil(t, box)
	textarea := box.Children[0]
	assert.Equal(t, "half typed", textarea.Attrs["value"])
}

func TestInlineCommentCachesAuthor(t *testing.T) {
	sink := &recordingSink{}
	r := NewRegistry(plainParser{}, sink, slog.Default())

	author := &models.Author{ID: "u2", DisplayName: "Bob", Name: "bob"}
	node := r.InlineComment(models.Comment{ID: "c1", Body: "first", Author: author})

	assert.Equal(t, "bob", node.Attrs["data-author-name"])
	assert.Contains(t, collectText(node), "first")
	assert.Contains(t, collectText(node), "Bob")
	require.Len(t, sink.authors, 1)
	assert.Same(t, author, sink.authors[0])
}
