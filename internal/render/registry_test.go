package render

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heron-feed/internal/content"
	"heron-feed/internal/models"
	"heron-feed/internal/utils"
)

// plainParser renders raw text as a single text node, enough to observe
// what the registry hands to the parser.
type plainParser struct{}

func (plainParser) Parse(raw string) []*Node {
	if raw == "" {
		return nil
	}
	return []*Node{Text(raw)}
}

// recordingSink collects cached authors.
type recordingSink struct {
	authors []*models.Author
}

func (s *recordingSink) Cache(author *models.Author) {
	s.authors = append(s.authors, author)
}

func newTestRegistry() (*Registry, *bytes.Buffer) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	return NewRegistry(plainParser{}, nil, logger), &logs
}

func findByClass(n *Node, class string) *Node {
	if n == nil {
		return nil
	}
	if n.Class == class {
		return n
	}
	for _, child := range n.Children {
		if found := findByClass(child, class); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(n.Text)
	for _, child := range n.Children {
		sb.WriteString(collectText(child))
	}
	return sb.String()
}

func TestRenderWrapsInItemContainer(t *testing.T) {
	r, _ := newTestRegistry()
	node, err := r.Render(content.Item{Kind: content.KindText, Tag: "text", Text: "hi"})
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Equal(t, "div", node.Tag)
	assert.Equal(t, "item item-text", node.Class)
}

func TestRenderUnknownKind(t *testing.T) {
	r, logs := newTestRegistry()

	// An unknown item with fields renders nothing and logs one diagnostic
	node, err := r.Render(content.Item{Kind: content.KindUnknown, Tag: "hologram", HasFields: true})
	assert.NoError(t, err)
	assert.Nil(t, node)
	assert.Equal(t, 1, strings.Count(logs.String(), "unknown content type"))

	// An empty placeholder is skipped silently
	logs.Reset()
	node, err = r.Render(content.Item{Kind: content.KindUnknown, Tag: "hologram"})
	assert.NoError(t, err)
	assert.Nil(t, node)
	assert.Empty(t, logs.String())
}

func TestRenderImage(t *testing.T) {
	r, _ := newTestRegistry()
	node, err := r.Render(content.Item{Kind: content.KindImage, Tag: "image", Src: "a.jpg"})
	require.NoError(t, err)
	img := findByClass(node, "image-viewer")
	require.NotNil(t, img)
	assert.Equal(t, "img", img.Tag)
	assert.Equal(t, "a.jpg", img.Attrs["src"])
}

func TestRenderTextEmptyKeepsParagraph(t *testing.T) {
	r, _ := newTestRegistry()
	node, err := r.Render(content.Item{Kind: content.KindText, Tag: "text"})
	require.NoError(t, err)
	assert.Equal(t, " ", collectText(node))
}

func TestRenderVideoStartsStopped(t *testing.T) {
	r, _ := newTestRegistry()
	node, err := r.Render(content.Item{
		Kind:      content.KindVideo,
		Tag:       "video",
		Src:       "clip.mp4",
		PosterSrc: "poster.jpg",
	})
	require.NoError(t, err)
	require.NotNil(t, findByClass(node, "poster"))

	// No media element exists before playback starts
	var hasVideo func(n *Node) bool
	hasVideo = func(n *Node) bool {
		if n == nil {
			return false
		}
		if n.Tag == "video" {
			return true
		}
		for _, child := range n.Children {
			if hasVideo(child) {
				return true
			}
		}
		return false
	}
	assert.False(t, hasVideo(node))
}

func TestRenderLike(t *testing.T) {
	r, _ := newTestRegistry()
	node, err := r.Render(content.Item{
		Kind:         content.KindLike,
		Tag:          "LIKE",
		AuthorStream: &models.Author{DisplayName: "Ann"},
		PostMessage:  []content.Item{{Kind: content.KindText, Tag: "text", Text: "hi"}},
	})
	require.NoError(t, err)
	assert.Contains(t, collectText(node), "Ann liked this")
	assert.Contains(t, collectText(node), "hi")
}

func TestRenderLikeWithoutReferencedMessage(t *testing.T) {
	r, _ := newTestRegistry()
	_, err := r.Render(content.Item{Kind: content.KindLike, Tag: "like"})
	require.Error(t, err)
	assert.True(t, utils.IsErrorCode(err, utils.ErrRenderFailed))
}

func TestRenderMentionSynthesizesNotice(t *testing.T) {
	r, _ := newTestRegistry()
	node, err := r.Render(content.Item{
		Kind:   content.KindMention,
		Tag:    "mention",
		Author: &models.Author{DisplayName: "Ann"},
	})
	require.NoError(t, err)
	assert.Contains(t, collectText(node), "Ann mentioned you")

	// An explicit comment body wins over the synthesized one
	node, err = r.Render(content.Item{
		Kind:        content.KindTag,
		Tag:         "tag",
		Author:      &models.Author{DisplayName: "Ann"},
		CommentBody: "custom note",
	})
	require.NoError(t, err)
	text := collectText(node)
	assert.Contains(t, text, "custom note")
	assert.NotContains(t, text, "tagged you")
}

func TestRenderCommentWithoutReferencedMessage(t *testing.T) {
	r, _ := newTestRegistry()
	node, err := r.Render(content.Item{
		Kind:        content.KindComment,
		Tag:         "comment",
		CommentBody: "well said",
		Author:      &models.Author{DisplayName: "Bob"},
	})
	require.NoError(t, err)
	text := collectText(node)
	assert.Contains(t, text, "well said")
	assert.Contains(t, text, "Bob")
}

func TestRenderLink(t *testing.T) {
	r, _ := newTestRegistry()
	node, err := r.Render(content.Item{
		Kind:        content.KindLink,
		Tag:         "link",
		Title:       "Story",
		URL:         "https://example.com/story",
		Description: "worth a look",
		ImageURL:    "preview.jpg",
	})
	require.NoError(t, err)
	link := findByClass(node, "item-link")
	require.NotNil(t, link)
	anchor := link.Children[0]
	assert.Equal(t, "https://example.com/story", anchor.Attrs["href"])
	assert.Equal(t, "_blank", anchor.Attrs["target"])
}

func TestRenderMusic(t *testing.T) {
	r, _ := newTestRegistry()

	node, err := r.Render(content.Item{
		Kind:    content.KindMusic,
		Tag:     "music",
		Title:   "Song",
		TrackID: "4uLU6hMCjMI75M1A2tKUQC",
	})
	require.NoError(t, err)
	player := findByClass(node, "music-player")
	require.NotNil(t, player)
	require.Len(t, player.Children, 2)
	iframe := player.Children[1]
	assert.Equal(t, "iframe", iframe.Tag)
	assert.Contains(t, iframe.Attrs["src"], "spotify:track:4uLU6hMCjMI75M1A2tKUQC")

	// No track id, no embed
	node, err = r.Render(content.Item{Kind: content.KindMusic, Tag: "music", Title: "Song"})
	require.NoError(t, err)
	player = findByClass(node, "music-player")
	require.NotNil(t, player)
	assert.Len(t, player.Children, 1)
}

func TestRenderLocation(t *testing.T) {
	r, _ := newTestRegistry()
	node, err := r.Render(content.Item{
		Kind:    content.KindLocation,
		Tag:     "location",
		Name:    "Blue Cafe",
		IconSrc: "pin.png",
		Lat:     "37.7749",
		Long:    "-122.4194",
	})
	require.NoError(t, err)
	link := findByClass(node, "location-link")
	require.NotNil(t, link)
	href := link.Attrs["href"]
	assert.Contains(t, href, "https://www.google.com/maps/place/")
	assert.Contains(t, href, "@37.7749,-122.4194,17z")
	assert.Contains(t, collectText(link), "Blue Cafe")
}
