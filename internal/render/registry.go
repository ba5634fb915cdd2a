package render

import (
	"log/slog"
	"net/url"

	"heron-feed/internal/content"
	"heron-feed/internal/models"
	"heron-feed/internal/utils"
)

// TextParser turns raw message text into inline rich content nodes
// (mentions, links, formatting). Parsing rules live outside the registry.
type TextParser interface {
	Parse(raw string) []*Node
}

// AuthorSink receives author entities encountered while rendering, for
// opportunistic caching. Fire-and-forget: implementations must not block.
type AuthorSink interface {
	Cache(author *models.Author)
}

type rendererFunc func(item content.Item) (*Node, error)

// Registry maps every content kind to its renderer. The mapping is built
// exhaustively at construction, so dispatch is total: Render always returns
// a node, nil, or an error.
type Registry struct {
	renderers map[content.ItemKind]rendererFunc
	parser    TextParser
	sink      AuthorSink
	logger    *slog.Logger
}

// NewRegistry builds a registry over the given collaborators. A nil sink
// disables author caching; a nil logger falls back to slog.Default.
func NewRegistry(parser TextParser, sink AuthorSink, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{parser: parser, sink: sink, logger: logger}
	r.renderers = map[content.ItemKind]rendererFunc{
		content.KindImage:    r.renderImage,
		content.KindGif:      r.renderImage,
		content.KindVideo:    r.renderVideo,
		content.KindText:     r.renderText,
		content.KindMention:  r.renderMention,
		content.KindTag:      r.renderTag,
		content.KindComment:  r.renderComment,
		content.KindLike:     r.renderLike,
		content.KindLink:     r.renderLink,
		content.KindMusic:    r.renderMusic,
		content.KindLocation: r.renderLocation,
	}
	return r
}

// Render dispatches an item to its renderer and wraps the output in an item
// container tagged with the original type. Items of an unknown kind render
// nothing; they produce one diagnostic when they carry fields besides the
// type tag, and are skipped silently when they are empty placeholders.
func (r *Registry) Render(item content.Item) (*Node, error) {
	fn, ok := r.renderers[item.Kind]
	if !ok {
		if item.HasFields {
			r.logger.Warn("unknown content type", "type", item.Tag)
		}
		return nil, nil
	}
	inner, err := fn(item)
	if err != nil {
		return nil, err
	}
	return Element("div", "item item-"+item.Tag, inner), nil
}

func (r *Registry) renderImage(item content.Item) (*Node, error) {
	return Element("img", "image-viewer").WithAttr("src", item.Src), nil
}

func (r *Registry) renderVideo(item content.Item) (*Node, error) {
	return NewVideoPlayer(item.Src, item.PosterSrc, nil).Render(), nil
}

func (r *Registry) renderText(item content.Item) (*Node, error) {
	parsed := r.parser.Parse(item.Text)
	if len(parsed) == 0 {
		// A single space keeps the paragraph from collapsing.
		parsed = []*Node{Text(" ")}
	}
	return Element("p", "", parsed...), nil
}

func (r *Registry) renderMention(item content.Item) (*Node, error) {
	return r.renderNotice(item, item.DisplayName()+" mentioned you")
}

func (r *Registry) renderTag(item content.Item) (*Node, error) {
	return r.renderNotice(item, item.DisplayName()+" tagged you")
}

// renderNotice rewrites a mention/tag item into a comment-shaped item whose
// body is the synthesized notice line. An explicit commentBody on the item
// wins over the synthesized one.
func (r *Registry) renderNotice(item content.Item, body string) (*Node, error) {
	if item.CommentBody == "" {
		item.CommentBody = body
	}
	return r.renderComment(item)
}

func (r *Registry) renderComment(item content.Item) (*Node, error) {
	// The referenced original item is optional for comments; an absent one
	// renders as an empty placeholder.
	var original content.Item
	if len(item.PostMessage) > 0 {
		original = item.PostMessage[0]
	}
	referenced, err := r.Render(original)
	if err != nil {
		return nil, err
	}
	body, err := r.renderText(content.Item{Text: item.CommentBody})
	if err != nil {
		return nil, err
	}
	return Element("div", "comment-block comment-type-"+item.Tag,
		referenced,
		Element("div", "comment",
			body,
			Element("author", "", Text(item.DisplayName())),
		),
	), nil
}

func (r *Registry) renderLike(item content.Item) (*Node, error) {
	// Unlike comments, the referenced original item is required here.
	if len(item.PostMessage) == 0 {
		return nil, utils.NewAppError(utils.ErrRenderFailed, "like item has no referenced post message", nil)
	}
	referenced, err := r.Render(item.PostMessage[0])
	if err != nil {
		return nil, err
	}
	name := ""
	if item.AuthorStream != nil {
		name = item.AuthorStream.DisplayName
	}
	return Element("div", "like-block",
		referenced,
		Element("div", "like", Text(name+" liked this")),
	), nil
}

func (r *Registry) renderLink(item content.Item) (*Node, error) {
	return Element("div", "item-link",
		Element("a", "", Text(item.Title)).
			WithAttr("href", item.URL).
			WithAttr("target", "_blank"),
		Element("p", "", Text(item.Description)),
		Element("img", "").WithAttr("src", item.ImageURL),
	), nil
}

func (r *Registry) renderMusic(item content.Item) (*Node, error) {
	player := Element("div", "music-player",
		Element("h6", "", Text(item.Title)),
	)
	if item.TrackID != "" {
		embed := "https://embed.spotify.com/?uri=spotify:track:" + url.QueryEscape(item.TrackID)
		player.Append(Element("iframe", "").
			WithAttr("src", embed).
			WithAttr("frameborder", "0"))
	}
	return player, nil
}

const locationZoom = "17z"

func (r *Registry) renderLocation(item content.Item) (*Node, error) {
	href := "https://www.google.com/maps/place/" + url.PathEscape(item.Name) +
		"/@" + url.PathEscape(item.Lat) + "," + url.PathEscape(item.Long) + "," + locationZoom + "/"
	link := Element("a", "location-link").
		WithAttr("href", href).
		WithAttr("target", "_blank")
	if item.IconSrc != "" {
		link.Append(Element("img", "location-icon").
			WithAttr("src", item.IconSrc).
			WithAttr("width", "26").
			WithAttr("height", "26"))
	}
	link.Append(Element("div", "location-name", Text(item.Name)))
	return link, nil
}
