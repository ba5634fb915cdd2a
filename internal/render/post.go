package render

import (
	"strconv"
	"time"

	humanize "github.com/dustin/go-humanize"

	"heron-feed/internal/content"
	"heron-feed/internal/models"
)

// PostView is the fully resolved state of one post, ready to render: like
// state and comment list have already been merged with the local overlays by
// the controller.
type PostView struct {
	ID           string
	Type         string
	Author       *models.Author
	CreatedAt    time.Time
	IsOwn        bool
	Liked        bool
	LikeCount    int
	Items        []content.Item
	Comments     []models.Comment
	CommentDraft string
	Minimal      bool
	ShowComments bool
	Deleted      bool
}

// RenderPost renders a complete post subtree. A deleted post renders as an
// empty terminal placeholder. Item render failures propagate out of the
// pass.
func (r *Registry) RenderPost(view PostView) (*Node, error) {
	if view.Deleted {
		return Element("div", "post post-deleted"), nil
	}

	post := Element("div", "post type-"+view.Type)
	if view.Author != nil {
		post.WithAttr("has-avatar", "true")
	}
	if view.IsOwn {
		post.WithAttr("is-own", "true")
	}
	if view.Minimal {
		post.WithAttr("minimal", "true")
	}

	if view.Author != nil || !view.Minimal {
		avatar := Element("div", "avatar")
		if view.Author != nil {
			avatar.WithAttr("data-author-id", view.Author.ID)
			if view.Author.AvatarSrc != "" {
				avatar.WithAttr("style", "background-image: url("+view.Author.AvatarSrc+")")
			}
		}
		post.Append(avatar)
	}

	post.Append(r.renderMeta(view))

	items := Element("div", "items")
	for _, item := range view.Items {
		node, err := r.Render(item)
		if err != nil {
			return nil, err
		}
		items.Append(node)
	}
	post.Append(items)

	if view.ShowComments && !view.Minimal {
		comments := Element("div", "comments")
		for _, c := range view.Comments {
			comments.Append(r.InlineComment(c))
		}
		post.Append(Guard(comments))
		post.Append(Guard(r.renderCommentBox(view)))
	}

	return post, nil
}

func (r *Registry) renderMeta(view PostView) *Node {
	meta := Element("div", "post-meta",
		Element("span", "post-time", Text(humanize.Time(view.CreatedAt))),
	)
	if view.Minimal {
		return meta
	}
	if view.IsOwn {
		meta.Append(Element("span", "post-menu-wrap",
			Element("button", "post-menu",
				Element("i", "icon", Text("more vert")),
			),
			Element("div", "menu",
				Element("div", "menu-item delete", Text("Delete")),
			),
		))
	}
	like := Element("button", "like-unlike",
		Element("i", "icon", Text("favorite")),
	)
	if view.Liked {
		like.WithAttr("is-liked", "true")
	}
	if view.LikeCount > 0 {
		like.WithAttr("badge", strconv.Itoa(view.LikeCount))
	}
	meta.Append(like)
	return meta
}

func (r *Registry) renderCommentBox(view PostView) *Node {
	return Element("div", "post-new-comment",
		Element("textarea", "").
			WithAttr("placeholder", "Witty remark").
			WithAttr("value", view.CommentDraft),
		Element("button", "send",
			Element("i", "icon", Text("send")),
		),
	)
}

// InlineComment renders one comment below a post. The comment's author is
// opportunistically cached for reuse elsewhere.
func (r *Registry) InlineComment(c models.Comment) *Node {
	node := Element("div", "comment")

	avatar := Element("div", "avatar")
	if c.Author != nil {
		node.WithAttr("data-author-name", c.Author.Name)
		avatar.WithAttr("data-author-id", c.Author.ID)
		if c.Author.AvatarSrc != "" {
			avatar.WithAttr("style", "background-image: url("+c.Author.AvatarSrc+")")
		}
		if r.sink != nil {
			r.sink.Cache(c.Author)
		}
	}
	node.Append(avatar)

	body, _ := r.renderText(content.Item{Text: c.Body})
	node.Append(body)

	name := ""
	if c.Author != nil {
		name = c.Author.DisplayName
	}
	node.Append(Element("author", "", Text(name)))
	return node
}
