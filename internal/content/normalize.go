package content

import (
	"encoding/json"

	"heron-feed/internal/models"
)

// DecodePost parses a raw feed-service post payload. Message and Body stay
// untyped here; NormalizeMessage is the single place that turns them into a
// typed item sequence.
func DecodePost(data []byte) (*models.Post, error) {
	var post models.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// ResolveAuthor returns the post's author entity, falling back to the
// authorStream nested in the body. Both shapes reference the same entity.
func ResolveAuthor(post *models.Post) *models.Author {
	if post.Author != nil {
		return post.Author
	}
	if body, ok := post.Body.(map[string]any); ok {
		return authorFromValue(body["authorStream"])
	}
	return nil
}

// NormalizeMessage produces the ordered, fully typed item sequence for a
// post. Precedence, in order:
//
//  1. post.Message, when it holds at least one element;
//  2. the "message" key of post.Body;
//  3. post.Body itself.
//
// The selected value is wrapped into a slice if it is a single value, bare
// strings become text items, and any item without a type tag inherits the
// post's own type. The result is never nil; an absent message normalizes to
// an empty slice. Normalizing an already normalized sequence is a no-op.
func NormalizeMessage(post *models.Post) []Item {
	raw := post.Message
	if isEmptyMessage(raw) {
		raw = nil
		if body, ok := post.Body.(map[string]any); ok {
			raw = body["message"]
		}
		if isEmptyMessage(raw) {
			raw = post.Body
		}
	}
	return NormalizeItems(raw, post.Type)
}

// NormalizeItems is the total parsing function behind NormalizeMessage,
// exposed separately so the coercion chain is testable without a post.
func NormalizeItems(raw any, postType string) []Item {
	list := asList(raw)
	items := make([]Item, 0, len(list))
	for _, v := range list {
		it := coerceItem(v)
		if it.Tag == "" {
			it.Tag = postType
			it.Kind = KindFromTag(postType)
		}
		items = append(items, it)
	}
	return items
}

func isEmptyMessage(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []Item:
		return len(v) == 0
	default:
		return false
	}
}

func asList(raw any) []any {
	switch v := raw.(type) {
	case nil:
		return nil
	case []any:
		return v
	case []Item:
		list := make([]any, len(v))
		for i, it := range v {
			list[i] = it
		}
		return list
	default:
		return []any{v}
	}
}

func coerceItem(v any) Item {
	switch item := v.(type) {
	case Item:
		return item
	case string:
		return Item{Kind: KindText, Tag: "text", Text: item, HasFields: true}
	case map[string]any:
		return ParseItem(item)
	default:
		// Unrepresentable element; treated as an empty placeholder.
		return Item{Kind: KindUnknown}
	}
}
