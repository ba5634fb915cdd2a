package content

import (
	"fmt"
	"strconv"
	"strings"

	"heron-feed/internal/models"
)

// ItemKind is the closed set of content types the renderer understands.
// Unrecognized tags are surfaced as KindUnknown here, at the parsing
// boundary, rather than failing later inside the render pass.
type ItemKind string

const (
	KindText     ItemKind = "text"
	KindImage    ItemKind = "image"
	KindGif      ItemKind = "gif"
	KindVideo    ItemKind = "video"
	KindMusic    ItemKind = "music"
	KindLocation ItemKind = "location"
	KindLink     ItemKind = "link"
	KindComment  ItemKind = "comment"
	KindLike     ItemKind = "like"
	KindMention  ItemKind = "mention"
	KindTag      ItemKind = "tag"
	KindUnknown  ItemKind = "unknown"
)

var kindsByTag = map[string]ItemKind{
	"text":     KindText,
	"image":    KindImage,
	"gif":      KindGif,
	"video":    KindVideo,
	"music":    KindMusic,
	"location": KindLocation,
	"link":     KindLink,
	"comment":  KindComment,
	"like":     KindLike,
	"mention":  KindMention,
	"tag":      KindTag,
}

// KindFromTag resolves a wire type tag to its kind. Matching is
// case-insensitive; the original casing is preserved on the Item for
// container tagging.
func KindFromTag(tag string) ItemKind {
	if kind, ok := kindsByTag[strings.ToLower(tag)]; ok {
		return kind
	}
	return KindUnknown
}

// Item is one atomic unit of post content. It is the union of the
// type-specific fields of every kind: only the fields relevant to Kind are
// meaningful. HasFields records whether the raw item carried any field
// besides its type tag, which decides if an unknown kind warrants a
// diagnostic or is just an empty placeholder.
type Item struct {
	Kind      ItemKind
	Tag       string
	HasFields bool

	// text
	Text string

	// image / gif / video
	Src       string
	PosterSrc string

	// link / music
	Title       string
	Description string
	URL         string
	ImageURL    string
	TrackID     string

	// location
	Name    string
	IconSrc string
	Lat     string
	Long    string

	// comment / like / mention / tag
	CommentBody  string
	PostID       string
	PostMessage  []Item
	Author       *models.Author
	AuthorStream *models.Author
}

// DisplayName resolves the display name of the item's author, preferring
// the direct author reference over the stream-level one.
func (it Item) DisplayName() string {
	if it.Author != nil && it.Author.DisplayName != "" {
		return it.Author.DisplayName
	}
	if it.AuthorStream != nil {
		return it.AuthorStream.DisplayName
	}
	return ""
}

// ParseItem converts a raw decoded JSON object into a typed Item. It is
// total: any input yields an Item, with unrecognized tags mapped to
// KindUnknown.
func ParseItem(raw map[string]any) Item {
	tag := stringField(raw, "type")
	it := Item{
		Kind: KindFromTag(tag),
		Tag:  tag,

		Text:        stringField(raw, "text"),
		Src:         stringField(raw, "src"),
		PosterSrc:   stringField(raw, "posterSrc"),
		Title:       stringField(raw, "title"),
		Description: stringField(raw, "description"),
		URL:         stringField(raw, "url"),
		ImageURL:    stringField(raw, "imageURL"),
		Name:        stringField(raw, "name"),
		IconSrc:     stringField(raw, "iconSrc"),
		Lat:         scalarField(raw, "lat"),
		Long:        scalarField(raw, "long"),
		CommentBody: stringField(raw, "commentBody"),
		PostID:      stringField(raw, "postID"),

		Author:       authorFromValue(raw["author"]),
		AuthorStream: authorFromValue(raw["authorStream"]),
	}

	for key := range raw {
		if key != "type" {
			it.HasFields = true
			break
		}
	}

	if data, ok := raw["spotifyData"].(map[string]any); ok {
		if track, ok := data["track"].(map[string]any); ok {
			it.TrackID = stringField(track, "id")
		}
	}

	if nested, ok := raw["postMessage"].([]any); ok {
		it.PostMessage = make([]Item, 0, len(nested))
		for _, v := range nested {
			it.PostMessage = append(it.PostMessage, coerceItem(v))
		}
	}

	return it
}

func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

// scalarField reads a field that may arrive as either a string or a JSON
// number (lat/long do, depending on the client that wrote the post).
func scalarField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func authorFromValue(v any) *models.Author {
	switch a := v.(type) {
	case *models.Author:
		return a
	case map[string]any:
		return &models.Author{
			ID:          stringField(a, "id"),
			DisplayName: stringField(a, "displayName"),
			Name:        stringField(a, "name"),
			AvatarSrc:   stringField(a, "avatarSrc"),
		}
	default:
		return nil
	}
}
