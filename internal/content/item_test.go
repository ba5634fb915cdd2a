package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindFromTag(t *testing.T) {
	assert.Equal(t, KindText, KindFromTag("text"))
	assert.Equal(t, KindImage, KindFromTag("IMAGE"))
	assert.Equal(t, KindMention, KindFromTag("Mention"))
	assert.Equal(t, KindUnknown, KindFromTag("hologram"))
	assert.Equal(t, KindUnknown, KindFromTag(""))
}

func TestParseItemText(t *testing.T) {
	it := ParseItem(map[string]any{
		"type": "text",
		"text": "hello there",
	})
	assert.Equal(t, KindText, it.Kind)
	assert.Equal(t, "text", it.Tag)
	assert.Equal(t, "hello there", it.Text)
	assert.True(t, it.HasFields)
}

func TestParseItemPreservesTagCasing(t *testing.T) {
	it := ParseItem(map[string]any{"type": "LIKE"})
	assert.Equal(t, KindLike, it.Kind)
	assert.Equal(t, "LIKE", it.Tag)
}

func TestParseItemUnknownVariant(t *testing.T) {
	it := ParseItem(map[string]any{"type": "hologram", "density": "high"})
	assert.Equal(t, KindUnknown, it.Kind)
	assert.True(t, it.HasFields)

	// A bare type tag is an empty placeholder
	bare := ParseItem(map[string]any{"type": "hologram"})
	assert.Equal(t, KindUnknown, bare.Kind)
	assert.False(t, bare.HasFields)
}

func TestParseItemSpotifyTrack(t *testing.T) {
	it := ParseItem(map[string]any{
		"type": "music",
		"name": "Song",
		"spotifyData": map[string]any{
			"track": map[string]any{"id": "4uLU6hMCjMI75M1A2tKUQC"},
		},
	})
	assert.Equal(t, KindMusic, it.Kind)
	assert.Equal(t, "4uLU6hMCjMI75M1A2tKUQC", it.TrackID)

	// Missing track leaves the id empty instead of failing
	none := ParseItem(map[string]any{
		"type":        "music",
		"spotifyData": map[string]any{},
	})
	assert.Empty(t, none.TrackID)
}

func TestParseItemCoordinates(t *testing.T) {
	// Coordinates arrive as strings from some writers and numbers from
	// others; both resolve to the same string form.
	asString := ParseItem(map[string]any{
		"type": "location",
		"lat":  "37.7749",
		"long": "-122.4194",
	})
	assert.Equal(t, "37.7749", asString.Lat)
	assert.Equal(t, "-122.4194", asString.Long)

	asNumber := ParseItem(map[string]any{
		"type": "location",
		"lat":  37.7749,
		"long": -122.4194,
	})
	assert.Equal(t, "37.7749", asNumber.Lat)
	assert.Equal(t, "-122.4194", asNumber.Long)
}

func TestParseItemNestedPostMessage(t *testing.T) {
	it := ParseItem(map[string]any{
		"type":   "mention",
		"postID": "p42",
		"author": map[string]any{"id": "u1", "displayName": "Ann"},
		"postMessage": []any{
			map[string]any{"type": "text", "text": "original"},
			"bare string item",
		},
	})
	assert.Equal(t, KindMention, it.Kind)
	assert.Equal(t, "p42", it.PostID)
	assert.Len(t, it.PostMessage, 2)
	assert.Equal(t, KindText, it.PostMessage[0].Kind)
	assert.Equal(t, "original", it.PostMessage[0].Text)
	assert.Equal(t, "bare string item", it.PostMessage[1].Text)
}

func TestDisplayNamePrefersAuthor(t *testing.T) {
	it := ParseItem(map[string]any{
		"type":         "tag",
		"author":       map[string]any{"displayName": "Ann"},
		"authorStream": map[string]any{"displayName": "Bob"},
	})
	assert.Equal(t, "Ann", it.DisplayName())

	streamOnly := ParseItem(map[string]any{
		"type":         "like",
		"authorStream": map[string]any{"displayName": "Bob"},
	})
	assert.Equal(t, "Bob", streamOnly.DisplayName())

	assert.Empty(t, Item{}.DisplayName())
}
