package models

// Post is one feed entry as delivered by the feed service. The wire shape is
// loose: Message may be a single item object, an array of items, a bare
// string, or absent entirely (in which case Body carries the content, either
// directly or under its "message" key). Normalization of all of these forms
// into a typed item sequence lives in the content package.
type Post struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Message     any       `json:"message,omitempty"`
	Body        any       `json:"body,omitempty"`
	Comments    []Comment `json:"comments,omitempty"`
	Author      *Author   `json:"author,omitempty"`
	AuthorID    string    `json:"authorId,omitempty"`
	CreatedTime int64     `json:"createdTime"`
	LikeCount   int       `json:"likeCount"`
	LikedByMe   bool      `json:"likedByMe"`
}
