package models

// Author identifies the creator of a post or comment. The feed service
// delivers the same entity either as "author" on the post itself or as
// "authorStream" nested inside the post body.
type Author struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Name        string `json:"name"`
	AvatarSrc   string `json:"avatarSrc,omitempty"`
}

// Comment is one inline comment on a post. Comments returned from the
// posting service carry no author; the engine annotates them with the
// current profile before showing them.
type Comment struct {
	ID     string  `json:"id"`
	Body   string  `json:"body"`
	Author *Author `json:"author,omitempty"`
}

// StatusResponse is a generic success/failure payload
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
