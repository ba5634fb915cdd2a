package actors

import (
	stdctx "context"
	"log"
	"net/url"
	"time"

	"github.com/asynkron/protoactor-go/actor"

	"heron-feed/internal/content"
	"heron-feed/internal/models"
	"heron-feed/internal/posting"
	"heron-feed/internal/render"
	"heron-feed/internal/state"
	"heron-feed/internal/utils"
)

// Notifier surfaces user-visible notifications (mutation failures).
type Notifier interface {
	Notify(userID string, message string)
}

// Navigator routes the user to a deep-link target.
type Navigator interface {
	Go(userID string, url string)
}

// Message types for post controller operations
type (
	// BindPostMsg binds or rebinds the controller to a post record. A
	// refresh of the same post reconciles the like overlay; a switch to a
	// different post invalidates pending session comments.
	BindPostMsg struct {
		Post *models.Post
	}

	// RenderPostMsg renders the bound post with overlays applied.
	RenderPostMsg struct {
		Minimal    bool
		NoComments bool
	}

	ToggleLikeMsg struct{}

	SetCommentDraftMsg struct {
		Text string
	}

	SubmitCommentMsg struct{}

	// ReplyToMsg prefixes the comment draft with a mention of the given
	// author.
	ReplyToMsg struct {
		AuthorName string
	}

	// DeletePostMsg deletes the bound post. The destructive path requires
	// Confirmed to be set; unconfirmed requests are rejected.
	DeletePostMsg struct {
		Confirmed bool
	}

	// GoAuthorMsg resolves the author reference under the activation point
	// and emits a profile navigation event.
	GoAuthorMsg struct {
		InlineAuthorID string
	}

	GetViewStateMsg struct{}

	// Async completions re-entering the mailbox from network goroutines.
	likeCompletedMsg struct {
		postID string
		liked  bool
		err    error
	}

	commentCompletedMsg struct {
		postID  string
		comment *models.Comment
		err     error
	}

	deleteCompletedMsg struct {
		postID string
		err    error
	}
)

// RenderResult is the response to RenderPostMsg.
type RenderResult struct {
	Node      *render.Node `json:"node"`
	Liked     bool         `json:"liked"`
	LikeCount int          `json:"likeCount"`
	Deleted   bool         `json:"deleted"`
}

// ViewState is the effective displayed state of the bound post.
type ViewState struct {
	PostID       string `json:"postId"`
	Liked        bool   `json:"liked"`
	LikeCount    int    `json:"likeCount"`
	CommentDraft string `json:"commentDraft"`
	CommentCount int    `json:"commentCount"`
	Deleted      bool   `json:"deleted"`
}

// PostActor is the controller for one post instance. It owns the transient
// comment session, resolves effective like state through the shared overlay,
// and issues mutation requests to the posting service. All state mutation
// happens inside the mailbox; network calls run in goroutines and send
// completion messages back.
type PostActor struct {
	post      *models.Post
	store     *state.Store
	registry  *render.Registry
	service   posting.Service
	notifier  Notifier
	navigator Navigator
	metrics   *utils.MetricsCollector

	// Comment session, reset when the bound post identity moves away from
	// lastCommentedPostID while local comments are pending.
	newComment          string
	comments            []models.Comment
	lastCommentedPostID string

	deleted bool
}

// NewPostActor builds a controller over the given collaborators.
func NewPostActor(
	store *state.Store,
	registry *render.Registry,
	service posting.Service,
	notifier Notifier,
	navigator Navigator,
	metrics *utils.MetricsCollector,
) actor.Actor {
	return &PostActor{
		store:     store,
		registry:  registry,
		service:   service,
		notifier:  notifier,
		navigator: navigator,
		metrics:   metrics,
	}
}

// Receive handles incoming messages
func (a *PostActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("PostActor started")
	case *actor.Stopping:
		log.Printf("PostActor stopping")
	case *BindPostMsg:
		a.handleBindPost(context, msg)
	case *RenderPostMsg:
		a.handleRender(context, msg)
	case *ToggleLikeMsg:
		a.handleToggleLike(context)
	case *SetCommentDraftMsg:
		a.newComment = msg.Text
		context.Respond(a.viewState())
	case *SubmitCommentMsg:
		a.handleSubmitComment(context)
	case *ReplyToMsg:
		a.newComment = "@" + msg.AuthorName + " " + a.newComment
		context.Respond(a.viewState())
	case *DeletePostMsg:
		a.handleDelete(context, msg)
	case *GoAuthorMsg:
		a.handleGoAuthor(context, msg)
	case *GetViewStateMsg:
		context.Respond(a.viewState())
	case *likeCompletedMsg:
		a.handleLikeCompleted(msg)
	case *commentCompletedMsg:
		a.handleCommentCompleted(msg)
	case *deleteCompletedMsg:
		a.handleDeleteCompleted(msg)
	default:
		log.Printf("PostActor: Unknown message type: %T", msg)
	}
}

func (a *PostActor) handleBindPost(context actor.Context, msg *BindPostMsg) {
	incoming := msg.Post
	if incoming == nil || incoming.ID == "" {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "post record has no id", nil))
		return
	}

	// Pending session comments must not leak onto a different post when the
	// controller is reused.
	if incoming.ID != a.lastCommentedPostID && len(a.comments) > 0 {
		log.Printf("PostActor: Dropping %d pending comments on rebind to post %s", len(a.comments), incoming.ID)
		a.comments = nil
		a.lastCommentedPostID = ""
	}

	// An authoritative refresh that confirms the overlay value retires the
	// overlay entry; server state is the effective truth again.
	likes := a.store.GetState().LocalLikes
	if local, ok := likes[incoming.ID]; ok && local == incoming.LikedByMe {
		a.store.ClearLocalLike(incoming.ID)
	}

	if a.post == nil || a.post.ID != incoming.ID {
		a.deleted = false
	}
	a.post = incoming
	context.Respond(a.viewState())
}

func (a *PostActor) handleRender(context actor.Context, msg *RenderPostMsg) {
	if a.post == nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "no post bound", nil))
		return
	}
	startTime := time.Now()

	view := a.buildView(msg)
	node, err := a.registry.RenderPost(view)
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			context.Respond(appErr)
		} else {
			context.Respond(utils.NewAppError(utils.ErrRenderFailed, "render pass failed", err))
		}
		return
	}

	a.metrics.AddOperationLatency("render_post", time.Since(startTime))
	context.Respond(&RenderResult{
		Node:      node,
		Liked:     view.Liked,
		LikeCount: view.LikeCount,
		Deleted:   view.Deleted,
	})
}

func (a *PostActor) buildView(msg *RenderPostMsg) render.PostView {
	if a.deleted {
		return render.PostView{ID: a.post.ID, Deleted: true}
	}

	author := content.ResolveAuthor(a.post)
	profileID := ""
	if profile := a.store.GetState().Profile; profile != nil {
		profileID = profile.ID
	}
	ownerID := a.post.AuthorID
	if ownerID == "" && author != nil {
		ownerID = author.ID
	}

	return render.PostView{
		ID:           a.post.ID,
		Type:         a.post.Type,
		Author:       author,
		CreatedAt:    time.Unix(a.post.CreatedTime, 0),
		IsOwn:        ownerID == "" || ownerID == profileID,
		Liked:        a.store.EffectiveLiked(a.post.ID, a.post.LikedByMe),
		LikeCount:    a.store.EffectiveLikeCount(a.post.ID, a.post.LikeCount, a.post.LikedByMe),
		Items:        content.NormalizeMessage(a.post),
		Comments:     a.mergedComments(),
		CommentDraft: a.newComment,
		Minimal:      msg.Minimal,
		ShowComments: !msg.NoComments,
		Deleted:      false,
	}
}

// mergedComments concatenates server-supplied comments with session
// comments whose ids the server has not reported yet. Server list takes
// precedence; local entries are appended after.
func (a *PostActor) mergedComments() []models.Comment {
	merged := append([]models.Comment(nil), a.post.Comments...)
	seen := make(map[string]bool, len(merged))
	for _, c := range merged {
		seen[c.ID] = true
	}
	for _, c := range a.comments {
		if !seen[c.ID] {
			merged = append(merged, c)
		}
	}
	return merged
}

func (a *PostActor) handleToggleLike(context actor.Context) {
	if appErr := a.mutable(); appErr != nil {
		context.Respond(appErr)
		return
	}
	startTime := time.Now()

	// Optimistic write: the overlay is updated before the request is
	// issued, so renders reflect the intent immediately.
	liked := !a.store.EffectiveLiked(a.post.ID, a.post.LikedByMe)
	a.store.SetLocalLike(a.post.ID, liked)

	postID := a.post.ID
	self := context.Self()
	root := context.ActorSystem().Root
	go func() {
		var err error
		if liked {
			err = a.service.Like(stdctx.Background(), postID)
		} else {
			err = a.service.Unlike(stdctx.Background(), postID)
		}
		root.Send(self, &likeCompletedMsg{postID: postID, liked: liked, err: err})
	}()

	a.metrics.AddOperationLatency("toggle_like", time.Since(startTime))
	context.Respond(a.viewState())
}

func (a *PostActor) handleLikeCompleted(msg *likeCompletedMsg) {
	if msg.err == nil {
		return
	}
	log.Printf("PostActor: Like request failed for post %s: %v", msg.postID, msg.err)
	a.metrics.IncrementErrors()
	// The overlay stays in place: the shown state keeps the user's intent
	// until a later toggle or an authoritative refresh.
	a.notify("Error: " + msg.err.Error())
}

func (a *PostActor) handleSubmitComment(context actor.Context) {
	if appErr := a.mutable(); appErr != nil {
		context.Respond(appErr)
		return
	}
	if a.newComment == "" {
		context.Respond(a.viewState())
		return
	}
	startTime := time.Now()

	postID := a.post.ID
	body := a.newComment
	self := context.Self()
	root := context.ActorSystem().Root
	go func() {
		comment, err := a.service.Comment(stdctx.Background(), postID, body)
		root.Send(self, &commentCompletedMsg{postID: postID, comment: comment, err: err})
	}()

	a.metrics.AddOperationLatency("submit_comment", time.Since(startTime))
	context.Respond(a.viewState())
}

func (a *PostActor) handleCommentCompleted(msg *commentCompletedMsg) {
	if msg.err != nil {
		log.Printf("PostActor: Comment failed for post %s: %v", msg.postID, msg.err)
		a.metrics.IncrementErrors()
		// The draft stays intact; nothing the user typed is lost.
		a.notify("Error: " + msg.err.Error())
		return
	}
	if a.post == nil || a.post.ID != msg.postID {
		// The controller moved on to a different post while the request was
		// in flight; the confirmed comment must not surface here.
		log.Printf("PostActor: Dropping late comment for post %s", msg.postID)
		return
	}

	comment := *msg.comment
	comment.Author = a.store.GetState().Profile
	a.comments = append(a.comments, comment)
	a.lastCommentedPostID = msg.postID
	a.newComment = ""
}

func (a *PostActor) handleDelete(context actor.Context, msg *DeletePostMsg) {
	if appErr := a.mutable(); appErr != nil {
		context.Respond(appErr)
		return
	}
	if !msg.Confirmed {
		context.Respond(utils.NewAppError(utils.ErrNotConfirmed, "delete requires explicit confirmation", nil))
		return
	}

	postID := a.post.ID
	self := context.Self()
	root := context.ActorSystem().Root
	go func() {
		err := a.service.DeletePost(stdctx.Background(), postID)
		root.Send(self, &deleteCompletedMsg{postID: postID, err: err})
	}()
	context.Respond(&models.StatusResponse{Success: true, Message: "delete requested"})
}

func (a *PostActor) handleDeleteCompleted(msg *deleteCompletedMsg) {
	if msg.err != nil {
		log.Printf("PostActor: Delete failed for post %s: %v", msg.postID, msg.err)
		a.metrics.IncrementErrors()
		// The post stays listed until a confirmation arrives.
		a.notify("Error: " + msg.err.Error())
		return
	}
	if a.post != nil && a.post.ID == msg.postID {
		a.deleted = true
		a.metrics.AddOperationLatency("delete_post", 0)
	}
}

func (a *PostActor) handleGoAuthor(context actor.Context, msg *GoAuthorMsg) {
	if a.post == nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "no post bound", nil))
		return
	}
	id := msg.InlineAuthorID
	if id == "" {
		if author := content.ResolveAuthor(a.post); author != nil {
			id = author.ID
		}
	}
	if id == "" {
		context.Respond(&models.StatusResponse{Success: false, Message: "no author reference"})
		return
	}
	if a.navigator != nil {
		a.navigator.Go(a.currentUserID(), "/profile/"+url.PathEscape(id))
	}
	context.Respond(&models.StatusResponse{Success: true})
}

// mutable rejects mutations against an unbound or deleted post.
func (a *PostActor) mutable() *utils.AppError {
	if a.post == nil {
		return utils.NewAppError(utils.ErrInvalidInput, "no post bound", nil)
	}
	if a.deleted {
		return utils.NewAppError(utils.ErrPostDeleted, "post has been deleted", nil)
	}
	return nil
}

func (a *PostActor) viewState() *ViewState {
	if a.post == nil {
		return &ViewState{}
	}
	return &ViewState{
		PostID:       a.post.ID,
		Liked:        a.store.EffectiveLiked(a.post.ID, a.post.LikedByMe),
		LikeCount:    a.store.EffectiveLikeCount(a.post.ID, a.post.LikeCount, a.post.LikedByMe),
		CommentDraft: a.newComment,
		CommentCount: len(a.mergedComments()),
		Deleted:      a.deleted,
	}
}

func (a *PostActor) currentUserID() string {
	if profile := a.store.GetState().Profile; profile != nil {
		return profile.ID
	}
	return ""
}

func (a *PostActor) notify(message string) {
	if a.notifier != nil && a.currentUserID() != "" {
		a.notifier.Notify(a.currentUserID(), message)
	}
}
