// Package posting is the gateway to the remote posting service: the
// authority for likes, comments, and deletions. The engine only ever talks
// to it through the Service contract.
package posting

import (
	"context"

	"heron-feed/internal/models"
)

// Service is the narrow posting-service contract consumed by the post
// controller.
type Service interface {
	Like(ctx context.Context, postID string) error
	Unlike(ctx context.Context, postID string) error
	Comment(ctx context.Context, postID string, body string) (*models.Comment, error)
	DeletePost(ctx context.Context, postID string) error
}
