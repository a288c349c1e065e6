package core

import (
	"context"
)

// API is the collaborator REST API surface the client depends on. One update
// and one delete endpoint cover both comments and replies.
type API interface {
	ListComments(ctx context.Context, kind EntityKind, entityID string, limit, offset int) (CommentPage, error)
	ListReplies(ctx context.Context, commentID string, limit int) ([]Reply, error)
	CreateComment(ctx context.Context, kind EntityKind, entityID, content string) (Comment, error)
	CreateReply(ctx context.Context, commentID, content string, replyTo *Author) (Reply, error)
	UpdateComment(ctx context.Context, commentID, content string) error
	DeleteComment(ctx context.Context, commentID string) error

	Report(ctx context.Context, targetUserID string, target TargetType, targetID, reason string) error
	LikePost(ctx context.Context, postID string) error
	UnlikePost(ctx context.Context, postID string) error

	Me(ctx context.Context) (Author, error)
	Profile(ctx context.Context, userID string) (Profile, error)
	Feed(ctx context.Context, limit, offset int) ([]Post, error)
}

// TokenSource hands out the current bearer token, empty when logged out.
type TokenSource interface {
	Token() string
}

// SessionStore is the local-storage analogue: a small durable cache for the
// session and, best effort, for per-thread expanded-state UI flags.
type SessionStore interface {
	TokenSource

	Current() (Session, bool)
	Save(session Session) error
	Clear() error

	// Expanded-state persistence is a convenience cache, never authoritative.
	LoadExpanded(entityKey string) map[string]bool
	SaveExpanded(entityKey string, expanded map[string]bool)
}
