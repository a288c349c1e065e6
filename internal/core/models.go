package core

import (
	"time"
)

// EntityKind tells which kind of entity owns a comment thread.
type EntityKind string

const (
	EntityPost EntityKind = "post"
	EntityBlog EntityKind = "blog"
)

// TargetType is the kind of content a report points at.
type TargetType string

const (
	TargetComment TargetType = "comment"
	TargetPost    TargetType = "post"
)

// Author is the denormalized user summary the API embeds into content.
type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Comment is a top-level comment on a post or blog. IDs are opaque and
// server-assigned; the client never mints them.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`

	// RepliesCount is advisory. Once the replies of a comment are fully
	// fetched, len(replies) is the authoritative count.
	RepliesCount int `json:"repliesCount"`
}

// Reply is a second-level comment. The thread is at most two levels deep.
type Reply struct {
	Comment

	ParentID    string  `json:"parentId"`
	ReplyToUser *Author `json:"replyToUser,omitempty"`
}

// CommentPage is one page of top-level comments.
type CommentPage struct {
	Comments []Comment
	// Count is the server-reported total for the whole thread, not the page.
	Count int
}

// Post is a feed entry, enough for the supporting screens.
type Post struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	Author        Author    `json:"author"`
	CreatedAt     time.Time `json:"createdAt"`
	CommentsCount int       `json:"commentsCount"`
	LikesCount    int       `json:"likesCount"`
	Liked         bool      `json:"liked"`
}

// Profile is a user profile as returned by the API.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Headline  string    `json:"headline"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is the locally stored authenticated identity: the user blob plus
// the bearer credential. The API owns authentication; we only cache it.
type Session struct {
	User  Author `json:"user"`
	Token string `json:"token"`
}
