package thread

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"threadline/internal/core"
	"threadline/pkg/async"

	"github.com/samber/lo"
)

// node is the per-comment synchronizer state: the cached replies, whether
// they were fully fetched, and the transient expanded flag.
type node struct {
	comment core.Comment
	replies []core.Reply

	// loaded flips once the replies were fetched; from then on len(replies)
	// is the authoritative count and comment.RepliesCount is only advisory.
	loaded  bool
	loading bool

	expanded bool
}

// Thread mirrors one entity's two-level comment tree. Server mutations are
// applied to local state only after the server acknowledged them; the
// expanded flag is the single optimistic exception since it carries no
// server truth.
type Thread struct {
	api      core.API
	sessions core.SessionStore
	logger   *slog.Logger

	kind     core.EntityKind
	entityID string
	pageSize int

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	nodes    []*node
	byID     map[string]*node
	total    int
	offset   int
	restored map[string]bool
}

// Close cancels every request still in flight and persists the expanded
// flags as a convenience cache.
func (t *Thread) Close() {
	t.cancel()

	t.mu.Lock()
	expanded := map[string]bool{}
	for id, n := range t.byID {
		if n.expanded {
			expanded[id] = true
		}
	}
	t.mu.Unlock()

	t.sessions.SaveExpanded(entityKey(t.kind, t.entityID), expanded)
}

// scoped binds a request to both the caller and the thread lifetime, so a
// closed thread aborts its requests no matter who issued them.
func (t *Thread) scoped(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(t.ctx, cancel)

	return ctx, func() {
		stop()
		cancel()
	}
}

// Load fetches the first page of top-level comments, replacing local state.
// Expanded flags restored from the local cache survive the reload.
func (t *Thread) Load(ctx context.Context) error {
	ctx, cancel := t.scoped(ctx)
	defer cancel()

	page, err := t.api.ListComments(ctx, t.kind, t.entityID, t.pageSize, 0)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.nodes = nil
	t.byID = map[string]*node{}
	t.total = page.Count
	t.offset = len(page.Comments)

	for _, comment := range page.Comments {
		t.insertLocked(comment, false)
	}
	return nil
}

// LoadMore appends the next page. Comments already present (e.g. one we
// created between pages) are skipped instead of duplicated.
func (t *Thread) LoadMore(ctx context.Context) error {
	ctx, cancel := t.scoped(ctx)
	defer cancel()

	t.mu.Lock()
	offset := t.offset
	t.mu.Unlock()

	page, err := t.api.ListComments(ctx, t.kind, t.entityID, t.pageSize, offset)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.total = page.Count
	t.offset += len(page.Comments)

	for _, comment := range page.Comments {
		if _, ok := t.byID[comment.ID]; ok {
			continue
		}
		t.insertLocked(comment, false)
	}
	return nil
}

func (t *Thread) HasMore() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.offset < t.total
}

// Total is the displayed top-level comment count.
func (t *Thread) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// insertLocked places a comment into the tree, newest-first when prepending.
func (t *Thread) insertLocked(comment core.Comment, prepend bool) {
	n := &node{comment: comment, expanded: t.restored[comment.ID]}
	t.byID[comment.ID] = n

	if prepend {
		t.nodes = append([]*node{n}, t.nodes...)
	} else {
		t.nodes = append(t.nodes, n)
	}
}

// Replies returns the cached replies for a comment, fetching them on first
// use. Repeated calls never refetch; RefreshReplies does.
func (t *Thread) Replies(ctx context.Context, commentID string) ([]core.Reply, error) {
	if err := t.ensureReplies(ctx, commentID); err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	n, ok := t.byID[commentID]
	if !ok {
		return nil, core.ErrNotFound
	}
	return append([]core.Reply(nil), n.replies...), nil
}

func (t *Thread) RefreshReplies(ctx context.Context, commentID string) error {
	t.mu.Lock()
	n, ok := t.byID[commentID]
	if !ok {
		t.mu.Unlock()
		return core.ErrNotFound
	}
	n.loaded = false
	t.mu.Unlock()

	return t.ensureReplies(ctx, commentID)
}

func (t *Thread) ensureReplies(ctx context.Context, commentID string) error {
	t.mu.Lock()
	n, ok := t.byID[commentID]
	if !ok {
		t.mu.Unlock()
		return core.ErrNotFound
	}
	if n.loaded || n.loading {
		t.mu.Unlock()
		return nil
	}
	n.loading = true
	t.mu.Unlock()

	ctx, cancel := t.scoped(ctx)
	defer cancel()

	replies, err := t.api.ListReplies(ctx, commentID, t.pageSize)

	t.mu.Lock()
	defer t.mu.Unlock()

	n.loading = false
	if err != nil {
		return err
	}

	n.replies = replies
	n.loaded = true
	n.comment.RepliesCount = len(replies)

	t.logger.Debug("replies loaded", "comment", commentID, "count", len(replies))
	return nil
}

// Toggle flips a comment's reply panel. The first expansion fetches the
// replies; later toggles reuse the cache. A failed fetch leaves the panel
// collapsed.
func (t *Thread) Toggle(ctx context.Context, commentID string) (bool, error) {
	t.mu.Lock()
	n, ok := t.byID[commentID]
	if !ok {
		t.mu.Unlock()
		return false, core.ErrNotFound
	}

	if n.expanded {
		n.expanded = false
		t.mu.Unlock()
		return false, nil
	}
	t.mu.Unlock()

	if err := t.ensureReplies(ctx, commentID); err != nil {
		return false, err
	}

	t.mu.Lock()
	n.expanded = true
	t.mu.Unlock()
	return true, nil
}

// AddComment validates locally, creates the comment on the server and
// prepends the canonical entity it returned. Newest-first, uniformly.
func (t *Thread) AddComment(ctx context.Context, content string) (core.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return core.Comment{}, core.ErrEmptyContent
	}
	if _, ok := t.sessions.Current(); !ok {
		return core.Comment{}, core.ErrNotAuthenticated
	}

	ctx, cancel := t.scoped(ctx)
	defer cancel()

	comment, err := t.api.CreateComment(ctx, t.kind, t.entityID, content)
	if err != nil {
		return core.Comment{}, err
	}

	t.mu.Lock()
	t.insertLocked(comment, true)
	t.total++
	t.offset++
	t.mu.Unlock()

	return comment, nil
}

// AddReply appends the server-returned reply to the parent's cache, bumps
// the advisory count and auto-expands the parent so the reply is visible.
// When the cache was never loaded, the expansion fetch already contains the
// new reply, so nothing is inserted twice.
func (t *Thread) AddReply(ctx context.Context, commentID, content string, replyTo *core.Author) (core.Reply, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return core.Reply{}, core.ErrEmptyContent
	}
	if _, ok := t.sessions.Current(); !ok {
		return core.Reply{}, core.ErrNotAuthenticated
	}

	t.mu.Lock()
	n, ok := t.byID[commentID]
	t.mu.Unlock()
	if !ok {
		return core.Reply{}, core.ErrNotFound
	}

	ctx, cancel := t.scoped(ctx)
	defer cancel()

	reply, err := t.api.CreateReply(ctx, commentID, content, replyTo)
	if err != nil {
		return core.Reply{}, err
	}

	t.mu.Lock()
	if n.loaded {
		n.replies = append(n.replies, reply)
		n.comment.RepliesCount = len(n.replies)
	} else {
		n.comment.RepliesCount++
	}
	n.expanded = true
	loaded := n.loaded
	t.mu.Unlock()

	if !loaded {
		if err := t.ensureReplies(ctx, commentID); err != nil {
			t.logger.Warn("reply created but list fetch failed", "comment", commentID, "error", err)
		}
	}
	return reply, nil
}

// CanModify reports whether the session user authored the given comment or
// reply. It only gates the affordance; the server stays the enforcer.
func (t *Thread) CanModify(id string) bool {
	session, ok := t.sessions.Current()
	if !ok {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if n, ok := t.byID[id]; ok {
		return n.comment.Author.ID == session.User.ID
	}
	if reply, ok := t.findReplyLocked(id); ok {
		return reply.Author.ID == session.User.ID
	}
	return false
}

func (t *Thread) findReplyLocked(replyID string) (core.Reply, bool) {
	for _, n := range t.nodes {
		if reply, ok := lo.Find(n.replies, func(r core.Reply) bool { return r.ID == replyID }); ok {
			return reply, true
		}
	}
	return core.Reply{}, false
}

// EditComment replaces the content locally only after the server confirmed
// the update. It covers replies as well, the API has one update endpoint.
func (t *Thread) EditComment(ctx context.Context, id, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return core.ErrEmptyContent
	}
	if _, ok := t.sessions.Current(); !ok {
		return core.ErrNotAuthenticated
	}

	ctx, cancel := t.scoped(ctx)
	defer cancel()

	if err := t.api.UpdateComment(ctx, id, content); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if n, ok := t.byID[id]; ok {
		n.comment.Content = content
		return nil
	}
	for _, n := range t.nodes {
		for i := range n.replies {
			if n.replies[i].ID == id {
				n.replies[i].Content = content
				return nil
			}
		}
	}
	return core.ErrNotFound
}

// DeleteComment removes a top-level comment after server confirmation. The
// caller is responsible for the explicit yes/no confirmation prompt.
func (t *Thread) DeleteComment(ctx context.Context, commentID string) error {
	t.mu.Lock()
	_, ok := t.byID[commentID]
	t.mu.Unlock()
	if !ok {
		return core.ErrNotFound
	}

	ctx, cancel := t.scoped(ctx)
	defer cancel()

	if err := t.api.DeleteComment(ctx, commentID); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.byID, commentID)
	t.nodes = lo.Reject(t.nodes, func(n *node, _ int) bool { return n.comment.ID == commentID })
	t.total--
	if t.offset > 0 {
		t.offset--
	}
	return nil
}

// DeleteReply removes a reply and decrements the parent's cached count.
func (t *Thread) DeleteReply(ctx context.Context, replyID string) error {
	t.mu.Lock()
	_, ok := t.findReplyLocked(replyID)
	t.mu.Unlock()
	if !ok {
		return core.ErrNotFound
	}

	ctx, cancel := t.scoped(ctx)
	defer cancel()

	if err := t.api.DeleteComment(ctx, replyID); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, n := range t.nodes {
		before := len(n.replies)
		n.replies = lo.Reject(n.replies, func(r core.Reply, _ int) bool { return r.ID == replyID })
		if len(n.replies) != before && n.comment.RepliesCount > 0 {
			n.comment.RepliesCount--
		}
	}
	return nil
}

// Report forwards a content report. Reporting your own content is rejected
// locally, without a network call; duplicate reports come back from the
// server with its message intact.
func (t *Thread) Report(ctx context.Context, targetUserID string, target core.TargetType, targetID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return core.ErrEmptyContent
	}

	session, ok := t.sessions.Current()
	if !ok {
		return core.ErrNotAuthenticated
	}
	if session.User.ID == targetUserID {
		return core.ErrSelfReport
	}

	ctx, cancel := t.scoped(ctx)
	defer cancel()

	return t.api.Report(ctx, targetUserID, target, targetID, reason)
}

// PrefetchReplies warms the reply cache for the first n comments in the
// background. The single-fetch-per-comment rule still holds, already loaded
// comments are skipped. Stop the handle to abort.
func (t *Thread) PrefetchReplies(n, concurrency int) *async.JobHandle[int] {
	t.mu.Lock()
	ids := lo.FilterMap(t.nodes, func(nd *node, i int) (string, bool) {
		return nd.comment.ID, i < n && !nd.loaded && nd.comment.RepliesCount > 0
	})
	t.mu.Unlock()

	return async.Job(t.ctx, func(ctx context.Context) (int, error) {
		ch := make(chan string, len(ids))
		for _, id := range ids {
			ch <- id
		}
		close(ch)

		err := async.WorkerPool(ctx, concurrency, ch, func(ctx context.Context, id string) error {
			return t.ensureReplies(ctx, id)
		})
		return len(ids), err
	})
}
