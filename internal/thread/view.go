package thread

import (
	"threadline/internal/core"

	"github.com/samber/lo"
)

// CommentView is one rendered comment with its synchronizer state.
type CommentView struct {
	core.Comment

	Expanded      bool
	RepliesLoaded bool
	Replies       []core.Reply
}

// Count prefers the authoritative reply count once the replies were fully
// fetched, the server-reported number until then.
func (v CommentView) Count() int {
	if v.RepliesLoaded {
		return len(v.Replies)
	}
	return v.RepliesCount
}

// Snapshot is a consistent copy of the tree for rendering.
type Snapshot struct {
	Kind     core.EntityKind
	EntityID string
	Total    int
	HasMore  bool
	Comments []CommentView
}

func (t *Thread) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Snapshot{
		Kind:     t.kind,
		EntityID: t.entityID,
		Total:    t.total,
		HasMore:  t.offset < t.total,
		Comments: lo.Map(t.nodes, func(n *node, _ int) CommentView {
			return CommentView{
				Comment:       n.comment,
				Expanded:      n.expanded,
				RepliesLoaded: n.loaded,
				Replies:       append([]core.Reply(nil), n.replies...),
			}
		}),
	}
}
