package thread

import (
	"context"
	"fmt"
	"log/slog"

	"threadline/internal/core"
)

// Service opens comment threads. Every screen that shows a thread goes
// through here instead of talking to the API directly, so the tree
// bookkeeping exists exactly once.
type Service struct {
	API      core.API
	Sessions core.SessionStore
	Config   *core.Config
	Logger   *slog.Logger
}

func (s *Service) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "thread.Service")
	return nil
}

// Open builds a synchronizer for one entity. The returned thread owns a
// context derived from ctx; Close cancels it together with any in-flight
// request.
func (s *Service) Open(ctx context.Context, kind core.EntityKind, entityID string) *Thread {
	ctx, cancel := context.WithCancel(ctx)

	key := entityKey(kind, entityID)

	return &Thread{
		api:      s.API,
		sessions: s.Sessions,
		logger:   s.Logger.With("entity", key),

		kind:     kind,
		entityID: entityID,
		pageSize: s.Config.PageSize,

		ctx:    ctx,
		cancel: cancel,

		byID:     map[string]*node{},
		restored: s.Sessions.LoadExpanded(key),
	}
}

func entityKey(kind core.EntityKind, entityID string) string {
	return fmt.Sprintf("%s:%s", kind, entityID)
}
