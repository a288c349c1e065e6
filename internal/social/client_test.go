package social_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"threadline/internal/core"
	"threadline/internal/social"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenStore is a minimal core.SessionStore for client tests.
type tokenStore struct {
	token string
}

func (s *tokenStore) Token() string { return s.token }
func (s *tokenStore) Current() (core.Session, bool) {
	if s.token == "" {
		return core.Session{}, false
	}
	return core.Session{Token: s.token}, true
}
func (s *tokenStore) Save(core.Session) error              { return nil }
func (s *tokenStore) Clear() error                         { return nil }
func (s *tokenStore) LoadExpanded(string) map[string]bool  { return nil }
func (s *tokenStore) SaveExpanded(string, map[string]bool) {}

func newTestClient(t *testing.T, token string, handler http.Handler) *social.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := &social.Client{
		Config: &core.Config{
			APIURL:         srv.URL,
			RequestTimeout: 5 * time.Second,
			PageSize:       20,
		},
		Sessions: &tokenStore{token: token},
	}
	require.NoError(t, client.Init(t.Context()))
	t.Cleanup(func() { _ = client.Shutdown(t.Context()) })

	return client
}

func TestListCommentsNormalizesEnvelopeShapes(t *testing.T) {
	bodies := map[string]string{
		"keyed envelope":         `{"data":{"comments":[{"id":"c1","content":"hi"}],"count":7}}`,
		"bare array in envelope": `{"data":[{"id":"c1","content":"hi"}]}`,
		"bare array":             `[{"id":"c1","content":"hi"}]`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/post-comments/p1", r.URL.Path)
				assert.Equal(t, "20", r.URL.Query().Get("limit"))
				assert.Equal(t, "0", r.URL.Query().Get("offset"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			}))

			page, err := client.ListComments(t.Context(), core.EntityPost, "p1", 20, 0)
			require.NoError(t, err)
			require.Len(t, page.Comments, 1)
			assert.Equal(t, "c1", page.Comments[0].ID)
			assert.Equal(t, "hi", page.Comments[0].Content)
			assert.GreaterOrEqual(t, page.Count, 1)
		})
	}
}

func TestRequestsCarryBearerTokenAndRequestID(t *testing.T) {
	client := newTestClient(t, "secret-token", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))

	_, err := client.ListReplies(t.Context(), "c1", 20)
	require.NoError(t, err)
}

func TestMissingTokenShortCircuitsLocally(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	_, err := client.CreateComment(t.Context(), core.EntityPost, "p1", "hello")
	require.ErrorIs(t, err, core.ErrNotAuthenticated)
	assert.Zero(t, calls.Load())
}

func TestDuplicateReportMessagePassedVerbatim(t *testing.T) {
	client := newTestClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/reports/u2/post/p1", r.URL.Path)
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"you have already reported this post"}`))
	}))

	err := client.Report(t.Context(), "u2", core.TargetPost, "p1", "spam")
	require.Error(t, err)
	require.ErrorIs(t, err, core.ErrDuplicate)

	var apiErr *core.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "you have already reported this post", apiErr.Error())
}

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		status   int
		sentinel error
	}{
		{http.StatusUnauthorized, core.ErrNotAuthenticated},
		{http.StatusForbidden, core.ErrForbidden},
		{http.StatusNotFound, core.ErrNotFound},
	}

	for _, tc := range cases {
		client := newTestClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(`{"error":"nope"}`))
		}))

		err := client.DeleteComment(t.Context(), "c1")
		require.ErrorIs(t, err, tc.sentinel, "status %d", tc.status)

		var apiErr *core.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, tc.status, apiErr.Status)
		assert.Equal(t, "nope", apiErr.Message)
	}
}

func TestCreateReplySendsMentionAndDecodesEnvelope(t *testing.T) {
	client := newTestClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/comments/c1/replies", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"id":"r9","content":"hello","parentId":"c1"}}`))
	}))

	reply, err := client.CreateReply(t.Context(), "c1", "hello", &core.Author{ID: "u2", Name: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "r9", reply.ID)
	assert.Equal(t, "c1", reply.ParentID)
}

func TestLikeAndUnlikeHitPostActions(t *testing.T) {
	var method atomic.Value
	client := newTestClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/post-actions/p1/like", r.URL.Path)
		method.Store(r.Method)
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))

	require.NoError(t, client.LikePost(t.Context(), "p1"))
	assert.Equal(t, http.MethodPost, method.Load())

	require.NoError(t, client.UnlikePost(t.Context(), "p1"))
	assert.Equal(t, http.MethodDelete, method.Load())
}
