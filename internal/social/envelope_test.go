package social

import (
	"testing"

	"threadline/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapFallsBackToRawPayload(t *testing.T) {
	assert.JSONEq(t, `{"id":"c1"}`, string(unwrap([]byte(`{"data":{"id":"c1"}}`))))
	assert.JSONEq(t, `{"id":"c1"}`, string(unwrap([]byte(`{"id":"c1"}`))))
	assert.JSONEq(t, `[1,2]`, string(unwrap([]byte(`[1,2]`))))
}

func TestDecodeCommentsKeepsServerCount(t *testing.T) {
	page, err := decodeComments([]byte(`{"data":{"comments":[{"id":"c1"},{"id":"c2"}],"count":40}}`))
	require.NoError(t, err)
	assert.Len(t, page.Comments, 2)
	assert.Equal(t, 40, page.Count)
}

func TestDecodeCommentsBareArrayCountsItself(t *testing.T) {
	page, err := decodeComments([]byte(`[{"id":"c1"}]`))
	require.NoError(t, err)
	assert.Len(t, page.Comments, 1)
	assert.Equal(t, 1, page.Count)
}

func TestDecodeRepliesShapes(t *testing.T) {
	for _, body := range []string{
		`{"data":{"replies":[{"id":"r1","parentId":"c1"}]}}`,
		`{"data":[{"id":"r1","parentId":"c1"}]}`,
		`[{"id":"r1","parentId":"c1"}]`,
	} {
		replies, err := decodeReplies([]byte(body))
		require.NoError(t, err, body)
		require.Len(t, replies, 1, body)
		assert.Equal(t, "r1", replies[0].ID)
		assert.Equal(t, "c1", replies[0].ParentID)
	}
}

func TestDecodeOneRejectsGarbage(t *testing.T) {
	_, err := decodeOne[core.Comment]([]byte(`not json`))
	require.Error(t, err)
}
