package social

import (
	"encoding/json"

	"threadline/internal/core"
)

// The API is not strictly uniform about its response envelope: payloads
// arrive as {"data": {...}}, {"data": [...]} or occasionally bare. All the
// unwrapping lives here so no call site ever branches on shape.

func unwrap(raw []byte) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data
	}
	return raw
}

func decodeOne[T any](raw []byte) (T, error) {
	var out T
	err := json.Unmarshal(unwrap(raw), &out)
	return out, err
}

func decodeComments(raw []byte) (core.CommentPage, error) {
	data := unwrap(raw)

	var keyed struct {
		Comments []core.Comment `json:"comments"`
		Count    int            `json:"count"`
	}
	if err := json.Unmarshal(data, &keyed); err == nil && keyed.Comments != nil {
		return core.CommentPage{Comments: keyed.Comments, Count: keyed.Count}, nil
	}

	var bare []core.Comment
	if err := json.Unmarshal(data, &bare); err != nil {
		return core.CommentPage{}, err
	}
	return core.CommentPage{Comments: bare, Count: len(bare)}, nil
}

func decodeReplies(raw []byte) ([]core.Reply, error) {
	data := unwrap(raw)

	var keyed struct {
		Replies []core.Reply `json:"replies"`
	}
	if err := json.Unmarshal(data, &keyed); err == nil && keyed.Replies != nil {
		return keyed.Replies, nil
	}

	var bare []core.Reply
	err := json.Unmarshal(data, &bare)
	return bare, err
}
