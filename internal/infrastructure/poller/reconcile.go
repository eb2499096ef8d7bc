package poller

import (
	"bytes"
	"encoding/json"

	"nexusmarket/internal/domain/entity"
)

// Snapshot is the serialized form of a conversation list as last delivered
// downstream.
type Snapshot []byte

// Reconcile reports whether next differs from the list prev was taken from
// and returns the snapshot to keep. An unchanged list keeps prev.
func Reconcile(prev Snapshot, next []*entity.Conversation) (bool, Snapshot) {
	if next == nil {
		next = []*entity.Conversation{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		// an unserializable list cannot be compared, so treat it as new
		return true, nil
	}
	if prev != nil && bytes.Equal(prev, data) {
		return false, prev
	}
	return true, data
}
