package poller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nexusmarket/internal/domain/entity"
)

func TestReconcile(t *testing.T) {
	list := []*entity.Conversation{{
		ID:           "c1",
		Participants: []entity.Participant{{ID: "a"}, {ID: "b"}},
		Messages:     []entity.Message{},
		UpdatedAt:    1,
	}}

	changed, first := Reconcile(nil, list)
	assert.True(t, changed)
	assert.NotEmpty(t, first)

	changed, second := Reconcile(first, list)
	assert.False(t, changed)
	assert.Equal(t, first, second)

	list[0].UpdatedAt = 2
	changed, third := Reconcile(second, list)
	assert.True(t, changed)
	assert.NotEqual(t, second, third)
}

func TestReconcileEmptyList(t *testing.T) {
	changed, snap := Reconcile(nil, nil)
	assert.True(t, changed)

	changed, _ = Reconcile(snap, []*entity.Conversation{})
	assert.False(t, changed)
}
