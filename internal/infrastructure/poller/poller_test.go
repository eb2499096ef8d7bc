package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusmarket/internal/adapter/repository"
	"nexusmarket/internal/domain/entity"
	domainrepo "nexusmarket/internal/domain/repository"
	"nexusmarket/internal/infrastructure/blobstore"
)

var (
	alice = entity.Participant{ID: "user-a", Name: "Alice"}
	bob   = entity.Participant{ID: "user-b", Name: "Bob"}
	carol = entity.Participant{ID: "user-c", Name: "Carol"}
)

type storeSource struct {
	repo domainrepo.ConversationRepository

	mu        sync.Mutex
	failList  bool
	markCalls int
}

func (s *storeSource) ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	s.mu.Lock()
	fail := s.failList
	s.mu.Unlock()
	if fail {
		return nil, errors.New("store unavailable")
	}
	return s.repo.ListByUserID(ctx, userID)
}

func (s *storeSource) GetConversation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	return s.repo.GetByID(ctx, conversationID)
}

func (s *storeSource) MarkAsRead(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	s.mu.Lock()
	s.markCalls++
	s.mu.Unlock()
	return s.repo.MarkAsRead(ctx, conversationID, userID)
}

type recordingNotifier struct {
	mu   sync.Mutex
	seen []Notification
	err  error
}

func (n *recordingNotifier) Notify(ctx context.Context, notification Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.seen = append(n.seen, notification)
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.seen)
}

func setup(t *testing.T) (*storeSource, *recordingNotifier) {
	t.Helper()
	return &storeSource{repo: repository.NewBlobConversationRepository(blobstore.NewMemory())}, &recordingNotifier{}
}

func TestFirstTickOnlySeeds(t *testing.T) {
	source, notifier := setup(t)
	ctx := context.Background()

	id, err := source.repo.Start(ctx, alice, bob, nil)
	require.NoError(t, err)
	_, err = source.repo.AppendMessage(ctx, id, bob.ID, "already here")
	require.NoError(t, err)

	p := New(alice.ID, source, notifier)
	require.NoError(t, p.Tick(ctx))
	assert.Zero(t, notifier.count())
	assert.Len(t, p.Conversations(), 1)
}

func TestNotifiesNewMessageFromOthers(t *testing.T) {
	source, notifier := setup(t)
	ctx := context.Background()

	id, err := source.repo.Start(ctx, alice, bob, &entity.ProductRef{ProductID: "p1", ProductName: "Lamp"})
	require.NoError(t, err)

	p := New(alice.ID, source, notifier)
	require.NoError(t, p.Tick(ctx))

	_, err = source.repo.AppendMessage(ctx, id, bob.ID, "Still available")
	require.NoError(t, err)
	require.NoError(t, p.Tick(ctx))

	require.Equal(t, 1, notifier.count())
	n := notifier.seen[0]
	assert.Equal(t, id, n.ConversationID)
	assert.Equal(t, "Bob", n.SenderName)
	assert.Equal(t, "Still available", n.Text)
	assert.Equal(t, "Bob (Lamp)", n.Title())

	// nothing new on the next tick
	require.NoError(t, p.Tick(ctx))
	assert.Equal(t, 1, notifier.count())
}

func TestNoNotificationForOwnOrSystemMessages(t *testing.T) {
	source, notifier := setup(t)
	ctx := context.Background()

	p := New(alice.ID, source, notifier)
	require.NoError(t, p.Tick(ctx))

	// the inquiry message is a system message
	id, err := source.repo.Start(ctx, alice, bob, &entity.ProductRef{ProductID: "p1", ProductName: "Lamp"})
	require.NoError(t, err)
	require.NoError(t, p.Tick(ctx))

	_, err = source.repo.AppendMessage(ctx, id, alice.ID, "Hi")
	require.NoError(t, err)
	require.NoError(t, p.Tick(ctx))

	assert.Zero(t, notifier.count())
}

func TestConversationFirstSeenAfterSeedingNotifies(t *testing.T) {
	source, notifier := setup(t)
	ctx := context.Background()

	p := New(alice.ID, source, notifier)
	require.NoError(t, p.Tick(ctx))

	id, err := source.repo.Start(ctx, carol, alice, nil)
	require.NoError(t, err)
	_, err = source.repo.AppendMessage(ctx, id, carol.ID, "Hello there")
	require.NoError(t, err)
	require.NoError(t, p.Tick(ctx))

	require.Equal(t, 1, notifier.count())
	assert.Equal(t, "Carol", notifier.seen[0].SenderName)
}

func TestFocusedForegroundConversationDoesNotNotify(t *testing.T) {
	source, notifier := setup(t)
	ctx := context.Background()

	id, err := source.repo.Start(ctx, alice, bob, nil)
	require.NoError(t, err)

	var active []*entity.Conversation
	p := New(alice.ID, source, notifier, OnActive(func(c *entity.Conversation) {
		active = append(active, c)
	}))
	p.Focus(id)
	require.NoError(t, p.Tick(ctx))

	_, err = source.repo.AppendMessage(ctx, id, bob.ID, "Are you there?")
	require.NoError(t, err)
	require.NoError(t, p.Tick(ctx))

	assert.Zero(t, notifier.count())
	require.NotNil(t, p.Active())
	assert.Len(t, p.Active().Messages, 1)
	assert.True(t, p.Active().Messages[0].IsRead)
	assert.NotEmpty(t, active)

	stored, err := source.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, stored.Messages[0].IsRead)
}

func TestFocusedBackgroundConversationNotifiesWithoutMarkingRead(t *testing.T) {
	source, notifier := setup(t)
	ctx := context.Background()

	id, err := source.repo.Start(ctx, alice, bob, nil)
	require.NoError(t, err)

	p := New(alice.ID, source, notifier)
	p.Focus(id)
	p.SetForeground(false)
	require.NoError(t, p.Tick(ctx))
	source.markCalls = 0

	_, err = source.repo.AppendMessage(ctx, id, bob.ID, "ping")
	require.NoError(t, err)
	require.NoError(t, p.Tick(ctx))

	assert.Equal(t, 1, notifier.count())
	assert.Zero(t, source.markCalls)
	require.NotNil(t, p.Active())
	assert.Len(t, p.Active().Messages, 1)
	assert.False(t, p.Active().Messages[0].IsRead)

	// returning to the foreground catches up on the unread message
	p.SetForeground(true)
	require.NoError(t, p.Tick(ctx))
	assert.Equal(t, 1, source.markCalls)
	assert.True(t, p.Active().Messages[0].IsRead)
}

func TestBlurClearsActive(t *testing.T) {
	source, notifier := setup(t)
	ctx := context.Background()

	id, err := source.repo.Start(ctx, alice, bob, nil)
	require.NoError(t, err)

	p := New(alice.ID, source, notifier)
	p.Focus(id)
	require.NoError(t, p.Tick(ctx))
	require.NotNil(t, p.Active())

	p.Blur()
	require.NoError(t, p.Tick(ctx))
	assert.Nil(t, p.Active())
}

func TestFocusOnUnreadableConversationClearsActive(t *testing.T) {
	source, notifier := setup(t)
	ctx := context.Background()

	id, err := source.repo.Start(ctx, alice, bob, nil)
	require.NoError(t, err)

	p := New(alice.ID, source, notifier)
	p.Focus(id)
	require.NoError(t, p.Tick(ctx))
	require.NotNil(t, p.Active())

	p.Focus("does-not-exist")
	require.NoError(t, p.Tick(ctx))
	assert.Nil(t, p.Active())

	// refocusing a readable conversation restores it
	p.Focus(id)
	require.NoError(t, p.Tick(ctx))
	require.NotNil(t, p.Active())
	assert.Equal(t, id, p.Active().ID)
}

func TestListHookOnlyFiresOnChange(t *testing.T) {
	source, notifier := setup(t)
	ctx := context.Background()

	deliveries := 0
	p := New(alice.ID, source, notifier, OnConversations(func([]*entity.Conversation) {
		deliveries++
	}))

	require.NoError(t, p.Tick(ctx))
	require.NoError(t, p.Tick(ctx))
	assert.Equal(t, 1, deliveries)

	_, err := source.repo.Start(ctx, alice, bob, nil)
	require.NoError(t, err)
	require.NoError(t, p.Tick(ctx))
	require.NoError(t, p.Tick(ctx))
	assert.Equal(t, 2, deliveries)
}

func TestNotifierErrorsAreIgnored(t *testing.T) {
	source, notifier := setup(t)
	notifier.err = ErrPermissionDenied
	ctx := context.Background()

	id, err := source.repo.Start(ctx, alice, bob, nil)
	require.NoError(t, err)

	p := New(alice.ID, source, notifier)
	require.NoError(t, p.Tick(ctx))

	_, err = source.repo.AppendMessage(ctx, id, bob.ID, "hello")
	require.NoError(t, err)
	assert.NoError(t, p.Tick(ctx))
	assert.Len(t, p.Conversations(), 1)
	assert.Equal(t, "hello", p.Conversations()[0].LastMessage.Text)
}

func TestFailedListSkipsTick(t *testing.T) {
	source, notifier := setup(t)
	ctx := context.Background()

	p := New(alice.ID, source, notifier)
	require.NoError(t, p.Tick(ctx))

	source.failList = true
	assert.Error(t, p.Tick(ctx))

	source.failList = false
	id, err := source.repo.Start(ctx, bob, alice, nil)
	require.NoError(t, err)
	_, err = source.repo.AppendMessage(ctx, id, bob.ID, "back online")
	require.NoError(t, err)

	require.NoError(t, p.Tick(ctx))
	assert.Equal(t, 1, notifier.count())
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	source, notifier := setup(t)
	ctx, cancel := context.WithCancel(context.Background())

	ticks := make(chan struct{}, 16)
	p := New(alice.ID, source, notifier,
		WithInterval(5*time.Millisecond),
		OnConversations(func([]*entity.Conversation) { ticks <- struct{}{} }),
	)

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("poller never ticked")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
}
