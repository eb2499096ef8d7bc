package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/infrastructure/poller"
	"nexusmarket/pkg/errors"
)

var _ poller.Source = (*Client)(nil)

func writeEnvelope(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
}

func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()
	conversation := map[string]interface{}{
		"id":           "c1",
		"participants": []map[string]string{{"id": "u1", "name": "Alice"}, {"id": "u2", "name": "Bob"}},
		"messages":     []map[string]interface{}{{"id": "100", "senderId": "u2", "text": "hi", "timestamp": 100}},
		"lastMessage":  map[string]interface{}{"id": "100", "senderId": "u2", "text": "hi", "timestamp": 100},
		"updatedAt":    100,
		"otherUser":    map[string]string{"id": "u2", "name": "Bob"},
		"unreadCount":  1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret123" {
			writeError(w, http.StatusUnauthorized, errors.CodeUnauthorized, "Invalid email or password")
			return
		}
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"user":  map[string]string{"id": "u1", "name": "Alice", "email": body["email"]},
			"token": "tok-u1",
		})
	})

	authed := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok-u1" {
				writeError(w, http.StatusUnauthorized, errors.CodeUnauthorized, "Invalid or expired token")
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("/v1/auth/me", authed(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, map[string]string{"id": "u1", "name": "Alice"})
	}))
	mux.HandleFunc("/v1/conversations", authed(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, []interface{}{conversation})
	}))
	mux.HandleFunc("/v1/conversations/c1", authed(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, conversation)
	}))
	mux.HandleFunc("/v1/conversations/c1/read", authed(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		writeEnvelope(w, http.StatusOK, conversation)
	}))
	mux.HandleFunc("/v1/conversations/missing", authed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errors.CodeNotFound, "Conversation not found")
	}))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestLoginStoresToken(t *testing.T) {
	server := newTestAPI(t)
	client := NewClient(server.URL+"/", "")
	ctx := context.Background()

	_, err := client.Me(ctx)
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))

	result, err := client.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "tok-u1", result.Token)
	assert.Equal(t, "u1", result.User.ID)

	me, err := client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", me.Name)
}

func TestLoginRejected(t *testing.T) {
	server := newTestAPI(t)
	client := NewClient(server.URL, "")

	_, err := client.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
}

func TestConversationCalls(t *testing.T) {
	server := newTestAPI(t)
	client := NewClient(server.URL, "tok-u1")
	ctx := context.Background()

	list, err := client.ListConversations(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c1", list[0].ID)
	assert.Equal(t, "100", list[0].LastMessageID())
	assert.Equal(t, 1, list[0].UnreadCount("u1"))

	conversation, err := client.GetConversation(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "Bob", conversation.OtherParticipant("u1").Name)

	_, err = client.MarkAsRead(ctx, "u1", "c1")
	require.NoError(t, err)

	_, err = client.GetConversation(ctx, "u1", "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestPollerOverHTTP(t *testing.T) {
	server := newTestAPI(t)
	client := NewClient(server.URL, "tok-u1")

	var delivered [][]*entity.Conversation
	p := poller.New("u1", client, poller.NotifierFunc(func(ctx context.Context, n poller.Notification) error {
		return nil
	}), poller.OnConversations(func(list []*entity.Conversation) {
		delivered = append(delivered, list)
	}))

	p.Tick(context.Background())
	p.Tick(context.Background())

	require.Len(t, delivered, 1)
	assert.Equal(t, "c1", delivered[0][0].ID)
}
