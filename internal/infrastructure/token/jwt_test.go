package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusmarket/internal/domain/entity"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	user := &entity.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}

	signed, expiresAt, err := m.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	identity, err := m.Verify(context.Background(), signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.UserID)
	assert.Equal(t, "alice@example.com", identity.Email)
	assert.Equal(t, entity.ProviderLocal, identity.Provider)
}

func TestVerifyRejectsWrongSecretAndExpired(t *testing.T) {
	user := &entity.User{ID: "u1"}

	signed, _, err := NewJWTManager("other", time.Hour).Issue(user)
	require.NoError(t, err)
	_, err = NewJWTManager("secret", time.Hour).Verify(context.Background(), signed)
	assert.Error(t, err)

	expired := NewJWTManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	signed, _, err = expired.Issue(user)
	require.NoError(t, err)
	_, err = expired.Verify(context.Background(), signed)
	assert.Error(t, err)

	_, err = expired.Verify(context.Background(), "not-a-token")
	assert.Error(t, err)
}
