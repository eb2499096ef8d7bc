package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexusmarket/pkg/errors"
)

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	user := f.register(t, "Alice", "alice@example.com")

	bio, location := "Vintage lamps", " Berlin "
	updated, err := f.user.UpdateProfile(ctx, user.ID, UpdateProfileInput{Bio: &bio, Location: &location})
	require.NoError(t, err)
	assert.Equal(t, "Vintage lamps", updated.Bio)
	assert.Equal(t, "Berlin", updated.Location)
	assert.Equal(t, "Alice", updated.Name)

	empty := "  "
	_, err = f.user.UpdateProfile(ctx, user.ID, UpdateProfileInput{Name: &empty})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	profile, err := f.user.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Berlin", profile.Location)
	assert.Equal(t, "AL", profile.Avatar)

	_, err = f.user.GetProfile(ctx, "ghost")
	assert.True(t, errors.IsNotFound(err))
}
