package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewAttributeService(newTestRepositories(t).Attributes)

	require.NoError(t, svc.Create(ctx, "plastic", "#ff0000"))
	assert.ErrorIs(t, svc.Create(ctx, "plastic", "#00ff00"), ErrConflict)
	assert.ErrorIs(t, svc.Create(ctx, "glass", ""), ErrInvalidInput)

	color := "#0000ff"
	require.NoError(t, svc.Update(ctx, "plastic", AttributeUpdate{Color: &color}))
	assert.ErrorIs(t, svc.Update(ctx, "plastic", AttributeUpdate{}), ErrInvalidInput)
	assert.ErrorIs(t, svc.Update(ctx, "metal", AttributeUpdate{Color: &color}), ErrNotFound)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "#0000ff", list[0].Color)

	require.NoError(t, svc.Delete(ctx, "plastic"))
	assert.ErrorIs(t, svc.Delete(ctx, "plastic"), ErrNotFound)
}
