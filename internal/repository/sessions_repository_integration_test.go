//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/suppository-service/internal/circuitbreaker"
	"github.com/guttosm/suppository-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionsRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()
	require.NoError(t, db.SetSessionTTL(ctx, time.Hour))

	repo := NewSessionsRepositoryWithCircuitBreaker(NewSessionsRepository(db), circuitbreaker.New(circuitbreaker.DefaultConfig()))

	n := 1
	blank := 2.0
	session := &model.ChatSession{
		ID: "session-1",
		State: model.ChatState{
			UnitCount:           &n,
			BlankWeightPerUnitG: &blank,
			Components:          []model.APIComponent{{Name: "API 1", AmountPerUnitG: 0.2, DensityGPerML: 3}},
		},
		Messages: 1,
	}

	t.Run("save inserts", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, session))
		assert.False(t, session.CreatedAt.IsZero())
		assert.False(t, session.UpdatedAt.IsZero())
	})

	t.Run("get returns stored state", func(t *testing.T) {
		got, err := repo.Get(ctx, "session-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.State.UnitCount)
		assert.Equal(t, 1, *got.State.UnitCount)
		assert.Nil(t, got.State.BaseDensityGPerML)
		assert.Equal(t, []string{model.FieldBaseDensity}, got.State.Missing())
	})

	t.Run("save replaces", func(t *testing.T) {
		base := 1.0
		session.State.BaseDensityGPerML = &base
		session.Messages = 2
		require.NoError(t, repo.Save(ctx, session))

		got, err := repo.Get(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, 2, got.Messages)
		assert.True(t, got.State.Complete())

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "session-1"))
		got, err := repo.Get(ctx, "session-1")
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, repo.Delete(ctx, "session-1"))
	})
}
