package service

import (
	"RedBlack/internal/pkg/database/dbtest"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRate_AggregateFollowsUpserts(t *testing.T) {
	env := newTestEnv(t)
	owner := dbtest.SeedUser(t, env.db, "owner")
	a := dbtest.SeedUser(t, env.db, "a")
	b := dbtest.SeedUser(t, env.db, "b")
	merchant := dbtest.SeedMerchant(t, env.db, owner, "merchant-owner")
	svc := NewRatingService(env.tx, env.repos, testTimeout)
	ctx := context.Background()

	res, err := svc.Rate(ctx, a.ID, merchant.Slug, 5, nil)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.InDelta(t, 5.0, res.AverageRating, 1e-9)
	assert.EqualValues(t, 1, res.TotalRatings)
	require.NotNil(t, res.Rating)
	assert.Equal(t, a.ID, res.Rating.User.ID)

	res, err = svc.Rate(ctx, b.ID, merchant.Slug, 3, strPtr("  ok  "))
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.InDelta(t, 4.0, res.AverageRating, 1e-9)
	assert.EqualValues(t, 2, res.TotalRatings)
	require.NotNil(t, res.Rating.Comment)
	assert.Equal(t, "ok", *res.Rating.Comment)

	res, err = svc.Rate(ctx, a.ID, merchant.Slug, 4, nil)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.InDelta(t, 3.5, res.AverageRating, 1e-9)
	assert.EqualValues(t, 2, res.TotalRatings)

	m, err := env.repos.Merchants.GetMerchantByID(ctx, merchant.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, m.AverageRating, 1e-9)
	assert.EqualValues(t, 2, m.TotalRatings)

	list, err := svc.ListRatings(ctx, merchant.Slug)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRate_Validation(t *testing.T) {
	env := newTestEnv(t)
	owner := dbtest.SeedUser(t, env.db, "owner")
	a := dbtest.SeedUser(t, env.db, "a")
	merchant := dbtest.SeedMerchant(t, env.db, owner, "merchant-owner")
	svc := NewRatingService(env.tx, env.repos, testTimeout)
	ctx := context.Background()

	for _, v := range []float64{0, 0.5, 5.5, -1, math.NaN(), math.Inf(1)} {
		_, err := svc.Rate(ctx, a.ID, merchant.Slug, v, nil)
		assert.ErrorIs(t, err, ErrRatingOutOfRange, "rating %v", v)
	}

	_, err := svc.Rate(ctx, "", merchant.Slug, 4, nil)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = svc.Rate(ctx, a.ID, merchant.Slug, 4, strPtr("   "))
	assert.ErrorIs(t, err, ErrCommentEmpty)

	_, err = svc.Rate(ctx, a.ID, merchant.Slug, 4, strPtr(strings.Repeat("差", 1001)))
	assert.ErrorIs(t, err, ErrCommentTooLong)

	_, err = svc.Rate(ctx, a.ID, "missing", 4, nil)
	assert.ErrorIs(t, err, ErrMerchantNotFound)

	_, err = svc.ListRatings(ctx, "missing")
	assert.ErrorIs(t, err, ErrMerchantNotFound)

	m, err := env.repos.Merchants.GetMerchantByID(ctx, merchant.ID)
	require.NoError(t, err)
	assert.Zero(t, m.TotalRatings)
}

func TestRate_HalfStepRounding(t *testing.T) {
	env := newTestEnv(t)
	owner := dbtest.SeedUser(t, env.db, "owner")
	a := dbtest.SeedUser(t, env.db, "a")
	merchant := dbtest.SeedMerchant(t, env.db, owner, "merchant-owner")
	svc := NewRatingService(env.tx, env.repos, testTimeout)

	res, err := svc.Rate(context.Background(), a.ID, merchant.Slug, 3.7, nil)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, res.Rating.Rating, 1e-9)
}
