package repository_test

import (
	"RedBlack/internal/model"
	"RedBlack/internal/pkg/database/dbtest"
	"RedBlack/internal/repository"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRatings(t *testing.T, db *gorm.DB, merchant *model.Merchant, values ...float64) {
	t.Helper()
	repo := repository.NewRatingRepo(db)
	for i, v := range values {
		u := dbtest.SeedUser(t, db, fmt.Sprintf("rater%d", i))
		require.NoError(t, repo.CreateRating(context.Background(), &model.MerchantRating{
			MerchantID: merchant.ID, UserID: u.ID, Rating: v,
		}))
	}
}

func assertRatingAggregate(t *testing.T, db *gorm.DB) {
	owner := dbtest.SeedUser(t, db, "owner")
	merchant := dbtest.SeedMerchant(t, db, owner, "thirds")
	empty := dbtest.SeedMerchant(t, db, dbtest.SeedUser(t, db, "idle"), "empty")
	seedRatings(t, db, merchant, 5, 5, 4, 3, 1, 2)

	repo := repository.NewRatingRepo(db)
	ctx := context.Background()

	agg, err := repo.Aggregate(ctx, merchant.ID)
	require.NoError(t, err)
	assert.Equal(t, merchant.ID, agg.MerchantID)
	assert.EqualValues(t, 6, agg.Total)
	// 20/6 必须保留完整的 float64，而不是数据库 DECIMAL 的有限小数位
	assert.Equal(t, 20.0/6, agg.Average)

	agg, err = repo.Aggregate(ctx, empty.ID)
	require.NoError(t, err)
	assert.Zero(t, agg.Total)
	assert.Zero(t, agg.Average)

	all, err := repo.AggregateAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, merchant.ID, all[0].MerchantID)
	assert.EqualValues(t, 6, all[0].Total)
	assert.Equal(t, 20.0/6, all[0].Average)
}

func TestRatingAggregate_FullPrecision(t *testing.T) {
	assertRatingAggregate(t, dbtest.New(t))
}

func TestRatingAggregate_FullPrecision_MySQL(t *testing.T) {
	assertRatingAggregate(t, dbtest.NewMySQL(t, 4))
}
