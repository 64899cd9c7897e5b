package service

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/model"
	"RedBlack/internal/pkg/consts"
	"RedBlack/internal/pkg/database/dbtest"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_CreatesMerchant(t *testing.T) {
	env := newTestEnv(t)
	user := dbtest.SeedUser(t, env.db, "alice")
	svc := NewMerchantService(env.tx, env.repos, &fakeLocker{}, testTimeout)
	ctx := context.Background()

	got, err := svc.Apply(ctx, user.ID, &dto.MerchantApplyDTO{
		Category:   strPtr("  数码  "),
		Highlights: "正品, 包邮, ,七天无理由",
	})
	require.NoError(t, err)
	assert.Equal(t, consts.MerchantSlugPrefix+user.ID[:consts.MerchantSlugIDLen], got.Slug)
	assert.Equal(t, "alice", got.DisplayName)
	assert.Equal(t, "数码", got.Category)
	assert.Equal(t, []string{"正品", "包邮", "七天无理由"}, got.Highlights)
	assert.Equal(t, consts.DefaultAvatarColor, got.AvatarColor)

	u, err := env.repos.Users.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, u.IsMerchant)

	me, err := svc.GetMe(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, me.IsAuthenticated)
	assert.True(t, me.IsMerchant)
	require.NotNil(t, me.Merchant)
	assert.Equal(t, got.ID, me.Merchant.ID)

	_, err = svc.Apply(ctx, user.ID, nil)
	assert.ErrorIs(t, err, ErrAlreadyMerchant)
}

func TestApply_DisplayNameFallsBackToEmail(t *testing.T) {
	env := newTestEnv(t)
	user := &model.User{Email: "bob.shop@example.com"}
	require.NoError(t, env.db.Create(user).Error)
	svc := NewMerchantService(env.tx, env.repos, nil, testTimeout)

	got, err := svc.Apply(context.Background(), user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "bob.shop", got.DisplayName)
	assert.Empty(t, got.Highlights)
}

func TestApply_Rejections(t *testing.T) {
	env := newTestEnv(t)
	user := dbtest.SeedUser(t, env.db, "alice")
	locker := &fakeLocker{}
	svc := NewMerchantService(env.tx, env.repos, locker, testTimeout)
	ctx := context.Background()

	_, err := svc.Apply(ctx, "", nil)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = svc.Apply(ctx, "missing", nil)
	assert.ErrorIs(t, err, ErrUserNotFound)

	locker.held = map[string]bool{consts.MerchantApplyLock + user.ID: true}
	_, err = svc.Apply(ctx, user.ID, nil)
	assert.ErrorIs(t, err, ErrApplyInProgress)

	// 锁服务不可用时仍由唯一索引兜底
	locker.held = nil
	locker.err = errors.New("redis down")
	_, err = svc.Apply(ctx, user.ID, nil)
	assert.NoError(t, err)
}

func TestGetMe_Anonymous(t *testing.T) {
	env := newTestEnv(t)
	svc := NewMerchantService(env.tx, env.repos, nil, testTimeout)

	me, err := svc.GetMe(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, me.IsAuthenticated)
	assert.False(t, me.IsMerchant)
	assert.Nil(t, me.Merchant)

	user := dbtest.SeedUser(t, env.db, "plain")
	me, err = svc.GetMe(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, me.IsAuthenticated)
	assert.False(t, me.IsMerchant)
	assert.Nil(t, me.Merchant)
}

func TestListAndGetMerchant_CallerReaction(t *testing.T) {
	env := newTestEnv(t)
	owner1 := dbtest.SeedUser(t, env.db, "o1")
	owner2 := dbtest.SeedUser(t, env.db, "o2")
	fan := dbtest.SeedUser(t, env.db, "fan")
	m1 := dbtest.SeedMerchant(t, env.db, owner1, "merchant-o1")
	dbtest.SeedMerchant(t, env.db, owner2, "merchant-o2")
	reactions := NewReactionService(env.tx, env.repos, DefaultReactionPolicy(), testTimeout)
	svc := NewMerchantService(env.tx, env.repos, nil, testTimeout)
	ctx := context.Background()

	_, err := reactions.ReactToMerchant(ctx, fan.ID, m1.Slug, "DISLIKE")
	require.NoError(t, err)

	list, err := svc.ListMerchants(ctx, fan.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, m := range list {
		if m.ID == m1.ID {
			require.NotNil(t, m.UserReaction)
			assert.Equal(t, model.ReactionDislike, *m.UserReaction)
			assert.EqualValues(t, 1, m.DislikesCount)
		} else {
			assert.Nil(t, m.UserReaction)
		}
	}

	anon, err := svc.ListMerchants(ctx, "")
	require.NoError(t, err)
	for _, m := range anon {
		assert.Nil(t, m.UserReaction)
	}

	detail, err := svc.GetMerchant(ctx, m1.Slug, fan.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.UserReaction)
	assert.Equal(t, "o1 的店", detail.DisplayName)

	_, err = svc.GetMerchant(ctx, "missing", "")
	assert.ErrorIs(t, err, ErrMerchantNotFound)
}
