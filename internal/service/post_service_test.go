package service

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/model"
	"RedBlack/internal/pkg/database/dbtest"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t)
	author := dbtest.SeedUser(t, env.db, "author")
	svc := NewPostService(env.repos, nil, nil, testTimeout)
	ctx := context.Background()

	got, err := svc.CreatePost(ctx, author.ID, &dto.PostCreateDTO{
		Title:   "  某某外卖店  ",
		Content: "下单之后两个小时都没有送到，联系客服也没人回复。",
		Tags:    []string{"外卖", " 外卖 ", "", "慢"},
		Images:  []string{"https://img.example.com/1.png", " ", "https://img.example.com/2.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, "某某外卖店", got.Title)
	assert.Equal(t, []string{"外卖", "慢"}, got.Tags)
	assert.Equal(t, author.ID, got.User.ID)
	require.Len(t, got.Images, 2)
	assert.Equal(t, "https://img.example.com/1.png", got.Images[0].URL)
	assert.Equal(t, 0, got.Images[0].Order)
	assert.Equal(t, "https://img.example.com/2.png", got.Images[1].URL)
	assert.Equal(t, 1, got.Images[1].Order)
}

func TestCreatePost_Validation(t *testing.T) {
	env := newTestEnv(t)
	author := dbtest.SeedUser(t, env.db, "author")
	svc := NewPostService(env.repos, nil, nil, testTimeout)
	ctx := context.Background()
	content := "这是一段足够长的曝光帖子正文内容。"

	_, err := svc.CreatePost(ctx, "", &dto.PostCreateDTO{Title: "标题啊", Content: content})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = svc.CreatePost(ctx, author.ID, &dto.PostCreateDTO{Title: " 短 ", Content: content})
	assert.ErrorIs(t, err, ErrTitleTooShort)
	_, err = svc.CreatePost(ctx, author.ID, &dto.PostCreateDTO{Title: "标题啊", Content: "太短了"})
	assert.ErrorIs(t, err, ErrContentTooShort)
	_, err = svc.CreatePost(ctx, "missing", &dto.PostCreateDTO{Title: "标题啊", Content: content})
	assert.ErrorIs(t, err, ErrUserNotFound)

	total, err := env.repos.Posts.CountPosts(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestGetPost_RecordsView(t *testing.T) {
	env := newTestEnv(t)
	author := dbtest.SeedUser(t, env.db, "author")
	post := dbtest.SeedPost(t, env.db, author, "曝光")
	views := &fakeViews{}
	svc := NewPostService(env.repos, views, nil, testTimeout)
	reactions := NewReactionService(env.tx, env.repos, DefaultReactionPolicy(), testTimeout)
	ctx := context.Background()

	_, err := reactions.ReactToPost(ctx, author.ID, post.ID, "LIKE")
	require.NoError(t, err)

	got, err := svc.GetPost(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.LikesCount)
	require.NotNil(t, got.UserReaction)
	assert.Equal(t, model.ReactionLike, *got.UserReaction)

	_, err = svc.GetPost(ctx, post.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, views.views[post.ID])

	_, err = svc.GetPost(ctx, "missing", "")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestListPosts(t *testing.T) {
	env := newTestEnv(t)
	author := dbtest.SeedUser(t, env.db, "author")
	for _, title := range []string{"第一篇", "第二篇", "第三篇"} {
		dbtest.SeedPost(t, env.db, author, title)
	}
	svc := NewPostService(env.repos, nil, nil, testTimeout)

	page, err := svc.ListPosts(context.Background(), 1, 2, "")
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.EqualValues(t, 3, page.Pagination.Total)
	assert.EqualValues(t, 2, page.Pagination.TotalPages)
}

func TestSearchPosts_KeepsSearchOrder(t *testing.T) {
	env := newTestEnv(t)
	author := dbtest.SeedUser(t, env.db, "author")
	p1 := dbtest.SeedPost(t, env.db, author, "第一篇")
	p2 := dbtest.SeedPost(t, env.db, author, "第二篇")
	searcher := &fakeSearcher{ids: []string{p2.ID, "stale", p1.ID}, total: 3}
	svc := NewPostService(env.repos, nil, searcher, testTimeout)

	page, err := svc.SearchPosts(context.Background(), "  篇 ", 2, 5, "")
	require.NoError(t, err)
	assert.Equal(t, "篇", searcher.gotKeyword)
	assert.Equal(t, 5, searcher.gotFrom)
	assert.Equal(t, 5, searcher.gotSize)
	require.Len(t, page.Items, 2)
	assert.Equal(t, p2.ID, page.Items[0].ID)
	assert.Equal(t, p1.ID, page.Items[1].ID)
	assert.EqualValues(t, 3, page.Pagination.Total)
}

func TestSearchPosts_Unavailable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := NewPostService(env.repos, nil, nil, testTimeout).SearchPosts(ctx, "x", 1, 10, "")
	assert.ErrorIs(t, err, ErrSearchUnavailable)

	_, err = NewPostService(env.repos, nil, &fakeSearcher{}, testTimeout).SearchPosts(ctx, "  ", 1, 10, "")
	assert.ErrorIs(t, err, ErrParamInvalid)

	failing := &fakeSearcher{err: errors.New("es down")}
	_, err = NewPostService(env.repos, nil, failing, testTimeout).SearchPosts(ctx, "x", 1, 10, "")
	assert.ErrorIs(t, err, ErrSearchUnavailable)
}
