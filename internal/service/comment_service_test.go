package service

import (
	"RedBlack/internal/model"
	"RedBlack/internal/pkg/database/dbtest"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment_IncrementsCount(t *testing.T) {
	env := newTestEnv(t)
	author := dbtest.SeedUser(t, env.db, "author")
	reader := dbtest.SeedUser(t, env.db, "reader")
	post := dbtest.SeedPost(t, env.db, author, "曝光")
	svc := NewCommentService(env.tx, env.repos, testTimeout)
	ctx := context.Background()

	res, err := svc.CreateComment(ctx, reader.ID, post.ID, "  踩过坑  ")
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.CommentsCount)
	assert.Equal(t, "踩过坑", res.Comment.Content)
	assert.Equal(t, string(model.TargetPost), res.Comment.TargetType)
	assert.Equal(t, reader.ID, res.Comment.User.ID)

	res, err = svc.CreateComment(ctx, author.ID, post.ID, "感谢补充")
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.CommentsCount)
}

func TestCreateComment_ValidationBeforeStore(t *testing.T) {
	env := newTestEnv(t)
	author := dbtest.SeedUser(t, env.db, "author")
	post := dbtest.SeedPost(t, env.db, author, "曝光")
	svc := NewCommentService(env.tx, env.repos, testTimeout)
	ctx := context.Background()

	_, err := svc.CreateComment(ctx, "", post.ID, "hi")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = svc.CreateComment(ctx, author.ID, post.ID, " \n\t ")
	assert.ErrorIs(t, err, ErrCommentEmpty)
	_, err = svc.CreateComment(ctx, author.ID, post.ID, strings.Repeat("a", 1001))
	assert.ErrorIs(t, err, ErrCommentTooLong)
	_, err = svc.CreateComment(ctx, author.ID, "missing", "hello")
	assert.ErrorIs(t, err, ErrPostNotFound)

	p, err := env.repos.Posts.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, p.CommentsCount)

	// 正好 1000 个字符允许
	_, err = svc.CreateComment(ctx, author.ID, post.ID, strings.Repeat("好", 1000))
	assert.NoError(t, err)
}

func TestListComments_Pagination(t *testing.T) {
	env := newTestEnv(t)
	author := dbtest.SeedUser(t, env.db, "author")
	post := dbtest.SeedPost(t, env.db, author, "曝光")
	svc := NewCommentService(env.tx, env.repos, testTimeout)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.CreateComment(ctx, author.ID, post.ID, fmt.Sprintf("第%d条", i))
		require.NoError(t, err)
	}

	page, err := svc.ListComments(ctx, post.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.EqualValues(t, 5, page.Pagination.Total)
	assert.EqualValues(t, 3, page.Pagination.TotalPages)

	page, err = svc.ListComments(ctx, post.ID, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	_, err = svc.ListComments(ctx, "missing", 1, 10)
	assert.ErrorIs(t, err, ErrPostNotFound)
}
