package service

import (
	"RedBlack/internal/pkg/database/dbtest"
	"RedBlack/internal/pkg/mongo"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type fakeSysBoxRepo struct {
	items []*mongo.SysBoxModel
}

func (f *fakeSysBoxRepo) CreateNotification(_ context.Context, msg *mongo.SysBoxModel) error {
	msg.ID = primitive.NewObjectID()
	f.items = append(f.items, msg)
	return nil
}

func (f *fakeSysBoxRepo) ListByReceiver(_ context.Context, receiverID string, limit, offset int64) ([]*mongo.SysBoxModel, error) {
	var out []*mongo.SysBoxModel
	for _, m := range f.items {
		if m.ReceiverID == receiverID {
			out = append(out, m)
		}
	}
	if offset >= int64(len(out)) {
		return nil, nil
	}
	end := min(offset+limit, int64(len(out)))
	return out[offset:end], nil
}

func (f *fakeSysBoxRepo) FindForReceiver(_ context.Context, receiverID string, id primitive.ObjectID) (*mongo.SysBoxModel, error) {
	for _, m := range f.items {
		if m.ID == id && m.ReceiverID == receiverID {
			return m, nil
		}
	}
	return nil, mongoDB.ErrNoDocuments
}

func (f *fakeSysBoxRepo) MarkRead(ctx context.Context, receiverID string, id primitive.ObjectID) error {
	m, err := f.FindForReceiver(ctx, receiverID, id)
	if err != nil {
		return err
	}
	m.IsRead = true
	return nil
}

func (f *fakeSysBoxRepo) MarkAllRead(_ context.Context, receiverID string) (int64, error) {
	var n int64
	for _, m := range f.items {
		if m.ReceiverID == receiverID && !m.IsRead {
			m.IsRead = true
			n++
		}
	}
	return n, nil
}

func (f *fakeSysBoxRepo) CountUnread(_ context.Context, receiverID string) (int64, error) {
	var n int64
	for _, m := range f.items {
		if m.ReceiverID == receiverID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func TestSysBoxService(t *testing.T) {
	env := newTestEnv(t)
	owner := dbtest.SeedUser(t, env.db, "owner")
	fan := dbtest.SeedUser(t, env.db, "fan")
	repo := &fakeSysBoxRepo{}
	svc := NewSysBoxService(repo, env.repos.Users)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.CreateNotification(ctx, &mongo.SysBoxModel{
		ReceiverID: owner.ID, SenderID: fan.ID, Type: mongo.SysBoxMerchantReaction,
		Content: "点赞了你的店铺", CreatedAt: now,
	}))
	require.NoError(t, repo.CreateNotification(ctx, &mongo.SysBoxModel{
		ReceiverID: owner.ID, Type: mongo.SysBoxMerchantRating, Content: "系统消息", CreatedAt: now,
	}))
	require.NoError(t, repo.CreateNotification(ctx, &mongo.SysBoxModel{
		ReceiverID: fan.ID, SenderID: owner.ID, Type: mongo.SysBoxPostComment, CreatedAt: now,
	}))

	list, err := svc.GetNotificationList(ctx, owner.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "fan", list[0].SenderName)
	assert.Equal(t, "点赞了你的店铺", list[0].Content)
	assert.Equal(t, repo.items[0].ID.Hex(), list[0].ID)
	assert.Equal(t, "系统通知", list[1].SenderName)

	unread, err := svc.GetUnreadCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, unread.UnreadCount)

	assert.ErrorIs(t, svc.MarkRead(ctx, owner.ID, "not-hex"), ErrParamInvalid)
	assert.ErrorIs(t, svc.MarkRead(ctx, owner.ID, primitive.NewObjectID().Hex()), ErrSysBoxNotFound)
	// 不能标记别人的通知
	assert.ErrorIs(t, svc.MarkRead(ctx, owner.ID, repo.items[2].ID.Hex()), ErrSysBoxNotFound)

	require.NoError(t, svc.MarkRead(ctx, owner.ID, repo.items[0].ID.Hex()))
	unread, err = svc.GetUnreadCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread.UnreadCount)

	require.NoError(t, svc.MarkAllRead(ctx, owner.ID))
	unread, err = svc.GetUnreadCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, unread.UnreadCount)

	fanUnread, err := svc.GetUnreadCount(ctx, fan.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, fanUnread.UnreadCount)
}
