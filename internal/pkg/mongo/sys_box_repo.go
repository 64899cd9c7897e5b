package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const SysBoxCollection = "sys_box"

// SysBoxRepo 通知收件箱，除写入外的操作都限定在接收者自己的通知内
type SysBoxRepo interface {
	CreateNotification(ctx context.Context, msg *SysBoxModel) error
	ListByReceiver(ctx context.Context, receiverID string, limit, offset int64) ([]*SysBoxModel, error)
	FindForReceiver(ctx context.Context, receiverID string, id primitive.ObjectID) (*SysBoxModel, error)
	MarkRead(ctx context.Context, receiverID string, id primitive.ObjectID) error
	MarkAllRead(ctx context.Context, receiverID string) (int64, error)
	CountUnread(ctx context.Context, receiverID string) (int64, error)
}

type sysBoxRepoImpl struct {
	col *mongo.Collection
}

func NewSysBoxRepo(db *mongo.Database) SysBoxRepo {
	return &sysBoxRepoImpl{
		col: db.Collection(SysBoxCollection),
	}
}

// EnsureSysBoxIndexes 列表按接收者倒序，未读数按接收者+已读状态
func EnsureSysBoxIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(SysBoxCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "is_read", Value: 1}}},
	})
	return err
}

// CreateNotification 写入后回填 ID，未设置时间时取当前时间
func (s *sysBoxRepoImpl) CreateNotification(ctx context.Context, msg *SysBoxModel) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	res, err := s.col.InsertOne(ctx, msg)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		msg.ID = id
	}
	return nil
}

func (s *sysBoxRepoImpl) ListByReceiver(ctx context.Context, receiverID string, limit, offset int64) ([]*SysBoxModel, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, bson.M{"receiver_id": receiverID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*SysBoxModel, 0, limit)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// FindForReceiver 不属于该接收者的通知同样返回 mongo.ErrNoDocuments
func (s *sysBoxRepoImpl) FindForReceiver(ctx context.Context, receiverID string, id primitive.ObjectID) (*SysBoxModel, error) {
	var msg SysBoxModel
	err := s.col.FindOne(ctx, bson.M{"_id": id, "receiver_id": receiverID}).Decode(&msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *sysBoxRepoImpl) MarkRead(ctx context.Context, receiverID string, id primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "receiver_id": receiverID},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// MarkAllRead 返回本次被标记的条数
func (s *sysBoxRepoImpl) MarkAllRead(ctx context.Context, receiverID string) (int64, error) {
	res, err := s.col.UpdateMany(ctx,
		bson.M{"receiver_id": receiverID, "is_read": false},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *sysBoxRepoImpl) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"receiver_id": receiverID, "is_read": false})
}
