package service

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/model"
	"RedBlack/internal/pkg/mongo"
	"RedBlack/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type SysBoxService interface {
	GetNotificationList(ctx context.Context, userID string, page, pageSize int) ([]*dto.SysBoxDTO, error)
	GetUnreadCount(ctx context.Context, userID string) (*dto.SysBoxUnreadDTO, error)
	MarkRead(ctx context.Context, userID string, msgID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type sysBoxServiceImpl struct {
	sysBoxRepo mongo.SysBoxRepo
	userRepo   repository.UserRepo
}

func NewSysBoxService(sysBox mongo.SysBoxRepo, user repository.UserRepo) SysBoxService {
	return &sysBoxServiceImpl{
		sysBoxRepo: sysBox,
		userRepo:   user,
	}
}

// GetNotificationList 获取通知列表并补全发送者信息
func (s *sysBoxServiceImpl) GetNotificationList(ctx context.Context, userID string, page, pageSize int) ([]*dto.SysBoxDTO, error) {
	page, pageSize = normalizePage(page, pageSize)
	limit := int64(pageSize)
	offset := int64((page - 1) * pageSize)

	list, err := s.sysBoxRepo.ListByReceiver(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]string, 0, len(list))
	for _, m := range list {
		if m.SenderID != "" {
			senderIDs = append(senderIDs, m.SenderID)
		}
	}
	senders, err := s.userRepo.GetUsersByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}
	senderByID := make(map[string]*model.User, len(senders))
	for _, u := range senders {
		senderByID[u.ID] = u
	}

	res := make([]*dto.SysBoxDTO, 0, len(list))
	for _, m := range list {
		d := &dto.SysBoxDTO{
			ID:        m.ID.Hex(),
			SenderID:  m.SenderID,
			Type:      m.Type,
			TargetID:  m.TargetID,
			Content:   m.Content,
			Payload:   m.Payload,
			IsRead:    m.IsRead,
			CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
		}

		if m.SenderID == "" {
			d.SenderName = "系统通知"
		} else if u, ok := senderByID[m.SenderID]; ok {
			d.SenderName = u.Name
			d.AvatarURL = u.Image
		}

		res = append(res, d)
	}

	return res, nil
}

// GetUnreadCount 获取未读数
func (s *sysBoxServiceImpl) GetUnreadCount(ctx context.Context, userID string) (*dto.SysBoxUnreadDTO, error) {
	count, err := s.sysBoxRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.SysBoxUnreadDTO{UnreadCount: count}, nil
}

// MarkRead 标记单条已读，他人的通知按不存在处理
func (s *sysBoxServiceImpl) MarkRead(ctx context.Context, userID string, msgID string) error {
	objectID, err := primitive.ObjectIDFromHex(msgID)
	if err != nil {
		return ErrParamInvalid
	}

	notice, err := s.sysBoxRepo.FindForReceiver(ctx, userID, objectID)
	if err != nil {
		if errors.Is(err, mongoDB.ErrNoDocuments) {
			return ErrSysBoxNotFound
		}
		return errors.Wrap(err, "find notification")
	}
	if notice.IsRead {
		return nil
	}
	return errors.Wrap(s.sysBoxRepo.MarkRead(ctx, userID, objectID), "mark notification read")
}

// MarkAllRead 一键已读
func (s *sysBoxServiceImpl) MarkAllRead(ctx context.Context, userID string) error {
	n, err := s.sysBoxRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "mark all notifications read")
	}
	log.DebugContext(ctx, "notifications marked read", "user_id", userID, "count", n)
	return nil
}
