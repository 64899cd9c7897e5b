package repository

import (
	"RedBlack/internal/model"
	"context"

	"gorm.io/gorm"
)

// TargetReactionCount 按目标与类型分组的反应数量
type TargetReactionCount struct {
	TargetID string
	Type     model.ReactionType
	Count    int64
}

type ReactionRepo interface {
	GetReaction(ctx context.Context, userID string, target model.Target) (*model.Reaction, error)
	CreateReaction(ctx context.Context, reaction *model.Reaction) error
	DeleteReaction(ctx context.Context, id string) error
	UpdateReactionType(ctx context.Context, id string, typ model.ReactionType) error
	GetUserReactions(ctx context.Context, userID string, kind model.TargetKind, targetIDs []string) (map[string]model.ReactionType, error)
	CountGroupByTarget(ctx context.Context, kind model.TargetKind) ([]TargetReactionCount, error)
}

type ReactionRepoImpl struct {
	db *gorm.DB
}

func NewReactionRepo(db *gorm.DB) ReactionRepo {
	return &ReactionRepoImpl{db: db}
}

// GetReaction 不存在时返回 nil, nil
func (s *ReactionRepoImpl) GetReaction(ctx context.Context, userID string, target model.Target) (*model.Reaction, error) {
	var reactions []*model.Reaction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, target.Kind(), target.TargetID()).
		Limit(1).
		Find(&reactions).Error
	if err != nil || len(reactions) == 0 {
		return nil, err
	}
	return reactions[0], nil
}

func (s *ReactionRepoImpl) CreateReaction(ctx context.Context, reaction *model.Reaction) error {
	return s.db.WithContext(ctx).Create(reaction).Error
}

func (s *ReactionRepoImpl) DeleteReaction(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Reaction{}).Error
}

func (s *ReactionRepoImpl) UpdateReactionType(ctx context.Context, id string, typ model.ReactionType) error {
	return s.db.WithContext(ctx).Model(&model.Reaction{}).
		Where("id = ?", id).
		Update("type", typ).Error
}

// GetUserReactions 一次查询取回调用者对一批目标的反应
func (s *ReactionRepoImpl) GetUserReactions(ctx context.Context, userID string, kind model.TargetKind, targetIDs []string) (map[string]model.ReactionType, error) {
	result := make(map[string]model.ReactionType, len(targetIDs))
	if userID == "" || len(targetIDs) == 0 {
		return result, nil
	}
	var reactions []*model.Reaction
	err := s.db.WithContext(ctx).
		Select("target_id", "type").
		Where("user_id = ? AND target_type = ? AND target_id IN ?", userID, kind, targetIDs).
		Find(&reactions).Error
	if err != nil {
		return nil, err
	}
	for _, r := range reactions {
		result[r.TargetID] = r.Type
	}
	return result, nil
}

func (s *ReactionRepoImpl) CountGroupByTarget(ctx context.Context, kind model.TargetKind) ([]TargetReactionCount, error) {
	var counts []TargetReactionCount
	err := s.db.WithContext(ctx).Model(&model.Reaction{}).
		Select("target_id, type, COUNT(*) AS count").
		Where("target_type = ?", kind).
		Group("target_id, type").
		Scan(&counts).Error
	return counts, err
}
