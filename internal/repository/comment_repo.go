package repository

import (
	"RedBlack/internal/model"
	"context"

	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentWithUser(ctx context.Context, id string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID string, limit, offset int) ([]*model.Comment, error)
	CountByPost(ctx context.Context, postID string) (int64, error)
	CountByPostIDs(ctx context.Context, postIDs []string) (map[string]int64, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Omit("User").Create(comment).Error
}

func (s *CommentRepoImpl) GetCommentWithUser(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	if err := s.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentRepoImpl) ListByPost(ctx context.Context, postID string, limit, offset int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := s.db.WithContext(ctx).Preload("User").
		Where("target_type = ? AND target_id = ?", model.TargetPost, postID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (s *CommentRepoImpl) CountByPost(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("target_type = ? AND target_id = ?", model.TargetPost, postID).
		Count(&count).Error
	return count, err
}

// CountByPostIDs 一次分组查询统计多篇帖子的评论数，postIDs 为空时统计全部
func (s *CommentRepoImpl) CountByPostIDs(ctx context.Context, postIDs []string) (map[string]int64, error) {
	var rows []struct {
		TargetID string
		Count    int64
	}
	db := s.db.WithContext(ctx).Model(&model.Comment{}).
		Select("target_id, COUNT(*) AS count").
		Where("target_type = ?", model.TargetPost)
	if len(postIDs) > 0 {
		db = db.Where("target_id IN ?", postIDs)
	}
	if err := db.Group("target_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, r := range rows {
		result[r.TargetID] = r.Count
	}
	return result, nil
}
