package repository

import (
	"RedBlack/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post, images []*model.PostImage) error
	GetPost(ctx context.Context, id string) (*model.Post, error)
	GetPostByIds(ctx context.Context, ids []string) ([]*model.Post, error)
	ExistPost(ctx context.Context, id string) (bool, error)
	LockPost(ctx context.Context, id string) (*model.Post, error)
	ListPosts(ctx context.Context, limit, offset int) ([]*model.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	ListPostCounters(ctx context.Context) ([]*model.Post, error)
	IncrCounter(ctx context.Context, id, column string, delta int64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post, images []*model.PostImage) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		if len(images) == 0 {
			return nil
		}
		for _, img := range images {
			img.PostID = post.ID
		}
		return tx.Create(images).Error
	})
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := s.preload(s.db.WithContext(ctx)).Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) GetPostByIds(ctx context.Context, ids []string) ([]*model.Post, error) {
	var posts []*model.Post
	if len(ids) == 0 {
		return posts, nil
	}
	err := s.preload(s.db.WithContext(ctx)).Where("id IN ?", ids).Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) ExistPost(ctx context.Context, id string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// LockPost 必须在事务内调用
func (s *PostRepoImpl) LockPost(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) ListPosts(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.preload(s.db.WithContext(ctx)).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).Count(&count).Error
	return count, err
}

// ListPostCounters 只取计数列，供巡检使用
func (s *PostRepoImpl) ListPostCounters(ctx context.Context) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Select("id", "likes_count", "dislikes_count", "comments_count").
		Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) IncrCounter(ctx context.Context, id, column string, delta int64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + ?", delta)).Error
}

func (s *PostRepoImpl) preload(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	})
}
