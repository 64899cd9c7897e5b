package repository

import (
	"RedBlack/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MerchantRepo interface {
	CreateMerchant(ctx context.Context, merchant *model.Merchant) error
	GetMerchantByID(ctx context.Context, id string) (*model.Merchant, error)
	GetMerchantBySlug(ctx context.Context, slug string) (*model.Merchant, error)
	GetMerchantByUserID(ctx context.Context, userID string) (*model.Merchant, error)
	LockMerchantByID(ctx context.Context, id string) (*model.Merchant, error)
	LockMerchantBySlug(ctx context.Context, slug string) (*model.Merchant, error)
	ListMerchants(ctx context.Context) ([]*model.Merchant, error)
	IncrCounter(ctx context.Context, id, column string, delta int64) error
	UpdateRatingAggregate(ctx context.Context, id string, average float64, total int64) error
}

type MerchantRepoImpl struct {
	db *gorm.DB
}

func NewMerchantRepo(db *gorm.DB) MerchantRepo {
	return &MerchantRepoImpl{db: db}
}

func (s *MerchantRepoImpl) CreateMerchant(ctx context.Context, merchant *model.Merchant) error {
	return s.db.WithContext(ctx).Create(merchant).Error
}

func (s *MerchantRepoImpl) GetMerchantByID(ctx context.Context, id string) (*model.Merchant, error) {
	return s.first(s.db.WithContext(ctx), "id = ?", id)
}

func (s *MerchantRepoImpl) GetMerchantBySlug(ctx context.Context, slug string) (*model.Merchant, error) {
	return s.first(s.db.WithContext(ctx), "slug = ?", slug)
}

func (s *MerchantRepoImpl) GetMerchantByUserID(ctx context.Context, userID string) (*model.Merchant, error) {
	return s.first(s.db.WithContext(ctx), "user_id = ?", userID)
}

// LockMerchantByID 必须在事务内调用
func (s *MerchantRepoImpl) LockMerchantByID(ctx context.Context, id string) (*model.Merchant, error) {
	return s.first(s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

// LockMerchantBySlug 必须在事务内调用
func (s *MerchantRepoImpl) LockMerchantBySlug(ctx context.Context, slug string) (*model.Merchant, error) {
	return s.first(s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "slug = ?", slug)
}

func (s *MerchantRepoImpl) ListMerchants(ctx context.Context) ([]*model.Merchant, error) {
	var merchants []*model.Merchant
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&merchants).Error
	return merchants, err
}

func (s *MerchantRepoImpl) IncrCounter(ctx context.Context, id, column string, delta int64) error {
	return s.db.WithContext(ctx).Model(&model.Merchant{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + ?", delta)).Error
}

func (s *MerchantRepoImpl) UpdateRatingAggregate(ctx context.Context, id string, average float64, total int64) error {
	return s.db.WithContext(ctx).Model(&model.Merchant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"average_rating": average,
			"total_ratings":  total,
		}).Error
}

func (s *MerchantRepoImpl) first(db *gorm.DB, query string, arg string) (*model.Merchant, error) {
	var merchant model.Merchant
	if err := db.Where(query, arg).First(&merchant).Error; err != nil {
		return nil, err
	}
	return &merchant, nil
}
