package repository

import (
	"RedBlack/internal/model"
	"context"

	"gorm.io/gorm"
)

// RatingAggregate 某商家全部评分的聚合结果
type RatingAggregate struct {
	MerchantID string
	Total      int64
	Average    float64
}

type RatingRepo interface {
	GetRating(ctx context.Context, merchantID, userID string) (*model.MerchantRating, error)
	GetRatingWithUser(ctx context.Context, id string) (*model.MerchantRating, error)
	CreateRating(ctx context.Context, rating *model.MerchantRating) error
	UpdateRating(ctx context.Context, rating *model.MerchantRating) error
	ListByMerchant(ctx context.Context, merchantID string) ([]*model.MerchantRating, error)
	Aggregate(ctx context.Context, merchantID string) (*RatingAggregate, error)
	AggregateAll(ctx context.Context) ([]RatingAggregate, error)
}

type RatingRepoImpl struct {
	db *gorm.DB
}

func NewRatingRepo(db *gorm.DB) RatingRepo {
	return &RatingRepoImpl{db: db}
}

// GetRating 不存在时返回 nil, nil
func (s *RatingRepoImpl) GetRating(ctx context.Context, merchantID, userID string) (*model.MerchantRating, error) {
	var ratings []*model.MerchantRating
	err := s.db.WithContext(ctx).
		Where("merchant_id = ? AND user_id = ?", merchantID, userID).
		Limit(1).
		Find(&ratings).Error
	if err != nil || len(ratings) == 0 {
		return nil, err
	}
	return ratings[0], nil
}

func (s *RatingRepoImpl) GetRatingWithUser(ctx context.Context, id string) (*model.MerchantRating, error) {
	var rating model.MerchantRating
	if err := s.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (s *RatingRepoImpl) CreateRating(ctx context.Context, rating *model.MerchantRating) error {
	return s.db.WithContext(ctx).Omit("User").Create(rating).Error
}

// UpdateRating 覆盖评分与评论，comment 为 nil 时清空
func (s *RatingRepoImpl) UpdateRating(ctx context.Context, rating *model.MerchantRating) error {
	return s.db.WithContext(ctx).Model(rating).
		Select("rating", "comment", "updated_at").
		Updates(rating).Error
}

func (s *RatingRepoImpl) ListByMerchant(ctx context.Context, merchantID string) ([]*model.MerchantRating, error) {
	var ratings []*model.MerchantRating
	err := s.db.WithContext(ctx).Preload("User").
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}

// ratingTotals 平均值由总分除以条数得到，不经过数据库的 AVG
type ratingTotals struct {
	MerchantID string
	Total      int64
	RatingSum  float64
}

func (t ratingTotals) aggregate() RatingAggregate {
	agg := RatingAggregate{MerchantID: t.MerchantID, Total: t.Total}
	if t.Total > 0 {
		agg.Average = t.RatingSum / float64(t.Total)
	}
	return agg
}

func (s *RatingRepoImpl) Aggregate(ctx context.Context, merchantID string) (*RatingAggregate, error) {
	totals := ratingTotals{MerchantID: merchantID}
	err := s.db.WithContext(ctx).Model(&model.MerchantRating{}).
		Select("COUNT(*) AS total, COALESCE(SUM(rating), 0) AS rating_sum").
		Where("merchant_id = ?", merchantID).
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	totals.MerchantID = merchantID
	agg := totals.aggregate()
	return &agg, nil
}

func (s *RatingRepoImpl) AggregateAll(ctx context.Context) ([]RatingAggregate, error) {
	var rows []ratingTotals
	err := s.db.WithContext(ctx).Model(&model.MerchantRating{}).
		Select("merchant_id, COUNT(*) AS total, COALESCE(SUM(rating), 0) AS rating_sum").
		Group("merchant_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	aggs := make([]RatingAggregate, 0, len(rows))
	for _, r := range rows {
		aggs = append(aggs, r.aggregate())
	}
	return aggs, nil
}
