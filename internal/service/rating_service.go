package service

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/model"
	"RedBlack/internal/pkg/util"
	"RedBlack/internal/repository"
	"context"
	"time"

	"github.com/pkg/errors"
)

type RatingService interface {
	Rate(ctx context.Context, userID, slug string, rating float64, comment *string) (*dto.RatingResultDTO, error)
	ListRatings(ctx context.Context, slug string) ([]*dto.RatingDTO, error)
}

type ratingServiceImpl struct {
	txManager repository.TxManager
	repos     *repository.Repos
	timeout   time.Duration
}

func NewRatingService(txManager repository.TxManager, repos *repository.Repos, timeout time.Duration) RatingService {
	return &ratingServiceImpl{
		txManager: txManager,
		repos:     repos,
		timeout:   timeout,
	}
}

// Rate 提交或覆盖评分，并在商家行锁内重算平均分与评分数
func (s *ratingServiceImpl) Rate(ctx context.Context, userID, slug string, rating float64, comment *string) (*dto.RatingResultDTO, error) {
	if userID == "" {
		return nil, ErrNotLoggedIn
	}
	value, ok := util.NormalizeRating(rating)
	if !ok {
		return nil, ErrRatingOutOfRange
	}
	comment, err := normalizeRatingComment(comment)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	result := &dto.RatingResultDTO{}
	err = s.txManager.Execute(ctx, func(r *repository.Repos) error {
		merchant, err := r.Merchants.LockMerchantBySlug(ctx, slug)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrMerchantNotFound
			}
			return errors.Wrap(err, "lock merchant")
		}

		existing, err := r.Ratings.GetRating(ctx, merchant.ID, userID)
		if err != nil {
			return errors.Wrap(err, "get rating")
		}
		if existing == nil {
			existing = &model.MerchantRating{
				MerchantID: merchant.ID,
				UserID:     userID,
				Rating:     value,
				Comment:    comment,
			}
			if err = r.Ratings.CreateRating(ctx, existing); err != nil {
				if repository.IsDuplicateKey(err) {
					return ErrActionDuplicate
				}
				return errors.Wrap(err, "create rating")
			}
			result.Created = true
		} else {
			existing.Rating = value
			existing.Comment = comment
			if err = r.Ratings.UpdateRating(ctx, existing); err != nil {
				return errors.Wrap(err, "update rating")
			}
		}

		agg, err := r.Ratings.Aggregate(ctx, merchant.ID)
		if err != nil {
			return errors.Wrap(err, "aggregate ratings")
		}
		if err = r.Merchants.UpdateRatingAggregate(ctx, merchant.ID, agg.Average, agg.Total); err != nil {
			return errors.Wrap(err, "update merchant rating")
		}
		result.AverageRating = agg.Average
		result.TotalRatings = agg.Total

		saved, err := r.Ratings.GetRatingWithUser(ctx, existing.ID)
		if err != nil {
			return errors.Wrap(err, "reload rating")
		}
		result.Rating = toRatingDTO(saved)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListRatings 商家全部评分，最新的在前
func (s *ratingServiceImpl) ListRatings(ctx context.Context, slug string) ([]*dto.RatingDTO, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	merchant, err := s.repos.Merchants.GetMerchantBySlug(ctx, slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrMerchantNotFound
		}
		return nil, errors.Wrap(err, "get merchant by slug")
	}
	ratings, err := s.repos.Ratings.ListByMerchant(ctx, merchant.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list ratings")
	}
	out := make([]*dto.RatingDTO, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, toRatingDTO(r))
	}
	return out, nil
}

func normalizeRatingComment(comment *string) (*string, error) {
	if comment == nil {
		return nil, nil
	}
	trimmed, err := validateCommentContent(*comment)
	if err != nil {
		return nil, err
	}
	return &trimmed, nil
}
