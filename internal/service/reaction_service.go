package service

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/model"
	"RedBlack/internal/repository"
	"context"
	"time"

	"github.com/pkg/errors"
)

// RepeatPolicy 同一用户对同一目标重复提交相同反应时的处理方式
type RepeatPolicy string

const (
	RepeatReject RepeatPolicy = "reject"
	RepeatToggle RepeatPolicy = "toggle"
)

// ParseRepeatPolicy 非法值回落到 def
func ParseRepeatPolicy(s string, def RepeatPolicy) RepeatPolicy {
	switch p := RepeatPolicy(s); p {
	case RepeatReject, RepeatToggle:
		return p
	default:
		return def
	}
}

// ReactionPolicy 按目标类型配置的重复策略
type ReactionPolicy struct {
	Merchant RepeatPolicy
	Post     RepeatPolicy
}

// DefaultReactionPolicy 商家拒绝重复，帖子再次提交即取消
func DefaultReactionPolicy() ReactionPolicy {
	return ReactionPolicy{Merchant: RepeatReject, Post: RepeatToggle}
}

func (p ReactionPolicy) For(kind model.TargetKind) RepeatPolicy {
	if kind == model.TargetMerchant {
		return p.Merchant
	}
	return p.Post
}

type ReactionService interface {
	React(ctx context.Context, userID string, target model.Target, typ string) (*dto.ReactionResultDTO, error)
	ReactToMerchant(ctx context.Context, userID, slug, typ string) (*dto.ReactionResultDTO, error)
	ReactToPost(ctx context.Context, userID, postID, typ string) (*dto.ReactionResultDTO, error)
	GetPostReaction(ctx context.Context, userID, postID string) (*model.ReactionType, error)
}

type reactionServiceImpl struct {
	txManager repository.TxManager
	repos     *repository.Repos
	policy    ReactionPolicy
	timeout   time.Duration
}

func NewReactionService(txManager repository.TxManager, repos *repository.Repos, policy ReactionPolicy, timeout time.Duration) ReactionService {
	return &reactionServiceImpl{
		txManager: txManager,
		repos:     repos,
		policy:    policy,
		timeout:   timeout,
	}
}

// React 点赞/点踩/取消，计数与反应行在同一事务内变更
func (s *reactionServiceImpl) React(ctx context.Context, userID string, target model.Target, typ string) (*dto.ReactionResultDTO, error) {
	reactionType, err := validateReaction(userID, typ)
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.react(ctx, userID, target, reactionType)
}

func (s *reactionServiceImpl) ReactToMerchant(ctx context.Context, userID, slug, typ string) (*dto.ReactionResultDTO, error) {
	reactionType, err := validateReaction(userID, typ)
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	merchant, err := s.repos.Merchants.GetMerchantBySlug(ctx, slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrMerchantNotFound
		}
		return nil, errors.Wrap(err, "get merchant by slug")
	}
	return s.react(ctx, userID, merchant.Ref(), reactionType)
}

func (s *reactionServiceImpl) ReactToPost(ctx context.Context, userID, postID, typ string) (*dto.ReactionResultDTO, error) {
	reactionType, err := validateReaction(userID, typ)
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.react(ctx, userID, model.PostRef{ID: postID}, reactionType)
}

// GetPostReaction 匿名用户返回 nil
func (s *reactionServiceImpl) GetPostReaction(ctx context.Context, userID, postID string) (*model.ReactionType, error) {
	if userID == "" {
		return nil, nil
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	reaction, err := s.repos.Reactions.GetReaction(ctx, userID, model.PostRef{ID: postID})
	if err != nil {
		return nil, errors.Wrap(err, "get post reaction")
	}
	if reaction == nil {
		return nil, nil
	}
	return reactionPtr(reaction.Type), nil
}

func (s *reactionServiceImpl) react(ctx context.Context, userID string, target model.Target, reactionType model.ReactionType) (*dto.ReactionResultDTO, error) {
	result := &dto.ReactionResultDTO{}
	err := s.txManager.Execute(ctx, func(r *repository.Repos) error {
		if _, _, err := lockTarget(ctx, r, target); err != nil {
			return err
		}

		existing, err := r.Reactions.GetReaction(ctx, userID, target)
		if err != nil {
			return errors.Wrap(err, "get reaction")
		}

		switch {
		case existing == nil:
			if err = r.Reactions.CreateReaction(ctx, model.NewReaction(userID, target, reactionType)); err != nil {
				if repository.IsDuplicateKey(err) {
					return ErrActionDuplicate
				}
				return errors.Wrap(err, "create reaction")
			}
			if err = incrTarget(ctx, r, target, reactionType.CounterColumn(), 1); err != nil {
				return err
			}
			result.UserReaction = reactionPtr(reactionType)

		case existing.Type == reactionType:
			if s.policy.For(target.Kind()) == RepeatReject {
				return ErrAlreadyReacted
			}
			if err = r.Reactions.DeleteReaction(ctx, existing.ID); err != nil {
				return errors.Wrap(err, "delete reaction")
			}
			if err = incrTarget(ctx, r, target, reactionType.CounterColumn(), -1); err != nil {
				return err
			}
			result.UserReaction = nil

		default:
			if err = r.Reactions.UpdateReactionType(ctx, existing.ID, reactionType); err != nil {
				return errors.Wrap(err, "update reaction")
			}
			if err = incrTarget(ctx, r, target, existing.Type.CounterColumn(), -1); err != nil {
				return err
			}
			if err = incrTarget(ctx, r, target, reactionType.CounterColumn(), 1); err != nil {
				return err
			}
			result.UserReaction = reactionPtr(reactionType)
		}

		result.LikesCount, result.DislikesCount, err = lockTarget(ctx, r, target)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func validateReaction(userID, typ string) (model.ReactionType, error) {
	if userID == "" {
		return "", ErrNotLoggedIn
	}
	reactionType, ok := model.ParseReactionType(typ)
	if !ok {
		return "", ErrInvalidReactionType
	}
	return reactionType, nil
}

// lockTarget 对目标行加行锁并返回当前计数
func lockTarget(ctx context.Context, r *repository.Repos, target model.Target) (int64, int64, error) {
	switch t := target.(type) {
	case model.MerchantRef:
		merchant, err := r.Merchants.LockMerchantByID(ctx, t.ID)
		if err != nil {
			if repository.IsNotFound(err) {
				return 0, 0, ErrMerchantNotFound
			}
			return 0, 0, errors.Wrap(err, "lock merchant")
		}
		return merchant.LikesCount, merchant.DislikesCount, nil
	case model.PostRef:
		post, err := r.Posts.LockPost(ctx, t.ID)
		if err != nil {
			if repository.IsNotFound(err) {
				return 0, 0, ErrPostNotFound
			}
			return 0, 0, errors.Wrap(err, "lock post")
		}
		return post.LikesCount, post.DislikesCount, nil
	default:
		return 0, 0, ErrParamInvalid
	}
}

func incrTarget(ctx context.Context, r *repository.Repos, target model.Target, column string, delta int64) error {
	var err error
	switch t := target.(type) {
	case model.MerchantRef:
		err = r.Merchants.IncrCounter(ctx, t.ID, column, delta)
	case model.PostRef:
		err = r.Posts.IncrCounter(ctx, t.ID, column, delta)
	default:
		return ErrParamInvalid
	}
	return errors.Wrap(err, "update target counter")
}
