package service

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/model"
	"RedBlack/internal/pkg/consts"
	"RedBlack/internal/pkg/util"
	"RedBlack/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const applyLockTTL = 10 * time.Second

// Locker 防止同一用户并发提交商家申请
type Locker interface {
	TryLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key, value string)
}

type MerchantService interface {
	ListMerchants(ctx context.Context, callerID string) ([]*dto.MerchantDTO, error)
	GetMerchant(ctx context.Context, slug, callerID string) (*dto.MerchantDTO, error)
	GetMe(ctx context.Context, userID string) (*dto.MerchantMeDTO, error)
	Apply(ctx context.Context, userID string, req *dto.MerchantApplyDTO) (*dto.MerchantDTO, error)
}

type merchantServiceImpl struct {
	txManager repository.TxManager
	repos     *repository.Repos
	locker    Locker
	timeout   time.Duration
}

func NewMerchantService(txManager repository.TxManager, repos *repository.Repos, locker Locker, timeout time.Duration) MerchantService {
	return &merchantServiceImpl{
		txManager: txManager,
		repos:     repos,
		locker:    locker,
		timeout:   timeout,
	}
}

// ListMerchants 全部商家，登录用户一次性附带自己的反应
func (s *merchantServiceImpl) ListMerchants(ctx context.Context, callerID string) ([]*dto.MerchantDTO, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	merchants, err := s.repos.Merchants.ListMerchants(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list merchants")
	}

	ids := make([]string, 0, len(merchants))
	for _, m := range merchants {
		ids = append(ids, m.ID)
	}
	reactions, err := s.repos.Reactions.GetUserReactions(ctx, callerID, model.TargetMerchant, ids)
	if err != nil {
		return nil, errors.Wrap(err, "get user reactions")
	}

	out := make([]*dto.MerchantDTO, 0, len(merchants))
	for _, m := range merchants {
		item := toMerchantDTO(m)
		if t, ok := reactions[m.ID]; ok {
			item.UserReaction = reactionPtr(t)
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *merchantServiceImpl) GetMerchant(ctx context.Context, slug, callerID string) (*dto.MerchantDTO, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	merchant, err := s.repos.Merchants.GetMerchantBySlug(ctx, slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrMerchantNotFound
		}
		return nil, errors.Wrap(err, "get merchant by slug")
	}
	out := toMerchantDTO(merchant)
	if callerID == "" {
		return out, nil
	}
	reaction, err := s.repos.Reactions.GetReaction(ctx, callerID, merchant.Ref())
	if err != nil {
		return nil, errors.Wrap(err, "get user reaction")
	}
	if reaction != nil {
		out.UserReaction = reactionPtr(reaction.Type)
	}
	return out, nil
}

// GetMe 匿名用户返回 isAuthenticated=false
func (s *merchantServiceImpl) GetMe(ctx context.Context, userID string) (*dto.MerchantMeDTO, error) {
	if userID == "" {
		return &dto.MerchantMeDTO{}, nil
	}
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	out := &dto.MerchantMeDTO{IsAuthenticated: true}
	user, err := s.repos.Users.GetUserByID(ctx, userID)
	if err != nil && !repository.IsNotFound(err) {
		return nil, errors.Wrap(err, "get user")
	}
	if user != nil {
		out.IsMerchant = user.IsMerchant
	}
	merchant, err := s.repos.Merchants.GetMerchantByUserID(ctx, userID)
	if err != nil && !repository.IsNotFound(err) {
		return nil, errors.Wrap(err, "get merchant by user")
	}
	if merchant != nil {
		out.Merchant = toMerchantDTO(merchant)
	}
	return out, nil
}

// Apply 申请成为商家，商家行与用户标记在同一事务内写入
func (s *merchantServiceImpl) Apply(ctx context.Context, userID string, req *dto.MerchantApplyDTO) (*dto.MerchantDTO, error) {
	if userID == "" {
		return nil, ErrNotLoggedIn
	}
	if req == nil {
		req = &dto.MerchantApplyDTO{}
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if s.locker != nil {
		lockKey := consts.MerchantApplyLock + userID
		lockValue := uuid.NewString()
		ok, err := s.locker.TryLock(ctx, lockKey, lockValue, applyLockTTL)
		if err != nil {
			log.WarnContext(ctx, "merchant apply lock unavailable", "user_id", userID, "err", err)
		} else if !ok {
			return nil, ErrApplyInProgress
		} else {
			defer s.locker.Unlock(context.WithoutCancel(ctx), lockKey, lockValue)
		}
	}

	var merchant *model.Merchant
	err := s.txManager.Execute(ctx, func(r *repository.Repos) error {
		user, err := r.Users.GetUserByID(ctx, userID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrUserNotFound
			}
			return errors.Wrap(err, "get user")
		}
		if user.IsMerchant {
			return ErrAlreadyMerchant
		}
		if _, err = r.Merchants.GetMerchantByUserID(ctx, userID); err == nil {
			return ErrAlreadyMerchant
		} else if !repository.IsNotFound(err) {
			return errors.Wrap(err, "get merchant by user")
		}

		merchant = newMerchantFromApply(user, req)
		if err = r.Merchants.CreateMerchant(ctx, merchant); err != nil {
			if repository.IsDuplicateKey(err) {
				return ErrAlreadyMerchant
			}
			return errors.Wrap(err, "create merchant")
		}
		return errors.Wrap(r.Users.MarkMerchant(ctx, userID), "mark merchant")
	})
	if err != nil {
		return nil, err
	}
	return toMerchantDTO(merchant), nil
}

func newMerchantFromApply(user *model.User, req *dto.MerchantApplyDTO) *model.Merchant {
	displayName := user.Name
	if displayName == "" && user.Email != "" {
		displayName = util.EmailPrefix(user.Email)
	}
	if displayName == "" {
		displayName = consts.DefaultMerchantName
	}

	slugID := user.ID
	if len(slugID) > consts.MerchantSlugIDLen {
		slugID = slugID[:consts.MerchantSlugIDLen]
	}

	return &model.Merchant{
		UserID:      user.ID,
		Slug:        consts.MerchantSlugPrefix + slugID,
		DisplayName: displayName,
		Category:    util.TrimOptional(req.Category),
		Location:    util.TrimOptional(req.Location),
		Description: util.TrimOptional(req.Description),
		Highlights:  util.NormalizeHighlights(req.Highlights, model.MaxHighlights),
		AvatarColor: consts.DefaultAvatarColor,
	}
}
