package service

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/model"
	"context"
	"time"

	"github.com/jinzhu/copier"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// withTimeout 每个工作单元的最长等待时间
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// normalizePage 补齐分页缺省值并限制单页条数
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func toUserBrief(u *model.User) dto.UserBriefDTO {
	return dto.UserBriefDTO{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image}
}

func toMerchantDTO(m *model.Merchant) *dto.MerchantDTO {
	var out dto.MerchantDTO
	_ = copier.Copy(&out, m)
	if out.Highlights == nil {
		out.Highlights = []string{}
	}
	return &out
}

func toPostDTO(p *model.Post) *dto.PostDTO {
	var out dto.PostDTO
	_ = copier.Copy(&out, p)
	out.User = toUserBrief(&p.User)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	out.Images = make([]dto.PostImageDTO, 0, len(p.Images))
	for _, img := range p.Images {
		out.Images = append(out.Images, dto.PostImageDTO{ID: img.ID, URL: img.URL, Order: img.SortOrder})
	}
	return &out
}

func toCommentDTO(c *model.Comment) *dto.CommentDTO {
	var out dto.CommentDTO
	_ = copier.Copy(&out, c)
	out.TargetType = string(c.TargetType)
	out.User = toUserBrief(&c.User)
	return &out
}

func toRatingDTO(r *model.MerchantRating) *dto.RatingDTO {
	var out dto.RatingDTO
	_ = copier.Copy(&out, r)
	out.User = toUserBrief(&r.User)
	return &out
}

func reactionPtr(t model.ReactionType) *model.ReactionType {
	return &t
}
