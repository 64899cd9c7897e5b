package model

import "fmt"

// TargetKind 反应/评论挂载的目标类型
type TargetKind string

const (
	TargetMerchant TargetKind = "MERCHANT"
	TargetPost     TargetKind = "POST"
)

// Target 目标实体，只能由 MerchantRef 或 PostRef 实现
type Target interface {
	Kind() TargetKind
	TargetID() string
	isTarget()
}

// MerchantRef 指向一个商家
type MerchantRef struct {
	ID string
}

func (MerchantRef) Kind() TargetKind   { return TargetMerchant }
func (r MerchantRef) TargetID() string { return r.ID }
func (MerchantRef) isTarget()          {}

// PostRef 指向一篇曝光帖
type PostRef struct {
	ID string
}

func (PostRef) Kind() TargetKind   { return TargetPost }
func (r PostRef) TargetID() string { return r.ID }
func (PostRef) isTarget()          {}

// TargetOf 由存储中的 (target_type, target_id) 还原目标
func TargetOf(kind TargetKind, id string) (Target, error) {
	switch kind {
	case TargetMerchant:
		return MerchantRef{ID: id}, nil
	case TargetPost:
		return PostRef{ID: id}, nil
	default:
		return nil, fmt.Errorf("unknown target type %q", kind)
	}
}

// ReactionType 点赞 / 点踩
type ReactionType string

const (
	ReactionLike    ReactionType = "LIKE"
	ReactionDislike ReactionType = "DISLIKE"
)

// ParseReactionType 校验客户端传入的反应类型
func ParseReactionType(s string) (ReactionType, bool) {
	switch t := ReactionType(s); t {
	case ReactionLike, ReactionDislike:
		return t, true
	default:
		return "", false
	}
}

// CounterColumn 反应类型对应的计数列
func (t ReactionType) CounterColumn() string {
	if t == ReactionDislike {
		return "dislikes_count"
	}
	return "likes_count"
}
