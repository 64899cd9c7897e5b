package model

import (
	"time"

	"gorm.io/gorm"
)

// Reaction 每个 (user, target) 至多一条，由唯一索引保证
type Reaction struct {
	ID         string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID     string       `gorm:"type:varchar(36);not null;uniqueIndex:uk_reactions_user_target,priority:1" json:"userId"`
	Type       ReactionType `gorm:"type:varchar(16);not null" json:"type"`
	TargetType TargetKind   `gorm:"type:varchar(16);not null;uniqueIndex:uk_reactions_user_target,priority:2;index:idx_reactions_target,priority:1" json:"targetType"`
	TargetID   string       `gorm:"type:varchar(36);not null;uniqueIndex:uk_reactions_user_target,priority:3;index:idx_reactions_target,priority:2" json:"targetId"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

func (Reaction) TableName() string {
	return "reactions"
}

func (r *Reaction) BeforeCreate(*gorm.DB) error {
	newID(&r.ID)
	return nil
}

func NewReaction(userID string, target Target, typ ReactionType) *Reaction {
	return &Reaction{
		UserID:     userID,
		Type:       typ,
		TargetType: target.Kind(),
		TargetID:   target.TargetID(),
	}
}
