package models

import "time"

// Like represents a like on a showcase. The unique pair index is what makes
// the like toggle idempotent at the store level.
type Like struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ShowcaseID uint      `json:"showcase_id" gorm:"index;uniqueIndex:idx_showcase_user_like"`
	UserID     uint      `json:"user_id" gorm:"index;uniqueIndex:idx_showcase_user_like"`
	CreatedAt  time.Time `json:"created_at"`
}

// CommentLike represents a like on a comment
type CommentLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CommentID uint      `json:"comment_id" gorm:"index;uniqueIndex:idx_comment_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_comment_user_like"`
	CreatedAt time.Time `json:"created_at"`
}
