package models

import "time"

// Notification kinds
const (
	NotificationFollow       = "follow"
	NotificationComment      = "comment"
	NotificationReply        = "reply"
	NotificationLikeComment  = "like_comment"
	NotificationLikeShowcase = "like_showcase"
	NotificationAddShowcase  = "add_showcase"
	NotificationMention      = "mention"
)

// Notification represents one delivered event for one recipient.
// SenderName/Title/Message are a snapshot captured at creation time, so later
// profile edits do not alter historical notification text. Only IsRead is
// ever mutated after creation.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	ShowcaseID  *uint     `json:"showcase_id,omitempty"`
	CommentID   *uint     `json:"comment_id,omitempty"`
	SenderName  string    `json:"sender_name"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
