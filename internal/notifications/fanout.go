package notifications

import (
	"context"
	"log"
	"unicode/utf8"

	"github.com/gallerystudio/backend/internal/models"
	"github.com/gallerystudio/backend/internal/realtime"
	"github.com/gallerystudio/backend/internal/repositories"
	"github.com/google/uuid"
)

// Event is one qualifying domain action to deliver. ActorName, Title and
// Message are snapshotted into each row so later profile edits do not rewrite
// notification history.
type Event struct {
	Type       string
	ActorID    uint
	ActorName  string
	Title      string
	Message    string
	ShowcaseID *uint
	CommentID  *uint
	Recipients []uint
}

// Fanout translates domain events into one durable notification row per
// recipient plus a best-effort realtime push.
type Fanout struct {
	notifications repositories.NotificationRepository
	bridge        realtime.Publisher
}

// New creates a Fanout. bridge may be nil, in which case rows are written
// without live pushes.
func New(notificationRepo repositories.NotificationRepository, bridge realtime.Publisher) *Fanout {
	return &Fanout{notifications: notificationRepo, bridge: bridge}
}

// Deliver writes one row per distinct recipient, then pushes to each
// recipient's channel. A recipient equal to the actor is skipped entirely, no
// row and no push, for every event kind. The row is the durable record; a
// failed push is logged and dropped.
func (f *Fanout) Deliver(ctx context.Context, event Event) error {
	seen := make(map[uint]struct{}, len(event.Recipients))
	for _, recipientID := range event.Recipients {
		if recipientID == 0 || recipientID == event.ActorID {
			continue
		}
		if _, ok := seen[recipientID]; ok {
			continue
		}
		seen[recipientID] = struct{}{}

		notification := &models.Notification{
			Type:        event.Type,
			ActorID:     event.ActorID,
			RecipientID: recipientID,
			ShowcaseID:  event.ShowcaseID,
			CommentID:   event.CommentID,
			SenderName:  event.ActorName,
			Title:       event.Title,
			Message:     event.Message,
		}
		if err := f.notifications.CreateNotification(notification); err != nil {
			return err
		}

		if f.bridge == nil {
			continue
		}
		push := realtime.Event{
			ID:      uuid.NewString(),
			Content: event.Message,
			Sender:  event.ActorName,
			Title:   event.Title,
		}
		if err := f.bridge.Publish(ctx, recipientID, push); err != nil {
			log.Printf("Realtime push to user %d failed: %v", recipientID, err)
		}
	}
	return nil
}

// Excerpt shortens content for a notification message snapshot
func Excerpt(content string, max int) string {
	if utf8.RuneCountInString(content) <= max {
		return content
	}
	runes := []rune(content)
	return string(runes[:max]) + "…"
}
