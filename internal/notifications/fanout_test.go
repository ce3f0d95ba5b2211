package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/gallerystudio/backend/internal/models"
	"github.com/gallerystudio/backend/internal/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRepo struct {
	created []models.Notification
	err     error
}

func (r *recordingRepo) CreateNotification(n *models.Notification) error {
	if r.err != nil {
		return r.err
	}
	n.ID = uint(len(r.created) + 1)
	r.created = append(r.created, *n)
	return nil
}

func (r *recordingRepo) GetNotificationByID(uint) (*models.Notification, error) { return nil, nil }
func (r *recordingRepo) GetByRecipientID(uint, int, int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}
func (r *recordingRepo) GetGrouped(uint) ([]models.Notification, []models.Notification, []models.Notification, []models.Notification, error) {
	return nil, nil, nil, nil, nil
}
func (r *recordingRepo) GetUnreadCount(uint) (int64, error) { return 0, nil }
func (r *recordingRepo) MarkAsRead(uint) error              { return nil }
func (r *recordingRepo) MarkAllAsRead(uint) error           { return nil }

type recordingPublisher struct {
	pushes map[uint][]realtime.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, userID uint, event realtime.Event) error {
	if p.err != nil {
		return p.err
	}
	if p.pushes == nil {
		p.pushes = make(map[uint][]realtime.Event)
	}
	p.pushes[userID] = append(p.pushes[userID], event)
	return nil
}

func TestDeliverWritesRowAndPushes(t *testing.T) {
	repo := &recordingRepo{}
	pub := &recordingPublisher{}
	f := New(repo, pub)

	showcaseID := uint(7)
	err := f.Deliver(context.Background(), Event{
		Type:       models.NotificationComment,
		ActorID:    2,
		ActorName:  "Ada Lovelace",
		Title:      "New comment",
		Message:    "Ada Lovelace commented: nice work",
		ShowcaseID: &showcaseID,
		Recipients: []uint{1},
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	row := repo.created[0]
	assert.Equal(t, models.NotificationComment, row.Type)
	assert.Equal(t, uint(2), row.ActorID)
	assert.Equal(t, uint(1), row.RecipientID)
	assert.Equal(t, "Ada Lovelace", row.SenderName)
	assert.Equal(t, &showcaseID, row.ShowcaseID)

	require.Len(t, pub.pushes[1], 1)
	push := pub.pushes[1][0]
	assert.NotEmpty(t, push.ID)
	assert.Equal(t, "Ada Lovelace commented: nice work", push.Content)
	assert.Equal(t, "Ada Lovelace", push.Sender)
	assert.Equal(t, "New comment", push.Title)
}

func TestDeliverSkipsActorAsRecipient(t *testing.T) {
	kinds := []string{
		models.NotificationFollow,
		models.NotificationComment,
		models.NotificationReply,
		models.NotificationLikeComment,
		models.NotificationLikeShowcase,
		models.NotificationAddShowcase,
		models.NotificationMention,
	}
	for _, kind := range kinds {
		repo := &recordingRepo{}
		pub := &recordingPublisher{}
		f := New(repo, pub)

		err := f.Deliver(context.Background(), Event{
			Type:       kind,
			ActorID:    5,
			Recipients: []uint{5},
		})
		require.NoError(t, err)
		assert.Empty(t, repo.created, "kind %s wrote a self-notification row", kind)
		assert.Empty(t, pub.pushes, "kind %s pushed to the actor", kind)
	}
}

func TestDeliverDeduplicatesRecipients(t *testing.T) {
	repo := &recordingRepo{}
	f := New(repo, nil)

	err := f.Deliver(context.Background(), Event{
		Type:       models.NotificationMention,
		ActorID:    2,
		Recipients: []uint{1, 1, 3, 1, 3},
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 2)
	assert.Equal(t, uint(1), repo.created[0].RecipientID)
	assert.Equal(t, uint(3), repo.created[1].RecipientID)
}

func TestDeliverPropagatesRepoError(t *testing.T) {
	repo := &recordingRepo{err: errors.New("db down")}
	f := New(repo, nil)

	err := f.Deliver(context.Background(), Event{
		Type:       models.NotificationFollow,
		ActorID:    2,
		Recipients: []uint{1},
	})
	assert.Error(t, err)
}

func TestDeliverPushFailureIsNotAnError(t *testing.T) {
	repo := &recordingRepo{}
	pub := &recordingPublisher{err: errors.New("redis down")}
	f := New(repo, pub)

	err := f.Deliver(context.Background(), Event{
		Type:       models.NotificationFollow,
		ActorID:    2,
		Recipients: []uint{1},
	})
	require.NoError(t, err)
	// The durable row still landed
	assert.Len(t, repo.created, 1)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short", 10))
	assert.Equal(t, "0123456789…", Excerpt("0123456789abc", 10))
	assert.Equal(t, "héllo", Excerpt("héllo", 5))
}
