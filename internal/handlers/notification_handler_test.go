package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gallerystudio/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type inboxRepo struct {
	fakeNotificationRepo
	byID map[uint]*models.Notification
	read []uint
}

func (r *inboxRepo) GetNotificationByID(id uint) (*models.Notification, error) {
	n, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return n, nil
}

func (r *inboxRepo) MarkAsRead(id uint) error {
	r.read = append(r.read, id)
	return nil
}

func markReadContext(userID uint, notificationID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/notifications/"+notificationID+"/read", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &models.JwtCustomClaims{UserID: userID})
	c.SetParamNames("id")
	c.SetParamValues(notificationID)
	return c, rec
}

func TestMarkAsReadByRecipient(t *testing.T) {
	repo := &inboxRepo{byID: map[uint]*models.Notification{
		5: {ID: 5, RecipientID: 1, Type: models.NotificationComment},
	}}
	h := NewNotificationHandler(repo, &fakeUserRepo{}, nil)

	c, rec := markReadContext(1, "5")
	require.NoError(t, h.MarkAsRead(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint{5}, repo.read)
}

func TestMarkAsReadForeignRecipientForbidden(t *testing.T) {
	repo := &inboxRepo{byID: map[uint]*models.Notification{
		5: {ID: 5, RecipientID: 1, Type: models.NotificationComment},
	}}
	h := NewNotificationHandler(repo, &fakeUserRepo{}, nil)

	c, _ := markReadContext(2, "5")
	err := h.MarkAsRead(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
	assert.Empty(t, repo.read)
}

func TestMarkAsReadMissingNotification(t *testing.T) {
	repo := &inboxRepo{byID: map[uint]*models.Notification{}}
	h := NewNotificationHandler(repo, &fakeUserRepo{}, nil)

	c, _ := markReadContext(1, "5")
	err := h.MarkAsRead(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestStreamUnavailableWithoutBridge(t *testing.T) {
	h := NewNotificationHandler(&inboxRepo{}, &fakeUserRepo{}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/notifications/stream", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &models.JwtCustomClaims{UserID: 1})

	err := h.Stream(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Code)
}
