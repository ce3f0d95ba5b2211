package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gallerystudio/backend/internal/models"
	"github.com/gallerystudio/backend/internal/notifications"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFollowRepo struct {
	following map[uint][]models.User
}

func (r *fakeFollowRepo) CreateFollow(*models.Follow) error        { return nil }
func (r *fakeFollowRepo) DeleteFollow(uint, uint) error            { return nil }
func (r *fakeFollowRepo) IsFollowing(uint, uint) (bool, error)     { return false, nil }
func (r *fakeFollowRepo) GetFollowers(uint) ([]models.User, error) { return nil, nil }
func (r *fakeFollowRepo) GetFollowerIDs(uint) ([]uint, error)      { return nil, nil }
func (r *fakeFollowRepo) GetFollowingIDs(uint) ([]uint, error)     { return nil, nil }
func (r *fakeFollowRepo) GetFollowing(userID uint) ([]models.User, error) {
	return r.following[userID], nil
}

func newUserTestHandler() (*UserHandler, *fakeUserRepo, *fakeNotificationRepo) {
	userRepo := &fakeUserRepo{users: map[uint]*models.User{
		1: {ID: 1, Username: "mira", FirstName: "Mira"},
		2: {ID: 2, Username: "theo", FirstName: "Theo"},
	}}
	notificationRepo := &fakeNotificationRepo{}
	fanout := notifications.New(notificationRepo, nil)
	return NewUserHandler(userRepo, &fakeFollowRepo{}, fanout), userRepo, notificationRepo
}

func updateProfileContext(userID uint, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &models.JwtCustomClaims{UserID: userID})
	return c, rec
}

func TestUpdateProfileBioMentionNotifiesMentionedUser(t *testing.T) {
	h, userRepo, notificationRepo := newUserTestHandler()

	c, rec := updateProfileContext(2, `{"bio":"collaborating with @mira"}`)
	require.NoError(t, h.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "collaborating with @mira", userRepo.users[2].Bio)

	require.Len(t, notificationRepo.created, 1)
	n := notificationRepo.created[0]
	assert.Equal(t, models.NotificationMention, n.Type)
	assert.Equal(t, uint(1), n.RecipientID)
	assert.Equal(t, uint(2), n.ActorID)
	assert.Contains(t, n.Message, "@mira")
}

func TestUpdateProfileSelfMentionInBioIsSilent(t *testing.T) {
	h, _, notificationRepo := newUserTestHandler()

	c, rec := updateProfileContext(2, `{"bio":"it me, @theo"}`)
	require.NoError(t, h.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, notificationRepo.created)
}

func TestUpdateProfileUnchangedBioDoesNotRenotify(t *testing.T) {
	h, userRepo, notificationRepo := newUserTestHandler()
	userRepo.users[2].Bio = "collaborating with @mira"

	c, rec := updateProfileContext(2, `{"bio":"collaborating with @mira"}`)
	require.NoError(t, h.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, notificationRepo.created)
}

func TestUpdateProfileUnknownMentionInBioIsSkipped(t *testing.T) {
	h, _, notificationRepo := newUserTestHandler()

	c, rec := updateProfileContext(2, `{"bio":"hello @nobody_here"}`)
	require.NoError(t, h.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, notificationRepo.created)
}
