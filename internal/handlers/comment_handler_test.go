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
	"gorm.io/gorm"
)

type fakeCommentRepo struct {
	comments map[uint]*models.Comment
	nextID   uint
	byShow   map[uint]int // comment counter per showcase
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[uint]*models.Comment{}, nextID: 1, byShow: map[uint]int{}}
}

func (r *fakeCommentRepo) CreateComment(c *models.Comment) error {
	c.ID = r.nextID
	r.nextID++
	stored := *c
	r.comments[c.ID] = &stored
	r.byShow[c.ShowcaseID]++
	return nil
}

func (r *fakeCommentRepo) GetCommentByID(id uint) (*models.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCommentRepo) GetCommentsByShowcaseID(showcaseID uint) ([]models.Comment, error) {
	var out []models.Comment
	for id := uint(1); id < r.nextID; id++ {
		if c, ok := r.comments[id]; ok && c.ShowcaseID == showcaseID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) GetCommentsByShowcaseIDs(ids []uint) ([]models.Comment, error) {
	var out []models.Comment
	for _, id := range ids {
		cs, _ := r.GetCommentsByShowcaseID(id)
		out = append(out, cs...)
	}
	return out, nil
}

func (r *fakeCommentRepo) UpdateComment(c *models.Comment) error {
	stored := *c
	r.comments[c.ID] = &stored
	return nil
}

func (r *fakeCommentRepo) DeleteComment(id uint) error {
	c, ok := r.comments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.comments, id)
	r.byShow[c.ShowcaseID]--
	return nil
}

type fakeShowcaseRepo struct {
	showcases map[uint]*models.Showcase
}

func (r *fakeShowcaseRepo) CreateShowcase(*models.Showcase) error { return nil }
func (r *fakeShowcaseRepo) GetShowcaseByID(id uint) (*models.Showcase, error) {
	s, ok := r.showcases[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}
func (r *fakeShowcaseRepo) GetShowcasesByUserID(uint, bool, int, int) ([]models.Showcase, int64, error) {
	return nil, 0, nil
}
func (r *fakeShowcaseRepo) GetFeed([]uint, int, int) ([]models.Showcase, int64, error) {
	return nil, 0, nil
}
func (r *fakeShowcaseRepo) UpdateShowcase(*models.Showcase) error { return nil }
func (r *fakeShowcaseRepo) DeleteShowcase(uint) error             { return nil }

type fakeUserRepo struct {
	users map[uint]*models.User
}

func (r *fakeUserRepo) CreateUser(*models.User) error { return nil }
func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}
func (r *fakeUserRepo) GetUserByEmail(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeUserRepo) GetUserByFirebaseUID(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeUserRepo) GetUsersByUsernames(usernames []string) ([]models.User, error) {
	var out []models.User
	for _, name := range usernames {
		if u, err := r.GetUserByUsername(name); err == nil {
			out = append(out, *u)
		}
	}
	return out, nil
}
func (r *fakeUserRepo) UpdateUser(*models.User) error             { return nil }
func (r *fakeUserRepo) DeleteUser(uint) error                     { return nil }
func (r *fakeUserRepo) SearchUsers(string) ([]models.User, error) { return nil, nil }
func (r *fakeUserRepo) IncrementFollowersCount(uint) error        { return nil }
func (r *fakeUserRepo) DecrementFollowersCount(uint) error        { return nil }
func (r *fakeUserRepo) IncrementFollowingCount(uint) error        { return nil }
func (r *fakeUserRepo) DecrementFollowingCount(uint) error        { return nil }

type fakeNotificationRepo struct {
	created []models.Notification
}

func (r *fakeNotificationRepo) CreateNotification(n *models.Notification) error {
	n.ID = uint(len(r.created) + 1)
	r.created = append(r.created, *n)
	return nil
}
func (r *fakeNotificationRepo) GetNotificationByID(uint) (*models.Notification, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fakeNotificationRepo) GetByRecipientID(uint, int, int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}
func (r *fakeNotificationRepo) GetGrouped(uint) ([]models.Notification, []models.Notification, []models.Notification, []models.Notification, error) {
	return nil, nil, nil, nil, nil
}
func (r *fakeNotificationRepo) GetUnreadCount(uint) (int64, error) { return 0, nil }
func (r *fakeNotificationRepo) MarkAsRead(uint) error              { return nil }
func (r *fakeNotificationRepo) MarkAllAsRead(uint) error           { return nil }

func newCommentTestHandler() (*CommentHandler, *fakeCommentRepo, *fakeNotificationRepo) {
	commentRepo := newFakeCommentRepo()
	showcaseRepo := &fakeShowcaseRepo{showcases: map[uint]*models.Showcase{
		10: {ID: 10, UserID: 1, Privacy: models.PrivacyPublic},
	}}
	userRepo := &fakeUserRepo{users: map[uint]*models.User{
		1: {ID: 1, Username: "mira", FirstName: "Mira"},
		2: {ID: 2, Username: "theo", FirstName: "Theo"},
		3: {ID: 3, Username: "june"},
	}}
	notificationRepo := &fakeNotificationRepo{}
	fanout := notifications.New(notificationRepo, nil)
	return NewCommentHandler(commentRepo, showcaseRepo, userRepo, fanout), commentRepo, notificationRepo
}

func postJSON(target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &models.JwtCustomClaims{UserID: userID})
	return c, rec
}

func TestCreateCommentNotifiesOwnerAndMentionedUser(t *testing.T) {
	h, commentRepo, notificationRepo := newCommentTestHandler()

	c, rec := postJSON("/showcases/10/comments", `{"content":"@mira nice work"}`, 2)
	c.SetParamNames("id")
	c.SetParamValues("10")

	require.NoError(t, h.CreateComment(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, 1, commentRepo.byShow[10])

	// One comment notification and one mention notification, both for the
	// showcase owner
	require.Len(t, notificationRepo.created, 2)
	assert.Equal(t, models.NotificationComment, notificationRepo.created[0].Type)
	assert.Equal(t, uint(1), notificationRepo.created[0].RecipientID)
	assert.Equal(t, uint(2), notificationRepo.created[0].ActorID)
	assert.Equal(t, models.NotificationMention, notificationRepo.created[1].Type)
	assert.Equal(t, uint(1), notificationRepo.created[1].RecipientID)
	assert.Contains(t, notificationRepo.created[1].Message, "@mira nice work")
}

func TestCreateCommentOnOwnShowcaseSkipsSelfNotification(t *testing.T) {
	h, _, notificationRepo := newCommentTestHandler()

	c, rec := postJSON("/showcases/10/comments", `{"content":"my own note"}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("10")

	require.NoError(t, h.CreateComment(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, notificationRepo.created)
}

func TestCreateCommentOnMissingShowcase(t *testing.T) {
	h, _, _ := newCommentTestHandler()

	c, _ := postJSON("/showcases/99/comments", `{"content":"hello"}`, 2)
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := h.CreateComment(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestCreateReplyNotifiesParentAuthor(t *testing.T) {
	h, commentRepo, notificationRepo := newCommentTestHandler()

	require.NoError(t, commentRepo.CreateComment(&models.Comment{
		ShowcaseID: 10, UserID: 3, Content: "lovely colors",
	}))
	notificationRepo.created = nil

	c, rec := postJSON("/comments/1/replies", `{"content":"thanks @june"}`, 2)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.CreateReply(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	reply := commentRepo.comments[2]
	require.NotNil(t, reply)
	assert.True(t, reply.IsReply)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, uint(1), *reply.ParentID)
	assert.Equal(t, uint(10), reply.ShowcaseID)

	// Reply and mention both target user 3; one row per event
	require.Len(t, notificationRepo.created, 2)
	assert.Equal(t, models.NotificationReply, notificationRepo.created[0].Type)
	assert.Equal(t, uint(3), notificationRepo.created[0].RecipientID)
	assert.Equal(t, models.NotificationMention, notificationRepo.created[1].Type)
	assert.Equal(t, uint(3), notificationRepo.created[1].RecipientID)
}

func TestUpdateCommentForeignAuthorForbidden(t *testing.T) {
	h, commentRepo, _ := newCommentTestHandler()
	require.NoError(t, commentRepo.CreateComment(&models.Comment{
		ShowcaseID: 10, UserID: 3, Content: "lovely colors",
	}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/comments/1", strings.NewReader(`{"content":"hijacked"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &models.JwtCustomClaims{UserID: 2})
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := h.UpdateComment(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
	assert.Equal(t, "lovely colors", commentRepo.comments[1].Content)
}

func TestDeleteCommentForeignAuthorForbidden(t *testing.T) {
	h, commentRepo, _ := newCommentTestHandler()
	require.NoError(t, commentRepo.CreateComment(&models.Comment{
		ShowcaseID: 10, UserID: 3, Content: "lovely colors",
	}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/comments/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &models.JwtCustomClaims{UserID: 2})
	c.SetParamNames("id")
	c.SetParamValues("1")

	err := h.DeleteComment(c)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
	require.Contains(t, commentRepo.comments, uint(1))
}
