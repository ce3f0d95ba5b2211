package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gallerystudio/backend/internal/mentions"
	"github.com/gallerystudio/backend/internal/models"
	"github.com/gallerystudio/backend/internal/notifications"
	"github.com/gallerystudio/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	fanout           *notifications.Fanout
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, followRepo repositories.FollowRepository, fanout *notifications.Fanout) *UserHandler {
	return &UserHandler{userRepository: userRepo, followRepository: followRepo, fanout: fanout}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)    // Get own profile
	g.PUT("/profile", h.UpdateProfile) // Update own profile
	g.GET("/users/:id", h.GetUser)     // Get other user's profile by ID
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/mention-suggestions", h.MentionSuggestions)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	user, err := h.userRepository.GetUserByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's profile settings
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User profile not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	bioChanged := req.Bio != "" && req.Bio != user.Bio
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.ProfileImageURL != "" {
		user.ProfileImageURL = req.ProfileImageURL
	}
	if req.CoverImageURL != "" {
		user.CoverImageURL = req.CoverImageURL
	}
	if req.SocialURLs != nil {
		user.SocialURLs = req.SocialURLs
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if bioChanged {
		h.notifyBioMentions(user)
	}

	return c.JSON(http.StatusOK, user)
}

// notifyBioMentions resolves @username tokens in a freshly changed bio and
// notifies each mentioned user. Unknown usernames resolve to nothing and are
// skipped; mentioning yourself never notifies.
func (h *UserHandler) notifyBioMentions(user *models.User) {
	usernames := mentions.Extract(user.Bio)
	if len(usernames) == 0 {
		return
	}
	mentioned, err := h.userRepository.GetUsersByUsernames(usernames)
	if err != nil || len(mentioned) == 0 {
		return
	}

	recipients := make([]uint, 0, len(mentioned))
	for i := range mentioned {
		recipients = append(recipients, mentioned[i].ID)
	}
	h.fanout.Deliver(context.Background(), notifications.Event{
		Type:       models.NotificationMention,
		ActorID:    user.ID,
		ActorName:  user.DisplayName(),
		Title:      "You were mentioned",
		Message:    user.DisplayName() + " mentioned you in their bio: " + notifications.Excerpt(user.Bio, 80),
		Recipients: recipients,
	})
}

// SearchUsers searches the user directory by a query string
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query 'q' is required")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.UserCompact, len(users))
	for i := range users {
		results[i] = users[i].ToCompact()
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": results}})
}

// MentionSuggestions returns the composer's followings filtered by the
// partial token after "@". An empty list tells the client to render its
// non-selectable "no results" entry.
func (h *UserHandler) MentionSuggestions(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	followings, err := h.followRepository.GetFollowing(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	suggestions := mentions.Suggest(followings, c.QueryParam("q"))
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"suggestions": suggestions}})
}
