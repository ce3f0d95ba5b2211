package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gallerystudio/backend/internal/models"
	"github.com/gallerystudio/backend/internal/notifications"
	"github.com/gallerystudio/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FollowHandler handles HTTP requests for the follow graph
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	fanout           *notifications.Fanout
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, fanout *notifications.Fanout) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		fanout:           fanout,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.Follow)
	g.DELETE("/users/:id/follow", h.Unfollow)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// Follow makes the authenticated user follow the user in the path
func (h *FollowHandler) Follow(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	if uint(targetID) == currentUserID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	target, err := h.userRepository.GetUserByID(uint(targetID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	following, err := h.followRepository.IsFollowing(currentUserID, target.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if following {
		return echo.NewHTTPError(http.StatusConflict, "Already following this user")
	}

	follow := &models.Follow{FollowerID: currentUserID, FollowingID: target.ID}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.userRepository.IncrementFollowersCount(target.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.userRepository.IncrementFollowingCount(currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	actor, err := h.userRepository.GetUserByID(currentUserID)
	if err == nil {
		h.fanout.Deliver(context.Background(), notifications.Event{
			Type:       models.NotificationFollow,
			ActorID:    actor.ID,
			ActorName:  actor.DisplayName(),
			Title:      "New follower",
			Message:    actor.DisplayName() + " started following you",
			Recipients: []uint{target.ID},
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Now following " + target.Username})
}

// Unfollow removes the follow relationship
func (h *FollowHandler) Unfollow(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.followRepository.DeleteFollow(currentUserID, uint(targetID)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not following this user")
	}
	if err := h.userRepository.DecrementFollowersCount(uint(targetID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.userRepository.DecrementFollowingCount(currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Unfollowed"})
}

// GetFollowers lists the followers of the user in the path
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	users, err := h.followRepository.GetFollowers(uint(userID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.UserCompact, len(users))
	for i := range users {
		results[i] = users[i].ToCompact()
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"followers": results}})
}

// GetFollowing lists who the user in the path follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	users, err := h.followRepository.GetFollowing(uint(userID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	results := make([]models.UserCompact, len(users))
	for i := range users {
		results[i] = users[i].ToCompact()
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": results}})
}
