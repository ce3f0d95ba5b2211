package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gallerystudio/backend/internal/models"
	"github.com/gallerystudio/backend/internal/notifications"
	"github.com/gallerystudio/backend/internal/repositories"
	"github.com/gallerystudio/backend/pkg/storage"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ShowcaseHandler handles HTTP requests related to showcases
type ShowcaseHandler struct {
	showcaseRepository repositories.ShowcaseRepository
	followRepository   repositories.FollowRepository
	userRepository     repositories.UserRepository
	fanout             *notifications.Fanout
	objectStorage      storage.ObjectStorage
}

// NewShowcaseHandler creates a new ShowcaseHandler
func NewShowcaseHandler(
	showcaseRepo repositories.ShowcaseRepository,
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	fanout *notifications.Fanout,
	objectStorage storage.ObjectStorage,
) *ShowcaseHandler {
	return &ShowcaseHandler{
		showcaseRepository: showcaseRepo,
		followRepository:   followRepo,
		userRepository:     userRepo,
		fanout:             fanout,
		objectStorage:      objectStorage,
	}
}

// RegisterShowcaseRoutes registers showcase-related routes
func (h *ShowcaseHandler) RegisterShowcaseRoutes(g *echo.Group) {
	g.POST("/showcases", h.CreateShowcase)
	g.GET("/showcases/:id", h.GetShowcase)
	g.PUT("/showcases/:id", h.UpdateShowcase)
	g.DELETE("/showcases/:id", h.DeleteShowcase)
	g.GET("/users/:id/showcases", h.GetUserShowcases)
}

// CreateShowcase records a finished upload as a showcase. The client uploads
// media to the object store first and reports the resulting URL and key here.
func (h *ShowcaseHandler) CreateShowcase(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateShowcaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	showcase := &models.Showcase{
		UserID:     currentUserID,
		URL:        req.URL,
		StorageKey: req.StorageKey,
		MediaType:  models.MediaTypeFromMIME(req.MimeType),
		Caption:    req.Caption,
		Tags:       req.Tags,
		Privacy:    req.Privacy,
	}
	if err := h.showcaseRepository.CreateShowcase(showcase); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Followers are only told about public work
	if showcase.Privacy == models.PrivacyPublic {
		if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
			if followerIDs, err := h.followRepository.GetFollowerIDs(currentUserID); err == nil && len(followerIDs) > 0 {
				h.fanout.Deliver(context.Background(), notifications.Event{
					Type:       models.NotificationAddShowcase,
					ActorID:    actor.ID,
					ActorName:  actor.DisplayName(),
					Title:      "New showcase",
					Message:    actor.DisplayName() + " added a new showcase",
					ShowcaseID: &showcase.ID,
					Recipients: followerIDs,
				})
			}
		}
	}

	return c.JSON(http.StatusCreated, showcase)
}

// GetShowcase returns one showcase. Private showcases are visible only to
// their owner.
func (h *ShowcaseHandler) GetShowcase(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid showcase ID")
	}

	showcase, err := h.showcaseRepository.GetShowcaseByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Showcase not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if showcase.Privacy == models.PrivacyPrivate && showcase.UserID != getUserIDFromContext(c) {
		return echo.NewHTTPError(http.StatusNotFound, "Showcase not found")
	}

	return c.JSON(http.StatusOK, showcase)
}

// GetUserShowcases lists a user's gallery. Private showcases appear only in
// the owner's own view.
func (h *ShowcaseHandler) GetUserShowcases(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 50 {
		limit = 20
	}

	includePrivate := uint(userID) == getUserIDFromContext(c)
	showcases, total, err := h.showcaseRepository.GetShowcasesByUserID(uint(userID), includePrivate, (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"showcases": showcases,
			"total":     total,
			"page":      page,
			"limit":     limit,
		},
	})
}

// UpdateShowcase edits caption, tags or privacy. Only the owner may edit.
func (h *ShowcaseHandler) UpdateShowcase(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid showcase ID")
	}

	showcase, err := h.showcaseRepository.GetShowcaseByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Showcase not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if showcase.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only edit your own showcases")
	}

	var req models.UpdateShowcaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if req.Caption != nil {
		showcase.Caption = *req.Caption
	}
	if req.Tags != nil {
		showcase.Tags = req.Tags
	}
	if req.Privacy != nil {
		showcase.Privacy = *req.Privacy
	}

	if err := h.showcaseRepository.UpdateShowcase(showcase); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, showcase)
}

// DeleteShowcase removes the showcase with its comments and likes, then
// deletes the backing media object. The media delete is best-effort; the
// object store is cleaned up out of band if it fails.
func (h *ShowcaseHandler) DeleteShowcase(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid showcase ID")
	}

	showcase, err := h.showcaseRepository.GetShowcaseByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Showcase not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if showcase.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own showcases")
	}

	if err := h.showcaseRepository.DeleteShowcase(showcase.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if showcase.StorageKey != "" {
		if err := h.objectStorage.DeleteObject(c.Request().Context(), showcase.StorageKey); err != nil {
			c.Logger().Warnf("Failed to delete media object %s: %v", showcase.StorageKey, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Showcase deleted"})
}
