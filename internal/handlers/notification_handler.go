package handlers

import (
	"net/http"
	"strconv"

	"github.com/gallerystudio/backend/internal/models"
	"github.com/gallerystudio/backend/internal/realtime"
	"github.com/gallerystudio/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// NotificationHandler serves the notification inbox and its live stream
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	bridge                 *realtime.RedisBridge
}

// NewNotificationHandler creates a new NotificationHandler. bridge may be nil
// when realtime delivery is not configured.
func NewNotificationHandler(notificationRepo repositories.NotificationRepository, userRepo repositories.UserRepository, bridge *realtime.RedisBridge) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notificationRepo, userRepository: userRepo, bridge: bridge}
}

// EnrichedNotification pairs the immutable row with the actor's current
// compact profile. The snapshot text stays as written; only the avatar and
// display name track the live profile.
type EnrichedNotification struct {
	models.Notification
	Actor *models.UserCompact `json:"actor,omitempty"`
}

func (h *NotificationHandler) enrich(items []models.Notification) []EnrichedNotification {
	actors := make(map[uint]*models.UserCompact)
	enriched := make([]EnrichedNotification, 0, len(items))
	for _, n := range items {
		actor, ok := actors[n.ActorID]
		if !ok {
			if user, err := h.userRepository.GetUserByID(n.ActorID); err == nil {
				compact := user.ToCompact()
				actor = &compact
			}
			actors[n.ActorID] = actor
		}
		enriched = append(enriched, EnrichedNotification{Notification: n, Actor: actor})
	}
	return enriched
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/grouped", h.GetGroupedNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
	g.GET("/notifications/stream", h.Stream)
}

// GetNotifications lists the user's notifications newest-first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := h.notificationRepository.GetByRecipientID(currentUserID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"notifications": h.enrich(items),
			"total":         total,
			"page":          page,
			"limit":         limit,
		},
	})
}

// GetGroupedNotifications returns the inbox bucketed by recency for the
// notification panel
func (h *NotificationHandler) GetGroupedNotifications(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	today, yesterday, thisWeek, older, err := h.notificationRepository.GetGrouped(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"today":     h.enrich(today),
			"yesterday": h.enrich(yesterday),
			"this_week": h.enrich(thisWeek),
			"older":     h.enrich(older),
		},
	})
}

// GetUnreadCount returns the number of unread notifications for the badge
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	count, err := h.notificationRepository.GetUnreadCount(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"unread_count": count}})
}

// MarkAsRead marks one notification read. Only its recipient may do so.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	notification, err := h.notificationRepository.GetNotificationByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if notification.RecipientID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only update your own notifications")
	}

	if err := h.notificationRepository.MarkAsRead(notification.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// MarkAllAsRead marks every unread notification of the user read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.notificationRepository.MarkAllAsRead(currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Stream upgrades to a WebSocket delivering live notification pushes for the
// authenticated user
func (h *NotificationHandler) Stream(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	if h.bridge == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Realtime delivery not configured")
	}
	return h.bridge.ServeWS(c.Response(), c.Request(), currentUserID)
}
