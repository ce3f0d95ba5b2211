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

// LikeHandler handles like and unlike requests for showcases and comments
type LikeHandler struct {
	likeRepository     repositories.LikeRepository
	showcaseRepository repositories.ShowcaseRepository
	commentRepository  repositories.CommentRepository
	userRepository     repositories.UserRepository
	fanout             *notifications.Fanout
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(
	likeRepo repositories.LikeRepository,
	showcaseRepo repositories.ShowcaseRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	fanout *notifications.Fanout,
) *LikeHandler {
	return &LikeHandler{
		likeRepository:     likeRepo,
		showcaseRepository: showcaseRepo,
		commentRepository:  commentRepo,
		userRepository:     userRepo,
		fanout:             fanout,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/showcases/:id/like", h.LikeShowcase)
	g.DELETE("/showcases/:id/like", h.UnlikeShowcase)
	g.POST("/comments/:id/like", h.LikeComment)
	g.DELETE("/comments/:id/like", h.UnlikeComment)
}

// LikeShowcase records a like on a showcase. Repeated likes and likes on a
// showcase deleted meanwhile are quiet no-ops.
func (h *LikeHandler) LikeShowcase(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	showcaseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid showcase ID")
	}

	created, err := h.likeRepository.LikeShowcase(uint(showcaseID), currentUserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusOK, echo.Map{"success": true, "liked": false})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if created {
		h.notifyShowcaseLike(currentUserID, uint(showcaseID))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "liked": true})
}

// UnlikeShowcase removes a like. Removing a like that does not exist is a
// quiet no-op.
func (h *LikeHandler) UnlikeShowcase(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	showcaseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid showcase ID")
	}

	if _, err := h.likeRepository.UnlikeShowcase(uint(showcaseID), currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "liked": false})
}

// LikeComment records a like on a comment with the same quiet no-op rules as
// showcase likes
func (h *LikeHandler) LikeComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	created, err := h.likeRepository.LikeComment(uint(commentID), currentUserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusOK, echo.Map{"success": true, "liked": false})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if created {
		h.notifyCommentLike(currentUserID, uint(commentID))
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "liked": true})
}

func (h *LikeHandler) UnlikeComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	if _, err := h.likeRepository.UnlikeComment(uint(commentID), currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "liked": false})
}

// notifyShowcaseLike tells the showcase owner about a fresh like. The like
// itself already succeeded, so lookup failures here only suppress the
// notification.
func (h *LikeHandler) notifyShowcaseLike(actorID, showcaseID uint) {
	showcase, err := h.showcaseRepository.GetShowcaseByID(showcaseID)
	if err != nil {
		return
	}
	actor, err := h.userRepository.GetUserByID(actorID)
	if err != nil {
		return
	}
	h.fanout.Deliver(context.Background(), notifications.Event{
		Type:       models.NotificationLikeShowcase,
		ActorID:    actor.ID,
		ActorName:  actor.DisplayName(),
		Title:      "New like",
		Message:    actor.DisplayName() + " liked your showcase",
		ShowcaseID: &showcase.ID,
		Recipients: []uint{showcase.UserID},
	})
}

func (h *LikeHandler) notifyCommentLike(actorID, commentID uint) {
	comment, err := h.commentRepository.GetCommentByID(commentID)
	if err != nil {
		return
	}
	actor, err := h.userRepository.GetUserByID(actorID)
	if err != nil {
		return
	}
	h.fanout.Deliver(context.Background(), notifications.Event{
		Type:       models.NotificationLikeComment,
		ActorID:    actor.ID,
		ActorName:  actor.DisplayName(),
		Title:      "New like",
		Message:    actor.DisplayName() + " liked your comment: " + notifications.Excerpt(comment.Content, 80),
		ShowcaseID: &comment.ShowcaseID,
		CommentID:  &comment.ID,
		Recipients: []uint{comment.UserID},
	})
}
