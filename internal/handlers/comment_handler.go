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

// CommentHandler handles HTTP requests for comments and replies
type CommentHandler struct {
	commentRepository  repositories.CommentRepository
	showcaseRepository repositories.ShowcaseRepository
	userRepository     repositories.UserRepository
	fanout             *notifications.Fanout
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	showcaseRepo repositories.ShowcaseRepository,
	userRepo repositories.UserRepository,
	fanout *notifications.Fanout,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:  commentRepo,
		showcaseRepository: showcaseRepo,
		userRepository:     userRepo,
		fanout:             fanout,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/showcases/:id/comments", h.CreateComment)
	g.GET("/showcases/:id/comments", h.GetComments)
	g.POST("/comments/:id/replies", h.CreateReply)
	g.POST("/comments/batch", h.GetCommentsBatch)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment posts a top-level comment on a showcase, notifying the
// showcase owner and any mentioned users
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	showcaseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid showcase ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	showcase, err := h.showcaseRepository.GetShowcaseByID(uint(showcaseID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Showcase not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comment := &models.Comment{
		ShowcaseID: showcase.ID,
		UserID:     currentUserID,
		Content:    req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
		h.fanout.Deliver(context.Background(), notifications.Event{
			Type:       models.NotificationComment,
			ActorID:    actor.ID,
			ActorName:  actor.DisplayName(),
			Title:      "New comment",
			Message:    actor.DisplayName() + " commented: " + notifications.Excerpt(comment.Content, 80),
			ShowcaseID: &showcase.ID,
			CommentID:  &comment.ID,
			Recipients: []uint{showcase.UserID},
		})
		h.notifyMentions(actor, comment)
	}

	return c.JSON(http.StatusCreated, comment)
}

// CreateReply posts a reply under an existing comment, notifying the parent
// comment's author and any mentioned users
func (h *CommentHandler) CreateReply(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	parentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	parent, err := h.commentRepository.GetCommentByID(uint(parentID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// The reply inherits the parent's showcase, so it can never point across
	// showcases
	reply := &models.Comment{
		ShowcaseID: parent.ShowcaseID,
		UserID:     currentUserID,
		ParentID:   &parent.ID,
		IsReply:    true,
		Content:    req.Content,
	}
	if err := h.commentRepository.CreateComment(reply); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
		h.fanout.Deliver(context.Background(), notifications.Event{
			Type:       models.NotificationReply,
			ActorID:    actor.ID,
			ActorName:  actor.DisplayName(),
			Title:      "New reply",
			Message:    actor.DisplayName() + " replied: " + notifications.Excerpt(reply.Content, 80),
			ShowcaseID: &reply.ShowcaseID,
			CommentID:  &reply.ID,
			Recipients: []uint{parent.UserID},
		})
		h.notifyMentions(actor, reply)
	}

	return c.JSON(http.StatusCreated, reply)
}

// GetComments returns the comment tree for one showcase
func (h *CommentHandler) GetComments(c echo.Context) error {
	showcaseID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid showcase ID")
	}

	if _, err := h.showcaseRepository.GetShowcaseByID(uint(showcaseID)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Showcase not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comments, err := h.commentRepository.GetCommentsByShowcaseID(uint(showcaseID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	tree := models.BuildCommentTree(comments)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"comments": tree}})
}

// GetCommentsBatch returns comment trees for several showcases in one call,
// keyed by showcase id. Gallery views use this to hydrate many tiles at once.
func (h *CommentHandler) GetCommentsBatch(c echo.Context) error {
	var req models.BatchCommentsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comments, err := h.commentRepository.GetCommentsByShowcaseIDs(req.ShowcaseIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	byShowcase := make(map[uint][]models.Comment, len(req.ShowcaseIDs))
	for _, comment := range comments {
		byShowcase[comment.ShowcaseID] = append(byShowcase[comment.ShowcaseID], comment)
	}

	trees := make(map[uint][]models.CommentNode, len(req.ShowcaseIDs))
	for _, id := range req.ShowcaseIDs {
		trees[id] = models.BuildCommentTree(byShowcase[id])
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"comments": trees}})
}

// UpdateComment edits a comment's text. Only the author may edit; submitting
// unchanged text skips the write.
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only edit your own comments")
	}

	if comment.Content == req.Content {
		return c.JSON(http.StatusOK, comment)
	}

	comment.Content = req.Content
	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment and its nested replies. Only the author may
// delete.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own comments")
	}

	if err := h.commentRepository.DeleteComment(comment.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Comment deleted"})
}

// notifyMentions resolves @username tokens in the comment text and notifies
// each mentioned user. Unknown usernames resolve to nothing and are skipped.
func (h *CommentHandler) notifyMentions(actor *models.User, comment *models.Comment) {
	usernames := mentions.Extract(comment.Content)
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
		ActorID:    actor.ID,
		ActorName:  actor.DisplayName(),
		Title:      "You were mentioned",
		Message:    actor.DisplayName() + " mentioned you: " + notifications.Excerpt(comment.Content, 80),
		ShowcaseID: &comment.ShowcaseID,
		CommentID:  &comment.ID,
		Recipients: recipients,
	})
}
