package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gallerystudio/backend/internal/models"
	"github.com/gallerystudio/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the home feed of showcases from followed artists
type FeedHandler struct {
	showcaseRepository repositories.ShowcaseRepository
	followRepository   repositories.FollowRepository
	userRepository     repositories.UserRepository
	likeRepository     repositories.LikeRepository
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	showcaseRepo repositories.ShowcaseRepository,
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	likeRepo repositories.LikeRepository,
) *FeedHandler {
	return &FeedHandler{
		showcaseRepository: showcaseRepo,
		followRepository:   followRepo,
		userRepository:     userRepo,
		likeRepository:     likeRepo,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// EnrichedShowcase is a showcase decorated with its author and the viewer's
// like state
type EnrichedShowcase struct {
	models.Showcase
	Author  models.UserCompact `json:"author"`
	IsLiked bool               `json:"is_liked"`
}

// GetFeed returns public showcases from the users the viewer follows,
// newest-first with pagination metadata
func (h *FeedHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 50 {
		limit = 20
	}

	followingIDs, err := h.followRepository.GetFollowingIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	showcases, total, err := h.showcaseRepository.GetFeed(followingIDs, (page-1)*limit, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Authors repeat across a page, so resolve each once
	authors := make(map[uint]models.UserCompact)
	enriched := make([]EnrichedShowcase, 0, len(showcases))
	for i := range showcases {
		s := showcases[i]
		author, ok := authors[s.UserID]
		if !ok {
			user, err := h.userRepository.GetUserByID(s.UserID)
			if err != nil {
				continue
			}
			author = user.ToCompact()
			authors[s.UserID] = author
		}
		liked, err := h.likeRepository.HasUserLikedShowcase(s.ID, currentUserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		enriched = append(enriched, EnrichedShowcase{Showcase: s, Author: author, IsLiked: liked})
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"showcases": enriched,
			"pagination": echo.Map{
				"page":        page,
				"limit":       limit,
				"total":       total,
				"total_pages": totalPages,
			},
		},
	})
}
