package handlers

import (
	"net/http"
	"strconv"

	"github.com/gallerystudio/backend/internal/models"
	"github.com/gallerystudio/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// AlbumHandler handles HTTP requests for gallery albums
type AlbumHandler struct {
	albumRepository    repositories.AlbumRepository
	showcaseRepository repositories.ShowcaseRepository
}

// NewAlbumHandler creates a new AlbumHandler
func NewAlbumHandler(albumRepo repositories.AlbumRepository, showcaseRepo repositories.ShowcaseRepository) *AlbumHandler {
	return &AlbumHandler{albumRepository: albumRepo, showcaseRepository: showcaseRepo}
}

// RegisterAlbumRoutes registers album-related routes
func (h *AlbumHandler) RegisterAlbumRoutes(g *echo.Group) {
	g.POST("/albums", h.CreateAlbum)
	g.GET("/albums", h.GetAlbums)
	g.GET("/albums/:id", h.GetAlbum)
	g.PUT("/albums/:id", h.UpdateAlbum)
	g.DELETE("/albums/:id", h.DeleteAlbum)
	g.POST("/albums/:id/showcases", h.AddShowcase)
	g.DELETE("/albums/:id/showcases/:showcaseId", h.RemoveShowcase)
}

// CreateAlbum creates a named album in the user's gallery
func (h *AlbumHandler) CreateAlbum(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateAlbumRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	album := &models.Album{UserID: currentUserID, Name: req.Name}
	if err := h.albumRepository.CreateAlbum(album); err != nil {
		if err == repositories.ErrAlbumExists {
			return echo.NewHTTPError(http.StatusConflict, "An album with this name already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, album)
}

// GetAlbums lists the authenticated user's albums
func (h *AlbumHandler) GetAlbums(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	albums, err := h.albumRepository.GetAlbumsByUserID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"albums": albums}})
}

// GetAlbum returns one album with its showcases
func (h *AlbumHandler) GetAlbum(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid album ID")
	}

	album, err := h.albumRepository.GetAlbumByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Album not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	showcases, err := h.albumRepository.GetAlbumShowcases(album.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Hide private showcases from everyone but the owner
	if album.UserID != getUserIDFromContext(c) {
		visible := showcases[:0]
		for _, s := range showcases {
			if s.Privacy == models.PrivacyPublic {
				visible = append(visible, s)
			}
		}
		showcases = visible
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"album": album, "showcases": showcases}})
}

// UpdateAlbum renames an album. Only the owner may rename.
func (h *AlbumHandler) UpdateAlbum(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid album ID")
	}

	album, err := h.albumRepository.GetAlbumByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Album not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if album.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only edit your own albums")
	}

	var req models.UpdateAlbumRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	album.Name = req.Name
	if err := h.albumRepository.UpdateAlbum(album); err != nil {
		if err == repositories.ErrAlbumExists {
			return echo.NewHTTPError(http.StatusConflict, "An album with this name already exists")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, album)
}

// DeleteAlbum removes an album; its showcases stay in the gallery
func (h *AlbumHandler) DeleteAlbum(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid album ID")
	}

	album, err := h.albumRepository.GetAlbumByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Album not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if album.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own albums")
	}

	if err := h.albumRepository.DeleteAlbum(album.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Album deleted"})
}

// AddShowcase links one of the owner's showcases into the album
func (h *AlbumHandler) AddShowcase(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid album ID")
	}

	var req models.AddShowcaseToAlbumRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	album, err := h.albumRepository.GetAlbumByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Album not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if album.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only add to your own albums")
	}

	showcase, err := h.showcaseRepository.GetShowcaseByID(req.ShowcaseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Showcase not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if showcase.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only add your own showcases to albums")
	}

	if err := h.albumRepository.AddShowcase(album.ID, showcase.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}

// RemoveShowcase unlinks a showcase from the album
func (h *AlbumHandler) RemoveShowcase(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid album ID")
	}
	showcaseID, err := strconv.ParseUint(c.Param("showcaseId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid showcase ID")
	}

	album, err := h.albumRepository.GetAlbumByID(uint(id))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Album not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if album.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only edit your own albums")
	}

	if err := h.albumRepository.RemoveShowcase(album.ID, uint(showcaseID)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
