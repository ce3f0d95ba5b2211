package repositories

import (
	"errors"

	"github.com/gallerystudio/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAlbumExists is returned when an album name is already taken within the
// owner's gallery
var ErrAlbumExists = errors.New("album already exists")

// AlbumRepository defines the interface for album data operations
type AlbumRepository interface {
	CreateAlbum(album *models.Album) error
	GetAlbumByID(id uint) (*models.Album, error)
	GetAlbumsByUserID(userID uint) ([]models.Album, error)
	UpdateAlbum(album *models.Album) error
	DeleteAlbum(id uint) error
	AddShowcase(albumID, showcaseID uint) error
	RemoveShowcase(albumID, showcaseID uint) error
	GetAlbumShowcases(albumID uint) ([]models.Showcase, error)
}

// PostgresAlbumRepository implements AlbumRepository for PostgreSQL
type PostgresAlbumRepository struct {
	db *gorm.DB
}

// NewPostgresAlbumRepository creates a new PostgresAlbumRepository
func NewPostgresAlbumRepository(db *gorm.DB) *PostgresAlbumRepository {
	return &PostgresAlbumRepository{db: db}
}

func (r *PostgresAlbumRepository) CreateAlbum(album *models.Album) error {
	var count int64
	if err := r.db.Model(&models.Album{}).Where("user_id = ? AND name = ?", album.UserID, album.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlbumExists
	}
	return r.db.Create(album).Error
}

func (r *PostgresAlbumRepository) GetAlbumByID(id uint) (*models.Album, error) {
	var album models.Album
	if err := r.db.First(&album, id).Error; err != nil {
		return nil, err
	}
	return &album, nil
}

func (r *PostgresAlbumRepository) GetAlbumsByUserID(userID uint) ([]models.Album, error) {
	var albums []models.Album
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&albums).Error
	return albums, err
}

func (r *PostgresAlbumRepository) UpdateAlbum(album *models.Album) error {
	var count int64
	if err := r.db.Model(&models.Album{}).
		Where("user_id = ? AND name = ? AND id <> ?", album.UserID, album.Name, album.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlbumExists
	}
	return r.db.Save(album).Error
}

// DeleteAlbum removes the album and its showcase links. Showcases themselves
// are untouched.
func (r *PostgresAlbumRepository) DeleteAlbum(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("album_id = ?", id).Delete(&models.AlbumShowcase{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Album{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *PostgresAlbumRepository) AddShowcase(albumID, showcaseID uint) error {
	link := models.AlbumShowcase{AlbumID: albumID, ShowcaseID: showcaseID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error
}

func (r *PostgresAlbumRepository) RemoveShowcase(albumID, showcaseID uint) error {
	return r.db.Where("album_id = ? AND showcase_id = ?", albumID, showcaseID).Delete(&models.AlbumShowcase{}).Error
}

func (r *PostgresAlbumRepository) GetAlbumShowcases(albumID uint) ([]models.Showcase, error) {
	var showcases []models.Showcase
	err := r.db.Where("id IN (?)",
		r.db.Table("album_showcases").Select("showcase_id").Where("album_id = ?", albumID),
	).Order("created_at DESC").Find(&showcases).Error
	return showcases, err
}
