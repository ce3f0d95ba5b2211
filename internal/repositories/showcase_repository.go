package repositories

import (
	"github.com/gallerystudio/backend/internal/models"
	"gorm.io/gorm"
)

// ShowcaseRepository defines the interface for showcase data operations
type ShowcaseRepository interface {
	CreateShowcase(showcase *models.Showcase) error
	GetShowcaseByID(id uint) (*models.Showcase, error)
	GetShowcasesByUserID(userID uint, includePrivate bool, offset, limit int) ([]models.Showcase, int64, error)
	GetFeed(userIDs []uint, offset, limit int) ([]models.Showcase, int64, error)
	UpdateShowcase(showcase *models.Showcase) error
	DeleteShowcase(id uint) error
}

// PostgresShowcaseRepository implements ShowcaseRepository for PostgreSQL
type PostgresShowcaseRepository struct {
	db *gorm.DB
}

// NewPostgresShowcaseRepository creates a new PostgresShowcaseRepository
func NewPostgresShowcaseRepository(db *gorm.DB) *PostgresShowcaseRepository {
	return &PostgresShowcaseRepository{db: db}
}

func (r *PostgresShowcaseRepository) CreateShowcase(showcase *models.Showcase) error {
	return r.db.Create(showcase).Error
}

func (r *PostgresShowcaseRepository) GetShowcaseByID(id uint) (*models.Showcase, error) {
	var showcase models.Showcase
	if err := r.db.First(&showcase, id).Error; err != nil {
		return nil, err
	}
	return &showcase, nil
}

// GetShowcasesByUserID lists a user's gallery newest-first. Private rows are
// included only for the owner's own view.
func (r *PostgresShowcaseRepository) GetShowcasesByUserID(userID uint, includePrivate bool, offset, limit int) ([]models.Showcase, int64, error) {
	var showcases []models.Showcase
	var total int64

	q := r.db.Model(&models.Showcase{}).Where("user_id = ?", userID)
	if !includePrivate {
		q = q.Where("privacy = ?", models.PrivacyPublic)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&showcases).Error
	return showcases, total, err
}

// GetFeed lists public showcases from the given users newest-first
func (r *PostgresShowcaseRepository) GetFeed(userIDs []uint, offset, limit int) ([]models.Showcase, int64, error) {
	var showcases []models.Showcase
	var total int64

	if len(userIDs) == 0 {
		return showcases, 0, nil
	}

	q := r.db.Model(&models.Showcase{}).Where("user_id IN ? AND privacy = ?", userIDs, models.PrivacyPublic)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&showcases).Error
	return showcases, total, err
}

func (r *PostgresShowcaseRepository) UpdateShowcase(showcase *models.Showcase) error {
	return r.db.Save(showcase).Error
}

// DeleteShowcase removes the row together with its comments, likes and album
// links in one transaction. Deleting the backing media object is the caller's
// paired external call.
func (r *PostgresShowcaseRepository) DeleteShowcase(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).Where("showcase_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("showcase_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("showcase_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("showcase_id = ?", id).Delete(&models.AlbumShowcase{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Showcase{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
