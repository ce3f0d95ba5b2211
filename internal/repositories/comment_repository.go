package repositories

import (
	"github.com/gallerystudio/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
// Creation and deletion move the showcase's denormalized comment counter in
// the same transaction as the row, so the counter never drifts from the rows
// even under concurrent sessions.
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsByShowcaseID(showcaseID uint) ([]models.Comment, error)
	GetCommentsByShowcaseIDs(showcaseIDs []uint) ([]models.Comment, error)
	UpdateComment(comment *models.Comment) error
	DeleteComment(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment inserts the row and increments the showcase counter
// atomically. The increment is evaluated by the store, not read-modify-write.
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Showcase{}).Where("id = ?", comment.ShowcaseID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
}

func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByShowcaseID returns all comments for a showcase oldest-first,
// ready for tree building
func (r *PostgresCommentRepository) GetCommentsByShowcaseID(showcaseID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("showcase_id = ?", showcaseID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *PostgresCommentRepository) GetCommentsByShowcaseIDs(showcaseIDs []uint) ([]models.Comment, error) {
	var comments []models.Comment
	if len(showcaseIDs) == 0 {
		return comments, nil
	}
	if err := r.db.Where("showcase_id IN ?", showcaseIDs).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *PostgresCommentRepository) UpdateComment(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// DeleteComment removes the comment and its descendants, their likes, and
// decrements the showcase counter by the number of removed rows, all in one
// transaction. If the comment or its showcase is missing, nothing is touched.
func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, id).Error; err != nil {
			return err
		}
		var showcase models.Showcase
		if err := tx.First(&showcase, comment.ShowcaseID).Error; err != nil {
			return err
		}

		// Storage permits nesting deeper than the UI shows, so collect
		// descendants level by level.
		ids := []uint{id}
		frontier := []uint{id}
		for len(frontier) > 0 {
			var next []uint
			if err := tx.Model(&models.Comment{}).Where("parent_id IN ?", frontier).Pluck("id", &next).Error; err != nil {
				return err
			}
			ids = append(ids, next...)
			frontier = next
		}

		if err := tx.Where("comment_id IN ?", ids).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		return tx.Model(&models.Showcase{}).Where("id = ?", comment.ShowcaseID).
			UpdateColumn("comments_count", gorm.Expr("comments_count - ?", res.RowsAffected)).Error
	})
}
