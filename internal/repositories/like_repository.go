package repositories

import (
	"github.com/gallerystudio/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations on showcases
// and comments. Toggles are idempotent: the unique pair index gates the
// insert, and the denormalized counter moves only when a row actually changed
// hands, inside the same transaction. After any call,
// count(rows) == counter.
type LikeRepository interface {
	LikeShowcase(showcaseID, userID uint) (bool, error)
	UnlikeShowcase(showcaseID, userID uint) (bool, error)
	LikeComment(commentID, userID uint) (bool, error)
	UnlikeComment(commentID, userID uint) (bool, error)
	GetShowcaseLikes(showcaseID uint) ([]models.Like, error)
	GetCommentLikes(commentID uint) ([]models.CommentLike, error)
	HasUserLikedShowcase(showcaseID, userID uint) (bool, error)
	HasUserLikedComment(commentID, userID uint) (bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// LikeShowcase records the like and increments the counter. Returns false
// without touching anything when the user already likes the showcase.
func (r *PostgresLikeRepository) LikeShowcase(showcaseID, userID uint) (bool, error) {
	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var showcase models.Showcase
		if err := tx.First(&showcase, showcaseID).Error; err != nil {
			return err
		}
		like := models.Like{ShowcaseID: showcaseID, UserID: userID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		created = true
		return tx.Model(&models.Showcase{}).Where("id = ?", showcaseID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	})
	return created, err
}

// UnlikeShowcase removes the like and decrements the counter only if an
// entry existed
func (r *PostgresLikeRepository) UnlikeShowcase(showcaseID, userID uint) (bool, error) {
	removed := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("showcase_id = ? AND user_id = ?", showcaseID, userID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removed = true
		return tx.Model(&models.Showcase{}).Where("id = ?", showcaseID).
			UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error
	})
	return removed, err
}

// LikeComment mirrors LikeShowcase for comment targets
func (r *PostgresLikeRepository) LikeComment(commentID, userID uint) (bool, error) {
	created := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			return err
		}
		like := models.CommentLike{CommentID: commentID, UserID: userID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		created = true
		return tx.Model(&models.Comment{}).Where("id = ?", commentID).
			UpdateColumn("likes_count", gorm.Expr("likes_count + 1")).Error
	})
	return created, err
}

func (r *PostgresLikeRepository) UnlikeComment(commentID, userID uint) (bool, error) {
	removed := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removed = true
		return tx.Model(&models.Comment{}).Where("id = ?", commentID).
			UpdateColumn("likes_count", gorm.Expr("likes_count - 1")).Error
	})
	return removed, err
}

func (r *PostgresLikeRepository) GetShowcaseLikes(showcaseID uint) ([]models.Like, error) {
	var likes []models.Like
	if err := r.db.Where("showcase_id = ?", showcaseID).Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

func (r *PostgresLikeRepository) GetCommentLikes(commentID uint) ([]models.CommentLike, error) {
	var likes []models.CommentLike
	if err := r.db.Where("comment_id = ?", commentID).Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

func (r *PostgresLikeRepository) HasUserLikedShowcase(showcaseID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("showcase_id = ? AND user_id = ?", showcaseID, userID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresLikeRepository) HasUserLikedComment(commentID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommentLike{}).Where("comment_id = ? AND user_id = ?", commentID, userID).Count(&count).Error
	return count > 0, err
}
