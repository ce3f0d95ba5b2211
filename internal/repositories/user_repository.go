package repositories

import (
	"github.com/gallerystudio/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	GetUsersByUsernames(usernames []string) ([]models.User, error)
	UpdateUser(user *models.User) error
	DeleteUser(id uint) error
	SearchUsers(query string) ([]models.User, error)
	IncrementFollowersCount(userID uint) error
	DecrementFollowersCount(userID uint) error
	IncrementFollowingCount(userID uint) error
	DecrementFollowingCount(userID uint) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsersByUsernames resolves mention tokens to user records. Unknown
// usernames are silently absent from the result.
func (r *PostgresUserRepository) GetUsersByUsernames(usernames []string) ([]models.User, error) {
	var users []models.User
	if len(usernames) == 0 {
		return users, nil
	}
	err := r.db.Where("username IN ?", usernames).Find(&users).Error
	return users, err
}

func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *PostgresUserRepository) DeleteUser(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// SearchUsers matches the user directory by substring on username or name
func (r *PostgresUserRepository) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + query + "%"
	err := r.db.Where("username ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern, pattern).
		Limit(20).Find(&users).Error
	return users, err
}

func (r *PostgresUserRepository) IncrementFollowersCount(userID uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error
}

func (r *PostgresUserRepository) DecrementFollowersCount(userID uint) error {
	return r.db.Model(&models.User{}).Where("id = ? AND followers_count > 0", userID).
		UpdateColumn("followers_count", gorm.Expr("followers_count - 1")).Error
}

func (r *PostgresUserRepository) IncrementFollowingCount(userID uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error
}

func (r *PostgresUserRepository) DecrementFollowingCount(userID uint) error {
	return r.db.Model(&models.User{}).Where("id = ? AND following_count > 0", userID).
		UpdateColumn("following_count", gorm.Expr("following_count - 1")).Error
}
