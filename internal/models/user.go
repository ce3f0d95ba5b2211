package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents an artist account
type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Username        string    `json:"username" gorm:"uniqueIndex;size:50"` // Used in mentions and profile URLs
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Bio             string    `json:"bio" gorm:"type:text"` // Free text, may contain mentions
	Email           string    `json:"email" gorm:"uniqueIndex"`
	Password        string    `json:"-"` // Store hashed password, ignore for JSON serialization
	FirebaseUID     string    `json:"firebase_uid,omitempty" gorm:"index"` // Link to Firebase User UID
	ProfileImageURL string    `json:"profile_image_url"`
	CoverImageURL   string    `json:"cover_image_url"`
	SocialURLs      []string  `json:"social_urls" gorm:"serializer:json"`
	FollowersCount  int       `json:"followers_count" gorm:"default:0"`
	FollowingCount  int       `json:"following_count" gorm:"default:0"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DisplayName returns the name shown next to the user's content
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserCompact is the reduced profile embedded in enriched responses
type UserCompact struct {
	ID              uint   `json:"id"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	ProfileImageURL string `json:"profile_image_url"`
}

// ToCompact converts a full user record to its compact form
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:              u.ID,
		Username:        u.Username,
		Name:            u.DisplayName(),
		ProfileImageURL: u.ProfileImageURL,
	}
}

// RegisterUserRequest defines the request body for Firebase sign-in. The
// Firebase UID itself comes from the verified ID token, not the body.
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanumunicode"`
	Email    string `json:"email" validate:"required,email"`
}

// SignupRequest defines the request body for local email/password registration
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanumunicode"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignInRequest defines the request body for local sign-in
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile-settings updates
type UpdateProfileRequest struct {
	FirstName       string   `json:"first_name,omitempty" validate:"omitempty,max=50"`
	LastName        string   `json:"last_name,omitempty" validate:"omitempty,max=50"`
	Bio             string   `json:"bio,omitempty" validate:"omitempty,max=1000"`
	ProfileImageURL string   `json:"profile_image_url,omitempty" validate:"omitempty,url"`
	CoverImageURL   string   `json:"cover_image_url,omitempty" validate:"omitempty,url"`
	SocialURLs      []string `json:"social_urls,omitempty" validate:"omitempty,dive,url"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
