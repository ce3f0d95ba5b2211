package models

import "time"

// Album is a named sub-collection of showcases within a user's gallery.
// Names are unique per owner.
type Album struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_album_name"`
	Name      string    `json:"name" gorm:"size:100;uniqueIndex:idx_user_album_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AlbumShowcase links a showcase into an album
type AlbumShowcase struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	AlbumID    uint      `json:"album_id" gorm:"index;uniqueIndex:idx_album_showcase"`
	ShowcaseID uint      `json:"showcase_id" gorm:"index;uniqueIndex:idx_album_showcase"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateAlbumRequest defines the request body for creating an album
type CreateAlbumRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// UpdateAlbumRequest defines the request body for renaming an album
type UpdateAlbumRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// AddShowcaseToAlbumRequest defines the request body for adding a showcase to an album
type AddShowcaseToAlbumRequest struct {
	ShowcaseID uint `json:"showcase_id" validate:"required"`
}
