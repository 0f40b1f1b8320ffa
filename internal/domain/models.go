package domain

import (
	"time"
)

// School is a persisted directory entry. ID is assigned by the store.
type School struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	City      string    `json:"city" db:"city"`
	State     string    `json:"state" db:"state"`
	Contact   string    `json:"contact" db:"contact"`
	Image     string    `json:"image" db:"image"`
	EmailID   string    `json:"email_id" db:"email_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewSchool is the create payload. It never carries an ID.
type NewSchool struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Contact string `json:"contact" validate:"required,contact"`
	Image   string `json:"image" validate:"required"`
	EmailID string `json:"email_id" validate:"required,basic_email"`
}

type Image struct {
	Key          string    `json:"key"`
	OriginalName string    `json:"original_name"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
