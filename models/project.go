package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Project struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User           `gorm:"foreignKey:UserID" json:"-"`
	Title       string         `gorm:"not null;size:200" json:"title"`
	Description string         `gorm:"size:1000" json:"description,omitempty"`
	URL         string         `json:"url,omitempty"`
	GitHubURL   string         `json:"github_url,omitempty"`
	ImageURL    string         `json:"image_url,omitempty"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ProjectRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=1000"`
	URL         string   `json:"url" binding:"omitempty,url"`
	GitHubURL   string   `json:"github_url" binding:"omitempty,url"`
	ImageURL    string   `json:"image_url" binding:"omitempty,url"`
	Tags        []string `json:"tags"`
}
