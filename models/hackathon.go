package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Hackathon struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:200" json:"name"`
	Description string    `gorm:"size:1000" json:"description,omitempty"`
	StartDate   time.Time `gorm:"not null;index" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`
	Location    string    `gorm:"size:200" json:"location,omitempty"`
	Website     string    `json:"website,omitempty"`
	LogoURL     string    `json:"logo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *Hackathon) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// HackathonHistory is one user's participation record in one hackathon.
type HackathonHistory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
	HackathonID uuid.UUID `gorm:"type:uuid;not null" json:"hackathon_id"`
	Hackathon   Hackathon `gorm:"foreignKey:HackathonID" json:"hackathon"`
	Role        string    `gorm:"size:100" json:"role,omitempty"`
	Result      string    `gorm:"size:200" json:"result,omitempty"`
	ProjectURL  string    `json:"project_url,omitempty"`
	Notes       string    `gorm:"size:1000" json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *HackathonHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

type CreateHackathonRequest struct {
	Name        string    `json:"name" binding:"required,max=200"`
	Description string    `json:"description" binding:"max=1000"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Location    string    `json:"location" binding:"max=200"`
	Website     string    `json:"website" binding:"omitempty,url"`
	LogoURL     string    `json:"logo_url" binding:"omitempty,url"`
}

type CreateHistoryRequest struct {
	HackathonID string `json:"hackathon_id" binding:"required"`
	Role        string `json:"role" binding:"max=100"`
	Result      string `json:"result" binding:"max=200"`
	ProjectURL  string `json:"project_url" binding:"omitempty,url"`
	Notes       string `json:"notes" binding:"max=1000"`
}
