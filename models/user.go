package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string         `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Username      string         `gorm:"uniqueIndex;not null;size:30" json:"username"`
	Name          string         `gorm:"size:100" json:"name,omitempty"`
	PasswordHash  string         `gorm:"not null;size:255" json:"-"`
	Bio           string         `gorm:"size:500" json:"bio,omitempty"`
	AvatarURL     string         `json:"avatar_url,omitempty"`
	Location      string         `gorm:"size:100" json:"location,omitempty"`
	Website       string         `json:"website,omitempty"`
	GitHub        string         `gorm:"size:100" json:"github,omitempty"`
	Twitter       string         `gorm:"size:100" json:"twitter,omitempty"`
	LinkedIn      string         `gorm:"size:100" json:"linkedin,omitempty"`
	Skills        pq.StringArray `gorm:"type:text[]" json:"skills"`
	Interests     pq.StringArray `gorm:"type:text[]" json:"interests"`
	FCMToken      string         `json:"-"`
	EmailVerified bool           `gorm:"default:false" json:"email_verified"`
	VerifyToken   string         `gorm:"size:64;index" json:"-"`
	ResetToken    string         `gorm:"size:64;index" json:"-"`
	ResetExpiry   *time.Time     `json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// PublicUser is the small projection embedded in invitations, matches and
// messages — just enough to render the other person.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

func (u *User) ToPublic() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}

// Response struct (what we return to clients)
type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	Name          string    `json:"name,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	Location      string    `json:"location,omitempty"`
	Website       string    `json:"website,omitempty"`
	GitHub        string    `json:"github,omitempty"`
	Twitter       string    `json:"twitter,omitempty"`
	LinkedIn      string    `json:"linkedin,omitempty"`
	Skills        []string  `json:"skills"`
	Interests     []string  `json:"interests"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		Name:          u.Name,
		Bio:           u.Bio,
		AvatarURL:     u.AvatarURL,
		Location:      u.Location,
		Website:       u.Website,
		GitHub:        u.GitHub,
		Twitter:       u.Twitter,
		LinkedIn:      u.LinkedIn,
		Skills:        u.Skills,
		Interests:     u.Interests,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}
