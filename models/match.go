package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Match stores the pair in canonical order (UserLowID < UserHighID by string
// comparison) so an unordered pair has exactly one row. The unique index over
// both columns is what makes the get-or-create upsert safe under races.
type Match struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserLowID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_pair" json:"user_low_id"`
	UserLow    User      `gorm:"foreignKey:UserLowID" json:"-"`
	UserHighID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_match_pair" json:"user_high_id"`
	UserHigh   User      `gorm:"foreignKey:UserHighID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// OtherUserID returns the participant that isn't userID.
func (m *Match) OtherUserID(userID uuid.UUID) uuid.UUID {
	if m.UserLowID == userID {
		return m.UserHighID
	}
	return m.UserLowID
}

type MatchResponse struct {
	ID        uuid.UUID  `json:"id"`
	User      PublicUser `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
}
