package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation uses the same canonical pair key as Match, one row per pair.
// UpdatedAt is bumped on every message and drives inbox ordering.
type Conversation struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserLowID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair" json:"user_low_id"`
	UserLow    User      `gorm:"foreignKey:UserLowID" json:"-"`
	UserHighID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_conversation_pair" json:"user_high_id"`
	UserHigh   User      `gorm:"foreignKey:UserHighID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// HasParticipant reports whether userID is one of the two members.
func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	return c.UserLowID == userID || c.UserHighID == userID
}

// OtherUserID returns the participant that isn't userID.
func (c *Conversation) OtherUserID(userID uuid.UUID) uuid.UUID {
	if c.UserLowID == userID {
		return c.UserHighID
	}
	return c.UserLowID
}

// ConversationSummary is one inbox row: the thread, the other person, the
// latest message and how many of their messages the viewer hasn't read.
type ConversationSummary struct {
	ID          uuid.UUID        `json:"id"`
	User        PublicUser       `json:"user"`
	LastMessage *MessageResponse `json:"last_message,omitempty"`
	UnreadCount int64            `json:"unread_count"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
