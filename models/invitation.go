package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InvitationPending  = "PENDING"
	InvitationAccepted = "ACCEPTED"
	InvitationRejected = "REJECTED"
)

// Invitation is one-directional: uniqueness is on the ordered (sender,
// receiver) pair, so A→B and B→A can exist at the same time. The unique
// index is partial over PENDING rows — once an invitation is resolved it no
// longer blocks the pair, and the same sender may invite again.
type Invitation struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_invitation_pending_pair,where:status = 'PENDING'" json:"sender_id"`
	Sender     User      `gorm:"foreignKey:SenderID" json:"-"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_invitation_pending_pair" json:"receiver_id"`
	Receiver   User      `gorm:"foreignKey:ReceiverID" json:"-"`
	Status     string    `gorm:"default:PENDING;size:20" json:"status"`
	Message    string    `gorm:"size:500" json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type InvitationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Status    string     `json:"status"`
	Message   string     `json:"message,omitempty"`
	Sender    PublicUser `json:"sender"`
	Receiver  PublicUser `json:"receiver"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (i *Invitation) ToResponse() InvitationResponse {
	return InvitationResponse{
		ID:        i.ID,
		Status:    i.Status,
		Message:   i.Message,
		Sender:    i.Sender.ToPublic(),
		Receiver:  i.Receiver.ToPublic(),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

type CreateInvitationRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Message    string `json:"message" binding:"max=500"`
}

type RespondInvitationRequest struct {
	Status string `json:"status" binding:"required,oneof=ACCEPTED REJECTED"`
}
