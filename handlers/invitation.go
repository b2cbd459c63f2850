package handlers

import (
	"errors"
	"hackmate-backend/database"
	"hackmate-backend/models"
	"hackmate-backend/services"
	"hackmate-backend/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /api/invitations — both sent and received, newest first
func GetInvitations(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var invitations []models.Invitation
	database.DB.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Preload("Sender").
		Preload("Receiver").
		Order("created_at DESC").
		Find(&invitations)

	responses := make([]models.InvitationResponse, 0, len(invitations))
	for _, inv := range invitations {
		responses = append(responses, inv.ToResponse())
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// POST /api/invitations
func CreateInvitation(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	receiverID, err := utils.ParseUUID(req.ReceiverID)
	if err != nil {
		utils.BadRequest(c, "Invalid receiver ID")
		return
	}

	if receiverID == userID {
		utils.BadRequest(c, "Cannot send invitation to yourself")
		return
	}

	var receiver models.User
	if err := database.DB.First(&receiver, "id = ?", receiverID).Error; err != nil {
		utils.NotFound(c, "Receiver not found")
		return
	}

	invitation := models.Invitation{
		SenderID:   userID,
		ReceiverID: receiverID,
		Status:     models.InvitationPending,
		Message:    req.Message,
	}

	// The partial unique index on pending (sender_id, receiver_id) rows is
	// the duplicate check: an insert losing to an outstanding invitation
	// comes back as ErrDuplicatedKey. The opposite direction is a different
	// ordered pair, and resolved invitations don't block the pair.
	if err := database.DB.Create(&invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Invitation already sent")
			return
		}
		utils.InternalError(c, "Failed to create invitation")
		return
	}

	var sender models.User
	database.DB.First(&sender, "id = ?", userID)
	invitation.Sender = sender
	invitation.Receiver = receiver

	go services.GetNotificationService().NotifyInvitation(
		receiver.Email, receiver.Name, receiver.FCMToken, sender.Username, invitation.Message)

	utils.SuccessResponse(c, http.StatusCreated, "Invitation sent", invitation.ToResponse())
}

// PATCH /api/invitations/:id
func RespondToInvitation(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	invitationID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid invitation ID")
		return
	}

	var req models.RespondInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Valid status (ACCEPTED or REJECTED) is required")
		return
	}

	var invitation models.Invitation
	if err := database.DB.First(&invitation, "id = ?", invitationID).Error; err != nil {
		utils.NotFound(c, "Invitation not found")
		return
	}

	// Only the receiver may resolve an invitation, and only once.
	if invitation.ReceiverID != userID {
		utils.Forbidden(c, "Only the receiver can respond to this invitation")
		return
	}
	if invitation.Status != models.InvitationPending {
		utils.InvalidState(c, "Invitation already processed")
		return
	}

	// Guarded update: the row transitions at most once even if two responds
	// race past the status check above.
	result := database.DB.Model(&invitation).
		Where("status = ?", models.InvitationPending).
		Update("status", req.Status)
	if result.Error != nil {
		utils.InternalError(c, "Failed to update invitation")
		return
	}
	if result.RowsAffected == 0 {
		utils.InvalidState(c, "Invitation already processed")
		return
	}
	invitation.Status = req.Status

	// Accepting creates the match before we reply, so the pair shows up in
	// both match lists the moment the response lands. The upsert inside
	// makes a second accept via the opposite invitation a no-op.
	if req.Status == models.InvitationAccepted {
		if _, _, err := services.GetOrCreateMatch(database.DB, invitation.SenderID, invitation.ReceiverID); err != nil {
			utils.InternalError(c, "Failed to create match")
			return
		}
	}

	var sender, receiver models.User
	database.DB.First(&sender, "id = ?", invitation.SenderID)
	database.DB.First(&receiver, "id = ?", invitation.ReceiverID)
	invitation.Sender = sender
	invitation.Receiver = receiver

	if req.Status == models.InvitationAccepted {
		go services.GetNotificationService().NotifyInvitationAccepted(
			sender.Email, sender.Name, sender.FCMToken, receiver.Username)
	}

	utils.SuccessResponse(c, http.StatusOK, "Invitation "+req.Status, invitation.ToResponse())
}
