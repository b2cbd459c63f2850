package handlers

import (
	"errors"
	"hackmate-backend/database"
	"hackmate-backend/models"
	"hackmate-backend/services"
	"hackmate-backend/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GET /api/messages — conversation inbox, most recently active first
func GetConversations(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var conversations []models.Conversation
	database.DB.Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&conversations)

	otherIDs := make([]uuid.UUID, 0, len(conversations))
	for _, conv := range conversations {
		otherIDs = append(otherIDs, conv.OtherUserID(userID))
	}
	users := lookupUsers(otherIDs)

	summaries := make([]models.ConversationSummary, 0, len(conversations))
	for _, conv := range conversations {
		summary := models.ConversationSummary{
			ID:        conv.ID,
			CreatedAt: conv.CreatedAt,
			UpdatedAt: conv.UpdatedAt,
		}
		if other, ok := users[conv.OtherUserID(userID)]; ok {
			summary.User = other.ToPublic()
		}

		var last models.Message
		if err := database.DB.Where("conversation_id = ?", conv.ID).
			Preload("Sender").
			Order("created_at DESC").
			First(&last).Error; err == nil {
			resp := last.ToResponse()
			summary.LastMessage = &resp
		}

		database.DB.Model(&models.Message{}).
			Where("conversation_id = ? AND sender_id <> ? AND read = ?", conv.ID, userID, false).
			Count(&summary.UnreadCount)

		summaries = append(summaries, summary)
	}

	utils.SuccessResponse(c, http.StatusOK, "", summaries)
}

// GET /api/messages/:conversationId — full history, oldest first
func GetMessages(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	conversation, ok := loadConversationForParticipant(c, userID)
	if !ok {
		return
	}

	var messages []models.Message
	database.DB.Where("conversation_id = ?", conversation.ID).
		Preload("Sender").
		Order("created_at ASC").
		Find(&messages)

	responses := make([]models.MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, m.ToResponse())
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

type sendMessageResponse struct {
	Message        models.MessageResponse `json:"message"`
	ConversationID uuid.UUID              `json:"conversation_id"`
}

// POST /api/messages/:conversationId — send to a matched user. The path
// accepts the literal "new" for a first message; the conversation is
// resolved from the pair either way.
func SendMessage(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	conversationParam := c.Param("conversationId")

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		utils.BadRequest(c, "Message content is required")
		return
	}

	recipientID, err := utils.ParseUUID(req.RecipientID)
	if err != nil {
		utils.BadRequest(c, "Invalid recipient ID")
		return
	}

	// Messaging is gated on a confirmed match between the two users.
	if _, err := services.FindMatch(database.DB, userID, recipientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Forbidden(c, "Can only message matched users")
			return
		}
		utils.InternalError(c, "Failed to check match")
		return
	}

	conversation, _, err := services.GetOrCreateConversation(database.DB, userID, recipientID)
	if err != nil {
		utils.InternalError(c, "Failed to open conversation")
		return
	}

	if conversationParam != "new" && conversationParam != conversation.ID.String() {
		utils.BadRequest(c, "Conversation ID mismatch")
		return
	}

	message := models.Message{
		ConversationID: conversation.ID,
		SenderID:       userID,
		Content:        content,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		utils.InternalError(c, "Failed to send message")
		return
	}

	// Bump the thread so it sorts to the top of both inboxes.
	database.DB.Model(conversation).Update("updated_at", message.CreatedAt)

	var sender, recipient models.User
	database.DB.First(&sender, "id = ?", userID)
	database.DB.First(&recipient, "id = ?", recipientID)
	message.Sender = sender

	go services.GetNotificationService().NotifyNewMessage(
		recipient.FCMToken, sender.Username, content, conversation.ID.String())

	utils.SuccessResponse(c, http.StatusCreated, "Message sent", sendMessageResponse{
		Message:        message.ToResponse(),
		ConversationID: conversation.ID,
	})
}

// PATCH /api/messages/:conversationId — mark the other participant's
// messages read. Idempotent: already-read rows are untouched.
func MarkConversationRead(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	conversation, ok := loadConversationForParticipant(c, userID)
	if !ok {
		return
	}

	if err := database.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read = ?", conversation.ID, userID, false).
		Update("read", true).Error; err != nil {
		utils.InternalError(c, "Failed to mark messages read")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Messages marked read", nil)
}

// loadConversationForParticipant parses the path param, loads the
// conversation and enforces that the caller is one of its two members.
// On failure it writes the error response and returns ok=false.
func loadConversationForParticipant(c *gin.Context, userID uuid.UUID) (*models.Conversation, bool) {
	conversationID, err := utils.ParseUUID(c.Param("conversationId"))
	if err != nil {
		utils.BadRequest(c, "Invalid conversation ID")
		return nil, false
	}

	var conversation models.Conversation
	if err := database.DB.First(&conversation, "id = ?", conversationID).Error; err != nil {
		utils.NotFound(c, "Conversation not found")
		return nil, false
	}

	if !conversation.HasParticipant(userID) {
		utils.Forbidden(c, "Not a participant in this conversation")
		return nil, false
	}

	return &conversation, true
}
