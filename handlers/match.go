package handlers

import (
	"hackmate-backend/database"
	"hackmate-backend/models"
	"hackmate-backend/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GET /api/matches — every match involving the caller, mapped to the other user
func GetMatches(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var matches []models.Match
	database.DB.Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Preload("UserLow").
		Preload("UserHigh").
		Order("created_at DESC").
		Find(&matches)

	responses := make([]models.MatchResponse, 0, len(matches))
	for _, m := range matches {
		other := m.UserHigh
		if m.UserHighID == userID {
			other = m.UserLow
		}
		responses = append(responses, models.MatchResponse{
			ID:        m.ID,
			User:      other.ToPublic(),
			CreatedAt: m.CreatedAt,
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// lookupUsers fetches a projection map for a set of user IDs in one query.
func lookupUsers(ids []uuid.UUID) map[uuid.UUID]models.User {
	users := make(map[uuid.UUID]models.User, len(ids))
	if len(ids) == 0 {
		return users
	}
	var rows []models.User
	database.DB.Where("id IN ?", ids).Find(&rows)
	for _, u := range rows {
		users[u.ID] = u
	}
	return users
}
