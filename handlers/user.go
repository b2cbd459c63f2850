package handlers

import (
	"hackmate-backend/database"
	"hackmate-backend/models"
	"hackmate-backend/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type UpdateProfileRequest struct {
	Name      *string  `json:"name" binding:"omitempty,max=100"`
	Bio       *string  `json:"bio" binding:"omitempty,max=500"`
	AvatarURL *string  `json:"avatar_url" binding:"omitempty,url"`
	Location  *string  `json:"location" binding:"omitempty,max=100"`
	Website   *string  `json:"website" binding:"omitempty,url"`
	GitHub    *string  `json:"github" binding:"omitempty,max=100"`
	Twitter   *string  `json:"twitter" binding:"omitempty,max=100"`
	LinkedIn  *string  `json:"linkedin" binding:"omitempty,max=100"`
	Skills    []string `json:"skills"`
	Interests []string `json:"interests"`
}

type UpdateFCMTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// PublicProfile is the profile page payload for GET /api/users/:username.
type PublicProfile struct {
	models.UserResponse
	Projects []models.Project          `json:"projects"`
	History  []models.HackathonHistory `json:"hackathon_history"`
}

// GET /api/users/me
func GetProfile(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", user.ToResponse())
}

// PUT /api/users/me
func UpdateProfile(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.GitHub != nil {
		updates["git_hub"] = *req.GitHub
	}
	if req.Twitter != nil {
		updates["twitter"] = *req.Twitter
	}
	if req.LinkedIn != nil {
		updates["linked_in"] = *req.LinkedIn
	}
	if req.Skills != nil {
		updates["skills"] = pq.StringArray(req.Skills)
	}
	if req.Interests != nil {
		updates["interests"] = pq.StringArray(req.Interests)
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			utils.InternalError(c, "Failed to update profile")
			return
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "Profile updated", user.ToResponse())
}

// PUT /api/users/me/fcm-token
func UpdateFCMToken(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req UpdateFCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	database.DB.Model(&models.User{}).Where("id = ?", userID).Update("fcm_token", req.Token)

	utils.SuccessResponse(c, http.StatusOK, "FCM token updated", nil)
}

// GET /api/users/:username — public profile with portfolio
func GetUserByUsername(c *gin.Context) {
	username := c.Param("username")

	var user models.User
	if err := database.DB.Where("username = ?", username).First(&user).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	var projects []models.Project
	database.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&projects)

	var history []models.HackathonHistory
	database.DB.Where("user_id = ?", user.ID).
		Preload("Hackathon").
		Order("created_at DESC").
		Find(&history)

	profile := PublicProfile{
		UserResponse: user.ToResponse(),
		Projects:     projects,
		History:      history,
	}
	// Email stays private on public profiles
	profile.Email = ""

	utils.SuccessResponse(c, http.StatusOK, "", profile)
}

// GET /api/users/discover?skills=go,react&interests=ai&limit=20&skip=0
func DiscoverUsers(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	query := database.DB.Where("id <> ?", userID)

	if skills := splitCSV(c.Query("skills")); len(skills) > 0 {
		query = query.Where("skills && ?", pq.StringArray(skills))
	}
	if interests := splitCSV(c.Query("interests")); len(interests) > 0 {
		query = query.Where("interests && ?", pq.StringArray(interests))
	}

	var users []models.User
	query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&users)

	responses := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		resp := u.ToResponse()
		resp.Email = ""
		responses = append(responses, resp)
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
