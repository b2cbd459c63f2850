package handlers

import (
	"hackmate-backend/database"
	"hackmate-backend/models"
	"hackmate-backend/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/hackathons — public listing, upcoming and recent first
func GetHackathons(c *gin.Context) {
	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	var hackathons []models.Hackathon
	database.DB.Order("start_date DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&hackathons)

	utils.SuccessResponse(c, http.StatusOK, "", hackathons)
}

// POST /api/hackathons
func CreateHackathon(c *gin.Context) {
	var req models.CreateHackathonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.EndDate.Before(req.StartDate) {
		utils.BadRequest(c, "End date must not be before start date")
		return
	}

	hackathon := models.Hackathon{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Location:    req.Location,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
	}

	if err := database.DB.Create(&hackathon).Error; err != nil {
		utils.InternalError(c, "Failed to create hackathon")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Hackathon created", hackathon)
}

// GET /api/hackathons/history — caller's participation records
func GetHackathonHistory(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var history []models.HackathonHistory
	database.DB.Where("user_id = ?", userID).
		Preload("Hackathon").
		Order("created_at DESC").
		Find(&history)

	utils.SuccessResponse(c, http.StatusOK, "", history)
}

// POST /api/hackathons/history
func AddHackathonHistory(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.CreateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	hackathonID, err := utils.ParseUUID(req.HackathonID)
	if err != nil {
		utils.BadRequest(c, "Invalid hackathon ID")
		return
	}

	var hackathon models.Hackathon
	if err := database.DB.First(&hackathon, "id = ?", hackathonID).Error; err != nil {
		utils.NotFound(c, "Hackathon not found")
		return
	}

	history := models.HackathonHistory{
		UserID:      userID,
		HackathonID: hackathonID,
		Role:        req.Role,
		Result:      req.Result,
		ProjectURL:  req.ProjectURL,
		Notes:       req.Notes,
	}

	if err := database.DB.Create(&history).Error; err != nil {
		utils.InternalError(c, "Failed to add hackathon history")
		return
	}

	history.Hackathon = hackathon
	utils.SuccessResponse(c, http.StatusCreated, "History added", history)
}
