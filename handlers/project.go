package handlers

import (
	"hackmate-backend/database"
	"hackmate-backend/models"
	"hackmate-backend/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// GET /api/projects?user_id= — a user's portfolio, defaulting to the caller's
func GetProjects(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	if param := c.Query("user_id"); param != "" {
		parsed, err := utils.ParseUUID(param)
		if err != nil {
			utils.BadRequest(c, "Invalid user ID")
			return
		}
		userID = parsed
	}

	var projects []models.Project
	database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&projects)

	utils.SuccessResponse(c, http.StatusOK, "", projects)
}

// POST /api/projects
func CreateProject(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	project := models.Project{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		GitHubURL:   req.GitHubURL,
		ImageURL:    req.ImageURL,
		Tags:        pq.StringArray(req.Tags),
	}

	if err := database.DB.Create(&project).Error; err != nil {
		utils.InternalError(c, "Failed to create project")
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Project created", project)
}

// PUT /api/projects/:id — owner only
func UpdateProject(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	project, ok := loadOwnProject(c, userID)
	if !ok {
		return
	}

	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"url":         req.URL,
		"git_hub_url": req.GitHubURL,
		"image_url":   req.ImageURL,
		"tags":        pq.StringArray(req.Tags),
	}

	if err := database.DB.Model(project).Updates(updates).Error; err != nil {
		utils.InternalError(c, "Failed to update project")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Project updated", project)
}

// DELETE /api/projects/:id — owner only
func DeleteProject(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	project, ok := loadOwnProject(c, userID)
	if !ok {
		return
	}

	if err := database.DB.Delete(project).Error; err != nil {
		utils.InternalError(c, "Failed to delete project")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Project deleted", nil)
}

func loadOwnProject(c *gin.Context, userID uuid.UUID) (*models.Project, bool) {
	projectID, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid project ID")
		return nil, false
	}

	var project models.Project
	if err := database.DB.First(&project, "id = ?", projectID).Error; err != nil {
		utils.NotFound(c, "Project not found")
		return nil, false
	}

	if project.UserID != userID {
		utils.Forbidden(c, "Not your project")
		return nil, false
	}

	return &project, true
}
