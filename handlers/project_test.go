package handlers

import (
	"hackmate-backend/database"
	"hackmate-backend/models"
	"net/http"
	"testing"
	"time"
)

func TestProjectCRUD(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	_, aliceToken := createTestUser(t, "alice")
	_, bobToken := createTestUser(t, "bob")

	var projectID string

	t.Run("create", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/projects", aliceToken, models.ProjectRequest{
			Title:       "Teammate Finder",
			Description: "Built in 36 hours",
			GitHubURL:   "https://github.com/alice/finder",
			Tags:        []string{"go", "gin"},
		})
		wantStatus(t, w, http.StatusCreated)

		var project models.Project
		decodeData(t, w, &project)
		projectID = project.ID.String()
		if len(project.Tags) != 2 {
			t.Errorf("tags = %v", project.Tags)
		}
	})

	t.Run("missing title rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/projects", aliceToken, models.ProjectRequest{})
		wantStatus(t, w, http.StatusBadRequest)
	})

	t.Run("list own", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/projects", aliceToken, nil)
		wantStatus(t, w, http.StatusOK)

		var projects []models.Project
		decodeData(t, w, &projects)
		if len(projects) != 1 {
			t.Fatalf("got %d projects, want 1", len(projects))
		}
	})

	t.Run("non-owner cannot update", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/projects/"+projectID, bobToken, models.ProjectRequest{
			Title: "Hijacked",
		})
		wantStatus(t, w, http.StatusForbidden)
	})

	t.Run("owner updates", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/projects/"+projectID, aliceToken, models.ProjectRequest{
			Title: "Teammate Finder v2",
		})
		wantStatus(t, w, http.StatusOK)

		var project models.Project
		database.DB.First(&project, "id = ?", projectID)
		if project.Title != "Teammate Finder v2" {
			t.Errorf("title = %q", project.Title)
		}
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, "/api/projects/"+projectID, bobToken, nil)
		wantStatus(t, w, http.StatusForbidden)
	})

	t.Run("owner deletes", func(t *testing.T) {
		w := doJSON(t, r, http.MethodDelete, "/api/projects/"+projectID, aliceToken, nil)
		wantStatus(t, w, http.StatusOK)

		var count int64
		database.DB.Model(&models.Project{}).Count(&count)
		if count != 0 {
			t.Errorf("project still present after delete")
		}
	})
}

func TestHackathons(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	_, token := createTestUser(t, "alice")

	start := time.Date(2026, 10, 3, 9, 0, 0, 0, time.UTC)

	t.Run("end before start rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/hackathons", token, models.CreateHackathonRequest{
			Name:      "Backwards Hack",
			StartDate: start,
			EndDate:   start.Add(-24 * time.Hour),
		})
		wantStatus(t, w, http.StatusBadRequest)
	})

	var hackathonID string

	t.Run("create and list", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/hackathons", token, models.CreateHackathonRequest{
			Name:      "Autumn Hack 2026",
			StartDate: start,
			EndDate:   start.Add(48 * time.Hour),
			Location:  "Berlin",
		})
		wantStatus(t, w, http.StatusCreated)
		var h models.Hackathon
		decodeData(t, w, &h)
		hackathonID = h.ID.String()

		w = doJSON(t, r, http.MethodGet, "/api/hackathons", token, nil)
		wantStatus(t, w, http.StatusOK)
		var list []models.Hackathon
		decodeData(t, w, &list)
		if len(list) != 1 {
			t.Fatalf("got %d hackathons, want 1", len(list))
		}
	})

	t.Run("history requires a real hackathon", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/hackathons/history", token, models.CreateHistoryRequest{
			HackathonID: "11111111-2222-3333-4444-555555555555",
		})
		wantStatus(t, w, http.StatusNotFound)
	})

	t.Run("record and list history", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/hackathons/history", token, models.CreateHistoryRequest{
			HackathonID: hackathonID,
			Role:        "backend",
			Result:      "2nd place",
		})
		wantStatus(t, w, http.StatusCreated)

		w = doJSON(t, r, http.MethodGet, "/api/hackathons/history", token, nil)
		wantStatus(t, w, http.StatusOK)
		var history []models.HackathonHistory
		decodeData(t, w, &history)
		if len(history) != 1 {
			t.Fatalf("got %d history rows, want 1", len(history))
		}
		if history[0].Hackathon.Name != "Autumn Hack 2026" {
			t.Errorf("hackathon not preloaded: %+v", history[0].Hackathon)
		}
	})
}
