package handlers

import (
	"hackmate-backend/database"
	"hackmate-backend/models"
	"hackmate-backend/services"
	"hackmate-backend/utils"
	"net/http"
	"testing"
)

func TestCreateInvitation(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	alice, aliceToken := createTestUser(t, "alice")
	bob, bobToken := createTestUser(t, "bob")

	t.Run("requires auth", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/invitations", "", models.CreateInvitationRequest{
			ReceiverID: bob.ID.String(),
		})
		wantStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("rejects self-invite", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/invitations", aliceToken, models.CreateInvitationRequest{
			ReceiverID: alice.ID.String(),
		})
		wantStatus(t, w, http.StatusBadRequest)
		wantCode(t, w, utils.CodeInvalidRequest)

		var count int64
		database.DB.Model(&models.Invitation{}).Count(&count)
		if count != 0 {
			t.Fatalf("self-invite persisted %d invitations", count)
		}
	})

	t.Run("rejects unknown receiver", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/invitations", aliceToken, models.CreateInvitationRequest{
			ReceiverID: "11111111-2222-3333-4444-555555555555",
		})
		wantStatus(t, w, http.StatusNotFound)
	})

	t.Run("creates pending invitation", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/invitations", aliceToken, models.CreateInvitationRequest{
			ReceiverID: bob.ID.String(),
			Message:    "let's team up",
		})
		wantStatus(t, w, http.StatusCreated)

		var inv models.InvitationResponse
		decodeData(t, w, &inv)
		if inv.Status != models.InvitationPending {
			t.Errorf("status = %q, want PENDING", inv.Status)
		}
		if inv.Message != "let's team up" {
			t.Errorf("message = %q", inv.Message)
		}
		if inv.Sender.Username != "alice" || inv.Receiver.Username != "bob" {
			t.Errorf("participants = %s → %s", inv.Sender.Username, inv.Receiver.Username)
		}
	})

	t.Run("rejects duplicate same-direction invitation", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/invitations", aliceToken, models.CreateInvitationRequest{
			ReceiverID: bob.ID.String(),
		})
		wantStatus(t, w, http.StatusConflict)
		wantCode(t, w, utils.CodeConflict)
	})

	t.Run("allows opposite-direction invitation", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/invitations", bobToken, models.CreateInvitationRequest{
			ReceiverID: alice.ID.String(),
		})
		wantStatus(t, w, http.StatusCreated)
	})

	t.Run("lists invitations in both directions", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/invitations", aliceToken, nil)
		wantStatus(t, w, http.StatusOK)

		var list []models.InvitationResponse
		decodeData(t, w, &list)
		if len(list) != 2 {
			t.Fatalf("got %d invitations, want 2", len(list))
		}
	})
}

func TestRespondToInvitation(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	alice, aliceToken := createTestUser(t, "alice")
	bob, bobToken := createTestUser(t, "bob")
	_, carolToken := createTestUser(t, "carol")

	w := doJSON(t, r, http.MethodPost, "/api/invitations", aliceToken, models.CreateInvitationRequest{
		ReceiverID: bob.ID.String(),
	})
	wantStatus(t, w, http.StatusCreated)
	var created models.InvitationResponse
	decodeData(t, w, &created)
	path := "/api/invitations/" + created.ID.String()

	t.Run("unknown invitation is 404", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, "/api/invitations/11111111-2222-3333-4444-555555555555", bobToken,
			models.RespondInvitationRequest{Status: models.InvitationAccepted})
		wantStatus(t, w, http.StatusNotFound)
	})

	t.Run("sender cannot respond", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, path, aliceToken,
			models.RespondInvitationRequest{Status: models.InvitationAccepted})
		wantStatus(t, w, http.StatusForbidden)
	})

	t.Run("third party cannot respond", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, path, carolToken,
			models.RespondInvitationRequest{Status: models.InvitationAccepted})
		wantStatus(t, w, http.StatusForbidden)
	})

	t.Run("rejects bad status value", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, path, bobToken, map[string]string{"status": "MAYBE"})
		wantStatus(t, w, http.StatusBadRequest)
	})

	t.Run("accept creates exactly one match", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, path, bobToken,
			models.RespondInvitationRequest{Status: models.InvitationAccepted})
		wantStatus(t, w, http.StatusOK)

		var inv models.InvitationResponse
		decodeData(t, w, &inv)
		if inv.Status != models.InvitationAccepted {
			t.Errorf("status = %q, want ACCEPTED", inv.Status)
		}

		var count int64
		database.DB.Model(&models.Match{}).Count(&count)
		if count != 1 {
			t.Fatalf("got %d matches, want 1", count)
		}

		low, high := services.CanonicalPair(alice.ID, bob.ID)
		var match models.Match
		if err := database.DB.First(&match).Error; err != nil {
			t.Fatalf("load match: %v", err)
		}
		if match.UserLowID != low || match.UserHighID != high {
			t.Errorf("match pair = (%s,%s), want canonical (%s,%s)",
				match.UserLowID, match.UserHighID, low, high)
		}
	})

	t.Run("second respond is invalid state", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPatch, path, bobToken,
			models.RespondInvitationRequest{Status: models.InvitationRejected})
		wantStatus(t, w, http.StatusBadRequest)
		wantCode(t, w, utils.CodeInvalidState)

		// Status untouched, still one match
		var inv models.Invitation
		database.DB.First(&inv, "id = ?", created.ID)
		if inv.Status != models.InvitationAccepted {
			t.Errorf("status changed to %q after rejected double-respond", inv.Status)
		}
		var count int64
		database.DB.Model(&models.Match{}).Count(&count)
		if count != 1 {
			t.Errorf("match count = %d after double-respond, want 1", count)
		}
	})

	t.Run("re-invite allowed after resolution", func(t *testing.T) {
		// The accepted invitation no longer occupies the pending pair.
		w := doJSON(t, r, http.MethodPost, "/api/invitations", aliceToken, models.CreateInvitationRequest{
			ReceiverID: bob.ID.String(),
		})
		wantStatus(t, w, http.StatusCreated)
	})
}

// Mutual invitations A→B and B→A: accepting both must converge on one match.
func TestMutualInvitationsConvergeOnOneMatch(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	alice, aliceToken := createTestUser(t, "alice")
	bob, bobToken := createTestUser(t, "bob")

	w := doJSON(t, r, http.MethodPost, "/api/invitations", aliceToken, models.CreateInvitationRequest{
		ReceiverID: bob.ID.String(),
	})
	wantStatus(t, w, http.StatusCreated)
	var aToB models.InvitationResponse
	decodeData(t, w, &aToB)

	w = doJSON(t, r, http.MethodPost, "/api/invitations", bobToken, models.CreateInvitationRequest{
		ReceiverID: alice.ID.String(),
	})
	wantStatus(t, w, http.StatusCreated)
	var bToA models.InvitationResponse
	decodeData(t, w, &bToA)

	w = doJSON(t, r, http.MethodPatch, "/api/invitations/"+aToB.ID.String(), bobToken,
		models.RespondInvitationRequest{Status: models.InvitationAccepted})
	wantStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodPatch, "/api/invitations/"+bToA.ID.String(), aliceToken,
		models.RespondInvitationRequest{Status: models.InvitationAccepted})
	wantStatus(t, w, http.StatusOK)

	var count int64
	database.DB.Model(&models.Match{}).Count(&count)
	if count != 1 {
		t.Fatalf("accepting both directions created %d matches, want 1", count)
	}
}

func TestRejectedInvitationCreatesNoMatch(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	_, aliceToken := createTestUser(t, "alice")
	bob, bobToken := createTestUser(t, "bob")

	w := doJSON(t, r, http.MethodPost, "/api/invitations", aliceToken, models.CreateInvitationRequest{
		ReceiverID: bob.ID.String(),
	})
	wantStatus(t, w, http.StatusCreated)
	var inv models.InvitationResponse
	decodeData(t, w, &inv)

	w = doJSON(t, r, http.MethodPatch, "/api/invitations/"+inv.ID.String(), bobToken,
		models.RespondInvitationRequest{Status: models.InvitationRejected})
	wantStatus(t, w, http.StatusOK)

	var count int64
	database.DB.Model(&models.Match{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejection created %d matches, want 0", count)
	}
}

func TestGetMatchesShowsOtherUser(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter()

	alice, aliceToken := createTestUser(t, "alice")
	bob, bobToken := createTestUser(t, "bob")

	if _, _, err := services.GetOrCreateMatch(database.DB, alice.ID, bob.ID); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/matches", aliceToken, nil)
	wantStatus(t, w, http.StatusOK)
	var aliceMatches []models.MatchResponse
	decodeData(t, w, &aliceMatches)
	if len(aliceMatches) != 1 || aliceMatches[0].User.Username != "bob" {
		t.Fatalf("alice's matches = %+v, want one entry for bob", aliceMatches)
	}

	w = doJSON(t, r, http.MethodGet, "/api/matches", bobToken, nil)
	wantStatus(t, w, http.StatusOK)
	var bobMatches []models.MatchResponse
	decodeData(t, w, &bobMatches)
	if len(bobMatches) != 1 || bobMatches[0].User.Username != "alice" {
		t.Fatalf("bob's matches = %+v, want one entry for alice", bobMatches)
	}
}
