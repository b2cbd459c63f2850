package services

import (
	"hackmate-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CanonicalPair orders two user IDs by their string form so every unordered
// pair maps to exactly one (low, high) key. "A invites B" and "B invites A"
// both land on the same Match and Conversation rows because of this.
func CanonicalPair(a, b uuid.UUID) (low, high uuid.UUID) {
	if a.String() < b.String() {
		return a, b
	}
	return b, a
}

// GetOrCreateMatch records a confirmed pair exactly once. It inserts with
// ON CONFLICT DO NOTHING against the unique (user_low_id, user_high_id)
// index and falls back to fetching the winner's row, so two racing accepts
// (or a retried one) both succeed and agree on a single Match. The second
// return reports whether this call created the row.
func GetOrCreateMatch(db *gorm.DB, a, b uuid.UUID) (*models.Match, bool, error) {
	low, high := CanonicalPair(a, b)

	match := models.Match{UserLowID: low, UserHighID: high}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_low_id"}, {Name: "user_high_id"}},
		DoNothing: true,
	}).Create(&match)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return &match, true, nil
	}

	// Lost the race (or the pair was already matched): return the existing row.
	var existing models.Match
	if err := db.Where("user_low_id = ? AND user_high_id = ?", low, high).
		First(&existing).Error; err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

// FindMatch reports whether the two users are matched.
func FindMatch(db *gorm.DB, a, b uuid.UUID) (*models.Match, error) {
	low, high := CanonicalPair(a, b)

	var match models.Match
	err := db.Where("user_low_id = ? AND user_high_id = ?", low, high).
		First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// GetOrCreateConversation lazily opens the thread for a pair, with the same
// insert-on-conflict discipline as GetOrCreateMatch: both participants
// sending their first message at the same moment end up in one conversation.
// Callers are responsible for checking the pair is matched first.
func GetOrCreateConversation(db *gorm.DB, a, b uuid.UUID) (*models.Conversation, bool, error) {
	low, high := CanonicalPair(a, b)

	conv := models.Conversation{UserLowID: low, UserHighID: high}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_low_id"}, {Name: "user_high_id"}},
		DoNothing: true,
	}).Create(&conv)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return &conv, true, nil
	}

	var existing models.Conversation
	if err := db.Where("user_low_id = ? AND user_high_id = ?", low, high).
		First(&existing).Error; err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}
