package repository

import (
	"context"

	"gorm.io/gorm"

	"gameclub/models"
)

type Sessions struct {
	Table[models.GameSession, *models.GameSession]
}

func NewSessions(conn *gorm.DB) *Sessions {
	return &Sessions{Table: newTable[models.GameSession, *models.GameSession](conn, "scheduled_date DESC, id DESC", sessionPreloads)}
}

func (r *Sessions) CreateWithPlayers(ctx context.Context, s *models.GameSession, playerIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := insert[models.GameSession](tx, s); err != nil {
			return err
		}
		return AddSessionPlayers(tx, s.ID, playerIDs)
	})
}

// UpdateWithPlayers applies a version-checked update and replaces the participant rows.
func (r *Sessions) UpdateWithPlayers(ctx context.Context, s *models.GameSession, playerIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := update[models.GameSession](tx, s); err != nil {
			return err
		}
		return ReplaceSessionPlayers(tx, s.ID, playerIDs)
	})
}

// PlayerIDs returns the participant ids of a session in insertion order.
func (r *Sessions) PlayerIDs(ctx context.Context, sessionID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.SessionPlayer{}).
		Where("game_session_id = ?", sessionID).
		Order("id").
		Pluck("player_id", &ids).Error
	return ids, err
}

// AddSessionPlayers inserts one participant row per id, repeats included.
func AddSessionPlayers(tx *gorm.DB, sessionID uint, playerIDs []uint) error {
	if len(playerIDs) == 0 {
		return nil
	}
	rows := make([]models.SessionPlayer, 0, len(playerIDs))
	for _, id := range playerIDs {
		rows = append(rows, models.SessionPlayer{GameSessionID: sessionID, PlayerID: id})
	}
	return translate(tx.Create(&rows).Error)
}

// ReplaceSessionPlayers deletes every participant of the session and inserts playerIDs.
func ReplaceSessionPlayers(tx *gorm.DB, sessionID uint, playerIDs []uint) error {
	if err := tx.Where("game_session_id = ?", sessionID).Delete(&models.SessionPlayer{}).Error; err != nil {
		return err
	}
	return AddSessionPlayers(tx, sessionID, playerIDs)
}
