package repository

import (
	"context"

	"gorm.io/gorm"

	"gameclub/models"
)

type Games struct {
	Table[models.Game, *models.Game]
}

func NewGames(conn *gorm.DB) *Games {
	return &Games{Table: newTable[models.Game, *models.Game](conn, "id", gamePreloads)}
}

// CreateWithAssociations inserts the game together with its category and
// equipment rows. Nothing is written unless all of them succeed.
func (r *Games) CreateWithAssociations(ctx context.Context, g *models.Game, categoryIDs []uint, needs []models.GameEquipment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := insert[models.Game](tx, g); err != nil {
			return err
		}
		if err := AddGameCategories(tx, g.ID, categoryIDs); err != nil {
			return err
		}
		return AddGameEquipment(tx, g.ID, needs)
	})
}

// UpdateWithAssociations applies a version-checked update and replaces
// every category and equipment row of the game.
func (r *Games) UpdateWithAssociations(ctx context.Context, g *models.Game, categoryIDs []uint, needs []models.GameEquipment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := update[models.Game](tx, g); err != nil {
			return err
		}
		if err := ReplaceGameCategories(tx, g.ID, categoryIDs); err != nil {
			return err
		}
		return ReplaceGameEquipment(tx, g.ID, needs)
	})
}

// CategoryIDs returns the ids of the categories assigned to a game.
func (r *Games) CategoryIDs(ctx context.Context, gameID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.GameCategoryAssignment{}).
		Where("game_id = ?", gameID).
		Order("id").
		Pluck("game_category_id", &ids).Error
	return ids, err
}

// EquipmentNeeds returns the equipment requirement rows of a game.
func (r *Games) EquipmentNeeds(ctx context.Context, gameID uint) ([]models.GameEquipment, error) {
	var needs []models.GameEquipment
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("id").
		Find(&needs).Error
	return needs, err
}

// AddGameCategories assigns each distinct category id to the game.
func AddGameCategories(tx *gorm.DB, gameID uint, categoryIDs []uint) error {
	ids := distinct(categoryIDs)
	if len(ids) == 0 {
		return nil
	}
	rows := make([]models.GameCategoryAssignment, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, models.GameCategoryAssignment{GameID: gameID, GameCategoryID: id})
	}
	return translate(tx.Create(&rows).Error)
}

// ReplaceGameCategories deletes every assignment of the game and inserts the given set.
func ReplaceGameCategories(tx *gorm.DB, gameID uint, categoryIDs []uint) error {
	if err := tx.Where("game_id = ?", gameID).Delete(&models.GameCategoryAssignment{}).Error; err != nil {
		return err
	}
	return AddGameCategories(tx, gameID, categoryIDs)
}

// AddGameEquipment stores the equipment requirements of the game. Repeated
// equipment keeps its first entry.
func AddGameEquipment(tx *gorm.DB, gameID uint, needs []models.GameEquipment) error {
	if len(needs) == 0 {
		return nil
	}
	seen := make(map[uint]bool, len(needs))
	rows := make([]models.GameEquipment, 0, len(needs))
	for _, n := range needs {
		if seen[n.EquipmentID] {
			continue
		}
		seen[n.EquipmentID] = true
		rows = append(rows, models.GameEquipment{GameID: gameID, EquipmentID: n.EquipmentID, RequiredQuantity: n.RequiredQuantity})
	}
	return translate(tx.Create(&rows).Error)
}

// ReplaceGameEquipment deletes every requirement of the game and inserts needs.
func ReplaceGameEquipment(tx *gorm.DB, gameID uint, needs []models.GameEquipment) error {
	if err := tx.Where("game_id = ?", gameID).Delete(&models.GameEquipment{}).Error; err != nil {
		return err
	}
	return AddGameEquipment(tx, gameID, needs)
}

func distinct(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
