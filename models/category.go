package models

type GameCategory struct {
	Record
	Name        string `gorm:"size:50;not null" json:"name" validate:"required,max=50"`
	Description string `gorm:"size:500" json:"description" validate:"max=500"`

	Assignments []GameCategoryAssignment `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
}

func (GameCategory) TableName() string { return "game_categories" }

// GameCategoryAssignment pairs a game with one of its categories.
type GameCategoryAssignment struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	GameID         uint          `gorm:"not null;uniqueIndex:idx_game_category" json:"gameId"`
	Game           *Game         `gorm:"constraint:OnDelete:CASCADE" json:"game,omitempty" validate:"-"`
	GameCategoryID uint          `gorm:"not null;uniqueIndex:idx_game_category" json:"gameCategoryId"`
	GameCategory   *GameCategory `gorm:"constraint:OnDelete:CASCADE" json:"category,omitempty" validate:"-"`
}

func (GameCategoryAssignment) TableName() string { return "game_category_assignments" }
