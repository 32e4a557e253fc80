package models

import (
	"time"

	"gorm.io/datatypes"
)

type Player struct {
	Record
	Name           string          `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Email          string          `gorm:"size:100" json:"email" validate:"omitempty,email,max=100"`
	Phone          string          `gorm:"size:20" json:"phone" validate:"omitempty,phone,max=20"`
	RegisteredDate time.Time       `gorm:"not null" json:"registeredDate"`
	BirthDate      *datatypes.Date `json:"birthDate" validate:"-"`
	City           string          `gorm:"size:50" json:"city" validate:"max=50"`
	FavoriteGenre  string          `gorm:"size:50" json:"favoriteGenre" validate:"max=50"`

	SessionPlayers []SessionPlayer `gorm:"constraint:OnDelete:RESTRICT" json:"sessions,omitempty" validate:"-"`
	Reviews        []GameReview    `gorm:"constraint:OnDelete:CASCADE" json:"reviews,omitempty" validate:"-"`
	Achievements   []Achievement   `gorm:"constraint:OnDelete:CASCADE" json:"achievements,omitempty" validate:"-"`
}

func (Player) TableName() string { return "players" }

type GameReview struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GameID     uint      `gorm:"not null;index" json:"gameId" validate:"required"`
	Game       *Game     `gorm:"constraint:OnDelete:CASCADE" json:"game,omitempty" validate:"-"`
	PlayerID   uint      `gorm:"not null;index" json:"playerId" validate:"required"`
	Player     *Player   `gorm:"constraint:OnDelete:CASCADE" json:"player,omitempty" validate:"-"`
	Rating     int       `gorm:"not null" json:"rating" validate:"required,min=1,max=10"`
	ReviewText string    `gorm:"size:1000" json:"reviewText" validate:"max=1000"`
	ReviewDate time.Time `gorm:"not null" json:"reviewDate"`
}

func (GameReview) TableName() string { return "game_reviews" }

type Achievement struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PlayerID     uint      `gorm:"not null;index" json:"playerId" validate:"required"`
	Player       *Player   `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Name         string    `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Description  string    `gorm:"size:500" json:"description" validate:"max=500"`
	AchievedDate time.Time `gorm:"not null" json:"achievedDate"`
	Category     string    `gorm:"size:50" json:"category" validate:"max=50"` // Victory, Participation, Special
}

func (Achievement) TableName() string { return "achievements" }

// All lists every model in dependency order for migrations.
func All() []interface{} {
	return []interface{}{
		&Publisher{},
		&GameCategory{},
		&Equipment{},
		&Venue{},
		&Player{},
		&Game{},
		&GameCategoryAssignment{},
		&GameEquipment{},
		&GameSession{},
		&SessionPlayer{},
		&GameReview{},
		&Achievement{},
	}
}
