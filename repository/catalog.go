package repository

import (
	"gorm.io/gorm"

	"gameclub/models"
)

type Categories struct {
	Table[models.GameCategory, *models.GameCategory]
}

func NewCategories(conn *gorm.DB) *Categories {
	return &Categories{Table: newTable[models.GameCategory, *models.GameCategory](conn, "id", categoryPreloads)}
}

type Publishers struct {
	Table[models.Publisher, *models.Publisher]
}

func NewPublishers(conn *gorm.DB) *Publishers {
	return &Publishers{Table: newTable[models.Publisher, *models.Publisher](conn, "id", publisherPreloads)}
}

type EquipmentItems struct {
	Table[models.Equipment, *models.Equipment]
}

func NewEquipment(conn *gorm.DB) *EquipmentItems {
	return &EquipmentItems{Table: newTable[models.Equipment, *models.Equipment](conn, "id", equipmentPreloads)}
}

type Venues struct {
	Table[models.Venue, *models.Venue]
}

func NewVenues(conn *gorm.DB) *Venues {
	return &Venues{Table: newTable[models.Venue, *models.Venue](conn, "id", venuePreloads)}
}

type Players struct {
	Table[models.Player, *models.Player]
}

func NewPlayers(conn *gorm.DB) *Players {
	return &Players{Table: newTable[models.Player, *models.Player](conn, "id", playerPreloads)}
}

// Store bundles every collection over one connection.
type Store struct {
	Games        *Games
	Categories   *Categories
	Publishers   *Publishers
	Equipment    *EquipmentItems
	Venues       *Venues
	Sessions     *Sessions
	Players      *Players
	Reviews      *Reviews
	Achievements *Achievements
}

func New(conn *gorm.DB) *Store {
	return &Store{
		Games:        NewGames(conn),
		Categories:   NewCategories(conn),
		Publishers:   NewPublishers(conn),
		Equipment:    NewEquipment(conn),
		Venues:       NewVenues(conn),
		Sessions:     NewSessions(conn),
		Players:      NewPlayers(conn),
		Reviews:      &Reviews{db: conn},
		Achievements: &Achievements{db: conn},
	}
}
