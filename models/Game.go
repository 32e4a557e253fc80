package models

// Record is embedded by every entity that is edited through a form.
// Version is bumped on each update and compared on write.
type Record struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	Version int  `gorm:"not null;default:1" json:"version"`
}

// Base exposes the embedded record to generic persistence helpers.
func (r *Record) Base() *Record { return r }

type Game struct {
	Record
	Name            string `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Description     string `gorm:"size:1000" json:"description" validate:"max=1000"`
	MinPlayers      int    `gorm:"not null" json:"minPlayers" validate:"min=1,max=100"`
	MaxPlayers      int    `gorm:"not null" json:"maxPlayers" validate:"min=1,max=100,gtefield=MinPlayers"`
	AverageDuration int    `gorm:"not null" json:"averageDuration" validate:"min=1,max=1440"`
	Complexity      *int   `json:"complexity" validate:"omitempty,min=1,max=10"`
	MinAge          *int   `json:"minAge" validate:"omitempty,min=0,max=99"`
	YearPublished   *int   `json:"yearPublished" validate:"omitempty,pubyear"`

	PublisherID *uint      `gorm:"index" json:"publisherId"`
	Publisher   *Publisher `gorm:"constraint:OnDelete:SET NULL" json:"publisher,omitempty" validate:"-"`

	CategoryAssignments []GameCategoryAssignment `gorm:"constraint:OnDelete:CASCADE" json:"categories,omitempty" validate:"-"`
	EquipmentNeeds      []GameEquipment          `gorm:"constraint:OnDelete:CASCADE" json:"equipment,omitempty" validate:"-"`
	Sessions            []GameSession            `gorm:"constraint:OnDelete:RESTRICT" json:"sessions,omitempty" validate:"-"`
	Reviews             []GameReview             `gorm:"constraint:OnDelete:CASCADE" json:"reviews,omitempty" validate:"-"`
}

func (Game) TableName() string { return "games" }

// CategoryNames lists the names of loaded category assignments.
func (g *Game) CategoryNames() []string {
	names := make([]string, 0, len(g.CategoryAssignments))
	for _, a := range g.CategoryAssignments {
		if a.GameCategory != nil {
			names = append(names, a.GameCategory.Name)
		}
	}
	return names
}

// GameEquipment is the join row between a game and the equipment it needs.
type GameEquipment struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	GameID           uint       `gorm:"not null;index" json:"gameId"`
	Game             *Game      `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	EquipmentID      uint       `gorm:"not null;index" json:"equipmentId"`
	Equipment        *Equipment `gorm:"constraint:OnDelete:RESTRICT" json:"equipment,omitempty" validate:"-"`
	RequiredQuantity int        `gorm:"not null;default:1" json:"requiredQuantity" validate:"min=1,max=1000"`
}

func (GameEquipment) TableName() string { return "game_equipment" }
