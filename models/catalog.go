package models

type Publisher struct {
	Record
	Name        string `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Country     string `gorm:"size:50" json:"country" validate:"max=50"`
	FoundedYear *int   `json:"foundedYear" validate:"omitempty,min=1800,pastyear"`
	Website     string `gorm:"size:200" json:"website" validate:"omitempty,url,max=200"`

	Games []Game `gorm:"constraint:OnDelete:SET NULL" json:"games,omitempty" validate:"-"`
}

func (Publisher) TableName() string { return "publishers" }

type Equipment struct {
	Record
	Name        string `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Type        string `gorm:"size:50" json:"type" validate:"max=50"`
	Quantity    int    `gorm:"not null" json:"quantity" validate:"min=0,max=10000"`
	Description string `gorm:"size:500" json:"description" validate:"max=500"`

	Requirements []GameEquipment `gorm:"constraint:OnDelete:RESTRICT" json:"requirements,omitempty" validate:"-"`
}

func (Equipment) TableName() string { return "equipment" }

type Venue struct {
	Record
	Name              string   `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Address           string   `gorm:"size:200;not null" json:"address" validate:"required,max=200"`
	Capacity          int      `gorm:"not null" json:"capacity" validate:"min=1,max=1000"`
	Phone             string   `gorm:"size:20" json:"phone" validate:"omitempty,phone,max=20"`
	RentalCostPerHour *float64 `gorm:"type:decimal(10,2)" json:"rentalCostPerHour" validate:"omitempty,min=0,max=100000"`
	Description       string   `gorm:"size:500" json:"description" validate:"max=500"`

	Sessions []GameSession `gorm:"constraint:OnDelete:SET NULL" json:"sessions,omitempty" validate:"-"`
}

func (Venue) TableName() string { return "venues" }
