package repository

import "gorm.io/gorm"

// Include selects which associations a query loads alongside the rows.
type Include uint

const (
	WithPublisher Include = 1 << iota
	WithCategories
	WithEquipment
	WithSessions
	WithReviews
	WithGames
	WithGame
	WithVenue
	WithPlayers
	WithAchievements
)

// None loads the row alone.
const None Include = 0

func (i Include) Has(flag Include) bool { return i&flag != 0 }

type preloader func(q *gorm.DB, inc Include) *gorm.DB

func byID(q *gorm.DB) *gorm.DB { return q.Order("id") }

func gamePreloads(q *gorm.DB, inc Include) *gorm.DB {
	if inc.Has(WithPublisher) {
		q = q.Preload("Publisher")
	}
	if inc.Has(WithCategories) {
		q = q.Preload("CategoryAssignments", byID).Preload("CategoryAssignments.GameCategory")
	}
	if inc.Has(WithEquipment) {
		q = q.Preload("EquipmentNeeds", byID).Preload("EquipmentNeeds.Equipment")
	}
	if inc.Has(WithSessions) {
		q = q.Preload("Sessions", func(q *gorm.DB) *gorm.DB {
			return q.Order("scheduled_date DESC")
		}).Preload("Sessions.Venue").Preload("Sessions.Players")
	}
	if inc.Has(WithReviews) {
		q = q.Preload("Reviews", byID).Preload("Reviews.Player")
	}
	return q
}

func categoryPreloads(q *gorm.DB, inc Include) *gorm.DB {
	if inc.Has(WithGames) {
		q = q.Preload("Assignments", byID).Preload("Assignments.Game")
	}
	return q
}

func publisherPreloads(q *gorm.DB, inc Include) *gorm.DB {
	if inc.Has(WithGames) {
		q = q.Preload("Games", byID)
	}
	return q
}

func equipmentPreloads(q *gorm.DB, inc Include) *gorm.DB {
	if inc.Has(WithGames) {
		q = q.Preload("Requirements", byID).Preload("Requirements.Game")
	}
	return q
}

func venuePreloads(q *gorm.DB, inc Include) *gorm.DB {
	if inc.Has(WithSessions) {
		q = q.Preload("Sessions", func(q *gorm.DB) *gorm.DB {
			return q.Order("scheduled_date DESC")
		}).Preload("Sessions.Game")
	}
	return q
}

func playerPreloads(q *gorm.DB, inc Include) *gorm.DB {
	if inc.Has(WithSessions) {
		q = q.Preload("SessionPlayers", byID).
			Preload("SessionPlayers.GameSession").
			Preload("SessionPlayers.GameSession.Game")
	}
	if inc.Has(WithReviews) {
		q = q.Preload("Reviews", byID).Preload("Reviews.Game")
	}
	if inc.Has(WithAchievements) {
		q = q.Preload("Achievements", func(q *gorm.DB) *gorm.DB {
			return q.Order("achieved_date DESC")
		})
	}
	return q
}

func sessionPreloads(q *gorm.DB, inc Include) *gorm.DB {
	if inc.Has(WithGame) {
		q = q.Preload("Game")
	}
	if inc.Has(WithVenue) {
		q = q.Preload("Venue")
	}
	if inc.Has(WithPlayers) {
		q = q.Preload("Players", byID).Preload("Players.Player")
	}
	return q
}
