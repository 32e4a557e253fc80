package models

import "time"

type SessionStatus string

const (
	StatusScheduled  SessionStatus = "Scheduled"
	StatusInProgress SessionStatus = "InProgress"
	StatusCompleted  SessionStatus = "Completed"
	StatusCancelled  SessionStatus = "Cancelled"
)

var sessionStatuses = []SessionStatus{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled}

func (s SessionStatus) Valid() bool {
	for _, status := range sessionStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// SessionStatusNames returns the statuses in display order.
func SessionStatusNames() []string {
	names := make([]string, len(sessionStatuses))
	for i, s := range sessionStatuses {
		names[i] = string(s)
	}
	return names
}

type GameSession struct {
	Record
	GameID uint  `gorm:"not null;index" json:"gameId" validate:"required"`
	Game   *Game `gorm:"constraint:OnDelete:RESTRICT" json:"game,omitempty" validate:"-"`

	VenueID *uint  `gorm:"index" json:"venueId"`
	Venue   *Venue `gorm:"constraint:OnDelete:SET NULL" json:"venue,omitempty" validate:"-"`

	ScheduledDate   time.Time     `gorm:"not null;index" json:"scheduledDate"`
	ActualStartTime *time.Time    `json:"actualStartTime"`
	ActualEndTime   *time.Time    `json:"actualEndTime"`
	Status          SessionStatus `gorm:"size:20;not null" json:"status" validate:"required,sessionstatus"`
	Notes           string        `gorm:"size:500" json:"notes" validate:"max=500"`
	Organizer       string        `gorm:"size:100" json:"organizer" validate:"max=100"`
	MaxParticipants *int          `json:"maxParticipants" validate:"omitempty,min=1,max=1000"`

	Players []SessionPlayer `gorm:"constraint:OnDelete:CASCADE" json:"players,omitempty" validate:"-"`
}

func (GameSession) TableName() string { return "game_sessions" }

// NormalizeTimes moves the actual start and end times onto the calendar day
// of ScheduledDate, keeping only their time of day.
func (s *GameSession) NormalizeTimes() {
	if s.ActualStartTime != nil {
		t := onDay(s.ScheduledDate, *s.ActualStartTime)
		s.ActualStartTime = &t
	}
	if s.ActualEndTime != nil {
		t := onDay(s.ScheduledDate, *s.ActualEndTime)
		s.ActualEndTime = &t
	}
}

func onDay(day, clock time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), day.Location())
}

// SessionPlayer records one player's participation in a session.
type SessionPlayer struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	GameSessionID uint         `gorm:"not null;index" json:"gameSessionId"`
	GameSession   *GameSession `gorm:"constraint:OnDelete:CASCADE" json:"session,omitempty" validate:"-"`
	PlayerID      uint         `gorm:"not null;index" json:"playerId"`
	Player        *Player      `gorm:"constraint:OnDelete:RESTRICT" json:"player,omitempty" validate:"-"`
	Score         *int         `json:"score" validate:"omitempty,min=0,max=1000000"`
	IsWinner      bool         `gorm:"not null;default:false" json:"isWinner"`
	Place         *int         `json:"place" validate:"omitempty,min=1,max=100"`
	Team          string       `gorm:"size:50" json:"team" validate:"max=50"`
	Comment       string       `gorm:"size:500" json:"comment" validate:"max=500"`
}

func (SessionPlayer) TableName() string { return "session_players" }
