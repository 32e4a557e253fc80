package utils

import (
	"testing"
	"time"

	"gameclub/models"
)

func pinYear(t *testing.T, year int) {
	t.Helper()
	prev := now
	now = func() time.Time { return time.Date(year, 6, 15, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = prev })
}

func intPtr(v int) *int { return &v }

func validGame() models.Game {
	return models.Game{Name: "Terraforming Mars", MinPlayers: 1, MaxPlayers: 5, AverageDuration: 120}
}

func TestValidateGamePublicationYear(t *testing.T) {
	pinYear(t, 2026)

	tests := []struct {
		name  string
		year  int
		valid bool
	}{
		{"before the first year", 1899, false},
		{"first year", 1900, true},
		{"current year", 2026, true},
		{"announced", 2031, true},
		{"too far ahead", 2032, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGame()
			g.YearPublished = intPtr(tt.year)
			errs := ValidateStruct(g)
			if tt.valid && errs != nil {
				t.Fatalf("expected valid, got %v", errs)
			}
			if !tt.valid && errs.For("YearPublished") != "YearPublished must be between 1900 and 2031" {
				t.Fatalf("unexpected errors %v", errs)
			}
		})
	}
}

func TestValidateGamePlayerRange(t *testing.T) {
	g := validGame()
	g.MinPlayers, g.MaxPlayers = 4, 2

	errs := ValidateStruct(g)
	if got := errs.For("MaxPlayers"); got != "MaxPlayers must be greater than or equal to MinPlayers" {
		t.Fatalf("unexpected message %q", got)
	}

	g.MaxPlayers = 4
	if errs := ValidateStruct(g); errs != nil {
		t.Fatalf("equal bounds should pass, got %v", errs)
	}
}

func TestValidateRequiredName(t *testing.T) {
	g := validGame()
	g.Name = ""
	if got := ValidateStruct(g).For("Name"); got != "Name is required" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestValidatePublisherFoundedYear(t *testing.T) {
	pinYear(t, 2026)

	p := models.Publisher{Name: "Lookout", FoundedYear: intPtr(2027)}
	if got := ValidateStruct(p).For("FoundedYear"); got != "FoundedYear cannot be later than 2026" {
		t.Fatalf("unexpected message %q", got)
	}
	p.FoundedYear = intPtr(2026)
	if errs := ValidateStruct(p); errs != nil {
		t.Fatalf("current year should pass, got %v", errs)
	}
}

func TestValidatePlayerContacts(t *testing.T) {
	p := models.Player{Name: "Misha", Email: "misha@example.com", Phone: "+7 (912) 555-01-02"}
	if errs := ValidateStruct(p); errs != nil {
		t.Fatalf("expected valid player, got %v", errs)
	}

	p.Email = "not-an-email"
	p.Phone = "call me"
	errs := ValidateStruct(p)
	if errs.For("Email") != "Email must be a valid email" {
		t.Fatalf("unexpected email message %q", errs.For("Email"))
	}
	if errs.For("Phone") != "Phone must be a valid phone number" {
		t.Fatalf("unexpected phone message %q", errs.For("Phone"))
	}
}

func TestValidateSessionStatus(t *testing.T) {
	s := models.GameSession{GameID: 1, ScheduledDate: time.Now(), Status: "Postponed"}
	if errs := ValidateStruct(s); errs.For("Status") == "" {
		t.Fatal("expected unknown status to be rejected")
	}
	s.Status = models.StatusCancelled
	if errs := ValidateStruct(s); errs != nil {
		t.Fatalf("expected valid session, got %v", errs)
	}
}

func TestFieldErrorsKeepOrder(t *testing.T) {
	var errs FieldErrors
	errs.Add("Name", "first")
	errs.Add("Name", "second")
	if errs.For("Name") != "first" || errs.For("Missing") != "" {
		t.Fatalf("unexpected lookup results %v", errs)
	}
	if errs.Error() != "Name: first; Name: second" {
		t.Fatalf("unexpected error text %q", errs.Error())
	}
}
