package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gameclub/cache"
	"gameclub/models"
	"gameclub/repository"
	"gameclub/utils"
	"gameclub/web"
)

type playerForm struct {
	recordForm
	Name           string `form:"Name"`
	Email          string `form:"Email"`
	Phone          string `form:"Phone"`
	RegisteredDate string `form:"RegisteredDate"`
	BirthDate      string `form:"BirthDate"`
	City           string `form:"City"`
	FavoriteGenre  string `form:"FavoriteGenre"`
}

func (f *playerForm) parse() (*models.Player, utils.FieldErrors) {
	var p formParser
	pl := &models.Player{
		Record:         f.record(),
		Name:           strings.TrimSpace(f.Name),
		Email:          strings.TrimSpace(f.Email),
		Phone:          strings.TrimSpace(f.Phone),
		RegisteredDate: p.optionalDay("RegisteredDate", "Registered", f.RegisteredDate, today()),
		BirthDate:      p.optionalDate("BirthDate", "Birth date", f.BirthDate),
		City:           strings.TrimSpace(f.City),
		FavoriteGenre:  strings.TrimSpace(f.FavoriteGenre),
	}
	return pl, p.merge(utils.ValidateStruct(pl))
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

type playerResource struct{ h *Handler }

func (playerResource) meta() entityMeta {
	return entityMeta{Name: "Player", Plural: "Players", Route: "Players", Refs: cache.RefPlayers}
}

func (r playerResource) index(c *gin.Context) ([]string, []web.Row, error) {
	players, err := r.h.store.Players.List(c.Request.Context(), repository.None)
	if err != nil {
		return nil, nil, err
	}
	rows := make([]web.Row, len(players))
	for i, p := range players {
		rows[i] = web.Row{ID: p.ID, Cells: []web.Cell{
			{Text: p.Name, Href: "/Players/Details/" + idText(p.ID)},
			{Text: p.Email},
			{Text: p.City},
			{Text: p.FavoriteGenre},
			{Text: formatDate(p.RegisteredDate)},
		}}
	}
	return []string{"Name", "Email", "City", "Favorite genre", "Registered"}, rows, nil
}

func (r playerResource) show(c *gin.Context, id uint) ([]web.DetailField, []web.Section, error) {
	inc := repository.WithSessions | repository.WithReviews | repository.WithAchievements
	p, err := r.h.store.Players.Get(c.Request.Context(), id, inc)
	if err != nil {
		return nil, nil, err
	}

	sessions := web.Section{Title: "Sessions played", Columns: []string{"Scheduled", "Game", "Score", "Winner", "Place"}, Empty: "No sessions yet."}
	for _, sp := range p.SessionPlayers {
		if sp.GameSession == nil {
			continue
		}
		s := sp.GameSession
		sessions.Rows = append(sessions.Rows, web.Row{ID: sp.ID, Cells: []web.Cell{
			{Text: formatDateTime(s.ScheduledDate), Href: "/GameSessions/Details/" + idText(s.ID)},
			gameCell(s.Game),
			{Text: optIntText(sp.Score)},
			{Text: yesNo(sp.IsWinner)},
			{Text: optIntText(sp.Place)},
		}})
	}

	reviews := web.Section{Title: "Reviews", Columns: []string{"Game", "Rating", "Date"}, Empty: "No reviews yet."}
	for _, rv := range p.Reviews {
		reviews.Rows = append(reviews.Rows, web.Row{
			ID:      rv.ID,
			Cells:   []web.Cell{gameCell(rv.Game), {Text: intText(rv.Rating) + "/10"}, {Text: formatDate(rv.ReviewDate)}},
			Actions: []web.Link{{Text: "Delete", Href: "/GameReviews/Delete/" + idText(rv.ID)}},
		})
	}

	achievements := web.Section{
		Title:   "Achievements",
		Columns: []string{"Name", "Category", "Achieved", "Description"},
		Empty:   "No achievements yet.",
		AddLink: &web.Link{Text: "Add achievement", Href: "/Achievements/Create?playerId=" + idText(p.ID)},
	}
	for _, a := range p.Achievements {
		achievements.Rows = append(achievements.Rows, web.Row{
			ID:      a.ID,
			Cells:   []web.Cell{{Text: a.Name}, {Text: a.Category}, {Text: formatDate(a.AchievedDate)}, {Text: a.Description}},
			Actions: []web.Link{{Text: "Delete", Href: "/Achievements/Delete/" + idText(a.ID)}},
		})
	}

	return playerDetails(p), []web.Section{sessions, reviews, achievements}, nil
}

func (r playerResource) summary(c *gin.Context, id uint) ([]web.DetailField, string, error) {
	p, err := r.h.store.Players.Get(c.Request.Context(), id, repository.WithSessions)
	if err != nil {
		return nil, "", err
	}
	warning := ""
	if n := len(p.SessionPlayers); n > 0 {
		warning = "This player took part in " + intText(n) + " session(s) and cannot be deleted while they are recorded."
	}
	return playerDetails(p), warning, nil
}

func playerDetails(p *models.Player) []web.DetailField {
	return []web.DetailField{
		{Label: "Name", Value: p.Name},
		{Label: "Email", Value: p.Email},
		{Label: "Phone", Value: p.Phone},
		{Label: "Registered", Value: formatDate(p.RegisteredDate)},
		{Label: "Birth date", Value: optDateText(p.BirthDate)},
		{Label: "City", Value: p.City},
		{Label: "Favorite genre", Value: p.FavoriteGenre},
	}
}

func (playerResource) newForm() *playerForm { return &playerForm{} }

func (playerResource) blank(*gin.Context) (*playerForm, error) {
	return &playerForm{RegisteredDate: today().Format(dateLayout)}, nil
}

func (r playerResource) load(c *gin.Context, id uint) (*playerForm, error) {
	p, err := r.h.store.Players.Get(c.Request.Context(), id, repository.None)
	if err != nil {
		return nil, err
	}
	f := &playerForm{
		Name:           p.Name,
		Email:          p.Email,
		Phone:          p.Phone,
		RegisteredDate: formatDate(p.RegisteredDate),
		BirthDate:      optDateText(p.BirthDate),
		City:           p.City,
		FavoriteGenre:  p.FavoriteGenre,
	}
	f.setRecord(p.Record)
	return f, nil
}

func (playerResource) fields(_ *gin.Context, f *playerForm, errs utils.FieldErrors) ([]web.Field, error) {
	return append(f.hiddenFields(),
		required(input("Name", "Name", web.InputText, f.Name, errs)),
		input("Email", "Email", web.InputEmail, f.Email, errs),
		input("Phone", "Phone", web.InputTel, f.Phone, errs),
		input("RegisteredDate", "Registered", web.InputDate, f.RegisteredDate, errs),
		input("BirthDate", "Birth date", web.InputDate, f.BirthDate, errs),
		input("City", "City", web.InputText, f.City, errs),
		input("FavoriteGenre", "Favorite genre", web.InputText, f.FavoriteGenre, errs),
	), nil
}

func (r playerResource) create(c *gin.Context, f *playerForm) (uint, utils.FieldErrors, error) {
	p, errs := f.parse()
	if errs != nil {
		return 0, errs, nil
	}
	if err := r.h.store.Players.Create(c.Request.Context(), p); err != nil {
		return 0, nil, err
	}
	return p.ID, nil, nil
}

func (r playerResource) update(c *gin.Context, f *playerForm) (utils.FieldErrors, error) {
	p, errs := f.parse()
	if errs != nil {
		return errs, nil
	}
	return nil, r.h.store.Players.Update(c.Request.Context(), p)
}

func (r playerResource) remove(c *gin.Context, id uint) (bool, error) {
	return r.h.store.Players.Delete(c.Request.Context(), id)
}
