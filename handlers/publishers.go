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

type publisherForm struct {
	recordForm
	Name        string `form:"Name"`
	Country     string `form:"Country"`
	FoundedYear string `form:"FoundedYear"`
	Website     string `form:"Website"`
}

func (f *publisherForm) parse() (*models.Publisher, utils.FieldErrors) {
	var p formParser
	pub := &models.Publisher{
		Record:      f.record(),
		Name:        strings.TrimSpace(f.Name),
		Country:     strings.TrimSpace(f.Country),
		FoundedYear: p.optionalInt("FoundedYear", "Founded year", f.FoundedYear),
		Website:     strings.TrimSpace(f.Website),
	}
	return pub, p.merge(utils.ValidateStruct(pub))
}

type publisherResource struct{ h *Handler }

func (publisherResource) meta() entityMeta {
	return entityMeta{Name: "Publisher", Plural: "Publishers", Route: "Publishers", Refs: cache.RefPublishers}
}

func (r publisherResource) index(c *gin.Context) ([]string, []web.Row, error) {
	pubs, err := r.h.store.Publishers.List(c.Request.Context(), repository.WithGames)
	if err != nil {
		return nil, nil, err
	}
	rows := make([]web.Row, len(pubs))
	for i, p := range pubs {
		rows[i] = web.Row{ID: p.ID, Cells: []web.Cell{
			{Text: p.Name, Href: "/Publishers/Details/" + idText(p.ID)},
			{Text: p.Country},
			{Text: optIntText(p.FoundedYear)},
			{Text: p.Website, Href: p.Website},
			{Text: intText(len(p.Games))},
		}}
	}
	return []string{"Name", "Country", "Founded", "Website", "Games"}, rows, nil
}

func (r publisherResource) show(c *gin.Context, id uint) ([]web.DetailField, []web.Section, error) {
	p, err := r.h.store.Publishers.Get(c.Request.Context(), id, repository.WithGames)
	if err != nil {
		return nil, nil, err
	}
	games := web.Section{Title: "Games", Columns: []string{"Name", "Year published"}, Empty: "No games from this publisher."}
	for i := range p.Games {
		g := &p.Games[i]
		games.Rows = append(games.Rows, web.Row{ID: g.ID, Cells: []web.Cell{gameCell(g), {Text: optIntText(g.YearPublished)}}})
	}
	return publisherDetails(p), []web.Section{games}, nil
}

func (r publisherResource) summary(c *gin.Context, id uint) ([]web.DetailField, string, error) {
	p, err := r.h.store.Publishers.Get(c.Request.Context(), id, repository.WithGames)
	if err != nil {
		return nil, "", err
	}
	warning := ""
	if n := len(p.Games); n > 0 {
		warning = intText(n) + " game(s) will be kept without a publisher."
	}
	return publisherDetails(p), warning, nil
}

func publisherDetails(p *models.Publisher) []web.DetailField {
	return []web.DetailField{
		{Label: "Name", Value: p.Name},
		{Label: "Country", Value: p.Country},
		{Label: "Founded", Value: optIntText(p.FoundedYear)},
		{Label: "Website", Value: p.Website, Href: p.Website},
	}
}

func (publisherResource) newForm() *publisherForm { return &publisherForm{} }

func (publisherResource) blank(*gin.Context) (*publisherForm, error) { return &publisherForm{}, nil }

func (r publisherResource) load(c *gin.Context, id uint) (*publisherForm, error) {
	p, err := r.h.store.Publishers.Get(c.Request.Context(), id, repository.None)
	if err != nil {
		return nil, err
	}
	f := &publisherForm{Name: p.Name, Country: p.Country, FoundedYear: optIntText(p.FoundedYear), Website: p.Website}
	f.setRecord(p.Record)
	return f, nil
}

func (publisherResource) fields(_ *gin.Context, f *publisherForm, errs utils.FieldErrors) ([]web.Field, error) {
	return append(f.hiddenFields(),
		required(input("Name", "Name", web.InputText, f.Name, errs)),
		input("Country", "Country", web.InputText, f.Country, errs),
		bounded(input("FoundedYear", "Founded year", web.InputNumber, f.FoundedYear, errs), "1800", intText(time.Now().Year())),
		input("Website", "Website", web.InputURL, f.Website, errs),
	), nil
}

func (r publisherResource) create(c *gin.Context, f *publisherForm) (uint, utils.FieldErrors, error) {
	p, errs := f.parse()
	if errs != nil {
		return 0, errs, nil
	}
	if err := r.h.store.Publishers.Create(c.Request.Context(), p); err != nil {
		return 0, nil, err
	}
	return p.ID, nil, nil
}

func (r publisherResource) update(c *gin.Context, f *publisherForm) (utils.FieldErrors, error) {
	p, errs := f.parse()
	if errs != nil {
		return errs, nil
	}
	return nil, r.h.store.Publishers.Update(c.Request.Context(), p)
}

func (r publisherResource) remove(c *gin.Context, id uint) (bool, error) {
	return r.h.store.Publishers.Delete(c.Request.Context(), id)
}
