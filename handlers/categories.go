package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"gameclub/cache"
	"gameclub/models"
	"gameclub/repository"
	"gameclub/utils"
	"gameclub/web"
)

type categoryForm struct {
	recordForm
	Name        string `form:"Name"`
	Description string `form:"Description"`
}

func (f *categoryForm) parse() (*models.GameCategory, utils.FieldErrors) {
	cat := &models.GameCategory{
		Record:      f.record(),
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
	}
	var p formParser
	return cat, p.merge(utils.ValidateStruct(cat))
}

type categoryResource struct{ h *Handler }

func (categoryResource) meta() entityMeta {
	return entityMeta{Name: "Category", Plural: "Game categories", Route: "GameCategories", Refs: cache.RefCategories}
}

func (r categoryResource) index(c *gin.Context) ([]string, []web.Row, error) {
	cats, err := r.h.store.Categories.List(c.Request.Context(), repository.WithGames)
	if err != nil {
		return nil, nil, err
	}
	rows := make([]web.Row, len(cats))
	for i, cat := range cats {
		rows[i] = web.Row{ID: cat.ID, Cells: []web.Cell{
			{Text: cat.Name, Href: "/GameCategories/Details/" + idText(cat.ID)},
			{Text: cat.Description},
			{Text: intText(len(cat.Assignments))},
		}}
	}
	return []string{"Name", "Description", "Games"}, rows, nil
}

func (r categoryResource) show(c *gin.Context, id uint) ([]web.DetailField, []web.Section, error) {
	cat, err := r.h.store.Categories.Get(c.Request.Context(), id, repository.WithGames)
	if err != nil {
		return nil, nil, err
	}
	games := web.Section{Title: "Games", Columns: []string{"Name"}, Empty: "No games in this category."}
	for _, a := range cat.Assignments {
		games.Rows = append(games.Rows, web.Row{ID: a.GameID, Cells: []web.Cell{gameCell(a.Game)}})
	}
	return []web.DetailField{
		{Label: "Name", Value: cat.Name},
		{Label: "Description", Value: cat.Description},
	}, []web.Section{games}, nil
}

func (r categoryResource) summary(c *gin.Context, id uint) ([]web.DetailField, string, error) {
	cat, err := r.h.store.Categories.Get(c.Request.Context(), id, repository.WithGames)
	if err != nil {
		return nil, "", err
	}
	warning := ""
	if n := len(cat.Assignments); n > 0 {
		warning = intText(n) + " game(s) will lose this category."
	}
	return []web.DetailField{
		{Label: "Name", Value: cat.Name},
		{Label: "Description", Value: cat.Description},
	}, warning, nil
}

func (categoryResource) newForm() *categoryForm { return &categoryForm{} }

func (categoryResource) blank(*gin.Context) (*categoryForm, error) { return &categoryForm{}, nil }

func (r categoryResource) load(c *gin.Context, id uint) (*categoryForm, error) {
	cat, err := r.h.store.Categories.Get(c.Request.Context(), id, repository.None)
	if err != nil {
		return nil, err
	}
	f := &categoryForm{Name: cat.Name, Description: cat.Description}
	f.setRecord(cat.Record)
	return f, nil
}

func (categoryResource) fields(_ *gin.Context, f *categoryForm, errs utils.FieldErrors) ([]web.Field, error) {
	return append(f.hiddenFields(),
		required(input("Name", "Name", web.InputText, f.Name, errs)),
		input("Description", "Description", web.InputTextarea, f.Description, errs),
	), nil
}

func (r categoryResource) create(c *gin.Context, f *categoryForm) (uint, utils.FieldErrors, error) {
	cat, errs := f.parse()
	if errs != nil {
		return 0, errs, nil
	}
	if err := r.h.store.Categories.Create(c.Request.Context(), cat); err != nil {
		return 0, nil, err
	}
	return cat.ID, nil, nil
}

func (r categoryResource) update(c *gin.Context, f *categoryForm) (utils.FieldErrors, error) {
	cat, errs := f.parse()
	if errs != nil {
		return errs, nil
	}
	return nil, r.h.store.Categories.Update(c.Request.Context(), cat)
}

func (r categoryResource) remove(c *gin.Context, id uint) (bool, error) {
	return r.h.store.Categories.Delete(c.Request.Context(), id)
}
