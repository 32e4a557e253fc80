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

type equipmentForm struct {
	recordForm
	Name        string `form:"Name"`
	Type        string `form:"Type"`
	Quantity    string `form:"Quantity"`
	Description string `form:"Description"`
}

func (f *equipmentForm) parse() (*models.Equipment, utils.FieldErrors) {
	var p formParser
	e := &models.Equipment{
		Record:      f.record(),
		Name:        strings.TrimSpace(f.Name),
		Type:        strings.TrimSpace(f.Type),
		Quantity:    p.requiredInt("Quantity", "Quantity", f.Quantity),
		Description: strings.TrimSpace(f.Description),
	}
	return e, p.merge(utils.ValidateStruct(e))
}

type equipmentResource struct{ h *Handler }

func (equipmentResource) meta() entityMeta {
	return entityMeta{Name: "Equipment", Plural: "Equipment", Route: "Equipments", Refs: cache.RefEquipment}
}

func (r equipmentResource) index(c *gin.Context) ([]string, []web.Row, error) {
	items, err := r.h.store.Equipment.List(c.Request.Context(), repository.None)
	if err != nil {
		return nil, nil, err
	}
	rows := make([]web.Row, len(items))
	for i, e := range items {
		rows[i] = web.Row{ID: e.ID, Cells: []web.Cell{
			{Text: e.Name, Href: "/Equipments/Details/" + idText(e.ID)},
			{Text: e.Type},
			{Text: intText(e.Quantity)},
			{Text: e.Description},
		}}
	}
	return []string{"Name", "Type", "Quantity", "Description"}, rows, nil
}

func (r equipmentResource) show(c *gin.Context, id uint) ([]web.DetailField, []web.Section, error) {
	e, err := r.h.store.Equipment.Get(c.Request.Context(), id, repository.WithGames)
	if err != nil {
		return nil, nil, err
	}
	games := web.Section{Title: "Needed by", Columns: []string{"Game", "Required quantity"}, Empty: "No game needs this item."}
	for _, req := range e.Requirements {
		games.Rows = append(games.Rows, web.Row{ID: req.ID, Cells: []web.Cell{gameCell(req.Game), {Text: intText(req.RequiredQuantity)}}})
	}
	return equipmentDetails(e), []web.Section{games}, nil
}

func (r equipmentResource) summary(c *gin.Context, id uint) ([]web.DetailField, string, error) {
	e, err := r.h.store.Equipment.Get(c.Request.Context(), id, repository.WithGames)
	if err != nil {
		return nil, "", err
	}
	warning := ""
	if n := len(e.Requirements); n > 0 {
		warning = intText(n) + " game(s) need this item. Remove it from those games before deleting it."
	}
	return equipmentDetails(e), warning, nil
}

func equipmentDetails(e *models.Equipment) []web.DetailField {
	return []web.DetailField{
		{Label: "Name", Value: e.Name},
		{Label: "Type", Value: e.Type},
		{Label: "Quantity", Value: intText(e.Quantity)},
		{Label: "Description", Value: e.Description},
	}
}

func (equipmentResource) newForm() *equipmentForm { return &equipmentForm{} }

func (equipmentResource) blank(*gin.Context) (*equipmentForm, error) {
	return &equipmentForm{Quantity: "1"}, nil
}

func (r equipmentResource) load(c *gin.Context, id uint) (*equipmentForm, error) {
	e, err := r.h.store.Equipment.Get(c.Request.Context(), id, repository.None)
	if err != nil {
		return nil, err
	}
	f := &equipmentForm{Name: e.Name, Type: e.Type, Quantity: intText(e.Quantity), Description: e.Description}
	f.setRecord(e.Record)
	return f, nil
}

func (equipmentResource) fields(_ *gin.Context, f *equipmentForm, errs utils.FieldErrors) ([]web.Field, error) {
	return append(f.hiddenFields(),
		required(input("Name", "Name", web.InputText, f.Name, errs)),
		input("Type", "Type", web.InputText, f.Type, errs),
		required(bounded(input("Quantity", "Quantity", web.InputNumber, f.Quantity, errs), "0", "10000")),
		input("Description", "Description", web.InputTextarea, f.Description, errs),
	), nil
}

func (r equipmentResource) create(c *gin.Context, f *equipmentForm) (uint, utils.FieldErrors, error) {
	e, errs := f.parse()
	if errs != nil {
		return 0, errs, nil
	}
	if err := r.h.store.Equipment.Create(c.Request.Context(), e); err != nil {
		return 0, nil, err
	}
	return e.ID, nil, nil
}

func (r equipmentResource) update(c *gin.Context, f *equipmentForm) (utils.FieldErrors, error) {
	e, errs := f.parse()
	if errs != nil {
		return errs, nil
	}
	return nil, r.h.store.Equipment.Update(c.Request.Context(), e)
}

func (r equipmentResource) remove(c *gin.Context, id uint) (bool, error) {
	return r.h.store.Equipment.Delete(c.Request.Context(), id)
}
