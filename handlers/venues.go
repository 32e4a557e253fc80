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

type venueForm struct {
	recordForm
	Name              string `form:"Name"`
	Address           string `form:"Address"`
	Capacity          string `form:"Capacity"`
	Phone             string `form:"Phone"`
	RentalCostPerHour string `form:"RentalCostPerHour"`
	Description       string `form:"Description"`
}

func (f *venueForm) parse() (*models.Venue, utils.FieldErrors) {
	var p formParser
	v := &models.Venue{
		Record:            f.record(),
		Name:              strings.TrimSpace(f.Name),
		Address:           strings.TrimSpace(f.Address),
		Capacity:          p.requiredInt("Capacity", "Capacity", f.Capacity),
		Phone:             strings.TrimSpace(f.Phone),
		RentalCostPerHour: p.optionalFloat("RentalCostPerHour", "Rental cost per hour", f.RentalCostPerHour),
		Description:       strings.TrimSpace(f.Description),
	}
	return v, p.merge(utils.ValidateStruct(v))
}

type venueResource struct{ h *Handler }

func (venueResource) meta() entityMeta {
	return entityMeta{Name: "Venue", Plural: "Venues", Route: "Venues", Refs: cache.RefVenues}
}

func (r venueResource) index(c *gin.Context) ([]string, []web.Row, error) {
	venues, err := r.h.store.Venues.List(c.Request.Context(), repository.None)
	if err != nil {
		return nil, nil, err
	}
	rows := make([]web.Row, len(venues))
	for i, v := range venues {
		rows[i] = web.Row{ID: v.ID, Cells: []web.Cell{
			{Text: v.Name, Href: "/Venues/Details/" + idText(v.ID)},
			{Text: v.Address},
			{Text: intText(v.Capacity)},
			{Text: v.Phone},
			{Text: optFloatText(v.RentalCostPerHour)},
		}}
	}
	return []string{"Name", "Address", "Capacity", "Phone", "Cost per hour"}, rows, nil
}

func (r venueResource) show(c *gin.Context, id uint) ([]web.DetailField, []web.Section, error) {
	v, err := r.h.store.Venues.Get(c.Request.Context(), id, repository.WithSessions)
	if err != nil {
		return nil, nil, err
	}
	sessions := web.Section{Title: "Sessions", Columns: []string{"Scheduled", "Game", "Status"}, Empty: "No sessions at this venue."}
	for _, s := range v.Sessions {
		sessions.Rows = append(sessions.Rows, web.Row{ID: s.ID, Cells: []web.Cell{
			{Text: formatDateTime(s.ScheduledDate), Href: "/GameSessions/Details/" + idText(s.ID)},
			gameCell(s.Game),
			{Text: string(s.Status)},
		}})
	}
	return venueDetails(v), []web.Section{sessions}, nil
}

func (r venueResource) summary(c *gin.Context, id uint) ([]web.DetailField, string, error) {
	v, err := r.h.store.Venues.Get(c.Request.Context(), id, repository.WithSessions)
	if err != nil {
		return nil, "", err
	}
	warning := ""
	if n := len(v.Sessions); n > 0 {
		warning = intText(n) + " session(s) will be kept without a venue."
	}
	return venueDetails(v), warning, nil
}

func venueDetails(v *models.Venue) []web.DetailField {
	return []web.DetailField{
		{Label: "Name", Value: v.Name},
		{Label: "Address", Value: v.Address},
		{Label: "Capacity", Value: intText(v.Capacity)},
		{Label: "Phone", Value: v.Phone},
		{Label: "Rental cost per hour", Value: optFloatText(v.RentalCostPerHour)},
		{Label: "Description", Value: v.Description},
	}
}

func (venueResource) newForm() *venueForm { return &venueForm{} }

func (venueResource) blank(*gin.Context) (*venueForm, error) { return &venueForm{}, nil }

func (r venueResource) load(c *gin.Context, id uint) (*venueForm, error) {
	v, err := r.h.store.Venues.Get(c.Request.Context(), id, repository.None)
	if err != nil {
		return nil, err
	}
	f := &venueForm{
		Name:              v.Name,
		Address:           v.Address,
		Capacity:          intText(v.Capacity),
		Phone:             v.Phone,
		RentalCostPerHour: optFloatText(v.RentalCostPerHour),
		Description:       v.Description,
	}
	f.setRecord(v.Record)
	return f, nil
}

func (venueResource) fields(_ *gin.Context, f *venueForm, errs utils.FieldErrors) ([]web.Field, error) {
	cost := bounded(input("RentalCostPerHour", "Rental cost per hour", web.InputNumber, f.RentalCostPerHour, errs), "0", "100000")
	cost.Step = "0.01"
	return append(f.hiddenFields(),
		required(input("Name", "Name", web.InputText, f.Name, errs)),
		required(input("Address", "Address", web.InputText, f.Address, errs)),
		required(bounded(input("Capacity", "Capacity", web.InputNumber, f.Capacity, errs), "1", "1000")),
		input("Phone", "Phone", web.InputTel, f.Phone, errs),
		cost,
		input("Description", "Description", web.InputTextarea, f.Description, errs),
	), nil
}

func (r venueResource) create(c *gin.Context, f *venueForm) (uint, utils.FieldErrors, error) {
	v, errs := f.parse()
	if errs != nil {
		return 0, errs, nil
	}
	if err := r.h.store.Venues.Create(c.Request.Context(), v); err != nil {
		return 0, nil, err
	}
	return v.ID, nil, nil
}

func (r venueResource) update(c *gin.Context, f *venueForm) (utils.FieldErrors, error) {
	v, errs := f.parse()
	if errs != nil {
		return errs, nil
	}
	return nil, r.h.store.Venues.Update(c.Request.Context(), v)
}

func (r venueResource) remove(c *gin.Context, id uint) (bool, error) {
	return r.h.store.Venues.Delete(c.Request.Context(), id)
}
