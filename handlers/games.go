package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"gameclub/cache"
	"gameclub/models"
	"gameclub/repository"
	"gameclub/utils"
	"gameclub/web"
)

type gameForm struct {
	recordForm
	Name               string   `form:"Name"`
	Description        string   `form:"Description"`
	MinPlayers         string   `form:"MinPlayers"`
	MaxPlayers         string   `form:"MaxPlayers"`
	AverageDuration    string   `form:"AverageDuration"`
	Complexity         string   `form:"Complexity"`
	MinAge             string   `form:"MinAge"`
	YearPublished      string   `form:"YearPublished"`
	PublisherID        string   `form:"PublisherID"`
	SelectedCategories []string `form:"selectedCategories"`
	SelectedEquipment  []string `form:"selectedEquipment"`

	// Quantities maps equipment id to the submitted equipmentQuantities[id] value.
	Quantities map[string]string `form:"-"`
}

func (f *gameForm) bindQuantities(c *gin.Context) {
	f.Quantities = c.PostFormMap("equipmentQuantities")
}

func (f *gameForm) quantity(id string) string {
	if q := strings.TrimSpace(f.Quantities[id]); q != "" {
		return q
	}
	return "1"
}

// parse builds the game and its association rows from the submission.
func (f *gameForm) parse() (*models.Game, []uint, []models.GameEquipment, utils.FieldErrors) {
	var p formParser
	g := &models.Game{
		Record:          f.record(),
		Name:            strings.TrimSpace(f.Name),
		Description:     strings.TrimSpace(f.Description),
		MinPlayers:      p.requiredInt("MinPlayers", "Min players", f.MinPlayers),
		MaxPlayers:      p.requiredInt("MaxPlayers", "Max players", f.MaxPlayers),
		AverageDuration: p.requiredInt("AverageDuration", "Average duration", f.AverageDuration),
		Complexity:      p.optionalInt("Complexity", "Complexity", f.Complexity),
		MinAge:          p.optionalInt("MinAge", "Min age", f.MinAge),
		YearPublished:   p.optionalInt("YearPublished", "Year published", f.YearPublished),
		PublisherID:     p.optionalUint("PublisherID", "Publisher", f.PublisherID),
	}

	var needs []models.GameEquipment
	for _, id := range selectedIDs(f.SelectedEquipment) {
		qty, err := strconv.Atoi(f.quantity(idText(id)))
		if err != nil {
			p.fail("selectedEquipment", "Required quantity must be a whole number")
			continue
		}
		need := models.GameEquipment{EquipmentID: id, RequiredQuantity: qty}
		for _, e := range utils.ValidateStruct(need) {
			p.fail("selectedEquipment", e.Message)
		}
		needs = append(needs, need)
	}

	errs := p.merge(utils.ValidateStruct(g))
	return g, selectedIDs(f.SelectedCategories), needs, errs
}

func newGameForm(g *models.Game, categoryIDs []uint, needs []models.GameEquipment) *gameForm {
	f := &gameForm{
		Name:               g.Name,
		Description:        g.Description,
		MinPlayers:         intText(g.MinPlayers),
		MaxPlayers:         intText(g.MaxPlayers),
		AverageDuration:    intText(g.AverageDuration),
		Complexity:         optIntText(g.Complexity),
		MinAge:             optIntText(g.MinAge),
		YearPublished:      optIntText(g.YearPublished),
		PublisherID:        optUintText(g.PublisherID),
		SelectedCategories: idTexts(categoryIDs),
		Quantities:         make(map[string]string, len(needs)),
	}
	f.setRecord(g.Record)
	for _, n := range needs {
		id := idText(n.EquipmentID)
		f.SelectedEquipment = append(f.SelectedEquipment, id)
		f.Quantities[id] = intText(n.RequiredQuantity)
	}
	return f
}

type gameResource struct{ h *Handler }

func (gameResource) meta() entityMeta {
	return entityMeta{Name: "Game", Plural: "Games", Route: "Games", Refs: cache.RefGames}
}

func (r gameResource) index(c *gin.Context) ([]string, []web.Row, error) {
	games, err := r.h.store.Games.List(c.Request.Context(), repository.WithPublisher|repository.WithCategories)
	if err != nil {
		return nil, nil, err
	}
	rows := make([]web.Row, len(games))
	for i := range games {
		g := &games[i]
		rows[i] = web.Row{ID: g.ID, Cells: []web.Cell{
			{Text: g.Name, Href: "/Games/Details/" + idText(g.ID)},
			{Text: playerRange(g)},
			{Text: intText(g.AverageDuration) + " min"},
			{Text: optIntText(g.Complexity)},
			publisherCell(g.Publisher),
			{Text: strings.Join(g.CategoryNames(), ", ")},
		}}
	}
	return []string{"Name", "Players", "Duration", "Complexity", "Publisher", "Categories"}, rows, nil
}

func (r gameResource) show(c *gin.Context, id uint) ([]web.DetailField, []web.Section, error) {
	inc := repository.WithPublisher | repository.WithCategories | repository.WithEquipment |
		repository.WithSessions | repository.WithReviews
	g, err := r.h.store.Games.Get(c.Request.Context(), id, inc)
	if err != nil {
		return nil, nil, err
	}

	equipment := web.Section{Title: "Equipment", Columns: []string{"Item", "Required quantity"}, Empty: "No equipment required."}
	for _, n := range g.EquipmentNeeds {
		name := ""
		if n.Equipment != nil {
			name = n.Equipment.Name
		}
		equipment.Rows = append(equipment.Rows, web.Row{ID: n.ID, Cells: []web.Cell{
			{Text: name, Href: "/Equipments/Details/" + idText(n.EquipmentID)},
			{Text: intText(n.RequiredQuantity)},
		}})
	}

	sessions := web.Section{Title: "Sessions", Columns: []string{"Scheduled", "Venue", "Status", "Players"}, Empty: "No sessions yet."}
	for _, s := range g.Sessions {
		sessions.Rows = append(sessions.Rows, web.Row{ID: s.ID, Cells: []web.Cell{
			{Text: formatDateTime(s.ScheduledDate), Href: "/GameSessions/Details/" + idText(s.ID)},
			venueCell(s.Venue),
			{Text: string(s.Status)},
			{Text: intText(len(s.Players))},
		}})
	}

	reviews := web.Section{
		Title:   "Reviews",
		Columns: []string{"Player", "Rating", "Date", "Review"},
		Empty:   "No reviews yet.",
		AddLink: &web.Link{Text: "Add review", Href: "/GameReviews/Create?gameId=" + idText(g.ID)},
	}
	for _, rv := range g.Reviews {
		reviews.Rows = append(reviews.Rows, web.Row{
			ID: rv.ID,
			Cells: []web.Cell{
				playerCell(rv.Player),
				{Text: intText(rv.Rating) + "/10"},
				{Text: formatDate(rv.ReviewDate)},
				{Text: rv.ReviewText},
			},
			Actions: []web.Link{{Text: "Delete", Href: "/GameReviews/Delete/" + idText(rv.ID)}},
		})
	}

	fields := []web.DetailField{
		{Label: "Name", Value: g.Name},
		{Label: "Description", Value: g.Description},
		{Label: "Players", Value: playerRange(g)},
		{Label: "Average duration", Value: intText(g.AverageDuration) + " min"},
		{Label: "Complexity", Value: optIntText(g.Complexity)},
		{Label: "Min age", Value: optIntText(g.MinAge)},
		{Label: "Year published", Value: optIntText(g.YearPublished)},
		publisherField(g.Publisher),
		{Label: "Categories", Value: strings.Join(g.CategoryNames(), ", ")},
	}
	return fields, []web.Section{equipment, sessions, reviews}, nil
}

func (r gameResource) summary(c *gin.Context, id uint) ([]web.DetailField, string, error) {
	g, err := r.h.store.Games.Get(c.Request.Context(), id, repository.WithPublisher|repository.WithSessions)
	if err != nil {
		return nil, "", err
	}
	warning := ""
	if n := len(g.Sessions); n > 0 {
		warning = "This game has " + intText(n) + " scheduled or past session(s) and cannot be deleted while they exist."
	}
	return []web.DetailField{
		{Label: "Name", Value: g.Name},
		{Label: "Players", Value: playerRange(g)},
		publisherField(g.Publisher),
	}, warning, nil
}

func (gameResource) newForm() *gameForm { return &gameForm{} }

func (gameResource) blank(*gin.Context) (*gameForm, error) { return &gameForm{}, nil }

func (r gameResource) load(c *gin.Context, id uint) (*gameForm, error) {
	ctx := c.Request.Context()
	g, err := r.h.store.Games.Get(ctx, id, repository.None)
	if err != nil {
		return nil, err
	}
	categoryIDs, err := r.h.store.Games.CategoryIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	needs, err := r.h.store.Games.EquipmentNeeds(ctx, id)
	if err != nil {
		return nil, err
	}
	return newGameForm(g, categoryIDs, needs), nil
}

func (r gameResource) fields(c *gin.Context, f *gameForm, errs utils.FieldErrors) ([]web.Field, error) {
	categories, err := r.h.categoryRefs(c)
	if err != nil {
		return nil, err
	}
	publishers, err := r.h.publisherRefs(c)
	if err != nil {
		return nil, err
	}
	equipment, err := r.h.equipmentRefs(c)
	if err != nil {
		return nil, err
	}

	picked := make(map[string]bool, len(f.SelectedEquipment))
	for _, id := range f.SelectedEquipment {
		picked[id] = true
	}
	grid := make([]web.Option, len(equipment))
	for i, e := range equipment {
		id := idText(e.ID)
		grid[i] = web.Option{
			Value:        id,
			Label:        e.Name,
			Selected:     picked[id],
			QuantityName: "equipmentQuantities[" + id + "]",
			Quantity:     f.quantity(id),
		}
	}

	return append(f.hiddenFields(),
		required(input("Name", "Name", web.InputText, f.Name, errs)),
		input("Description", "Description", web.InputTextarea, f.Description, errs),
		required(bounded(input("MinPlayers", "Min players", web.InputNumber, f.MinPlayers, errs), "1", "100")),
		required(bounded(input("MaxPlayers", "Max players", web.InputNumber, f.MaxPlayers, errs), "1", "100")),
		required(bounded(input("AverageDuration", "Average duration (minutes)", web.InputNumber, f.AverageDuration, errs), "1", "1440")),
		bounded(input("Complexity", "Complexity (1-10)", web.InputNumber, f.Complexity, errs), "1", "10"),
		bounded(input("MinAge", "Min age", web.InputNumber, f.MinAge, errs), "0", "99"),
		bounded(input("YearPublished", "Year published", web.InputNumber, f.YearPublished, errs),
			intText(utils.MinPublicationYear), intText(utils.MaxPublicationYear())),
		web.Field{Name: "PublisherID", Label: "Publisher", Type: web.InputSelect, Error: errs.For("PublisherID"),
			Options: selectOptions(publishers, f.PublisherID, "(none)")},
		web.Field{Name: "selectedCategories", Label: "Categories", Type: web.InputChecklist,
			Options: checkOptions(categories, f.SelectedCategories)},
		web.Field{Name: "selectedEquipment", Label: "Equipment", Type: web.InputQuantityGrid, Error: errs.For("selectedEquipment"),
			Options: grid},
	), nil
}

func (r gameResource) create(c *gin.Context, f *gameForm) (uint, utils.FieldErrors, error) {
	f.bindQuantities(c)
	g, categoryIDs, needs, errs := f.parse()
	if errs != nil {
		return 0, errs, nil
	}
	if err := r.h.store.Games.CreateWithAssociations(c.Request.Context(), g, categoryIDs, needs); err != nil {
		return 0, nil, err
	}
	return g.ID, nil, nil
}

func (r gameResource) update(c *gin.Context, f *gameForm) (utils.FieldErrors, error) {
	f.bindQuantities(c)
	g, categoryIDs, needs, errs := f.parse()
	if errs != nil {
		return errs, nil
	}
	return nil, r.h.store.Games.UpdateWithAssociations(c.Request.Context(), g, categoryIDs, needs)
}

func (r gameResource) remove(c *gin.Context, id uint) (bool, error) {
	return r.h.store.Games.Delete(c.Request.Context(), id)
}

func playerRange(g *models.Game) string {
	if g.MinPlayers == g.MaxPlayers {
		return intText(g.MinPlayers)
	}
	return intText(g.MinPlayers) + "-" + intText(g.MaxPlayers)
}

func publisherCell(p *models.Publisher) web.Cell {
	if p == nil {
		return web.Cell{}
	}
	return web.Cell{Text: p.Name, Href: "/Publishers/Details/" + idText(p.ID)}
}

func publisherField(p *models.Publisher) web.DetailField {
	return cellField("Publisher", publisherCell(p))
}
