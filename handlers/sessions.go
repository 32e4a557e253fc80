package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"gameclub/events"
	"gameclub/models"
	"gameclub/monitoring"
	"gameclub/repository"
	"gameclub/utils"
	"gameclub/web"
)

type sessionForm struct {
	recordForm
	GameID          string   `form:"GameID"`
	VenueID         string   `form:"VenueID"`
	ScheduledDate   string   `form:"ScheduledDate"`
	ActualStartTime string   `form:"ActualStartTime"`
	ActualEndTime   string   `form:"ActualEndTime"`
	Status          string   `form:"Status"`
	Notes           string   `form:"Notes"`
	Organizer       string   `form:"Organizer"`
	MaxParticipants string   `form:"MaxParticipants"`
	SelectedPlayers []string `form:"selectedPlayers"`
}

// parse builds the session with its actual times moved onto the scheduled day.
func (f *sessionForm) parse() (*models.GameSession, []uint, utils.FieldErrors) {
	var p formParser
	s := &models.GameSession{
		Record:          f.record(),
		GameID:          p.requiredUint("GameID", "Game", f.GameID),
		VenueID:         p.optionalUint("VenueID", "Venue", f.VenueID),
		ScheduledDate:   p.requiredDateTime("ScheduledDate", "Scheduled date", f.ScheduledDate),
		ActualStartTime: p.optionalClock("ActualStartTime", "Actual start time", f.ActualStartTime),
		ActualEndTime:   p.optionalClock("ActualEndTime", "Actual end time", f.ActualEndTime),
		Status:          models.SessionStatus(strings.TrimSpace(f.Status)),
		Notes:           strings.TrimSpace(f.Notes),
		Organizer:       strings.TrimSpace(f.Organizer),
		MaxParticipants: p.optionalInt("MaxParticipants", "Max participants", f.MaxParticipants),
	}
	s.NormalizeTimes()
	return s, selectedIDs(f.SelectedPlayers), p.merge(utils.ValidateStruct(s))
}

func newSessionForm(s *models.GameSession, playerIDs []uint) *sessionForm {
	f := &sessionForm{
		GameID:          idText(s.GameID),
		VenueID:         optUintText(s.VenueID),
		ScheduledDate:   s.ScheduledDate.Format(dateTimeLayout),
		ActualStartTime: optTimeText(s.ActualStartTime, clockLayout),
		ActualEndTime:   optTimeText(s.ActualEndTime, clockLayout),
		Status:          string(s.Status),
		Notes:           s.Notes,
		Organizer:       s.Organizer,
		MaxParticipants: optIntText(s.MaxParticipants),
		SelectedPlayers: idTexts(playerIDs),
	}
	f.setRecord(s.Record)
	return f
}

type sessionResource struct{ h *Handler }

func (sessionResource) meta() entityMeta {
	return entityMeta{Name: "Session", Plural: "Game sessions", Route: "GameSessions"}
}

func (r sessionResource) index(c *gin.Context) ([]string, []web.Row, error) {
	inc := repository.WithGame | repository.WithVenue | repository.WithPlayers
	sessions, err := r.h.store.Sessions.List(c.Request.Context(), inc)
	if err != nil {
		return nil, nil, err
	}
	rows := make([]web.Row, len(sessions))
	for i := range sessions {
		s := &sessions[i]
		rows[i] = web.Row{ID: s.ID, Cells: []web.Cell{
			{Text: formatDateTime(s.ScheduledDate), Href: "/GameSessions/Details/" + idText(s.ID)},
			gameCell(s.Game),
			venueCell(s.Venue),
			{Text: string(s.Status)},
			{Text: intText(len(s.Players))},
			{Text: s.Organizer},
		}}
	}
	return []string{"Scheduled", "Game", "Venue", "Status", "Players", "Organizer"}, rows, nil
}

func (r sessionResource) show(c *gin.Context, id uint) ([]web.DetailField, []web.Section, error) {
	inc := repository.WithGame | repository.WithVenue | repository.WithPlayers
	s, err := r.h.store.Sessions.Get(c.Request.Context(), id, inc)
	if err != nil {
		return nil, nil, err
	}
	players := web.Section{Title: "Players", Columns: []string{"Player", "Score", "Winner", "Place", "Team"}, Empty: "No players registered."}
	for _, sp := range s.Players {
		players.Rows = append(players.Rows, web.Row{ID: sp.ID, Cells: []web.Cell{
			playerCell(sp.Player),
			{Text: optIntText(sp.Score)},
			{Text: yesNo(sp.IsWinner)},
			{Text: optIntText(sp.Place)},
			{Text: sp.Team},
		}})
	}

	fields := sessionDetails(s)
	fields = append(fields,
		web.DetailField{Label: "Actual start", Value: optTimeText(s.ActualStartTime, displayDateTime)},
		web.DetailField{Label: "Actual end", Value: optTimeText(s.ActualEndTime, displayDateTime)},
		web.DetailField{Label: "Organizer", Value: s.Organizer},
		web.DetailField{Label: "Max participants", Value: optIntText(s.MaxParticipants)},
		web.DetailField{Label: "Notes", Value: s.Notes},
	)
	return fields, []web.Section{players}, nil
}

func (r sessionResource) summary(c *gin.Context, id uint) ([]web.DetailField, string, error) {
	s, err := r.h.store.Sessions.Get(c.Request.Context(), id, repository.WithGame|repository.WithVenue|repository.WithPlayers)
	if err != nil {
		return nil, "", err
	}
	warning := ""
	if n := len(s.Players); n > 0 {
		warning = "The " + intText(n) + " player registration(s) of this session will be deleted too."
	}
	return sessionDetails(s), warning, nil
}

func sessionDetails(s *models.GameSession) []web.DetailField {
	return []web.DetailField{
		cellField("Game", gameCell(s.Game)),
		cellField("Venue", venueCell(s.Venue)),
		{Label: "Scheduled", Value: formatDateTime(s.ScheduledDate)},
		{Label: "Status", Value: string(s.Status)},
	}
}

func (sessionResource) newForm() *sessionForm { return &sessionForm{} }

func (sessionResource) blank(*gin.Context) (*sessionForm, error) {
	return &sessionForm{Status: string(models.StatusScheduled)}, nil
}

func (r sessionResource) load(c *gin.Context, id uint) (*sessionForm, error) {
	ctx := c.Request.Context()
	s, err := r.h.store.Sessions.Get(ctx, id, repository.None)
	if err != nil {
		return nil, err
	}
	playerIDs, err := r.h.store.Sessions.PlayerIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return newSessionForm(s, playerIDs), nil
}

func (r sessionResource) fields(c *gin.Context, f *sessionForm, errs utils.FieldErrors) ([]web.Field, error) {
	games, err := r.h.gameRefs(c)
	if err != nil {
		return nil, err
	}
	venues, err := r.h.venueRefs(c)
	if err != nil {
		return nil, err
	}
	players, err := r.h.playerRefs(c)
	if err != nil {
		return nil, err
	}

	fields := append(f.hiddenFields(),
		required(web.Field{Name: "GameID", Label: "Game", Type: web.InputSelect, Error: errs.For("GameID"),
			Options: selectOptions(games, f.GameID, "(choose a game)")}),
		web.Field{Name: "VenueID", Label: "Venue", Type: web.InputSelect, Error: errs.For("VenueID"),
			Options: selectOptions(venues, f.VenueID, "(no venue)")},
		required(input("ScheduledDate", "Scheduled date", web.InputDateTime, f.ScheduledDate, errs)),
		input("ActualStartTime", "Actual start time", web.InputTime, f.ActualStartTime, errs),
		input("ActualEndTime", "Actual end time", web.InputTime, f.ActualEndTime, errs),
	)
	if f.recordID() != 0 {
		statuses := make([]web.Option, 0, len(models.SessionStatusNames()))
		for _, name := range models.SessionStatusNames() {
			statuses = append(statuses, web.Option{Value: name, Label: name, Selected: name == f.Status})
		}
		fields = append(fields, required(web.Field{Name: "Status", Label: "Status", Type: web.InputSelect,
			Error: errs.For("Status"), Options: statuses}))
	}
	return append(fields,
		input("Organizer", "Organizer", web.InputText, f.Organizer, errs),
		bounded(input("MaxParticipants", "Max participants", web.InputNumber, f.MaxParticipants, errs), "1", "1000"),
		input("Notes", "Notes", web.InputTextarea, f.Notes, errs),
		web.Field{Name: "selectedPlayers", Label: "Players", Type: web.InputChecklist,
			Options: checkOptions(players, f.SelectedPlayers)},
	), nil
}

// create always schedules the new session, whatever status was submitted.
func (r sessionResource) create(c *gin.Context, f *sessionForm) (uint, utils.FieldErrors, error) {
	f.Status = string(models.StatusScheduled)
	s, playerIDs, errs := f.parse()
	if errs != nil {
		return 0, errs, nil
	}
	if err := r.h.store.Sessions.CreateWithPlayers(c.Request.Context(), s, playerIDs); err != nil {
		return 0, nil, err
	}
	r.h.publish(c, events.SessionScheduled, s, playerIDs)
	return s.ID, nil, nil
}

func (r sessionResource) update(c *gin.Context, f *sessionForm) (utils.FieldErrors, error) {
	s, playerIDs, errs := f.parse()
	if errs != nil {
		return errs, nil
	}
	if err := r.h.store.Sessions.UpdateWithPlayers(c.Request.Context(), s, playerIDs); err != nil {
		return nil, err
	}
	r.h.publish(c, events.SessionUpdated, s, playerIDs)
	return nil, nil
}

func (r sessionResource) remove(c *gin.Context, id uint) (bool, error) {
	ctx := c.Request.Context()
	s, err := r.h.store.Sessions.Get(ctx, id, repository.None)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	removed, err := r.h.store.Sessions.Delete(ctx, id)
	if err != nil || !removed {
		return removed, err
	}
	r.h.publish(c, events.SessionDeleted, s, nil)
	return true, nil
}

// publish reports a committed session change. Failures are logged and counted only.
func (h *Handler) publish(c *gin.Context, kind string, s *models.GameSession, playerIDs []uint) {
	err := h.events.Publish(c.Request.Context(), events.NewSessionEvent(kind, s, playerIDs))
	monitoring.RecordSessionEvent(kind, err)
	if err != nil {
		utils.LogWarn("session event not published", map[string]interface{}{
			"event":      kind,
			"session_id": s.ID,
			"error":      err.Error(),
		})
	}
}
