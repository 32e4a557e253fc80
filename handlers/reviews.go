package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gameclub/models"
	"gameclub/monitoring"
	"gameclub/repository"
	"gameclub/utils"
	"gameclub/web"
)

var (
	reviewMeta      = entityMeta{Name: "Review", Plural: "Reviews", Route: "Games"}
	achievementMeta = entityMeta{Name: "Achievement", Plural: "Achievements", Route: "Players"}
)

type reviewForm struct {
	GameID     string `form:"GameID"`
	PlayerID   string `form:"PlayerID"`
	Rating     string `form:"Rating"`
	ReviewText string `form:"ReviewText"`
}

func (f *reviewForm) parse() (*models.GameReview, utils.FieldErrors) {
	var p formParser
	rv := &models.GameReview{
		GameID:     p.requiredUint("GameID", "Game", f.GameID),
		PlayerID:   p.requiredUint("PlayerID", "Player", f.PlayerID),
		Rating:     p.requiredInt("Rating", "Rating", f.Rating),
		ReviewText: strings.TrimSpace(f.ReviewText),
		ReviewDate: time.Now(),
	}
	return rv, p.merge(utils.ValidateStruct(rv))
}

func (h *Handler) reviewCreatePage(c *gin.Context) error {
	gameID, err := parsePositive(c.Query("gameId"))
	if err != nil {
		return err
	}
	return h.renderReviewForm(c, http.StatusOK, &reviewForm{GameID: idText(gameID)}, nil, nil)
}

func (h *Handler) reviewCreate(c *gin.Context) error {
	var f reviewForm
	if err := c.ShouldBind(&f); err != nil {
		return h.renderReviewForm(c, http.StatusUnprocessableEntity, &f, unreadable(err), nil)
	}
	rv, errs := f.parse()
	if errs != nil {
		monitoring.RecordOperation(reviewMeta.Name, "Create", "invalid")
		return h.renderReviewForm(c, http.StatusUnprocessableEntity, &f, errs, nil)
	}
	if err := h.store.Reviews.Create(c.Request.Context(), rv); err != nil {
		fields := logFields(c, reviewMeta, "Create")
		fields["error"] = err.Error()
		utils.LogError("save failed", fields)
		monitoring.RecordOperation(reviewMeta.Name, "Create", "error")
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrReferenced) {
			status = http.StatusUnprocessableEntity
		}
		return h.renderReviewForm(c, status, &f, nil, web.Error(msgDatabaseError))
	}
	nested(c, reviewMeta, "Create", rv.ID, "/Games/Details/"+idText(rv.GameID), msgCreated)
	return nil
}

func (h *Handler) renderReviewForm(c *gin.Context, status int, f *reviewForm, errs utils.FieldErrors, inline *web.Flash) error {
	gameID, err := parsePositive(f.GameID)
	if err != nil {
		return err
	}
	game, err := h.store.Games.Get(c.Request.Context(), gameID, repository.None)
	if err != nil {
		return err
	}
	players, err := h.playerRefs(c)
	if err != nil {
		return err
	}

	fields := []web.Field{
		{Name: "GameID", Type: web.InputHidden, Value: f.GameID},
		required(web.Field{Name: "PlayerID", Label: "Player", Type: web.InputSelect, Error: errs.For("PlayerID"),
			Options: selectOptions(players, f.PlayerID, "(choose a player)")}),
		required(bounded(input("Rating", "Rating (1-10)", web.InputNumber, f.Rating, errs), "1", "10")),
		input("ReviewText", "Review", web.InputTextarea, f.ReviewText, errs),
	}
	back := "/Games/Details/" + idText(game.ID)
	render(c, status, web.FormPage(web.FormView{
		Page:       formPage(c, "Review "+game.Name, inline),
		Action:     "/GameReviews/Create",
		Fields:     fields,
		Errors:     unattached(errs, fields),
		CancelHref: back,
	}))
	return nil
}

func (h *Handler) reviewDeletePage(c *gin.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	rv, err := h.store.Reviews.Get(c.Request.Context(), id)
	if err != nil {
		return err
	}
	render(c, http.StatusOK, web.DeletePage(web.DeleteView{
		Page:   formPage(c, "Delete review", nil),
		Action: "/GameReviews/Delete/" + idText(rv.ID),
		Fields: []web.DetailField{
			cellField("Game", gameCell(rv.Game)),
			cellField("Player", playerCell(rv.Player)),
			{Label: "Rating", Value: intText(rv.Rating) + "/10"},
			{Label: "Review", Value: rv.ReviewText},
		},
		CancelHref: "/Games/Details/" + idText(rv.GameID),
	}))
	return nil
}

func (h *Handler) reviewDelete(c *gin.Context) error {
	id, err := parseID(c)
	if err != nil {
		c.Redirect(http.StatusFound, reviewMeta.listHref())
		return nil
	}
	ctx := c.Request.Context()
	rv, err := h.store.Reviews.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		c.Redirect(http.StatusFound, reviewMeta.listHref())
		return nil
	}
	if err != nil {
		return err
	}
	removed, err := h.store.Reviews.Delete(ctx, id)
	if err != nil {
		return err
	}
	target := "/Games/Details/" + idText(rv.GameID)
	if !removed {
		c.Redirect(http.StatusFound, target)
		return nil
	}
	nested(c, reviewMeta, "Delete", id, target, msgDeleted)
	return nil
}

type achievementForm struct {
	PlayerID     string `form:"PlayerID"`
	Name         string `form:"Name"`
	Description  string `form:"Description"`
	AchievedDate string `form:"AchievedDate"`
	Category     string `form:"Category"`
}

var achievementCategories = []string{"Victory", "Participation", "Special"}

func (f *achievementForm) parse() (*models.Achievement, utils.FieldErrors) {
	var p formParser
	a := &models.Achievement{
		PlayerID:     p.requiredUint("PlayerID", "Player", f.PlayerID),
		Name:         strings.TrimSpace(f.Name),
		Description:  strings.TrimSpace(f.Description),
		AchievedDate: p.optionalDay("AchievedDate", "Achieved", f.AchievedDate, today()),
		Category:     strings.TrimSpace(f.Category),
	}
	return a, p.merge(utils.ValidateStruct(a))
}

func (h *Handler) achievementCreatePage(c *gin.Context) error {
	playerID, err := parsePositive(c.Query("playerId"))
	if err != nil {
		return err
	}
	f := &achievementForm{PlayerID: idText(playerID), AchievedDate: today().Format(dateLayout)}
	return h.renderAchievementForm(c, http.StatusOK, f, nil, nil)
}

func (h *Handler) achievementCreate(c *gin.Context) error {
	var f achievementForm
	if err := c.ShouldBind(&f); err != nil {
		return h.renderAchievementForm(c, http.StatusUnprocessableEntity, &f, unreadable(err), nil)
	}
	a, errs := f.parse()
	if errs != nil {
		monitoring.RecordOperation(achievementMeta.Name, "Create", "invalid")
		return h.renderAchievementForm(c, http.StatusUnprocessableEntity, &f, errs, nil)
	}
	if err := h.store.Achievements.Create(c.Request.Context(), a); err != nil {
		fields := logFields(c, achievementMeta, "Create")
		fields["error"] = err.Error()
		utils.LogError("save failed", fields)
		monitoring.RecordOperation(achievementMeta.Name, "Create", "error")
		return h.renderAchievementForm(c, http.StatusInternalServerError, &f, nil, web.Error(msgDatabaseError))
	}
	nested(c, achievementMeta, "Create", a.ID, "/Players/Details/"+idText(a.PlayerID), msgCreated)
	return nil
}

func (h *Handler) renderAchievementForm(c *gin.Context, status int, f *achievementForm, errs utils.FieldErrors, inline *web.Flash) error {
	playerID, err := parsePositive(f.PlayerID)
	if err != nil {
		return err
	}
	player, err := h.store.Players.Get(c.Request.Context(), playerID, repository.None)
	if err != nil {
		return err
	}

	categories := make([]web.Option, 0, len(achievementCategories)+1)
	categories = append(categories, web.Option{Value: "", Label: "(none)", Selected: f.Category == ""})
	for _, name := range achievementCategories {
		categories = append(categories, web.Option{Value: name, Label: name, Selected: name == f.Category})
	}

	fields := []web.Field{
		{Name: "PlayerID", Type: web.InputHidden, Value: f.PlayerID},
		required(input("Name", "Name", web.InputText, f.Name, errs)),
		{Name: "Category", Label: "Category", Type: web.InputSelect, Error: errs.For("Category"), Options: categories},
		input("AchievedDate", "Achieved", web.InputDate, f.AchievedDate, errs),
		input("Description", "Description", web.InputTextarea, f.Description, errs),
	}
	render(c, status, web.FormPage(web.FormView{
		Page:       formPage(c, "Achievement for "+player.Name, inline),
		Action:     "/Achievements/Create",
		Fields:     fields,
		Errors:     unattached(errs, fields),
		CancelHref: "/Players/Details/" + idText(player.ID),
	}))
	return nil
}

func (h *Handler) achievementDeletePage(c *gin.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	a, err := h.store.Achievements.Get(c.Request.Context(), id)
	if err != nil {
		return err
	}
	render(c, http.StatusOK, web.DeletePage(web.DeleteView{
		Page:   formPage(c, "Delete achievement", nil),
		Action: "/Achievements/Delete/" + idText(a.ID),
		Fields: []web.DetailField{
			cellField("Player", playerCell(a.Player)),
			{Label: "Name", Value: a.Name},
			{Label: "Category", Value: a.Category},
			{Label: "Achieved", Value: formatDate(a.AchievedDate)},
		},
		CancelHref: "/Players/Details/" + idText(a.PlayerID),
	}))
	return nil
}

func (h *Handler) achievementDelete(c *gin.Context) error {
	id, err := parseID(c)
	if err != nil {
		c.Redirect(http.StatusFound, achievementMeta.listHref())
		return nil
	}
	ctx := c.Request.Context()
	a, err := h.store.Achievements.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		c.Redirect(http.StatusFound, achievementMeta.listHref())
		return nil
	}
	if err != nil {
		return err
	}
	removed, err := h.store.Achievements.Delete(ctx, id)
	if err != nil {
		return err
	}
	target := "/Players/Details/" + idText(a.PlayerID)
	if !removed {
		c.Redirect(http.StatusFound, target)
		return nil
	}
	nested(c, achievementMeta, "Delete", id, target, msgDeleted)
	return nil
}

// nested finishes a write on a child record and returns to its parent page.
func nested(c *gin.Context, meta entityMeta, action string, id uint, target, text string) {
	fields := logFields(c, meta, action)
	fields["id"] = id
	utils.LogInfo(meta.Name+" "+action+" succeeded", fields)
	monitoring.RecordOperation(meta.Name, action, "ok")
	web.SetFlash(c, web.Success(text))
	c.Redirect(http.StatusFound, target)
}

func (h *Handler) registerNested(r gin.IRouter) {
	reviews := r.Group("/GameReviews")
	reviews.GET("/Create", handle(reviewMeta, "Create", h.reviewCreatePage))
	reviews.POST("/Create", handle(reviewMeta, "Create", h.reviewCreate))
	reviews.GET("/Delete/:id", handle(reviewMeta, "Delete", h.reviewDeletePage))
	reviews.POST("/Delete/:id", handle(reviewMeta, "Delete", h.reviewDelete))

	achievements := r.Group("/Achievements")
	achievements.GET("/Create", handle(achievementMeta, "Create", h.achievementCreatePage))
	achievements.POST("/Create", handle(achievementMeta, "Create", h.achievementCreate))
	achievements.GET("/Delete/:id", handle(achievementMeta, "Delete", h.achievementDeletePage))
	achievements.POST("/Delete/:id", handle(achievementMeta, "Delete", h.achievementDelete))
}
