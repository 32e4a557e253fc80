package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gameclub/db"
	"gameclub/events"
	"gameclub/middleware"
	"gameclub/models"
	"gameclub/repository"
	"gameclub/web"
)

const flashCookieName = "gameclub_flash"

type testApp struct {
	router *gin.Engine
	conn   *gorm.DB
	store  *repository.Store
	events *events.Recorder
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	conn, err := db.OpenInMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	rec := &events.Recorder{}
	r := gin.New()
	New(conn, rec).RegisterRoutes(r)
	return &testApp{router: r, conn: conn, store: repository.New(conn), events: rec}
}

func (a *testApp) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) post(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func flashFrom(t *testing.T, w *httptest.ResponseRecorder) (*http.Cookie, *web.Flash) {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name != flashCookieName || c.Value == "" {
			continue
		}
		raw, err := base64.RawURLEncoding.DecodeString(c.Value)
		if err != nil {
			t.Fatalf("decode flash: %v", err)
		}
		var f web.Flash
		if err := json.Unmarshal(raw, &f); err != nil {
			t.Fatalf("unmarshal flash: %v", err)
		}
		return c, &f
	}
	return nil, nil
}

func (a *testApp) mustCategory(t *testing.T, name string) uint {
	t.Helper()
	c := &models.GameCategory{Name: name}
	if err := a.store.Categories.Create(context.Background(), c); err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c.ID
}

func (a *testApp) mustEquipment(t *testing.T, name string) uint {
	t.Helper()
	e := &models.Equipment{Name: name, Quantity: 20}
	if err := a.store.Equipment.Create(context.Background(), e); err != nil {
		t.Fatalf("create equipment: %v", err)
	}
	return e.ID
}

func (a *testApp) mustPlayer(t *testing.T, name string) uint {
	t.Helper()
	p := &models.Player{Name: name, RegisteredDate: time.Now()}
	if err := a.store.Players.Create(context.Background(), p); err != nil {
		t.Fatalf("create player: %v", err)
	}
	return p.ID
}

func (a *testApp) mustGame(t *testing.T, name string, categoryIDs []uint, needs []models.GameEquipment) *models.Game {
	t.Helper()
	g := &models.Game{Name: name, MinPlayers: 2, MaxPlayers: 4, AverageDuration: 45}
	if err := a.store.Games.CreateWithAssociations(context.Background(), g, categoryIDs, needs); err != nil {
		t.Fatalf("create game: %v", err)
	}
	return g
}

func gameValues(name string) url.Values {
	return url.Values{
		"Name":            {name},
		"MinPlayers":      {"2"},
		"MaxPlayers":      {"4"},
		"AverageDuration": {"60"},
	}
}

func countRows(t *testing.T, conn *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := conn.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestPagesRender(t *testing.T) {
	app := newTestApp(t)
	g := app.mustGame(t, "Azul", nil, nil)

	for _, path := range []string{
		"/",
		"/Games", "/Games/Index", "/Games/Create", "/Games/Details/" + idText(g.ID), "/Games/Edit/" + idText(g.ID), "/Games/Delete/" + idText(g.ID),
		"/GameCategories", "/GameCategories/Create",
		"/Publishers", "/Publishers/Create",
		"/Equipments", "/Equipments/Create",
		"/Venues", "/Venues/Create",
		"/Players", "/Players/Create",
		"/GameSessions", "/GameSessions/Create",
		"/GameReviews/Create?gameId=" + idText(g.ID),
	} {
		if w := app.get(path); w.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, w.Code)
		}
	}
}

func TestCreateGameRejectsMaxPlayersBelowMin(t *testing.T) {
	app := newTestApp(t)

	values := gameValues("Catan")
	values.Set("MinPlayers", "4")
	values.Set("MaxPlayers", "2")
	w := app.post("/Games/Create", values)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "MaxPlayers must be greater than or equal to MinPlayers") {
		t.Fatalf("expected max players message in body:\n%s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `value="Catan"`) {
		t.Fatal("expected submitted values to be kept")
	}
	if n := countRows(t, app.conn, &models.Game{}); n != 0 {
		t.Fatalf("expected no game rows, got %d", n)
	}
}

func TestCreateGameRequiresName(t *testing.T) {
	app := newTestApp(t)

	w := app.post("/Games/Create", gameValues(""))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Name is required") {
		t.Fatal("expected required message")
	}
	if n := countRows(t, app.conn, &models.Game{}); n != 0 {
		t.Fatalf("expected no game rows, got %d", n)
	}
}

func TestCreateGameStoresAssociations(t *testing.T) {
	app := newTestApp(t)
	c1 := app.mustCategory(t, "Strategy")
	app.mustCategory(t, "Family")
	c3 := app.mustCategory(t, "Party")
	app.mustEquipment(t, "Dice")
	e2 := app.mustEquipment(t, "Timer")

	values := gameValues("Codenames")
	values["selectedCategories"] = []string{idText(c1), idText(c3)}
	values["selectedEquipment"] = []string{idText(e2)}
	values.Set("equipmentQuantities["+idText(e2)+"]", "5")

	w := app.post("/Games/Create", values)
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/Games" {
		t.Fatalf("expected redirect to /Games, got %d %q", w.Code, w.Header().Get("Location"))
	}
	if _, f := flashFrom(t, w); f == nil || f.Kind != web.FlashSuccess {
		t.Fatalf("expected success flash, got %+v", f)
	}

	games, err := app.store.Games.List(context.Background(), repository.None)
	if err != nil || len(games) != 1 {
		t.Fatalf("expected one game, got %d (%v)", len(games), err)
	}
	ids, _ := app.store.Games.CategoryIDs(context.Background(), games[0].ID)
	if !reflect.DeepEqual(ids, []uint{c1, c3}) {
		t.Fatalf("expected categories %v, got %v", []uint{c1, c3}, ids)
	}
	needs, _ := app.store.Games.EquipmentNeeds(context.Background(), games[0].ID)
	if len(needs) != 1 || needs[0].EquipmentID != e2 || needs[0].RequiredQuantity != 5 {
		t.Fatalf("unexpected equipment needs %+v", needs)
	}
}

func TestCreateGameDefaultsQuantityToOne(t *testing.T) {
	app := newTestApp(t)
	e := app.mustEquipment(t, "Sand timer")

	values := gameValues("Pictionary")
	values["selectedEquipment"] = []string{idText(e)}
	if w := app.post("/Games/Create", values); w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}

	games, _ := app.store.Games.List(context.Background(), repository.None)
	needs, _ := app.store.Games.EquipmentNeeds(context.Background(), games[0].ID)
	if len(needs) != 1 || needs[0].RequiredQuantity != 1 {
		t.Fatalf("expected quantity 1, got %+v", needs)
	}
}

func TestCreateGameRejectsQuantityBelowOne(t *testing.T) {
	app := newTestApp(t)
	e := app.mustEquipment(t, "Cards")

	for _, qty := range []string{"0", "-5", "1001"} {
		values := gameValues("Hanabi")
		values["selectedEquipment"] = []string{idText(e)}
		values.Set("equipmentQuantities["+idText(e)+"]", qty)

		w := app.post("/Games/Create", values)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("quantity %s: expected 422, got %d", qty, w.Code)
		}
		if !strings.Contains(w.Body.String(), "RequiredQuantity must be") {
			t.Fatalf("quantity %s: expected quantity message in body", qty)
		}
	}
	if n := countRows(t, app.conn, &models.Game{}); n != 0 {
		t.Fatalf("expected no game rows, got %d", n)
	}
	if n := countRows(t, app.conn, &models.GameEquipment{}); n != 0 {
		t.Fatalf("expected no equipment rows, got %d", n)
	}
}

func TestEditGameReplacesCategories(t *testing.T) {
	app := newTestApp(t)
	c1 := app.mustCategory(t, "Strategy")
	c2 := app.mustCategory(t, "Family")
	c3 := app.mustCategory(t, "Party")
	g := app.mustGame(t, "Dixit", []uint{c1, c3}, nil)

	values := gameValues("Dixit Odyssey")
	values.Set("ID", idText(g.ID))
	values.Set("Version", "1")
	values["selectedCategories"] = []string{idText(c2)}

	w := app.post("/Games/Edit/"+idText(g.ID), values)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d:\n%s", w.Code, w.Body.String())
	}

	ids, _ := app.store.Games.CategoryIDs(context.Background(), g.ID)
	if !reflect.DeepEqual(ids, []uint{c2}) {
		t.Fatalf("expected only %d, got %v", c2, ids)
	}
	stored, _ := app.store.Games.Get(context.Background(), g.ID, repository.None)
	if stored.Name != "Dixit Odyssey" || stored.Version != 2 {
		t.Fatalf("unexpected stored game %+v", stored)
	}
}

func TestEditPathMismatchIsNotFound(t *testing.T) {
	app := newTestApp(t)
	g := app.mustGame(t, "Azul", nil, nil)

	values := gameValues("Azul")
	values.Set("ID", idText(g.ID+1))
	values.Set("Version", "1")

	w := app.post("/Games/Edit/"+idText(g.ID), values)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), msgRecordNotFound) {
		t.Fatal("expected not found message")
	}
}

func TestEditStaleVersionReportsConflict(t *testing.T) {
	app := newTestApp(t)
	g := app.mustGame(t, "Patchwork", nil, nil)

	g.Name = "Patchwork Doodle"
	if err := app.store.Games.Update(context.Background(), g); err != nil {
		t.Fatalf("concurrent update: %v", err)
	}

	values := gameValues("Patchwork Express")
	values.Set("ID", idText(g.ID))
	values.Set("Version", "1")
	w := app.post("/Games/Edit/"+idText(g.ID), values)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "modified by another user") {
		t.Fatal("expected concurrency message")
	}
	stored, _ := app.store.Games.Get(context.Background(), g.ID, repository.None)
	if stored.Name != "Patchwork Doodle" {
		t.Fatalf("stale edit must not be written, got %q", stored.Name)
	}
}

func TestEditDeletedGameIsNotFound(t *testing.T) {
	app := newTestApp(t)
	g := app.mustGame(t, "Splendor", nil, nil)
	if _, err := app.store.Games.Delete(context.Background(), g.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	values := gameValues("Splendor")
	values.Set("ID", idText(g.ID))
	values.Set("Version", "1")
	if w := app.post("/Games/Edit/"+idText(g.ID), values); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDetailsNotFound(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/Games/Details/999", "/Games/Details/abc", "/Games/Details/0", "/Games/Details", "/Venues/Edit/42"} {
		if w := app.get(path); w.Code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, w.Code)
		}
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	app := newTestApp(t)
	p := &models.Publisher{Name: "Hobby World"}
	if err := app.store.Publishers.Create(context.Background(), p); err != nil {
		t.Fatalf("create publisher: %v", err)
	}

	first := app.post("/Publishers/Delete/"+idText(p.ID), url.Values{})
	if first.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", first.Code)
	}
	if _, f := flashFrom(t, first); f == nil || f.Kind != web.FlashSuccess {
		t.Fatalf("expected success flash, got %+v", f)
	}

	second := app.post("/Publishers/Delete/"+idText(p.ID), url.Values{})
	if second.Code != http.StatusFound || second.Header().Get("Location") != "/Publishers" {
		t.Fatalf("expected silent redirect, got %d %q", second.Code, second.Header().Get("Location"))
	}
	if _, f := flashFrom(t, second); f != nil {
		t.Fatalf("expected no flash on repeated delete, got %+v", f)
	}
}

func TestDeletePublisherKeepsGames(t *testing.T) {
	app := newTestApp(t)
	p := &models.Publisher{Name: "Days of Wonder"}
	if err := app.store.Publishers.Create(context.Background(), p); err != nil {
		t.Fatalf("create publisher: %v", err)
	}
	g := &models.Game{Name: "Ticket to Ride", MinPlayers: 2, MaxPlayers: 5, AverageDuration: 60, PublisherID: &p.ID}
	if err := app.store.Games.Create(context.Background(), g); err != nil {
		t.Fatalf("create game: %v", err)
	}

	if w := app.post("/Publishers/Delete/"+idText(p.ID), url.Values{}); w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	stored, err := app.store.Games.Get(context.Background(), g.ID, repository.None)
	if err != nil || stored.PublisherID != nil {
		t.Fatalf("expected game without publisher, got %+v (%v)", stored, err)
	}
}

func TestDeleteReferencedEquipmentShowsError(t *testing.T) {
	app := newTestApp(t)
	e := app.mustEquipment(t, "Meeples")
	app.mustGame(t, "Carcassonne", nil, []models.GameEquipment{{EquipmentID: e, RequiredQuantity: 8}})

	w := app.post("/Equipments/Delete/"+idText(e), url.Values{})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/Equipments" {
		t.Fatalf("expected redirect to list, got %d %q", w.Code, w.Header().Get("Location"))
	}
	cookie, f := flashFrom(t, w)
	if f == nil || f.Kind != web.FlashError || f.Text != msgReferenced {
		t.Fatalf("expected referenced flash, got %+v", f)
	}
	if ok, _ := app.store.Equipment.Exists(context.Background(), e); !ok {
		t.Fatal("referenced equipment must not be deleted")
	}

	list := app.get("/Equipments", cookie)
	if !strings.Contains(list.Body.String(), msgReferenced) {
		t.Fatal("expected the flash on the next page")
	}
}

func TestCreateSessionSchedulesAndNormalizesTimes(t *testing.T) {
	app := newTestApp(t)
	g := app.mustGame(t, "Root", nil, nil)
	p := app.mustPlayer(t, "Anna")

	w := app.post("/GameSessions/Create", url.Values{
		"GameID":          {idText(g.ID)},
		"ScheduledDate":   {"2026-05-01T19:00"},
		"ActualStartTime": {"2020-01-01T18:30"},
		"ActualEndTime":   {"21:15"},
		"Status":          {"Completed"},
		"selectedPlayers": {idText(p), idText(p)},
	})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/GameSessions" {
		t.Fatalf("expected redirect, got %d:\n%s", w.Code, w.Body.String())
	}

	sessions, err := app.store.Sessions.List(context.Background(), repository.None)
	if err != nil || len(sessions) != 1 {
		t.Fatalf("expected one session, got %d (%v)", len(sessions), err)
	}
	s := sessions[0]
	if s.Status != models.StatusScheduled {
		t.Fatalf("expected Scheduled, got %q", s.Status)
	}
	start := s.ActualStartTime.In(time.Local)
	if !start.Equal(time.Date(2026, 5, 1, 18, 30, 0, 0, time.Local)) {
		t.Fatalf("expected start on the scheduled day, got %s", start)
	}
	end := s.ActualEndTime.In(time.Local)
	if !end.Equal(time.Date(2026, 5, 1, 21, 15, 0, 0, time.Local)) {
		t.Fatalf("expected end on the scheduled day, got %s", end)
	}

	ids, _ := app.store.Sessions.PlayerIDs(context.Background(), s.ID)
	if !reflect.DeepEqual(ids, []uint{p, p}) {
		t.Fatalf("expected repeated player kept, got %v", ids)
	}
	if len(app.events.Events) != 1 || app.events.Events[0].Type != events.SessionScheduled {
		t.Fatalf("expected one scheduled event, got %+v", app.events.Events)
	}
}

func TestEditSessionChangesStatusAndPlayers(t *testing.T) {
	app := newTestApp(t)
	g := app.mustGame(t, "Brass", nil, nil)
	p1 := app.mustPlayer(t, "Boris")
	p2 := app.mustPlayer(t, "Vera")
	s := &models.GameSession{GameID: g.ID, ScheduledDate: time.Date(2026, 6, 1, 18, 0, 0, 0, time.Local), Status: models.StatusScheduled}
	if err := app.store.Sessions.CreateWithPlayers(context.Background(), s, []uint{p1}); err != nil {
		t.Fatalf("create session: %v", err)
	}

	w := app.post("/GameSessions/Edit/"+idText(s.ID), url.Values{
		"ID":              {idText(s.ID)},
		"Version":         {"1"},
		"GameID":          {idText(g.ID)},
		"ScheduledDate":   {"2026-06-01T18:00"},
		"Status":          {"Completed"},
		"selectedPlayers": {idText(p2)},
	})
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d:\n%s", w.Code, w.Body.String())
	}

	stored, _ := app.store.Sessions.Get(context.Background(), s.ID, repository.None)
	if stored.Status != models.StatusCompleted {
		t.Fatalf("expected Completed, got %q", stored.Status)
	}
	ids, _ := app.store.Sessions.PlayerIDs(context.Background(), s.ID)
	if !reflect.DeepEqual(ids, []uint{p2}) {
		t.Fatalf("expected players replaced, got %v", ids)
	}

	bad := app.post("/GameSessions/Edit/"+idText(s.ID), url.Values{
		"ID":            {idText(s.ID)},
		"Version":       {"2"},
		"GameID":        {idText(g.ID)},
		"ScheduledDate": {"2026-06-01T18:00"},
		"Status":        {"Postponed"},
	})
	if bad.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown status, got %d", bad.Code)
	}
}

func TestDeleteGameWithSessionsIsRestricted(t *testing.T) {
	app := newTestApp(t)
	g := app.mustGame(t, "Scythe", nil, nil)
	s := &models.GameSession{GameID: g.ID, ScheduledDate: time.Now(), Status: models.StatusScheduled}
	if err := app.store.Sessions.Create(context.Background(), s); err != nil {
		t.Fatalf("create session: %v", err)
	}

	w := app.post("/Games/Delete/"+idText(g.ID), url.Values{})
	if _, f := flashFrom(t, w); f == nil || f.Kind != web.FlashError {
		t.Fatalf("expected error flash, got %+v", f)
	}
	if ok, _ := app.store.Games.Exists(context.Background(), g.ID); !ok {
		t.Fatal("game with sessions must survive")
	}

	if w := app.post("/GameSessions/Delete/"+idText(s.ID), url.Values{}); w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if len(app.events.Events) != 1 || app.events.Events[0].Type != events.SessionDeleted {
		t.Fatalf("expected deleted event, got %+v", app.events.Events)
	}
}

func TestReviewLifecycle(t *testing.T) {
	app := newTestApp(t)
	g := app.mustGame(t, "Wingspan", nil, nil)
	p := app.mustPlayer(t, "Ilya")

	invalid := app.post("/GameReviews/Create", url.Values{
		"GameID": {idText(g.ID)}, "PlayerID": {idText(p)}, "Rating": {"11"},
	})
	if invalid.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for rating 11, got %d", invalid.Code)
	}

	w := app.post("/GameReviews/Create", url.Values{
		"GameID": {idText(g.ID)}, "PlayerID": {idText(p)}, "Rating": {"9"}, "ReviewText": {"Beautiful"},
	})
	want := "/Games/Details/" + idText(g.ID)
	if w.Code != http.StatusFound || w.Header().Get("Location") != want {
		t.Fatalf("expected redirect to %s, got %d %q", want, w.Code, w.Header().Get("Location"))
	}

	details := app.get(want)
	if !strings.Contains(details.Body.String(), "Beautiful") {
		t.Fatal("expected review on game details")
	}

	var rv models.GameReview
	if err := app.conn.First(&rv).Error; err != nil {
		t.Fatalf("load review: %v", err)
	}
	if d := app.post("/GameReviews/Delete/"+idText(rv.ID), url.Values{}); d.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", d.Code)
	}
	if n := countRows(t, app.conn, &models.GameReview{}); n != 0 {
		t.Fatalf("expected review deleted, got %d", n)
	}
}

func TestAchievementCreate(t *testing.T) {
	app := newTestApp(t)
	p := app.mustPlayer(t, "Olga")

	w := app.post("/Achievements/Create", url.Values{
		"PlayerID": {idText(p)}, "Name": {"First win"}, "Category": {"Victory"}, "AchievedDate": {"2026-03-14"},
	})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/Players/Details/"+idText(p) {
		t.Fatalf("expected redirect to player, got %d %q", w.Code, w.Header().Get("Location"))
	}
	if n := countRows(t, app.conn, &models.Achievement{}); n != 1 {
		t.Fatalf("expected one achievement, got %d", n)
	}
	if missing := app.get("/Achievements/Create?playerId=999"); missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown player, got %d", missing.Code)
	}
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	if w := app.get("/healthz"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestUnexpectedErrorsRedirectWithFlash(t *testing.T) {
	app := newTestApp(t)
	sqlDB, err := app.conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	_ = sqlDB.Close()

	details := app.get("/Games/Details/1")
	if details.Code != http.StatusFound || details.Header().Get("Location") != "/Games" {
		t.Fatalf("expected redirect to /Games, got %d %q", details.Code, details.Header().Get("Location"))
	}
	if _, f := flashFrom(t, details); f == nil || f.Kind != web.FlashError || f.Text != msgUnexpectedError {
		t.Fatalf("expected unexpected error flash, got %+v", f)
	}

	list := app.get("/Games")
	if list.Code != http.StatusFound || list.Header().Get("Location") != "/" {
		t.Fatalf("expected failing list to redirect home, got %d %q", list.Code, list.Header().Get("Location"))
	}
	if _, f := flashFrom(t, list); f == nil || f.Text != msgUnexpectedError {
		t.Fatalf("expected unexpected error flash, got %+v", f)
	}
}

func TestPanicsAreRecovered(t *testing.T) {
	r := gin.New()
	meta := entityMeta{Name: "Game", Plural: "Games", Route: "Games"}
	r.GET("/Games/Details/:id", handle(meta, "Details", func(*gin.Context) error {
		panic("nil map write")
	}))

	req := httptest.NewRequest(http.MethodGet, "/Games/Details/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/Games" {
		t.Fatalf("expected redirect to /Games, got %d %q", w.Code, w.Header().Get("Location"))
	}
	if _, f := flashFrom(t, w); f == nil || f.Text != msgUnexpectedError {
		t.Fatalf("expected unexpected error flash, got %+v", f)
	}
}

func TestCSRFTokensOnlyForForms(t *testing.T) {
	app := newTestApp(t)
	g := app.mustGame(t, "Concordia", nil, nil)

	before := middleware.ActiveCSRFTokens()
	for _, path := range []string{"/", "/Games", "/Games/Details/" + idText(g.ID), "/Games/Details/999"} {
		app.get(path)
	}
	if got := middleware.ActiveCSRFTokens(); got != before {
		t.Fatalf("read-only pages issued %d tokens", got-before)
	}

	for _, path := range []string{"/Games/Create", "/Games/Delete/" + idText(g.ID)} {
		w := app.get(path)
		if !strings.Contains(w.Body.String(), `name="csrf_token" value="`) {
			t.Fatalf("GET %s: expected a csrf field", path)
		}
	}
	if got := middleware.ActiveCSRFTokens(); got != before+2 {
		t.Fatalf("expected two new tokens, got %d", got-before)
	}
}
