package web

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFlashSurvivesOneRequest(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/Games/Create", nil)
	SetFlash(c, Success("Game created."))

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != flashCookie {
		t.Fatalf("expected flash cookie, got %v", cookies)
	}

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/Games", nil)
	c2.Request.AddCookie(cookies[0])

	f := PopFlash(c2)
	if f == nil || f.Kind != FlashSuccess || f.Text != "Game created." {
		t.Fatalf("unexpected flash %+v", f)
	}
	cleared := w2.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Fatalf("flash cookie should be cleared, got %v", cleared)
	}
}

func TestPopFlashIgnoresGarbage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(&http.Cookie{Name: flashCookie, Value: "%%%"})

	if f := PopFlash(c); f != nil {
		t.Fatalf("expected nil flash, got %+v", f)
	}
}

func TestFormPageEscapesAndMarksErrors(t *testing.T) {
	view := FormView{
		Page:   Page{Title: "Create game", CSRFToken: "tok"},
		Action: "/Games/Create",
		Fields: []Field{
			{Name: "Name", Label: "Name", Type: InputText, Value: "<script>", Error: "Name is required"},
			{Name: "selectedCategories", Label: "Categories", Type: InputChecklist, Options: []Option{
				{Value: "1", Label: "Strategy", Selected: true},
				{Value: "2", Label: "Party"},
			}},
		},
		CancelHref: "/Games",
	}

	var buf bytes.Buffer
	if err := FormPage(view).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`name="csrf_token" value="tok"`,
		"&lt;script&gt;",
		"Name is required",
		`name="selectedCategories" value="1" checked`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, `value="2" checked`) {
		t.Error("unselected option rendered as checked")
	}
}

func TestListPageShowsFlashAndRows(t *testing.T) {
	view := ListView{
		Page:    Page{Title: "Publishers", Flash: Error("Record not found.")},
		Route:   "Publishers",
		Columns: []string{"Name"},
		Rows:    []Row{{ID: 4, Cells: []Cell{{Text: "Hobby World"}}}},
	}

	var buf bytes.Buffer
	if err := ListPage(view).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "flash-error") || !strings.Contains(out, "/Publishers/Edit/4") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
