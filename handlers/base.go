// Package handlers implements the server-rendered CRUD pages of every club entity.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gameclub/cache"
	"gameclub/events"
	"gameclub/middleware"
	"gameclub/monitoring"
	"gameclub/repository"
	"gameclub/utils"
	"gameclub/web"
)

const (
	msgRecordNotFound  = "Record not found."
	msgDatabaseError   = "Could not save the changes to the database. Check the input and try again."
	msgUnexpectedError = "An unexpected error occurred. Please try again."
	msgConcurrency     = "The record was modified by another user after you opened it. Reload the page to see the current values."
	msgReferenced      = "This record cannot be deleted because other records still refer to it."

	msgCreated = "Record created successfully."
	msgUpdated = "Record updated successfully."
	msgDeleted = "Record deleted successfully."
)

// Handler serves every entity page over one store.
type Handler struct {
	store  *repository.Store
	conn   *gorm.DB
	events events.Publisher
}

func New(conn *gorm.DB, publisher events.Publisher) *Handler {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Handler{store: repository.New(conn), conn: conn, events: publisher}
}

// entityMeta names an entity in routes, titles, logs and metrics.
type entityMeta struct {
	Name   string // singular display name, e.g. "Game"
	Plural string
	Route  string // first path segment, e.g. "Games"
	Refs   string // cached reference list invalidated on writes
}

func (m entityMeta) listHref() string { return "/" + m.Route }

// handle runs fn and turns every outcome into a page. Not-found errors render
// the 404 page, everything else is logged and sent back to the list with a flash.
func handle(meta entityMeta, action string, fn func(c *gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				fail(c, meta, action, fmt.Errorf("panic: %v", r))
			}
		}()

		err := fn(c)
		switch {
		case err == nil:
		case errors.Is(err, repository.ErrNotFound):
			notFound(c, meta, action)
		default:
			fail(c, meta, action, err)
		}
	}
}

func fail(c *gin.Context, meta entityMeta, action string, err error) {
	fields := logFields(c, meta, action)
	fields["error"] = err.Error()
	utils.LogError("request failed", fields)
	monitoring.RecordOperation(meta.Name, action, "error")

	web.SetFlash(c, web.Error(msgUnexpectedError))
	target := meta.listHref()
	if action == "Index" {
		target = "/"
	}
	c.Redirect(http.StatusFound, target)
}

func notFound(c *gin.Context, meta entityMeta, action string) {
	utils.LogWarn("record not found", logFields(c, meta, action))
	monitoring.RecordOperation(meta.Name, action, "not_found")

	render(c, http.StatusNotFound, web.NotFoundPage(web.NotFoundView{
		Page:     page(c, meta.Name+" not found", web.Error(msgRecordNotFound)),
		Message:  "The requested " + meta.Name + " does not exist or has been deleted.",
		BackHref: meta.listHref(),
	}))
}

func logFields(c *gin.Context, meta entityMeta, action string) map[string]interface{} {
	fields := map[string]interface{}{
		"entity": meta.Name,
		"action": action,
	}
	if id := c.Param("id"); id != "" {
		fields["id"] = id
	}
	if rid, ok := c.Get(middleware.RequestIDKey); ok {
		fields[middleware.RequestIDKey] = rid
	}
	return fields
}

// succeed finishes a successful write: log, count, drop cached lists, flash and redirect.
func succeed(c *gin.Context, meta entityMeta, action string, id uint, text string) {
	fields := logFields(c, meta, action)
	fields["id"] = id
	utils.LogInfo(meta.Name+" "+action+" succeeded", fields)
	monitoring.RecordOperation(meta.Name, action, "ok")
	if meta.Refs != "" {
		if err := cache.InvalidateRefs(meta.Refs); err != nil {
			utils.LogWarn("reference cache invalidation failed", map[string]interface{}{"list": meta.Refs, "error": err.Error()})
		}
	}
	web.SetFlash(c, web.Success(text))
	c.Redirect(http.StatusFound, meta.listHref())
}

// parseID reads a positive id from the path. Anything else is reported as not found.
func parseID(c *gin.Context) (uint, error) {
	return parsePositive(c.Param("id"))
}

func parsePositive(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, repository.ErrNotFound
	}
	return uint(id), nil
}

// page builds the layout data. An inline flash wins over a pending cookie flash.
func page(c *gin.Context, title string, inline *web.Flash) web.Page {
	flash := inline
	if flash == nil {
		flash = web.PopFlash(c)
	}
	return web.Page{Title: title, Flash: flash}
}

// formPage is page plus a fresh CSRF token for the form it carries.
func formPage(c *gin.Context, title string, inline *web.Flash) web.Page {
	p := page(c, title, inline)
	p.CSRFToken = middleware.GenerateCSRFToken()
	return p
}

func render(c *gin.Context, status int, comp templ.Component) {
	templ.Handler(comp, templ.WithStatus(status)).ServeHTTP(c.Writer, c.Request)
}

func idText(id uint) string { return strconv.FormatUint(uint64(id), 10) }
