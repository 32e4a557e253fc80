package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gameclub/models"
	"gameclub/monitoring"
	"gameclub/repository"
	"gameclub/utils"
	"gameclub/web"
)

// form is a bound POST body. Every entity form embeds recordForm.
type form interface {
	recordID() uint
	clearRecord()
}

// recordForm carries the hidden identity fields of an edit form.
type recordForm struct {
	ID      string `form:"ID"`
	Version string `form:"Version"`
}

func (r *recordForm) recordID() uint {
	id, err := strconv.ParseUint(r.ID, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

func (r *recordForm) clearRecord() {
	r.ID = ""
	r.Version = ""
}

func (r *recordForm) record() models.Record {
	version, _ := strconv.Atoi(r.Version)
	return models.Record{ID: r.recordID(), Version: version}
}

func (r *recordForm) setRecord(rec models.Record) {
	r.ID = idText(rec.ID)
	r.Version = strconv.Itoa(rec.Version)
}

func (r *recordForm) hiddenFields() []web.Field {
	if r.ID == "" {
		return nil
	}
	return []web.Field{
		{Name: "ID", Type: web.InputHidden, Value: r.ID},
		{Name: "Version", Type: web.InputHidden, Value: r.Version},
	}
}

// resource is what an entity provides to get the six-operation page set.
type resource[F form] interface {
	meta() entityMeta

	index(c *gin.Context) ([]string, []web.Row, error)
	show(c *gin.Context, id uint) ([]web.DetailField, []web.Section, error)
	// summary describes the row on the delete confirmation page.
	summary(c *gin.Context, id uint) ([]web.DetailField, string, error)

	newForm() F
	blank(c *gin.Context) (F, error)
	load(c *gin.Context, id uint) (F, error)
	fields(c *gin.Context, f F, errs utils.FieldErrors) ([]web.Field, error)

	create(c *gin.Context, f F) (uint, utils.FieldErrors, error)
	update(c *gin.Context, f F) (utils.FieldErrors, error)
	remove(c *gin.Context, id uint) (bool, error)
}

// register mounts List, Details, Create, Edit and Delete for res.
func register[F form](r gin.IRouter, res resource[F]) {
	meta := res.meta()
	g := r.Group("/" + meta.Route)

	index := handle(meta, "Index", func(c *gin.Context) error { return listPage(c, res) })
	g.GET("", index)
	g.GET("/Index", index)

	details := handle(meta, "Details", func(c *gin.Context) error { return detailsPage(c, res) })
	g.GET("/Details", details)
	g.GET("/Details/:id", details)

	g.GET("/Create", handle(meta, "Create", func(c *gin.Context) error { return createPage(c, res) }))
	g.POST("/Create", handle(meta, "Create", func(c *gin.Context) error { return createSubmit(c, res) }))

	edit := handle(meta, "Edit", func(c *gin.Context) error { return editPage(c, res) })
	g.GET("/Edit", edit)
	g.GET("/Edit/:id", edit)
	g.POST("/Edit/:id", handle(meta, "Edit", func(c *gin.Context) error { return editSubmit(c, res) }))

	confirm := handle(meta, "Delete", func(c *gin.Context) error { return deletePage(c, res) })
	g.GET("/Delete", confirm)
	g.GET("/Delete/:id", confirm)
	g.POST("/Delete", handle(meta, "Delete", func(c *gin.Context) error { return deleteSubmit(c, res) }))
	g.POST("/Delete/:id", handle(meta, "Delete", func(c *gin.Context) error { return deleteSubmit(c, res) }))
}

func listPage[F form](c *gin.Context, res resource[F]) error {
	meta := res.meta()
	columns, rows, err := res.index(c)
	if err != nil {
		return err
	}
	render(c, http.StatusOK, web.ListPage(web.ListView{
		Page:    page(c, meta.Plural, nil),
		Route:   meta.Route,
		Columns: columns,
		Rows:    rows,
	}))
	return nil
}

func detailsPage[F form](c *gin.Context, res resource[F]) error {
	meta := res.meta()
	id, err := parseID(c)
	if err != nil {
		return err
	}
	fields, sections, err := res.show(c, id)
	if err != nil {
		return err
	}
	render(c, http.StatusOK, web.DetailsPage(web.DetailsView{
		Page:     page(c, meta.Name+" details", nil),
		Route:    meta.Route,
		ID:       id,
		Fields:   fields,
		Sections: sections,
	}))
	return nil
}

func createPage[F form](c *gin.Context, res resource[F]) error {
	f, err := res.blank(c)
	if err != nil {
		return err
	}
	return renderForm(c, res, f, http.StatusOK, nil, nil)
}

func createSubmit[F form](c *gin.Context, res resource[F]) error {
	meta := res.meta()
	f := res.newForm()
	if err := c.ShouldBind(f); err != nil {
		return renderForm(c, res, f, http.StatusUnprocessableEntity, unreadable(err), nil)
	}
	f.clearRecord()

	id, errs, err := res.create(c, f)
	switch {
	case len(errs) > 0:
		return invalid(c, res, f, "Create", errs)
	case err != nil:
		return persistFailed(c, res, f, "Create", err)
	}
	succeed(c, meta, "Create", id, msgCreated)
	return nil
}

func editPage[F form](c *gin.Context, res resource[F]) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	f, err := res.load(c, id)
	if err != nil {
		return err
	}
	return renderForm(c, res, f, http.StatusOK, nil, nil)
}

func editSubmit[F form](c *gin.Context, res resource[F]) error {
	meta := res.meta()
	id, err := parseID(c)
	if err != nil {
		return err
	}
	f := res.newForm()
	if err := c.ShouldBind(f); err != nil {
		return renderForm(c, res, f, http.StatusUnprocessableEntity, unreadable(err), nil)
	}
	if f.recordID() != id {
		return repository.ErrNotFound
	}

	errs, err := res.update(c, f)
	switch {
	case len(errs) > 0:
		return invalid(c, res, f, "Edit", errs)
	case errors.Is(err, repository.ErrNotFound):
		return err
	case errors.Is(err, repository.ErrConflict):
		utils.LogWarn("concurrent modification", logFields(c, meta, "Edit"))
		monitoring.RecordOperation(meta.Name, "Edit", "conflict")
		return renderForm(c, res, f, http.StatusConflict, nil, web.Error(msgConcurrency))
	case err != nil:
		return persistFailed(c, res, f, "Edit", err)
	}
	succeed(c, meta, "Edit", id, msgUpdated)
	return nil
}

func deletePage[F form](c *gin.Context, res resource[F]) error {
	meta := res.meta()
	id, err := parseID(c)
	if err != nil {
		return err
	}
	fields, warning, err := res.summary(c, id)
	if err != nil {
		return err
	}
	render(c, http.StatusOK, web.DeletePage(web.DeleteView{
		Page:       formPage(c, "Delete "+meta.Name, nil),
		Action:     "/" + meta.Route + "/Delete/" + idText(id),
		Fields:     fields,
		Warning:    warning,
		CancelHref: meta.listHref(),
	}))
	return nil
}

// deleteSubmit is idempotent: a row that is already gone redirects without a message.
func deleteSubmit[F form](c *gin.Context, res resource[F]) error {
	meta := res.meta()
	id, err := parseID(c)
	if err != nil {
		c.Redirect(http.StatusFound, meta.listHref())
		return nil
	}

	removed, err := res.remove(c, id)
	switch {
	case errors.Is(err, repository.ErrReferenced):
		fields := logFields(c, meta, "Delete")
		fields["error"] = err.Error()
		utils.LogWarn("delete blocked by related records", fields)
		monitoring.RecordOperation(meta.Name, "Delete", "restricted")
		web.SetFlash(c, web.Error(msgReferenced))
		c.Redirect(http.StatusFound, meta.listHref())
		return nil
	case err != nil:
		return err
	case !removed:
		c.Redirect(http.StatusFound, meta.listHref())
		return nil
	}
	succeed(c, meta, "Delete", id, msgDeleted)
	return nil
}

func invalid[F form](c *gin.Context, res resource[F], f F, action string, errs utils.FieldErrors) error {
	meta := res.meta()
	fields := logFields(c, meta, action)
	fields["errors"] = errs.Error()
	utils.LogDebug("validation failed", fields)
	monitoring.RecordOperation(meta.Name, action, "invalid")
	return renderForm(c, res, f, http.StatusUnprocessableEntity, errs, nil)
}

// persistFailed re-renders the submitted form with the database error message.
func persistFailed[F form](c *gin.Context, res resource[F], f F, action string, err error) error {
	meta := res.meta()
	fields := logFields(c, meta, action)
	fields["error"] = err.Error()
	utils.LogError("save failed", fields)
	monitoring.RecordOperation(meta.Name, action, "error")

	status := http.StatusInternalServerError
	if errors.Is(err, repository.ErrReferenced) {
		status = http.StatusUnprocessableEntity
	}
	return renderForm(c, res, f, status, nil, web.Error(msgDatabaseError))
}

func renderForm[F form](c *gin.Context, res resource[F], f F, status int, errs utils.FieldErrors, inline *web.Flash) error {
	meta := res.meta()
	fields, err := res.fields(c, f, errs)
	if err != nil {
		return err
	}

	title := "Create " + meta.Name
	action := "/" + meta.Route + "/Create"
	if id := f.recordID(); id != 0 {
		title = "Edit " + meta.Name
		action = "/" + meta.Route + "/Edit/" + idText(id)
	}

	render(c, status, web.FormPage(web.FormView{
		Page:       formPage(c, title, inline),
		Action:     action,
		Fields:     fields,
		Errors:     unattached(errs, fields),
		CancelHref: meta.listHref(),
	}))
	return nil
}

// unattached returns the messages that have no input of their own on the form.
func unattached(errs utils.FieldErrors, fields []web.Field) []string {
	names := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Type != web.InputHidden {
			names[f.Name] = true
		}
	}
	var out []string
	for _, e := range errs {
		if !names[e.Field] {
			out = append(out, e.Message)
		}
	}
	return out
}

func unreadable(err error) utils.FieldErrors {
	utils.LogDebug("form binding failed", map[string]interface{}{"error": err.Error()})
	return utils.FieldErrors{{Message: "The submitted form could not be read."}}
}
