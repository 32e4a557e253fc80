package web

// Page carries what every layout render needs.
type Page struct {
	Title     string
	Flash     *Flash
	CSRFToken string
}

type Link struct {
	Text string
	Href string
}

type Cell struct {
	Text string
	Href string
}

type Row struct {
	ID      uint
	Cells   []Cell
	Actions []Link
}

// ListView is an entity index table.
type ListView struct {
	Page
	Route   string
	Columns []string
	Rows    []Row
}

type DetailField struct {
	Label string
	Value string
	Href  string
}

// Section is a related-records table on a details page.
type Section struct {
	Title   string
	Columns []string
	Rows    []Row
	Empty   string
	AddLink *Link
}

type DetailsView struct {
	Page
	Route    string
	ID       uint
	Fields   []DetailField
	Sections []Section
}

// Field input types understood by the form template.
const (
	InputText         = "text"
	InputTextarea     = "textarea"
	InputNumber       = "number"
	InputDate         = "date"
	InputDateTime     = "datetime-local"
	InputTime         = "time"
	InputEmail        = "email"
	InputTel          = "tel"
	InputURL          = "url"
	InputSelect       = "select"
	InputChecklist    = "checklist"
	InputQuantityGrid = "quantities"
	InputHidden       = "hidden"
)

type Option struct {
	Value    string
	Label    string
	Selected bool

	// QuantityName and Quantity are used by InputQuantityGrid.
	QuantityName string
	Quantity     string
}

type Field struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Error    string
	Required bool
	Min      string
	Max      string
	Step     string
	Options  []Option
}

type FormView struct {
	Page
	Action     string
	Fields     []Field
	Errors     []string
	CancelHref string
}

type DeleteView struct {
	Page
	Action     string
	Fields     []DetailField
	Warning    string
	CancelHref string
}

type NotFoundView struct {
	Page
	Message  string
	BackHref string
}

type HomeView struct {
	Page
	Sections []Link
	Stats    []DetailField
}
