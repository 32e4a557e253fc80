package handlers

import (
	"time"

	"gameclub/models"
	"gameclub/web"
)

const (
	displayDateTime = "2006-01-02 15:04"
	displayDate     = "2006-01-02"
)

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDateTime)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDate)
}

func venueCell(v *models.Venue) web.Cell {
	if v == nil {
		return web.Cell{Text: "(no venue)"}
	}
	return web.Cell{Text: v.Name, Href: "/Venues/Details/" + idText(v.ID)}
}

func gameCell(g *models.Game) web.Cell {
	if g == nil {
		return web.Cell{}
	}
	return web.Cell{Text: g.Name, Href: "/Games/Details/" + idText(g.ID)}
}

func playerCell(p *models.Player) web.Cell {
	if p == nil {
		return web.Cell{}
	}
	return web.Cell{Text: p.Name, Href: "/Players/Details/" + idText(p.ID)}
}

func cellField(label string, cell web.Cell) web.DetailField {
	return web.DetailField{Label: label, Value: cell.Text, Href: cell.Href}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
