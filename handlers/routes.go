package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gameclub/concurrent"
	"gameclub/db"
	"gameclub/monitoring"
	"gameclub/utils"
	"gameclub/web"
)

// RegisterRoutes mounts every page plus the health and metrics endpoints.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.home)
	r.GET("/healthz", h.health)
	r.GET("/metrics", monitoring.PrometheusHandler())

	register[*gameForm](r, gameResource{h})
	register[*categoryForm](r, categoryResource{h})
	register[*publisherForm](r, publisherResource{h})
	register[*equipmentForm](r, equipmentResource{h})
	register[*venueForm](r, venueResource{h})
	register[*playerForm](r, playerResource{h})
	register[*sessionForm](r, sessionResource{h})
	h.registerNested(r)
}

// home shows the section links and, when the counts load, a short summary of the club.
func (h *Handler) home(c *gin.Context) {
	var stats []web.DetailField
	s, err := concurrent.CalculateClubStats(c.Request.Context(), h.conn, time.Now())
	if err != nil {
		utils.LogWarn("club stats unavailable", map[string]interface{}{"error": err.Error()})
	} else {
		stats = []web.DetailField{
			{Label: "Games", Value: fmt.Sprint(s.Games), Href: "/Games"},
			{Label: "Players", Value: fmt.Sprint(s.Players), Href: "/Players"},
			{Label: "Venues", Value: fmt.Sprint(s.Venues), Href: "/Venues"},
			{Label: "Upcoming sessions", Value: fmt.Sprint(s.UpcomingSessions), Href: "/GameSessions"},
			{Label: "Completed plays", Value: fmt.Sprint(s.CompletedPlays)},
			{Label: "Reviews", Value: fmt.Sprint(s.Reviews)},
		}
		if s.Reviews > 0 {
			stats = append(stats, web.DetailField{Label: "Average rating", Value: fmt.Sprintf("%.1f/10", s.AverageRating)})
		}
	}

	render(c, http.StatusOK, web.HomePage(web.HomeView{
		Page: page(c, "Board game club", nil),
		Sections: []web.Link{
			{Text: "Games", Href: "/Games"},
			{Text: "Game sessions", Href: "/GameSessions"},
			{Text: "Players", Href: "/Players"},
			{Text: "Game categories", Href: "/GameCategories"},
			{Text: "Publishers", Href: "/Publishers"},
			{Text: "Equipment", Href: "/Equipments"},
			{Text: "Venues", Href: "/Venues"},
		},
		Stats: stats,
	}))
}

func (h *Handler) health(c *gin.Context) {
	if err := db.Ping(h.conn); err != nil {
		utils.LogError("health check failed", map[string]interface{}{"error": err.Error()})
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
