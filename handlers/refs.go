package handlers

import (
	"errors"
	"sort"

	"github.com/gin-gonic/gin"

	"gameclub/cache"
	"gameclub/monitoring"
	"gameclub/repository"
	"gameclub/utils"
	"gameclub/web"
)

// ref is one entry of a dropdown or checklist.
type ref struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// refs returns the named reference list from Redis, loading and caching it on a miss.
func refs(name string, load func() ([]ref, error)) ([]ref, error) {
	var cached []ref
	err := cache.GetRefs(name, &cached)
	switch {
	case err == nil:
		monitoring.RecordCacheLookup(name, "hit")
		return cached, nil
	case errors.Is(err, cache.ErrUnavailable):
		monitoring.RecordCacheLookup(name, "bypass")
		return load()
	case !errors.Is(err, cache.ErrMiss):
		utils.LogWarn("reference cache read failed", map[string]interface{}{"list": name, "error": err.Error()})
	}

	monitoring.RecordCacheLookup(name, "miss")
	loaded, err := load()
	if err != nil {
		return nil, err
	}
	if err := cache.SetRefs(name, loaded); err != nil {
		utils.LogWarn("reference cache write failed", map[string]interface{}{"list": name, "error": err.Error()})
	}
	return loaded, nil
}

func (h *Handler) categoryRefs(c *gin.Context) ([]ref, error) {
	return refs(cache.RefCategories, func() ([]ref, error) {
		rows, err := h.store.Categories.List(c.Request.Context(), repository.None)
		if err != nil {
			return nil, err
		}
		out := make([]ref, len(rows))
		for i, r := range rows {
			out[i] = ref{ID: r.ID, Name: r.Name}
		}
		return out, nil
	})
}

func (h *Handler) publisherRefs(c *gin.Context) ([]ref, error) {
	return refs(cache.RefPublishers, func() ([]ref, error) {
		rows, err := h.store.Publishers.List(c.Request.Context(), repository.None)
		if err != nil {
			return nil, err
		}
		out := make([]ref, len(rows))
		for i, r := range rows {
			out[i] = ref{ID: r.ID, Name: r.Name}
		}
		return out, nil
	})
}

func (h *Handler) equipmentRefs(c *gin.Context) ([]ref, error) {
	return refs(cache.RefEquipment, func() ([]ref, error) {
		rows, err := h.store.Equipment.List(c.Request.Context(), repository.None)
		if err != nil {
			return nil, err
		}
		out := make([]ref, len(rows))
		for i, r := range rows {
			out[i] = ref{ID: r.ID, Name: r.Name}
		}
		return out, nil
	})
}

func (h *Handler) venueRefs(c *gin.Context) ([]ref, error) {
	return refs(cache.RefVenues, func() ([]ref, error) {
		rows, err := h.store.Venues.List(c.Request.Context(), repository.None)
		if err != nil {
			return nil, err
		}
		out := make([]ref, len(rows))
		for i, r := range rows {
			out[i] = ref{ID: r.ID, Name: r.Name}
		}
		return out, nil
	})
}

func (h *Handler) gameRefs(c *gin.Context) ([]ref, error) {
	return refs(cache.RefGames, func() ([]ref, error) {
		rows, err := h.store.Games.List(c.Request.Context(), repository.None)
		if err != nil {
			return nil, err
		}
		out := make([]ref, len(rows))
		for i, r := range rows {
			out[i] = ref{ID: r.ID, Name: r.Name}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out, nil
	})
}

func (h *Handler) playerRefs(c *gin.Context) ([]ref, error) {
	return refs(cache.RefPlayers, func() ([]ref, error) {
		rows, err := h.store.Players.List(c.Request.Context(), repository.None)
		if err != nil {
			return nil, err
		}
		out := make([]ref, len(rows))
		for i, r := range rows {
			out[i] = ref{ID: r.ID, Name: r.Name}
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out, nil
	})
}

// selectOptions renders refs as a dropdown with an optional empty entry.
func selectOptions(list []ref, selected string, emptyLabel string) []web.Option {
	opts := make([]web.Option, 0, len(list)+1)
	if emptyLabel != "" {
		opts = append(opts, web.Option{Value: "", Label: emptyLabel, Selected: selected == ""})
	}
	for _, r := range list {
		v := idText(r.ID)
		opts = append(opts, web.Option{Value: v, Label: r.Name, Selected: v == selected})
	}
	return opts
}

// checkOptions renders refs as checkboxes, ticking every id in selected.
func checkOptions(list []ref, selected []string) []web.Option {
	picked := make(map[string]bool, len(selected))
	for _, s := range selected {
		picked[s] = true
	}
	opts := make([]web.Option, len(list))
	for i, r := range list {
		v := idText(r.ID)
		opts[i] = web.Option{Value: v, Label: r.Name, Selected: picked[v]}
	}
	return opts
}
