package handlers

import (
	"net/http"
	"time"

	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

// SelectionHandler registers the sites and activities an analyst plans to visit.
type SelectionHandler struct {
	Sites      ports.SiteRepository
	Activities ports.ActivityRepository
	Now        func() time.Time
}

func (h *SelectionHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *SelectionHandler) RegisterSites(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	count, err := services.RegisterSelection(r.Context(), h.Sites, req.AnalystID, req.SiteCodes, h.now())
	if err != nil {
		writeServiceError(w, r, "register selection", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.SelectionResponse{
		AnalystID: req.AnalystID,
		Count:     count,
		Message:   "selection registered",
	})
}

func (h *SelectionHandler) RegisterActivities(w http.ResponseWriter, r *http.Request) {
	var req dto.ActivitySelectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := services.RegisterActivities(r.Context(), h.Activities, req.AnalystID, req.Activities); err != nil {
		writeServiceError(w, r, "register activities", err)
		return
	}

	count := 0
	for _, ids := range req.Activities {
		count += len(ids)
	}
	writeJSON(w, r, http.StatusCreated, dto.SelectionResponse{
		AnalystID: req.AnalystID,
		Count:     count,
		Message:   "activity selection registered",
	})
}
