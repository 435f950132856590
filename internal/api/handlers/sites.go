package handlers

import (
	"net/http"

	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

// SiteHandler exposes the read-only site catalog.
type SiteHandler struct {
	Repo ports.SiteRepository
}

func (h *SiteHandler) List(w http.ResponseWriter, r *http.Request) {
	sites, err := services.ListSites(r.Context(), h.Repo)
	if err != nil {
		writeServiceError(w, r, "list sites", err)
		return
	}

	res := dto.ListSitesResponse{
		Sites: make([]dto.SiteResponse, 0, len(sites)),
	}
	for _, s := range sites {
		a := s.Attributes
		res.Sites = append(res.Sites, dto.SiteResponse{
			Code:                  s.Code,
			Name:                  s.Name,
			Latitude:              s.Coords.Lat,
			Longitude:             s.Coords.Lon,
			Population:            a.Population,
			FloodEvents:           a.FloodEvents,
			DrySeasonShortages:    a.DrySeasonShortages,
			HeavyMetalReadings:    a.HeavyMetalReadings,
			HasChlorination:       a.HasChlorination,
			EmergencyDeclarations: a.EmergencyDeclaration,
			PopulationUnder12:     a.PopulationUnder12,
			HealthFacilities:      a.HealthFacilities,
			EducationFacilities:   a.EducationFacilities,
			SurroundingConflicts:  a.SurroundingConflicts,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
