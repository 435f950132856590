package dto

type SiteResponse struct {
	Code                  string  `json:"code"`
	Name                  string  `json:"name"`
	Latitude              float64 `json:"latitude"`
	Longitude             float64 `json:"longitude"`
	Population            int     `json:"population"`
	FloodEvents           int     `json:"flood_events"`
	DrySeasonShortages    int     `json:"dry_season_shortages"`
	HeavyMetalReadings    int     `json:"heavy_metal_readings"`
	HasChlorination       bool    `json:"has_chlorination"`
	EmergencyDeclarations int     `json:"emergency_declarations"`
	PopulationUnder12     int     `json:"population_under_12"`
	HealthFacilities      int     `json:"health_facilities"`
	EducationFacilities   int     `json:"education_facilities"`
	SurroundingConflicts  int     `json:"surrounding_conflicts"`
}

type ListSitesResponse struct {
	Sites []SiteResponse `json:"sites"`
}
