package domain

// Raw multi-criteria risk attributes of a populated site.
// Absent values are stored as zero.
type RiskAttributes struct {
	Population           int
	FloodEvents          int
	DrySeasonShortages   int
	HeavyMetalReadings   int
	HasChlorination      bool
	EmergencyDeclaration int
	PopulationUnder12    int
	HealthFacilities     int
	EducationFacilities  int
	SurroundingConflicts int
}

// A geographic point of interest that an analyst may visit.
type Site struct {
	Code       string
	Name       string
	Coords     Coordinates
	Attributes RiskAttributes
}

// Attribute values normalized against the maximum of the scored batch, each in [0,1].
type Features struct {
	Population           float64
	FloodEvents          float64
	DrySeasonShortages   float64
	HeavyMetalReadings   float64
	Chlorination         float64
	EmergencyDeclaration float64
	PopulationUnder12    float64
	HealthFacilities     float64
	EducationFacilities  float64
	SurroundingConflicts float64
}

// A Site paired with the priority assigned by one scoring pass.
// ScoredSite values are produced fresh by scoring and never alias the caller's input.
type ScoredSite struct {
	Site
	Features Features
	Priority float64
}
