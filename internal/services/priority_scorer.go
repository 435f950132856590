package services

import (
	"fmt"
	"math"
	"slices"

	"visit-route-service/internal/domain"
)

// Fixed weights of the composite priority. Population is normalized and
// reported but carries no weight of its own.
var priorityWeights = domain.Features{
	FloodEvents:          0.17,
	DrySeasonShortages:   0.17,
	HeavyMetalReadings:   0.09,
	Chlorination:         0.09,
	EmergencyDeclaration: 0.09,
	PopulationUnder12:    0.20,
	HealthFacilities:     0.03,
	EducationFacilities:  0.03,
	SurroundingConflicts: 0.13,
}

// Per-attribute maxima of a batch, each floored at 1.
type attributeMaxima struct {
	population, flood, dry, metals, chlorination, emergency, under12, health, education, conflicts int
}

func chlorinationValue(has bool) int {
	if has {
		return 1
	}
	return 0
}

func validateAttributes(s domain.Site) error {
	a := s.Attributes
	for _, v := range []int{
		a.Population, a.FloodEvents, a.DrySeasonShortages, a.HeavyMetalReadings, a.EmergencyDeclaration,
		a.PopulationUnder12, a.HealthFacilities, a.EducationFacilities, a.SurroundingConflicts,
	} {
		if v < 0 {
			return domain.BusinessRule(fmt.Sprintf("site %q has a negative risk attribute", s.Code))
		}
	}
	return nil
}

func maximaOf(sites []domain.Site) attributeMaxima {
	m := attributeMaxima{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	for _, s := range sites {
		a := s.Attributes
		m.population = max(m.population, a.Population)
		m.flood = max(m.flood, a.FloodEvents)
		m.dry = max(m.dry, a.DrySeasonShortages)
		m.metals = max(m.metals, a.HeavyMetalReadings)
		m.chlorination = max(m.chlorination, chlorinationValue(a.HasChlorination))
		m.emergency = max(m.emergency, a.EmergencyDeclaration)
		m.under12 = max(m.under12, a.PopulationUnder12)
		m.health = max(m.health, a.HealthFacilities)
		m.education = max(m.education, a.EducationFacilities)
		m.conflicts = max(m.conflicts, a.SurroundingConflicts)
	}
	return m
}

func ratio(v, maxV int) float64 { return float64(v) / float64(maxV) }

func normalize(a domain.RiskAttributes, m attributeMaxima) domain.Features {
	return domain.Features{
		Population:           ratio(a.Population, m.population),
		FloodEvents:          ratio(a.FloodEvents, m.flood),
		DrySeasonShortages:   ratio(a.DrySeasonShortages, m.dry),
		HeavyMetalReadings:   ratio(a.HeavyMetalReadings, m.metals),
		Chlorination:         ratio(chlorinationValue(a.HasChlorination), m.chlorination),
		EmergencyDeclaration: ratio(a.EmergencyDeclaration, m.emergency),
		PopulationUnder12:    ratio(a.PopulationUnder12, m.under12),
		HealthFacilities:     ratio(a.HealthFacilities, m.health),
		EducationFacilities:  ratio(a.EducationFacilities, m.education),
		SurroundingConflicts: ratio(a.SurroundingConflicts, m.conflicts),
	}
}

func weightedScore(f domain.Features) float64 {
	w := priorityWeights
	score := w.FloodEvents*f.FloodEvents +
		w.DrySeasonShortages*f.DrySeasonShortages +
		w.HeavyMetalReadings*f.HeavyMetalReadings +
		w.Chlorination*f.Chlorination +
		w.EmergencyDeclaration*f.EmergencyDeclaration +
		w.PopulationUnder12*f.PopulationUnder12 +
		w.HealthFacilities*f.HealthFacilities +
		w.EducationFacilities*f.EducationFacilities +
		w.SurroundingConflicts*f.SurroundingConflicts

	// weights sum to 1 but float addition can overshoot slightly
	return math.Min(1, math.Max(0, score))
}

// ScoreSites normalizes every risk attribute against the batch maximum and
// returns new scored records sorted by descending priority. Ties keep the
// input order. The input slice is not modified.
func ScoreSites(sites []domain.Site) ([]domain.ScoredSite, error) {
	if len(sites) == 0 {
		return nil, domain.BusinessRule("the list of visit points is empty")
	}

	for _, s := range sites {
		if err := validateAttributes(s); err != nil {
			return nil, fmt.Errorf("score sites: %w", err)
		}
	}

	m := maximaOf(sites)
	scored := make([]domain.ScoredSite, 0, len(sites))
	for _, s := range sites {
		f := normalize(s.Attributes, m)
		scored = append(scored, domain.ScoredSite{Site: s, Features: f, Priority: weightedScore(f)})
	}

	slices.SortStableFunc(scored, func(a, b domain.ScoredSite) int {
		switch {
		case a.Priority > b.Priority:
			return -1
		case a.Priority < b.Priority:
			return 1
		}
		return 0
	})

	return scored, nil
}
