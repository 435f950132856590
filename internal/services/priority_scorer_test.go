package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visit-route-service/internal/domain"
)

func TestScoreSitesUnder12Population(t *testing.T) {
	sites := []domain.Site{
		testSite("C", 0, domain.RiskAttributes{Population: 40, PopulationUnder12: 10}),
		testSite("A", 1, domain.RiskAttributes{Population: 400, PopulationUnder12: 100}),
		testSite("B", 2, domain.RiskAttributes{Population: 200, PopulationUnder12: 50}),
	}

	scored, err := ScoreSites(sites)
	require.NoError(t, err)
	require.Len(t, scored, 3)

	assert.Equal(t, "A", scored[0].Code)
	assert.InDelta(t, 0.20, scored[0].Priority, 1e-9)
	assert.Equal(t, "B", scored[1].Code)
	assert.InDelta(t, 0.10, scored[1].Priority, 1e-9)
	assert.Equal(t, "C", scored[2].Code)
	assert.InDelta(t, 0.02, scored[2].Priority, 1e-9)
}

func TestScoreSitesPopulationCarriesNoWeight(t *testing.T) {
	sites := []domain.Site{
		testSite("A", 0, domain.RiskAttributes{Population: 100}),
		testSite("B", 1, domain.RiskAttributes{Population: 50}),
		testSite("C", 2, domain.RiskAttributes{Population: 10}),
	}

	scored, err := ScoreSites(sites)
	require.NoError(t, err)

	for i, s := range scored {
		assert.Equal(t, sites[i].Code, s.Code, "ties keep input order")
		assert.Zero(t, s.Priority)
	}
	assert.InDelta(t, 1.0, scored[0].Features.Population, 1e-9)
	assert.InDelta(t, 0.5, scored[1].Features.Population, 1e-9)
	assert.InDelta(t, 0.1, scored[2].Features.Population, 1e-9)
}

func TestScoreSitesSingleSiteIsItsOwnMaximum(t *testing.T) {
	site := testSite("A", 0, domain.RiskAttributes{
		Population:           1200,
		FloodEvents:          3,
		DrySeasonShortages:   2,
		HeavyMetalReadings:   7,
		HasChlorination:      true,
		EmergencyDeclaration: 1,
		PopulationUnder12:    300,
		HealthFacilities:     2,
		EducationFacilities:  4,
		SurroundingConflicts: 5,
	})

	scored, err := ScoreSites([]domain.Site{site})
	require.NoError(t, err)
	require.Len(t, scored, 1)

	f := scored[0].Features
	for _, v := range []float64{
		f.Population, f.FloodEvents, f.DrySeasonShortages, f.HeavyMetalReadings, f.Chlorination,
		f.EmergencyDeclaration, f.PopulationUnder12, f.HealthFacilities, f.EducationFacilities, f.SurroundingConflicts,
	} {
		assert.InDelta(t, 1.0, v, 1e-12)
	}
	assert.InDelta(t, 1.0, scored[0].Priority, 1e-9)
	assert.LessOrEqual(t, scored[0].Priority, 1.0)
}

func TestScoreSitesZeroAttributesScoreZero(t *testing.T) {
	scored, err := ScoreSites([]domain.Site{testSite("A", 0, domain.RiskAttributes{})})
	require.NoError(t, err)
	assert.Zero(t, scored[0].Priority)
}

func TestScoreSitesRangeAndOrder(t *testing.T) {
	sites := []domain.Site{
		testSite("A", 0, domain.RiskAttributes{FloodEvents: 2, SurroundingConflicts: 1}),
		testSite("B", 1, domain.RiskAttributes{DrySeasonShortages: 5, HasChlorination: true}),
		testSite("C", 2, domain.RiskAttributes{HeavyMetalReadings: 3, EmergencyDeclaration: 2, PopulationUnder12: 80}),
		testSite("D", 3, domain.RiskAttributes{HealthFacilities: 1, EducationFacilities: 9}),
		testSite("E", 4, domain.RiskAttributes{FloodEvents: 1, DrySeasonShortages: 1, PopulationUnder12: 20}),
	}
	original := append([]domain.Site(nil), sites...)

	scored, err := ScoreSites(sites)
	require.NoError(t, err)
	require.Len(t, scored, len(sites))

	got := map[string]bool{}
	for i, s := range scored {
		assert.GreaterOrEqual(t, s.Priority, 0.0)
		assert.LessOrEqual(t, s.Priority, 1.0)
		if i > 0 {
			assert.GreaterOrEqual(t, scored[i-1].Priority, s.Priority)
		}
		got[s.Code] = true
	}
	assert.Len(t, got, len(sites))

	// scoring never touches the caller's slice
	assert.Equal(t, original, sites)
}

func TestScoreSitesRejectsInvalidInput(t *testing.T) {
	_, err := ScoreSites(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBusinessRule))

	_, err = ScoreSites([]domain.Site{testSite("A", 0, domain.RiskAttributes{FloodEvents: -1})})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBusinessRule))
}
