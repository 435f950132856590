package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinates(t *testing.T) {
	c, err := ParseCoordinates("-5.189773, -80.6406592")
	require.NoError(t, err)
	assert.Equal(t, Coordinates{Lat: -5.189773, Lon: -80.6406592}, c)
	assert.Equal(t, "-5.189773,-80.6406592", c.String())

	for _, bad := range []string{"", "1", "a,b", "1,2,3", "91,0", "0,181"} {
		_, err := ParseCoordinates(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestActivityDurationsDefaultsMissingSites(t *testing.T) {
	acts := SiteActivities{
		"P1": {{ID: 1, Name: "sampling", Minutes: 60}, {ID: 2, Name: "interview", Minutes: 45}},
		"P2": {},
	}
	d := acts.Durations()

	assert.Equal(t, 105, d.Minutes("P1"))
	assert.Equal(t, 0, d.Minutes("P2"))
	assert.Equal(t, DefaultActivityMinutes, d.Minutes("unknown"))
}

func TestErrorKinds(t *testing.T) {
	br := BusinessRule("no sites selected")
	assert.True(t, errors.Is(br, ErrBusinessRule))
	assert.False(t, errors.Is(br, ErrExternalService))
	assert.Equal(t, "no sites selected", br.Error())

	cause := errors.New("status 503")
	ext := ExternalService("fetch route", cause)
	assert.True(t, errors.Is(ext, ErrExternalService))
	assert.True(t, errors.Is(ext, cause))
	assert.Equal(t, "fetch route: status 503", ext.Error())
}
