package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinates(t *testing.T) {
	c, err := ParseCoordinates("-7.7956,110.3695")
	require.NoError(t, err)
	assert.Equal(t, -7.7956, c.Lat)
	assert.Equal(t, 110.3695, c.Lng)
}

func TestParseCoordinatesTolerantOfSpaces(t *testing.T) {
	c, err := ParseCoordinates(" -7.7956 , 110.3695 ")
	require.NoError(t, err)
	assert.Equal(t, -7.7956, c.Lat)
}

func TestParseCoordinatesRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"-7.7956",
		"-7.7956,110.3695,12",
		"abc,110.3695",
		"-7.7956,def",
		"NaN,110.3695",
		"-7.7956,+Inf",
	}
	for _, in := range cases {
		if _, err := ParseCoordinates(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestFormatDisplay(t *testing.T) {
	assert.Equal(t, "-7.795600, 110.369500", FormatDisplay("-7.7956,110.3695"))
	assert.Equal(t, "N/A", FormatDisplay(""))
	// anything unparseable is masked, never echoed
	assert.Equal(t, "N/A", FormatDisplay("somewhere"))
	assert.Equal(t, "N/A", FormatDisplay("not,numbers"))
}

func TestNavLink(t *testing.T) {
	c := Coordinates{Lat: -7.7956, Lng: 110.3695}

	android, err := NavLink(PlatformAndroid, c, "Park A")
	require.NoError(t, err)
	assert.Equal(t, "geo:0,0?q=-7.7956,110.3695(Park A)", android)

	ios, err := NavLink(PlatformIOS, c, "Park A")
	require.NoError(t, err)
	assert.Equal(t, "maps:0,0?q=Park A@-7.7956,110.3695", ios)

	_, err = NavLink("web", c, "Park A")
	assert.Error(t, err)
}
