package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grest/greenspace-server/internal/logger"
	"github.com/grest/greenspace-server/internal/model"
)

func TestNormalizeParsesWellFormedCoordinates(t *testing.T) {
	raws := []model.Point{
		{ID: "a", Name: "Park A", Coordinates: "-7.7956,110.3695"},
	}

	markers := Normalize(raws, logger.New("test"))

	require.Len(t, markers, 1)
	assert.Equal(t, "Park A", markers[0].Name)
	assert.Equal(t, -7.7956, markers[0].Latitude)
	assert.Equal(t, 110.3695, markers[0].Longitude)
	assert.Equal(t, raws[0], markers[0].Point)
}

func TestNormalizeDropsMalformedRecords(t *testing.T) {
	raws := []model.Point{
		{ID: "good", Name: "Park A", Coordinates: "-7.7956,110.3695"},
		{ID: "empty", Name: "Bad", Coordinates: ""},
		{ID: "one-token", Name: "Bad", Coordinates: "-7.7956"},
		{ID: "three-tokens", Name: "Bad", Coordinates: "1,2,3"},
		{ID: "not-numeric", Name: "Bad", Coordinates: "x,y"},
	}

	markers := Normalize(raws, logger.New("test"))

	require.Len(t, markers, 1)
	assert.Equal(t, "good", markers[0].ID)
}

func TestNormalizePreservesInputOrder(t *testing.T) {
	raws := []model.Point{
		{ID: "1", Coordinates: "1,1"},
		{ID: "2", Coordinates: "junk"},
		{ID: "3", Coordinates: "3,3"},
	}

	markers := Normalize(raws, logger.New("test"))

	require.Len(t, markers, 2)
	assert.Equal(t, "1", markers[0].ID)
	assert.Equal(t, "3", markers[1].ID)
}

func TestNormalizeIsDeterministic(t *testing.T) {
	raws := []model.Point{
		{ID: "a", Coordinates: "-7.7956,110.3695"},
		{ID: "b", Coordinates: "broken"},
	}
	log := logger.New("test")

	first := Normalize(raws, log)
	second := Normalize(raws, log)
	assert.Equal(t, first, second)
}
