package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grest/greenspace-server/internal/model"
)

func TestRowsRendersAllRecordsIncludingMalformed(t *testing.T) {
	snap := []model.Point{
		{ID: "good", Name: "Taman Kota", Coordinates: "-7.7956,110.3695", Date: "2025-11-02", Accuration: "12 m", CreatedAt: "2025-11-02T08:00:00Z"},
		{ID: "bad", Name: "Bad", Coordinates: "", CreatedAt: "2025-11-03T08:00:00Z"},
	}

	rows := Rows(snap, "")

	require.Len(t, rows, 2)
	// newest first
	assert.Equal(t, "bad", rows[0].ID)
	assert.Equal(t, "N/A", rows[0].Coordinates)
	assert.Equal(t, "N/A", rows[0].Date)
	assert.Equal(t, "N/A", rows[0].Accuration)
	assert.False(t, rows[0].HasPhoto)

	assert.Equal(t, "-7.795600, 110.369500", rows[1].Coordinates)
	assert.Equal(t, "12 m", rows[1].Accuration)
}

func TestRowsMaskUnparseableCoordinates(t *testing.T) {
	snap := []model.Point{
		{ID: "1", Name: "Taman Kota", Coordinates: "not,numbers"},
		{ID: "2", Name: "Hutan Kota", Coordinates: "somewhere"},
	}

	rows := Rows(snap, "")
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "N/A", r.Coordinates)
	}
}

func TestRowsMissingNamePlaceholder(t *testing.T) {
	rows := Rows([]model.Point{{ID: "x"}}, "")
	require.Len(t, rows, 1)
	assert.Equal(t, "Unnamed", rows[0].Name)
}

func TestRowsFilterExtendsToCoordinatesAndDate(t *testing.T) {
	snap := []model.Point{
		{ID: "1", Name: "Taman Kota", Coordinates: "-7.7956,110.3695", Date: "2025-11-02"},
		{ID: "2", Name: "Hutan Kota", Coordinates: "-6.2,106.8", Date: "2025-10-15"},
	}

	rows := Rows(snap, "106.8")
	require.Len(t, rows, 1)
	assert.Equal(t, "Hutan Kota", rows[0].Name)

	rows = Rows(snap, "2025-11")
	require.Len(t, rows, 1)
	assert.Equal(t, "Taman Kota", rows[0].Name)
}

func TestRowsPhoto(t *testing.T) {
	rows := Rows([]model.Point{{ID: "1", Name: "x", PhotoURL: "https://img.example/a.jpg"}}, "")
	require.Len(t, rows, 1)
	assert.True(t, rows[0].HasPhoto)
	assert.Equal(t, "https://img.example/a.jpg", rows[0].PhotoURL)
}

func TestEditPrefillCarriesStoredFields(t *testing.T) {
	p := model.Point{
		ID:          "p1",
		Name:        "Taman Kota",
		Coordinates: "-7.7956,110.3695",
		Date:        "2025-11-02",
		Accuration:  "12 m",
		PhotoURL:    "https://img.example/a.jpg",
	}

	pre := EditPrefill(p)
	assert.Equal(t, "p1", pre["id"])
	assert.Equal(t, "Taman Kota", pre["name"])
	assert.Equal(t, "-7.7956,110.3695", pre["coordinates"])
	assert.Equal(t, "https://img.example/a.jpg", pre["photoUrl"])
}
