// Package geo owns parsing and formatting of the "<lat>,<lng>" coordinate
// strings that point records carry as their only geographic representation.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coordinates is an immutable latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lng float64
}

// ParseCoordinates parses a "<lat>,<lng>" string. Both components must be
// finite base-10 decimals; anything else is rejected so malformed records
// can be excluded from map-capable views.
func ParseCoordinates(s string) (Coordinates, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Coordinates{}, fmt.Errorf("empty coordinates")
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Coordinates{}, fmt.Errorf("coordinates %q: want 2 components, got %d", s, len(parts))
	}
	lat, err := parseFinite(parts[0])
	if err != nil {
		return Coordinates{}, fmt.Errorf("coordinates %q: latitude: %w", s, err)
	}
	lng, err := parseFinite(parts[1])
	if err != nil {
		return Coordinates{}, fmt.Errorf("coordinates %q: longitude: %w", s, err)
	}
	return Coordinates{Lat: lat, Lng: lng}, nil
}

func parseFinite(tok string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", tok)
	}
	return v, nil
}

// String renders the pair back into the stored wire form.
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// FormatDisplay renders a raw coordinate string for list rows: six decimal
// places when parseable, "N/A" otherwise. Unparseable text is masked, not
// echoed; the row still renders with its other fields.
func FormatDisplay(raw string) string {
	c, err := ParseCoordinates(raw)
	if err != nil {
		return "N/A"
	}
	return fmt.Sprintf("%.6f, %.6f", c.Lat, c.Lng)
}
