package geo

import "fmt"

// Platform selects the deep-link scheme of the external navigation app.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// NavLink builds the platform URL that hands a marker off to the external
// navigation application:
//
//	android: geo:0,0?q=<lat>,<lng>(<label>)
//	ios:     maps:0,0?q=<label>@<lat>,<lng>
func NavLink(p Platform, c Coordinates, label string) (string, error) {
	latLng := c.String()
	switch p {
	case PlatformAndroid:
		return fmt.Sprintf("geo:0,0?q=%s(%s)", latLng, label), nil
	case PlatformIOS:
		return fmt.Sprintf("maps:0,0?q=%s@%s", label, latLng), nil
	default:
		return "", fmt.Errorf("unsupported platform %q", p)
	}
}
