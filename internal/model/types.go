package model

// Point is a single user-submitted green-space location record.
// Coordinates is the sole geographic representation, stored as
// "<lat>,<lng>"; structured lat/lng only exist in derived views.
type Point struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Coordinates string `json:"coordinates"`
	Date        string `json:"date"`
	Accuration  string `json:"accuration"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
	UserID      string `json:"userId,omitempty"`
}

// PointPatch carries a partial update. Nil fields are left untouched by
// the store; the merge never removes a field that is omitted here.
type PointPatch struct {
	Name        *string `json:"name,omitempty"`
	Coordinates *string `json:"coordinates,omitempty"`
	Date        *string `json:"date,omitempty"`
	Accuration  *string `json:"accuration,omitempty"`
	PhotoURL    *string `json:"photoUrl,omitempty"`
}

// MapMarker is a map-capable projection of a Point whose coordinates
// parsed successfully.
type MapMarker struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Point     Point   `json:"-"`
}
