// Package vegetation serves the coverage split shown on the home screen
// alongside the opaque satellite-analysis web application. The analysis
// app itself is an external collaborator embedded by clients; this
// service only hands out its URL and the configured percentages.
package vegetation

// Summary is the vegetation-coverage card payload.
type Summary struct {
	VegetationPct    int    `json:"vegetationPercentage"`
	NonVegetationPct int    `json:"nonVegetationPercentage"`
	AnalysisAppURL   string `json:"analysisAppUrl"`
}

type Service struct {
	vegetationPct int
	appURL        string
}

func NewService(vegetationPct int, appURL string) *Service {
	if vegetationPct < 0 || vegetationPct > 100 {
		vegetationPct = 0
	}
	return &Service{vegetationPct: vegetationPct, appURL: appURL}
}

func (s *Service) Summary() Summary {
	return Summary{
		VegetationPct:    s.vegetationPct,
		NonVegetationPct: 100 - s.vegetationPct,
		AnalysisAppURL:   s.appURL,
	}
}
