// internal/models/certification.go
package models

// Certification is a green-building certification held or pursued by a building.
type Certification struct {
	ID         string                  `json:"id"`
	BuildingID string                  `json:"buildingId"`
	Scheme     string                  `json:"scheme"` // GREENSHIP, EDGE, LEED
	Level      string                  `json:"level"`
	Status     string                  `json:"status"`
	Score      float64                 `json:"score"`
	MaxScore   float64                 `json:"maxScore"`
	ValidUntil string                  `json:"validUntil"`
	Categories []CertificationCategory `json:"categories"`
}

// CertificationCategory is the credit tally for one assessment category.
type CertificationCategory struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Achieved  float64 `json:"achieved"`
	Available float64 `json:"available"`
}

const (
	CertificationStatusCertified  = "certified"
	CertificationStatusInProgress = "in_progress"
	CertificationStatusExpired    = "expired"
)

// CertificationProgress reports progress of one certification.
type CertificationProgress struct {
	CertificationID string                  `json:"certificationId"`
	Scheme          string                  `json:"scheme"`
	Level           string                  `json:"level"`
	Percent         float64                 `json:"percent"`
	Categories      []CertificationCategory `json:"categories"`
	// Gap lists categories below half of their available credits.
	Gap []string `json:"gap"`
}

// ProgressOf computes the progress of c.
func ProgressOf(c Certification) CertificationProgress {
	p := CertificationProgress{
		CertificationID: c.ID,
		Scheme:          c.Scheme,
		Level:           c.Level,
		Categories:      c.Categories,
		Gap:             []string{},
	}
	if c.MaxScore > 0 {
		p.Percent = round1(c.Score * 100 / c.MaxScore)
	}
	for _, cat := range c.Categories {
		if cat.Available > 0 && cat.Achieved*2 < cat.Available {
			p.Gap = append(p.Gap, cat.Code)
		}
	}
	return p
}
