// internal/models/workplace.go
package models

// Amenity is a workplace facility offered to occupants.
type Amenity struct {
	ID         string `json:"id"`
	PropertyID string `json:"propertyId"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Available  bool   `json:"available"`
}

// Feedback is an occupant satisfaction response.
type Feedback struct {
	ID          string `json:"id"`
	PropertyID  string `json:"propertyId"`
	Category    string `json:"category"`
	Rating      int    `json:"rating"` // 1..5
	Comment     string `json:"comment"`
	SubmittedAt string `json:"submittedAt"` // RFC3339
}

// SatisfactionSummary aggregates feedback ratings.
type SatisfactionSummary struct {
	Responses       int                `json:"responses"`
	AverageRating   float64            `json:"averageRating"`
	ByCategory      map[string]float64 `json:"byCategory"` // average rating
	PromoterPercent float64            `json:"promoterPercent"`
}

// SummarizeFeedback computes a SatisfactionSummary. Ratings outside 1..5 are ignored.
func SummarizeFeedback(feedback []Feedback) SatisfactionSummary {
	s := SatisfactionSummary{ByCategory: map[string]float64{}}
	sums := map[string]int{}
	counts := map[string]int{}
	total, promoters := 0, 0
	for _, f := range feedback {
		if f.Rating < 1 || f.Rating > 5 {
			continue
		}
		s.Responses++
		total += f.Rating
		sums[f.Category] += f.Rating
		counts[f.Category]++
		if f.Rating >= 4 {
			promoters++
		}
	}
	if s.Responses == 0 {
		return s
	}
	s.AverageRating = round1(float64(total) / float64(s.Responses))
	s.PromoterPercent = round1(float64(promoters) * 100 / float64(s.Responses))
	for c, sum := range sums {
		s.ByCategory[c] = round1(float64(sum) / float64(counts[c]))
	}
	return s
}
