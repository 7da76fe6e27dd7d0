// internal/models/realestate.go
package models

// Property is a building or land parcel in the real-estate portfolio.
type Property struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Address         string  `json:"address"`
	City            string  `json:"city"`
	Province        string  `json:"province"`
	TotalArea       float64 `json:"totalArea"`     // m²
	OccupancyRate   float64 `json:"occupancyRate"` // percent
	Status          string  `json:"status"`
	AcquisitionDate string  `json:"acquisitionDate"`
	MarketValue     int64   `json:"marketValue"` // IDR
}

const (
	PropertyStatusActive      = "active"
	PropertyStatusUnderReview = "under_review"
	PropertyStatusDisposed    = "disposed"
)

// PortfolioSummary aggregates the property list.
type PortfolioSummary struct {
	TotalProperties      int            `json:"totalProperties"`
	TotalArea            float64        `json:"totalArea"`
	TotalMarketValue     int64          `json:"totalMarketValue"`
	AverageOccupancyRate float64        `json:"averageOccupancyRate"`
	ByType               map[string]int `json:"byType"`
	ByCity               map[string]int `json:"byCity"`
}

// SummarizePortfolio computes a PortfolioSummary. Disposed properties are excluded.
func SummarizePortfolio(properties []Property) PortfolioSummary {
	s := PortfolioSummary{ByType: map[string]int{}, ByCity: map[string]int{}}
	var occupancy float64
	for _, p := range properties {
		if p.Status == PropertyStatusDisposed {
			continue
		}
		s.TotalProperties++
		s.TotalArea += p.TotalArea
		s.TotalMarketValue += p.MarketValue
		occupancy += p.OccupancyRate
		s.ByType[p.Type]++
		s.ByCity[p.City]++
	}
	if s.TotalProperties > 0 {
		s.AverageOccupancyRate = round1(occupancy / float64(s.TotalProperties))
	}
	return s
}
